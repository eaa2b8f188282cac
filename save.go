package certmaker

import (
	"os"
)

const (
	CertificateSuffix = "_cert.pem"
	KeySuffix         = "_key.pem"
	DERSuffix         = ".cer"
)

const (
	certificateFileMode os.FileMode = 0644
	keyFileMode         os.FileMode = 0600
)

// Save writes basePath_cert.pem then basePath_key.pem, replacing existing files.
// A failure on the key leaves the certificate behind.
func (g *Generator) Save(certPEM []byte, keyPEM []byte, basePath string) (err error) {
	if err = g.writeFile(basePath+CertificateSuffix, certPEM, certificateFileMode); err != nil {
		return
	}
	err = g.writeFile(basePath+KeySuffix, keyPEM, keyFileMode)
	return
}

func (g *Generator) SaveDER(der []byte, basePath string) (err error) {
	err = g.writeFile(basePath+DERSuffix, der, certificateFileMode)
	return
}

func (g *Generator) writeFile(path string, p []byte, perm os.FileMode) (err error) {
	if err = os.WriteFile(path, p, perm); err != nil {
		err = ioError("write", path, err)
		return
	}
	// WriteFile keeps the mode of a file it overwrites
	if err = os.Chmod(path, perm); err != nil {
		err = ioError("chmod", path, err)
		return
	}
	g.logger().V(4).Info("file written", "path", path, "bytes", len(p))
	return
}

func Save(certPEM []byte, keyPEM []byte, basePath string) error {
	return defaultGenerator.Save(certPEM, keyPEM, basePath)
}

func SaveDER(der []byte, basePath string) error {
	return defaultGenerator.SaveDER(der, basePath)
}

func pathExist(v string) (ok bool) {
	_, err := os.Stat(v)
	if err == nil {
		ok = true
		return
	}
	ok = !os.IsNotExist(err)
	return
}
