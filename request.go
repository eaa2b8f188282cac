package certmaker

import (
	"path/filepath"
)

// Request is what a front end collects before generating. Run does not validate it.
type Request struct {
	CommonName   string
	KeyBits      int
	ValidityDays int
	OutputDir    string
	DER          bool
}

// BasePath names the output files after the common name inside the output directory.
func (r Request) BasePath() string {
	return filepath.Join(r.OutputDir, r.CommonName)
}

func (r Request) Paths() (paths []string) {
	base := r.BasePath()
	paths = []string{base + CertificateSuffix, base + KeySuffix}
	if r.DER {
		paths = append(paths, base+DERSuffix)
	}
	return
}

// Existing lists the target files already on disk.
func (r Request) Existing() (paths []string) {
	for _, path := range r.Paths() {
		if pathExist(path) {
			paths = append(paths, path)
		}
	}
	return
}

type Result struct {
	CertificatePEM []byte
	KeyPEM         []byte
	DER            []byte
	Paths          []string
}

// Run generates, writes the PEM pair and, when requested, the DER copy.
func (g *Generator) Run(req Request) (result Result, err error) {
	certPEM, keyPEM, genErr := g.Generate(req.CommonName, req.ValidityDays, req.KeyBits)
	if genErr != nil {
		err = genErr
		return
	}
	base := req.BasePath()
	if err = g.Save(certPEM, keyPEM, base); err != nil {
		return
	}
	result = Result{
		CertificatePEM: certPEM,
		KeyPEM:         keyPEM,
		Paths:          []string{base + CertificateSuffix, base + KeySuffix},
	}
	if !req.DER {
		return
	}
	der, derErr := g.EncodeDER(certPEM)
	if derErr != nil {
		err = derErr
		return
	}
	if err = VerifyDER(certPEM, der); err != nil {
		return
	}
	if err = g.SaveDER(der, base); err != nil {
		return
	}
	result.DER = der
	result.Paths = append(result.Paths, base+DERSuffix)
	return
}

func Run(req Request) (Result, error) {
	return defaultGenerator.Run(req)
}
