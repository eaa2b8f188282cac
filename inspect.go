package certmaker

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

type CertificateInfo struct {
	CommonName         string    `json:"commonName" yaml:"commonName"`
	IssuerCommonName   string    `json:"issuerCommonName" yaml:"issuerCommonName"`
	SerialNumber       string    `json:"serialNumber" yaml:"serialNumber"`
	NotBefore          time.Time `json:"notBefore" yaml:"notBefore"`
	NotAfter           time.Time `json:"notAfter" yaml:"notAfter"`
	ValidityDays       int       `json:"validityDays" yaml:"validityDays"`
	KeyBits            int       `json:"keyBits" yaml:"keyBits"`
	SignatureAlgorithm string    `json:"signatureAlgorithm" yaml:"signatureAlgorithm"`
	SelfSigned         bool      `json:"selfSigned" yaml:"selfSigned"`
	Fingerprint        string    `json:"fingerprint" yaml:"fingerprint"`
	Signature          []byte    `json:"-" yaml:"-"`
}

func Inspect(certPEM []byte) (info *CertificateInfo, err error) {
	crt, parseErr := parseCertificatePEM(certPEM)
	if parseErr != nil {
		err = parseErr
		return
	}
	keyBits := 0
	if pub, ok := crt.PublicKey.(*rsa.PublicKey); ok {
		keyBits = pub.N.BitLen()
	}
	sum := sha256.Sum256(crt.Raw)
	info = &CertificateInfo{
		CommonName:         crt.Subject.CommonName,
		IssuerCommonName:   crt.Issuer.CommonName,
		SerialNumber:       strings.ToUpper(crt.SerialNumber.Text(16)),
		NotBefore:          crt.NotBefore,
		NotAfter:           crt.NotAfter,
		ValidityDays:       int(crt.NotAfter.Sub(crt.NotBefore) / (24 * time.Hour)),
		KeyBits:            keyBits,
		SignatureAlgorithm: crt.SignatureAlgorithm.String(),
		SelfSigned:         crt.CheckSignature(crt.SignatureAlgorithm, crt.RawTBSCertificate, crt.Signature) == nil,
		Fingerprint:        fingerprint(sum[:]),
		Signature:          crt.Signature,
	}
	return
}

func fingerprint(sum []byte) string {
	parts := make([]string, len(sum))
	for i, b := range sum {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(parts, ":")
}

// VerifyPair checks that keyPEM holds the private half of the certificate key
// and that the certificate signature verifies under that key.
func VerifyPair(certPEM []byte, keyPEM []byte) (err error) {
	crt, parseErr := parseCertificatePEM(certPEM)
	if parseErr != nil {
		err = parseErr
		return
	}
	key, keyErr := ParsePrivateKey(keyPEM)
	if keyErr != nil {
		err = keyErr
		return
	}
	if !key.PublicKey.Equal(crt.PublicKey) {
		err = cryptoError("verify key pair", errors.New("private key does not match certificate public key"))
		return
	}
	if sigErr := crt.CheckSignature(crt.SignatureAlgorithm, crt.RawTBSCertificate, crt.Signature); sigErr != nil {
		err = cryptoError("verify self signature", sigErr)
		return
	}
	return
}
