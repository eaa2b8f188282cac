package certmaker

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"time"
)

var serialNumberLimit = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// randomSerialNumber returns a value in [1, 2^128).
func randomSerialNumber(random io.Reader) (sn *big.Int, err error) {
	sn, err = rand.Int(random, serialNumberLimit)
	if err != nil {
		err = cryptoError("generate serial number", err)
		return
	}
	sn.Add(sn, big.NewInt(1))
	return
}

// generateCRT builds a template whose subject and issuer both hold only the common name.
func generateCRT(key *rsa.PrivateKey, serialNumber *big.Int, commonName string, notBefore time.Time, validityDays int) (crt *x509.Certificate) {
	name := pkix.Name{
		CommonName: commonName,
	}
	notBefore = notBefore.UTC()
	crt = &x509.Certificate{
		SerialNumber:       serialNumber,
		Subject:            name,
		Issuer:             name,
		PublicKeyAlgorithm: x509.RSA,
		PublicKey:          &key.PublicKey,
		SignatureAlgorithm: x509.SHA256WithRSA,
		NotBefore:          notBefore,
		NotAfter:           notBefore.Add(time.Duration(validityDays) * 24 * time.Hour),
	}
	return
}

// encodeCRT self-signs tpl: it is its own parent.
func encodeCRT(random io.Reader, key *rsa.PrivateKey, tpl *x509.Certificate) (crtPEM []byte, err error) {
	crtRaw, crtErr := x509.CreateCertificate(random, tpl, tpl, &key.PublicKey, key)
	if crtErr != nil {
		err = cryptoError("sign certificate", crtErr)
		return
	}
	block := pem.Block{
		Type:  CertificateBlockType,
		Bytes: crtRaw,
	}
	crtPEM = pem.EncodeToMemory(&block)
	return
}
