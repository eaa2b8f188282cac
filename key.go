package certmaker

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
)

const (
	CertificateBlockType   = "CERTIFICATE"
	RSAPrivateKeyBlockType = "RSA PRIVATE KEY"
	PrivateKeyBlockType    = "PRIVATE KEY"
)

// generateKEY uses the fixed public exponent 65537 of rsa.GenerateKey.
func generateKEY(random io.Reader, bits int) (key *rsa.PrivateKey, err error) {
	key, err = rsa.GenerateKey(random, bits)
	if err != nil {
		err = cryptoError("generate rsa key pair", err)
	}
	return
}

// encodeKEY writes the traditional PKCS#1 form, never encrypted.
func encodeKEY(key *rsa.PrivateKey) (privatePEM []byte) {
	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:    RSAPrivateKeyBlockType,
		Headers: nil,
		Bytes:   x509.MarshalPKCS1PrivateKey(key),
	})
	return
}

func ParsePrivateKey(keyPEM []byte) (key *rsa.PrivateKey, err error) {
	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		err = parseError("parse private key", fmt.Errorf("no pem block found"))
		return
	}
	switch keyBlock.Type {
	case RSAPrivateKeyBlockType:
		rsaKey, parseKeyErr := x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
		if parseKeyErr != nil {
			err = parseError("parse pkcs1 rsa private key", parseKeyErr)
			return
		}
		key = rsaKey
	case PrivateKeyBlockType:
		k, parseKeyErr := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
		if parseKeyErr != nil {
			err = parseError("parse pkcs8 private key", parseKeyErr)
			return
		}
		rsaKey, ok := k.(*rsa.PrivateKey)
		if !ok {
			err = parseError("parse pkcs8 private key", fmt.Errorf("key type %T is not rsa", k))
			return
		}
		key = rsaKey
	default:
		err = parseError("parse private key", fmt.Errorf("invalid private key block type %q", keyBlock.Type))
	}
	return
}
