package certmaker

import (
	"bytes"
	"crypto/x509"
	encoding_asn1 "encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// EncodeDER re-encodes a PEM certificate as DER. The certificate is parsed, not re-signed,
// so the result carries the same serial, validity and signature.
func (g *Generator) EncodeDER(certPEM []byte) (der []byte, err error) {
	crt, parseErr := parseCertificatePEM(certPEM)
	if parseErr != nil {
		err = parseErr
		return
	}
	der = crt.Raw
	return
}

func EncodeDER(certPEM []byte) (der []byte, err error) {
	return defaultGenerator.EncodeDER(certPEM)
}

func parseCertificatePEM(certPEM []byte) (crt *x509.Certificate, err error) {
	block, _ := pem.Decode(certPEM)
	if block == nil {
		err = parseError("decode certificate pem", errors.New("no pem block found"))
		return
	}
	if block.Type != CertificateBlockType {
		err = parseError("decode certificate pem", fmt.Errorf("invalid block type %q", block.Type))
		return
	}
	crt, err = x509.ParseCertificate(block.Bytes)
	if err != nil {
		err = parseError("parse certificate", err)
		return
	}
	return
}

type certificateParts struct {
	tbs                []byte
	signatureAlgorithm []byte
	signature          []byte
}

// splitCertificate reads the three top-level fields of a DER certificate and rejects trailing data.
func splitCertificate(der []byte) (parts certificateParts, err error) {
	input := cryptobyte.String(der)
	var crt cryptobyte.String
	if !input.ReadASN1(&crt, cryptobyte_asn1.SEQUENCE) || !input.Empty() {
		err = parseError("split certificate", errors.New("malformed certificate"))
		return
	}
	var tbs, sigAlg cryptobyte.String
	if !crt.ReadASN1Element(&tbs, cryptobyte_asn1.SEQUENCE) {
		err = parseError("split certificate", errors.New("malformed tbs certificate"))
		return
	}
	if !crt.ReadASN1Element(&sigAlg, cryptobyte_asn1.SEQUENCE) {
		err = parseError("split certificate", errors.New("malformed signature algorithm"))
		return
	}
	var signature encoding_asn1.BitString
	if !crt.ReadASN1BitString(&signature) {
		err = parseError("split certificate", errors.New("malformed signature"))
		return
	}
	if !crt.Empty() {
		err = parseError("split certificate", errors.New("trailing data after signature"))
		return
	}
	parts = certificateParts{
		tbs:                tbs,
		signatureAlgorithm: sigAlg,
		signature:          signature.RightAlign(),
	}
	return
}

// SameCertificate reports whether two DER certificates carry the same signed content and signature.
func SameCertificate(a []byte, b []byte) (same bool, err error) {
	pa, errA := splitCertificate(a)
	if errA != nil {
		err = errA
		return
	}
	pb, errB := splitCertificate(b)
	if errB != nil {
		err = errB
		return
	}
	same = bytes.Equal(pa.tbs, pb.tbs) &&
		bytes.Equal(pa.signatureAlgorithm, pb.signatureAlgorithm) &&
		bytes.Equal(pa.signature, pb.signature)
	return
}

// VerifyDER checks that der is the certificate held in certPEM and not a re-signed copy.
func VerifyDER(certPEM []byte, der []byte) (err error) {
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != CertificateBlockType {
		err = parseError("decode certificate pem", errors.New("no certificate block found"))
		return
	}
	same, sameErr := SameCertificate(der, block.Bytes)
	if sameErr != nil {
		err = sameErr
		return
	}
	if !same {
		err = cryptoError("verify der encoding", errors.New("der does not match the pem certificate"))
		return
	}
	return
}
