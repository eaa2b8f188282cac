package base

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aacfactory/certmaker"
	"github.com/spf13/cobra"
)

func newDERCommand(s *streams) *cobra.Command {
	var certFile, base string
	cmd := &cobra.Command{
		Use:   "der",
		Short: "Re-encode a PEM certificate as DER",
		Long:  `Convert an existing PEM certificate into a binary DER .cer file. The certificate is not re-signed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDER(s, certFile, base)
		},
	}
	cmd.Flags().StringVar(&certFile, "cert", "", "PEM certificate file")
	cmd.Flags().StringVar(&base, "out", "", "output base path, .cer is appended (default: input path without _cert.pem)")
	return cmd
}

// derBasePath strips the PEM suffix so a.pem pairs with a.cer.
func derBasePath(certFile string) string {
	if strings.HasSuffix(certFile, certmaker.CertificateSuffix) {
		return strings.TrimSuffix(certFile, certmaker.CertificateSuffix)
	}
	return strings.TrimSuffix(certFile, ".pem")
}

func runDER(s *streams, certFile string, base string) (err error) {
	if strings.TrimSpace(certFile) == "" {
		err = certmaker.ValidationError(errors.New("Certificate file is required"))
		return
	}
	certPEM, readErr := os.ReadFile(certFile)
	if readErr != nil {
		err = &certmaker.Error{Kind: certmaker.KindIO, Op: "read", Path: certFile, Err: readErr}
		return
	}
	der, derErr := certmaker.EncodeDER(certPEM)
	if derErr != nil {
		err = derErr
		return
	}
	if err = certmaker.VerifyDER(certPEM, der); err != nil {
		return
	}
	if base == "" {
		base = derBasePath(certFile)
	}
	if err = certmaker.SaveDER(der, base); err != nil {
		return
	}
	fmt.Fprintf(s.out, "DER certificate saved to:\n%s\n", base+certmaker.DERSuffix)
	return
}
