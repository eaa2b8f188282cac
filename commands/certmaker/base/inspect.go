package base

import (
	"os"

	"github.com/aacfactory/certmaker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type inspectOutput struct {
	certmaker.CertificateInfo `yaml:",inline"`
	KeyMatches                *bool `yaml:"keyMatches,omitempty"`
}

func newInspectCommand(s *streams) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the details of a PEM certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(s, args[0], keyFile)
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "", "private key file to check against the certificate")
	return cmd
}

func runInspect(s *streams, certFile string, keyFile string) (err error) {
	certPEM, readErr := os.ReadFile(certFile)
	if readErr != nil {
		err = &certmaker.Error{Kind: certmaker.KindIO, Op: "read", Path: certFile, Err: readErr}
		return
	}
	info, inspectErr := certmaker.Inspect(certPEM)
	if inspectErr != nil {
		err = inspectErr
		return
	}
	output := inspectOutput{CertificateInfo: *info}
	if keyFile != "" {
		keyPEM, readKeyErr := os.ReadFile(keyFile)
		if readKeyErr != nil {
			err = &certmaker.Error{Kind: certmaker.KindIO, Op: "read", Path: keyFile, Err: readKeyErr}
			return
		}
		matches := certmaker.VerifyPair(certPEM, keyPEM) == nil
		output.KeyMatches = &matches
	}
	encoder := yaml.NewEncoder(s.out)
	encoder.SetIndent(2)
	if err = encoder.Encode(output); err != nil {
		return
	}
	err = encoder.Close()
	return
}
