package base

import (
	"fmt"
	"strings"
	"time"

	"github.com/aacfactory/certmaker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

type generateFlags struct {
	commonName   string
	keyBits      int
	validityDays int
	outputDir    string
	der          bool
	force        bool
	metricsFile  string
}

func newGenerateCommand(s *streams, configFile *string) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a self-signed certificate and private key",
		Long:  `Generate an RSA key pair and a self-signed certificate for a common name and write <name>_cert.pem, <name>_key.pem and optionally <name>.cer into the output folder.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := LoadProfile(*configFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd, s, flags, profile)
		},
	}
	cmd.Flags().StringVar(&flags.commonName, "cn", "", "common name, also used as the output file base name")
	cmd.Flags().IntVar(&flags.keyBits, "bits", DefaultKeyBits, "RSA key size in bits (1024-4096)")
	cmd.Flags().IntVar(&flags.validityDays, "days", DefaultValidityDays, "validity period in days (1-3650)")
	cmd.Flags().StringVar(&flags.outputDir, "out", "", "output folder, must exist and be writable")
	cmd.Flags().BoolVar(&flags.der, "der", false, "also write a DER encoded <name>.cer")
	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite existing files without asking")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "write prometheus metrics in text format to this file")
	return cmd
}

// mergeForm starts from the profile and applies only the flags set on the command line.
func mergeForm(cmd *cobra.Command, flags *generateFlags, profile *Profile) (form Form, metricsFile string) {
	form = Form{
		CommonName:   flags.commonName,
		KeyBits:      profile.KeyBits,
		ValidityDays: profile.ValidityDays,
		OutputDir:    profile.OutputDir,
		DER:          profile.DER,
	}
	metricsFile = profile.MetricsFile
	changed := cmd.Flags().Changed
	if changed("bits") {
		form.KeyBits = flags.keyBits
	}
	if changed("days") {
		form.ValidityDays = flags.validityDays
	}
	if changed("out") {
		form.OutputDir = flags.outputDir
	}
	if changed("der") {
		form.DER = flags.der
	}
	if changed("metrics-file") {
		metricsFile = flags.metricsFile
	}
	return
}

func runGenerate(cmd *cobra.Command, s *streams, flags *generateFlags, profile *Profile) (err error) {
	form, metricsFile := mergeForm(cmd, flags, profile)
	if err = form.Validate(); err != nil {
		return
	}
	req := form.Request()
	if existing := req.Existing(); len(existing) > 0 && !flags.force {
		if !confirmOverwrite(s.in, s.out, req.CommonName, existing) {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, ErrCanceled.Error())
			err = ErrCanceled
			return
		}
		fmt.Fprintln(s.out)
	}

	options := []certmaker.Option{certmaker.WithLogger(klog.Background().WithName("generate"))}
	var registry *prometheus.Registry
	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		metrics, metricsErr := certmaker.NewMetrics(registry)
		if metricsErr != nil {
			err = metricsErr
			return
		}
		options = append(options, certmaker.WithMetrics(metrics))
	}
	generator, genErr := certmaker.NewGenerator(options...)
	if genErr != nil {
		err = genErr
		return
	}

	result, runErr := runWithProgress(s, generator, req)
	if registry != nil {
		if writeErr := prometheus.WriteToTextfile(metricsFile, registry); writeErr != nil {
			klog.ErrorS(writeErr, "write metrics file failed", "path", metricsFile)
		}
	}
	if runErr != nil {
		err = runErr
		return
	}
	klog.V(1).InfoS("certificate saved", "commonName", req.CommonName, "paths", result.Paths)
	fmt.Fprintf(s.out, "Certificate saved to:\n%s\n", strings.Join(result.Paths, "\n"))
	return
}

// runWithProgress keeps the terminal alive while large keys are generated.
func runWithProgress(s *streams, generator *certmaker.Generator, req certmaker.Request) (result certmaker.Result, err error) {
	type outcome struct {
		result certmaker.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, runErr := generator.Run(req)
		done <- outcome{result: r, err: runErr}
	}()
	fmt.Fprintf(s.err, "Generating %d-bit RSA key for %q", req.KeyBits, req.CommonName)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case o := <-done:
			fmt.Fprintln(s.err)
			result, err = o.result, o.err
			return
		case <-ticker.C:
			fmt.Fprint(s.err, ".")
		}
	}
}
