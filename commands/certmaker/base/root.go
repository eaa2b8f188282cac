package base

import (
	"errors"
	goflag "flag"
	"io"
	"os"

	"github.com/aacfactory/certmaker"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var ErrCanceled = errors.New("certificate generation canceled by the user")

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitCanceled   = 3
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func NewCommand(in io.Reader, out io.Writer, errOut io.Writer) *cobra.Command {
	s := &streams{in: in, out: out, err: errOut}
	var configFile string
	cmd := &cobra.Command{
		Use:           "certmaker",
		Short:         "Generate self-signed certificates",
		Long:          `Generate an RSA key pair and a self-signed X.509 certificate, written as PEM files with an optional DER copy.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().StringVar(&configFile, "config", DefaultProfilePath, "path to profile file")
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newGenerateCommand(s, &configFile))
	cmd.AddCommand(newDERCommand(s))
	cmd.AddCommand(newInspectCommand(s))
	return cmd
}

func Execute(args []string) error {
	cmd := NewCommand(os.Stdin, os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCanceled):
		return ExitCanceled
	case certmaker.IsKind(err, certmaker.KindValidation):
		return ExitValidation
	default:
		return ExitFailure
	}
}
