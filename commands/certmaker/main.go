package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aacfactory/certmaker/commands/certmaker/base"
	"k8s.io/klog/v2"
)

// main
// certmaker generate --cn={CN} --bits={bits} --days={days} --out={dir} [--der] [--force]
func main() {
	err := base.Execute(os.Args[1:])
	klog.Flush()
	if err != nil {
		if !errors.Is(err, base.ErrCanceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(base.ExitCode(err))
	}
}
