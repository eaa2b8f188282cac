package base

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmOverwrite defaults to no: only y or yes confirms.
func confirmOverwrite(in io.Reader, out io.Writer, commonName string, existing []string) bool {
	fmt.Fprintf(out, "Files already exist for the name '%s' in the selected folder:\n\n%s\n\nDo you want to overwrite them? [y/N]: ",
		commonName, strings.Join(existing, "\n"))
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
