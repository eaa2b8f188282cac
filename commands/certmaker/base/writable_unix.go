//go:build unix

package base

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func checkWritable(dir string) error {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return fmt.Errorf("Output location %s is not writable, %v", dir, err)
	}
	return nil
}
