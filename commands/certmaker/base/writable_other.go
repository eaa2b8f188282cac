//go:build !unix

package base

// checkWritable is a no-op here; write failures surface from the save itself.
func checkWritable(dir string) error {
	return nil
}
