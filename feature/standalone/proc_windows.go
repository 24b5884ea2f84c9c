//go:build windows

package standalone

import (
	"fmt"
	"os"
)

// terminate stops the process. Windows has no SIGTERM for console children.
func terminate(p *os.Process) error {
	return p.Kill()
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrExecutable, path)
	}
	return nil
}
