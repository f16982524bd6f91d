// Package fileop holds the file system helpers shared by the commands:
// source and destination checks, and atomic writes through a temporary
// file.
package fileop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// CheckSource fails unless src is an existing regular file.
func CheckSource(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("cannot stat source file %q: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot read non-regular file %q: %s", info.Name(), info.Mode().String())
	}
	return nil
}

// CheckDestination fails if dest exists and overwrite is false, or if dest
// exists and is not a regular file.
func CheckDestination(dest string, overwrite bool) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	if !overwrite {
		return fmt.Errorf("destination file already exists: %q", info.Name())
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot overwrite non-regular file %q: %s", info.Name(), info.Mode().String())
	}
	return nil
}

// WriteFile calls write with a buffered temporary file created next to
// dest, then renames it to dest. On failure the temporary file is removed
// and dest is left untouched.
func WriteFile(dest string, write func(io.Writer) error) (err error) {
	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	tmpName := outFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			if close_err := outFile.Close(); close_err != nil && !errors.Is(close_err, os.ErrClosed) {
				slog.Error("could not close temporary destination", "name", tmpName, "error", close_err)
			}
			if rm_err := os.Remove(tmpName); rm_err != nil {
				slog.Error("could not remove temporary destination", "name", tmpName, "error", rm_err)
			}
		}
	}()

	bw := bufio.NewWriter(outFile)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("could not write %q: %w", dest, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination for %q: %w", dest, err)
	}
	if err = outFile.Close(); err != nil {
		return fmt.Errorf("could not close temporary destination for %q: %w", dest, err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", dest, err)
	}

	renamed = true
	return nil
}
