package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// PartialSuffix marks a note file that is still being written.
//
// A partial file is named after the note it replaces, e.g.
// ".alpha.txt.123456.partial". It never ends in the note suffix, so List and
// Watch skip it without a separate filter, and a leftover from a crash shows
// which note it belonged to.
const PartialSuffix = ".partial"

// replaceFile swaps the contents of path for text with a single rename, so a
// concurrent reader sees either the old text or the new one, never a mix.
// The partial file lives next to path because rename is only atomic within
// one directory.
func replaceFile(path, text string, perm os.FileMode) (err error) {
	dir, base := filepath.Dir(path), filepath.Base(path)

	partial, err := os.CreateTemp(dir, "."+base+".*"+PartialSuffix)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", base, err)
	}
	staged := partial.Name()
	defer func() {
		if err != nil {
			os.Remove(staged)
		}
	}()

	_, err = partial.WriteString(text)
	if err == nil {
		err = partial.Sync()
	}
	if closeErr := partial.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", base, err)
	}

	if err = os.Chmod(staged, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", staged, err)
	}
	if err = os.Rename(staged, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", base, err)
	}
	return nil
}
