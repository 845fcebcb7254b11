package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadFileMapped opens the file at path as a read-only memory mapping so
// that multi-megabyte variable exports never get copied into the heap just
// to be decoded once. The returned release func unmaps the region and must
// be called after the data is no longer referenced.
//
// Falls back to os.ReadFile when the file is empty or mapping fails; the
// release func is then a no-op.
func ReadFileMapped(path string) ([]byte, func() error, error) {
	nop := func() error { return nil }

	f, err := os.Open(path)
	if err != nil {
		return nil, nop, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nop, err
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		f.Close()
		return []byte{}, nop, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		fallback, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, nop, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return fallback, nop, nil
	}

	release := func() error {
		unmapErr := data.Unmap()
		closeErr := f.Close()
		if unmapErr != nil {
			return unmapErr
		}
		return closeErr
	}
	return data, release, nil
}
