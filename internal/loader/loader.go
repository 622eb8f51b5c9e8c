// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

var (
	// ErrROMNotFound is returned when the ROM file does not exist.
	// Returned errors also match fs.ErrNotExist.
	ErrROMNotFound = errors.New("rom not found")
	// ErrEmptyROM is returned for ROM files without content.
	ErrEmptyROM = errors.New("rom is empty")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file and checks that it fits into the program memory.
func (l *Loader) Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening file %s: %w: %w", path, ErrROMNotFound, err)
		}
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening file %s: is a directory", path)
	}

	switch size := info.Size(); {
	case size == 0:
		return nil, fmt.Errorf("loading file %s: %w", path, ErrEmptyROM)
	case size > vm.MaxROMSize:
		return nil, fmt.Errorf("loading file %s with %d bytes: %w", path, size, vm.ErrROMTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
