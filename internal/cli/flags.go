package cli

import (
	"os"
	"path/filepath"
)

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogFile: filepath.Join(os.TempDir(), "flashcards.log"),
	}
}
