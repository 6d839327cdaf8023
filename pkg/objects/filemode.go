package objects

import "fmt"

// FileMode identifies whether a tree entry is a regular file or a
// subdirectory. Only these two modes are recognized; executable bits,
// symlinks, and gitlinks are not modeled.
type FileMode uint32

const (
	FileModeRegular   FileMode = 0o100644
	FileModeDirectory FileMode = 0o040000
)

func (m FileMode) IsRegular() bool {
	return m == FileModeRegular
}

func (m FileMode) IsDirectory() bool {
	return m == FileModeDirectory
}

func (m FileMode) String() string {
	switch m {
	case FileModeRegular:
		return "regular"
	case FileModeDirectory:
		return "directory"
	default:
		return fmt.Sprintf("unknown(%o)", uint32(m))
	}
}

// ToOctalString returns the mode as the exact ASCII string stored in tree
// entries, e.g. "100644" or "040000".
func (m FileMode) ToOctalString() string {
	return fmt.Sprintf("%06o", uint32(m))
}

// FromOctalString parses a mode from its ASCII octal form.
func FromOctalString(s string) (FileMode, error) {
	var mode uint32
	if _, err := fmt.Sscanf(s, "%o", &mode); err != nil {
		return 0, fmt.Errorf("invalid mode string %q: %w", s, err)
	}
	switch FileMode(mode) {
	case FileModeRegular, FileModeDirectory:
		return FileMode(mode), nil
	default:
		return 0, fmt.Errorf("unrecognized mode string %q", s)
	}
}
