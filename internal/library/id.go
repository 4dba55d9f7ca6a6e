package library

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxID is the largest regulation ID.
const MaxID = 9999

var validName = regexp.MustCompile(`^(\d{4})_.*\.txt$`)

// ParseID parses a decimal regulation ID in the range 0..9999.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidID, s)
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil || id > MaxID {
		return 0, fmt.Errorf("%w: %q must be within 0-%d", ErrInvalidID, s, MaxID)
	}
	return id, nil
}

// PadID formats id as four zero-padded digits.
func PadID(id int) string {
	return fmt.Sprintf("%04d", id)
}

// ValidName reports whether name follows the NNNN_<title>.txt convention.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// IDFromName extracts the numeric prefix of a validly named file.
func IDFromName(name string) (int, bool) {
	m := validName.FindStringSubmatch(name)
	if m == nil {
		return -1, false
	}
	id, _ := strconv.Atoi(m[1])
	return id, true
}

// Resolve returns the first manifest entry for id.
func Resolve(manifest []string, id int) (string, error) {
	if id < 0 || id > MaxID {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	prefix := PadID(id) + "_"
	for _, name := range manifest {
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, docExt) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no file named %s<name>%s", ErrNotFound, prefix, docExt)
}
