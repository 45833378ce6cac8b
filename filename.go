package distmeta

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	version "github.com/hashicorp/go-version"
)

// projectNameRE matches valid project names inside a wheel filename.
// Names are escaped per the wheel filename rules, so only ASCII word
// characters and dots may appear.
var projectNameRE = regexp.MustCompile(`^[\w.]*$`)

// ParseWheelFilename parses a wheel filename into its project name and
// version. The trailing build/python/abi/platform tags are validated for
// shape but discarded.
//
// The stem must contain exactly 4 or 5 dashes; only the first two delimit
// fields this function cares about, the rest belong to the compatibility
// tags and are regrouped rather than split further.
//
// Returns [ErrInvalidName] for a wrong extension, a wrong number of parts,
// or a malformed project name. A malformed version is reported by the
// version parser's own error, unwrapped.
func ParseWheelFilename(filename string) (string, *version.Version, error) {
	base := filepath.Base(filename)
	stem, ok := strings.CutSuffix(base, ".whl")
	if !ok {
		return "", nil, fmt.Errorf("%w (extension must be %q): %s", ErrInvalidName, ".whl", filename)
	}

	dashes := strings.Count(stem, "-")
	if dashes != 4 && dashes != 5 {
		return "", nil, fmt.Errorf("%w (wrong number of parts): %s", ErrInvalidName, filename)
	}

	parts := strings.SplitN(stem, "-", dashes-1)
	name := parts[0]
	if strings.Contains(name, "__") || !projectNameRE.MatchString(name) {
		return "", nil, fmt.Errorf("%w: invalid project name %q: %s", ErrInvalidName, name, filename)
	}

	ver, err := version.NewVersion(parts[1])
	if err != nil {
		return "", nil, err
	}

	return name, ver, nil
}
