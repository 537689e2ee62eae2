// Package rpm translates the rpm-specific encodings — EVR version
// strings, dependency sense bitmasks and binary header tags — into the
// repository metadata model.
package rpm

import (
	"fmt"
	"strings"

	"github.com/ralt/rpmsync/internal/models"
)

// ParseEVR parses a compound "[epoch:]version-release" string. The
// epoch prefix is an all-digit run before the first colon and defaults
// to "0" when absent; the last dash separates version from release, and
// neither side may contain another dash. An empty input yields the
// all-null triple instead of an error.
func ParseEVR(text string) (models.Version, error) {
	if text == "" {
		return models.Version{}, nil
	}

	epoch := "0"
	rest := text
	if i := strings.IndexByte(rest, ':'); i > 0 && allDigits(rest[:i]) {
		epoch = rest[:i]
		rest = rest[i+1:]
	}

	sep := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] != '-' {
			continue
		}
		if sep >= 0 {
			return models.Version{}, &models.SyncError{
				Type: models.ErrMalformedVersion,
				Err:  fmt.Errorf("can't parse version %q", text),
			}
		}
		sep = i
	}
	if sep < 0 {
		return models.Version{}, &models.SyncError{
			Type: models.ErrMalformedVersion,
			Err:  fmt.Errorf("can't parse version %q", text),
		}
	}

	return models.Version{
		Epoch: models.NewNullString(epoch),
		Ver:   models.NewNullString(rest[:sep]),
		Rel:   models.NewNullString(rest[sep+1:]),
	}, nil
}

// EVRString renders v back to its compact textual form. The epoch
// prefix is omitted when null or the default "0".
func EVRString(v models.Version) string {
	s := v.Ver.Or("") + "-" + v.Rel.Or("")
	if v.Epoch.Valid && v.Epoch.String != "0" {
		s = v.Epoch.String + ":" + s
	}
	return s
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
