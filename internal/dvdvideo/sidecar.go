package dvdvideo

import (
	"fmt"
	"strings"
)

// SidecarLookup is supplied by an external metadata parser; this package
// never parses sidecar files itself (see spec §6's "external boundary"
// design note). A synthetic pseudo-path (e.g. "/path/__T01.mpg") is
// looked up for override fields such as "episodeTitle".
//
// Grounded on original_source/plugins/dvdvideo/virtualdvd.py's
// metadata.from_text(...) call sites, generalized to an injected
// collaborator.
type SidecarLookup interface {
	Lookup(syntheticPath string) (map[string]string, error)
}

// NoSidecar is a SidecarLookup that never finds anything, used when the
// caller has no external metadata source.
type NoSidecar struct{}

func (NoSidecar) Lookup(string) (map[string]string, error) { return nil, nil }

// sidecarIgnored reports whether a metadata lookup's title-ish value marks
// this title as deliberately hidden from listings ("ignore..."). The
// fallback key is "Title <n>" (n=0 for the main feature), matching the key
// the sidecar parser itself writes when it has no better title.
//
// Grounded on original_source/dvdfolder.py:846-850 /
// virtualdvd.py:172-176,188-193's `.lower().startswith('ignore')`
// suppression rule against the "Title %d" fallback key.
func sidecarIgnored(meta map[string]string, titleNum int) bool {
	for _, key := range []string{"episodeTitle", fmt.Sprintf("Title %d", titleNum)} {
		if v, ok := meta[key]; ok && strings.HasPrefix(strings.ToLower(v), "ignore") {
			return true
		}
	}
	return false
}
