package reconcile

import (
	"regexp"
	"strings"
)

// Identifier namespaces as they appear in media-server GUIDs.
const (
	NamespaceTVDB = "tvdb://"
	NamespaceTMDB = "tmdb://"
)

// tvdbPathPattern matches the TVDB token naming convention, e.g. "Show {tvdb-70991}".
var tvdbPathPattern = regexp.MustCompile(`\{tvdb-(\d+)\}`)

// ExtractID derives the canonical external ID of a watched item.
//
// Order of precedence:
//  1. the first file path containing {tvdb-<digits>} (episodes only)
//  2. the first external ID in the kind's namespace (tvdb:// or tmdb://)
//
// Canonical IDs are bare digit strings for both kinds. An external ID whose
// remainder is not numeric is ignored and the scan continues.
func ExtractID(item WatchedItem, kind MediaKind) (string, bool) {
	var namespace string
	switch kind {
	case KindEpisode:
		for _, path := range item.FilePaths {
			if m := tvdbPathPattern.FindStringSubmatch(path); m != nil {
				return m[1], true
			}
		}
		namespace = NamespaceTVDB
	case KindMovie:
		namespace = NamespaceTMDB
	default:
		return "", false
	}

	for _, id := range item.ExternalIDs {
		rest, ok := strings.CutPrefix(id, namespace)
		if ok && isDigits(rest) {
			return rest, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
