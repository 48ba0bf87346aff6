package reconcile

import (
	"slices"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suggestionThreshold is the minimum Jaro-Winkler score for a mapping hint.
const suggestionThreshold = 0.85

// suggestLibrary returns the configured library title closest to title, if
// any is close enough to be a likely typo or casing difference.
func suggestLibrary(title string, configured map[string]string) (string, bool) {
	candidates := make([]string, 0, len(configured))
	for k := range configured {
		candidates = append(candidates, k)
	}
	return SuggestTitle(title, candidates)
}

// SuggestTitle returns the candidate closest to title after folding case,
// accents and whitespace. It reports false when no candidate scores at least
// suggestionThreshold. Ties go to the lexically smallest candidate.
func SuggestTitle(title string, candidates []string) (string, bool) {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	want := foldTitle(title)
	best, bestScore := "", float32(0)
	for _, c := range sorted {
		score := edlib.JaroWinklerSimilarity(want, foldTitle(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// foldTitle lowercases, strips accents and collapses whitespace.
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
