// Package fuzzy scores string similarity on a 0-100 scale.
//
// Ratio is the normalized indel similarity: 2*LCS/(len(a)+len(b))*100,
// measured in runes so Cyrillic text scores the same as Latin text.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Ratio returns the similarity of a and b.
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la+lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	return float64(2*edlib.LCS(a, b)) / float64(la+lb) * 100
}

// PartialRatio returns the best Ratio of the shorter string against any
// equally long window of the longer one. Windows hanging off either edge are
// tried as well, so a prefix or suffix overlap still scores.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	needle := string(short)
	m, n := len(short), len(long)
	best := 0.0
	consider := func(window []rune) bool {
		if score := Ratio(needle, string(window)); score > best {
			best = score
		}
		return best == 100
	}

	for i := 1; i < m; i++ {
		if consider(long[:i]) {
			return best
		}
	}
	for i := 0; i+m <= n; i++ {
		if consider(long[i : i+m]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if i < 0 {
			continue
		}
		if consider(long[i:]) {
			return best
		}
	}
	return best
}

// TokenSortRatio compares a and b after sorting their whitespace-separated
// tokens, so word order does not matter.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Best returns the highest of Ratio, PartialRatio and TokenSortRatio.
func Best(a, b string) float64 {
	score := Ratio(a, b)
	if p := PartialRatio(a, b); p > score {
		score = p
	}
	if t := TokenSortRatio(a, b); t > score {
		score = t
	}
	return score
}

// Words returns the runs of letters, digits and underscores in s.
func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
