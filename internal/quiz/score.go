package quiz

import (
	"strings"
	"unicode"
)

// ScoreFunc grades a single response against the stored answer and
// returns earned credit as a fraction in [0, 1]. A question multiplies
// the fraction by its point total.
type ScoreFunc func(answer, response string) float64

// ScoreExact is the default: full credit on strict string equality.
func ScoreExact(answer, response string) float64 {
	if answer == response {
		return 1
	}
	return 0
}

// ScoreFold ignores case, punctuation and repeated whitespace.
func ScoreFold(answer, response string) float64 {
	if normalize(answer) == normalize(response) {
		return 1
	}
	return 0
}

// ScoreFuzzy is ScoreFold plus half credit for near misses within
// maxEdit edits.
func ScoreFuzzy(maxEdit int) ScoreFunc {
	return func(answer, response string) float64 {
		na, nr := normalize(answer), normalize(response)
		if na == nr {
			return 1
		}
		if maxEdit > 0 && levenshtein(na, nr) <= maxEdit {
			return 0.5
		}
		return 0
	}
}

// ScoreSelections grades a multiple-selection response. Both answer and
// response are ";"-joined choice lists. Full credit on an exact set
// match; proportional credit when every selection is correct but some
// are missing; zero as soon as a wrong choice is selected.
func ScoreSelections(answer, response string) float64 {
	key := toSet(splitSelections(answer))
	got := toSet(splitSelections(response))
	if len(key) == 0 {
		return 0
	}
	if setEqual(key, got) {
		return 1
	}
	inter := 0
	for s := range got {
		if _, ok := key[s]; !ok {
			return 0
		}
		inter++
	}
	return float64(inter) / float64(len(key))
}

// SelectionSeparator joins and splits multi-selection responses.
const SelectionSeparator = ";"

func splitSelections(s string) []string {
	parts := strings.Split(s, SelectionSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// normalize does simple casefolding and trims punctuation/extra spaces.
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range []rune(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r):
			// skip
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// levenshtein computes edit distance (insertion, deletion, substitution cost 1).
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			ins := dp[j] + 1
			del := dp[j-1] + 1
			sub := prev + cost
			dp[j] = min3(ins, del, sub)
			prev = tmp
		}
	}
	return dp[m]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
