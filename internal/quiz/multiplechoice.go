package quiz

import "math/rand"

// TermFilter selects which vocabulary terms may be sampled.
type TermFilter func(Term) bool

// DefaultDistractors is the number of distractors drawn when Settings
// does not say otherwise.
const DefaultDistractors = 5

// Settings parameterizes multiple-choice generation. The zero value
// means: accept every term, DefaultDistractors distractors, coin-flip
// prompt side, single selection, shared random source.
type Settings struct {
	Filter      TermFilter
	Distractors int
	Side        Side
	Category    Category
	Rand        *rand.Rand
}

// GenerateMultipleChoice samples one multiple-choice question from the
// vocabulary: a random answer term's prompt side becomes the question,
// its opposite side the correct choice, and up to Distractors other
// terms contribute the wrong choices.
func GenerateMultipleChoice(v *Vocabulary, s Settings) (*Question, error) {
	return generate(v, nil, s)
}

// GenerateMultipleChoiceFrom is GenerateMultipleChoice with the answer
// term pinned instead of sampled.
func GenerateMultipleChoiceFrom(v *Vocabulary, pinned Term, s Settings) (*Question, error) {
	return generate(v, &pinned, s)
}

func generate(v *Vocabulary, pinned *Term, s Settings) (*Question, error) {
	filter := s.Filter
	if filter == nil {
		filter = func(Term) bool { return true }
	}
	k := s.Distractors
	if k <= 0 {
		k = DefaultDistractors
	}

	pool := make([]Term, 0, len(v.terms))
	for _, t := range v.terms {
		if filter(t) {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return nil, &EmptyPoolError{Vocabulary: v.name}
	}

	side := s.Side
	if side == SideAny {
		if intn(s.Rand, 2) == 0 {
			side = SideFront
		} else {
			side = SideBack
		}
	}

	var answerTerm Term
	if pinned != nil {
		answerTerm = *pinned
	} else {
		answerTerm = pool[intn(s.Rand, len(pool))]
	}
	prompt := answerTerm.Side(side)
	correct := answerTerm.Side(side.Opposite())

	// Draw distractors without replacement: shuffle the candidates, then
	// walk them skipping the answer term and any repeated choice text. A
	// pool smaller than k+1 yields fewer distractors, never an error.
	candidates := make([]Term, 0, len(pool))
	for _, t := range pool {
		if t != answerTerm {
			candidates = append(candidates, t)
		}
	}
	shuffle(s.Rand, len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	want := k
	if max := len(pool) - 1; want > max {
		want = max
	}
	seen := map[string]struct{}{correct: {}}
	choices := make([]string, 0, want+1)
	choices = append(choices, correct)
	for _, t := range candidates {
		if len(choices) > want {
			break
		}
		text := t.Side(side.Opposite())
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		choices = append(choices, text)
	}

	// Presentation order only: the canonical answer is already fixed.
	shuffle(s.Rand, len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	var opts []QuestionOption
	if s.Category != "" {
		opts = append(opts, WithCategory(s.Category))
	}
	q := NewMultipleChoice(prompt, correct, choices, opts...)
	q.vocab = v
	stored := s
	q.settings = &stored
	return q, nil
}

func intn(r *rand.Rand, n int) int {
	if r != nil {
		return r.Intn(n)
	}
	return rand.Intn(n)
}

func shuffle(r *rand.Rand, n int, swap func(i, j int)) {
	if r != nil {
		r.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
