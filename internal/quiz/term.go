package quiz

import "fmt"

// Side names which half of a term is shown as a prompt. SideAny lets the
// generator flip a coin.
type Side int

const (
	SideAny Side = iota
	SideFront
	SideBack
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return "any"
	}
}

// Opposite returns the other half: the side used for choices when s is
// the prompt side.
func (s Side) Opposite() Side {
	switch s {
	case SideFront:
		return SideBack
	case SideBack:
		return SideFront
	default:
		return SideAny
	}
}

// Term is an immutable front/back pair, e.g. a name and its definition.
type Term struct {
	front string
	back  string
}

func NewTerm(front, back string) Term {
	return Term{front: front, back: back}
}

func (t Term) Front() string { return t.front }
func (t Term) Back() string { return t.back }

// Side returns the requested half of the pair. SideAny falls back to the
// front; callers resolve SideAny before asking.
func (t Term) Side(s Side) string {
	if s == SideBack {
		return t.back
	}
	return t.front
}

func (t Term) String() string {
	return fmt.Sprintf("%s: %s", t.front, t.back)
}

// Vocabulary is a named, ordered collection of terms. Read-only after
// construction.
type Vocabulary struct {
	name  string
	terms []Term
}

// NewVocabulary copies terms into a new vocabulary. Every term must have
// text on both sides.
func NewVocabulary(name string, terms []Term) (*Vocabulary, error) {
	for i, t := range terms {
		if t.front == "" || t.back == "" {
			return nil, fmt.Errorf("quiz: term %d in vocabulary %q has an empty side", i, name)
		}
	}
	v := &Vocabulary{name: name, terms: make([]Term, len(terms))}
	copy(v.terms, terms)
	return v, nil
}

func (v *Vocabulary) Name() string { return v.name }
func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns a copy of the term list.
func (v *Vocabulary) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// MultipleChoice generates one multiple-choice question over this
// vocabulary.
func (v *Vocabulary) MultipleChoice(s Settings) (*Question, error) {
	return GenerateMultipleChoice(v, s)
}
