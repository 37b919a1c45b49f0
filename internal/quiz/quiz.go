package quiz

import (
	"fmt"
	"math/rand"
)

// DefaultThreshold is the quiz passing percent used when no option
// overrides it.
const DefaultThreshold = 90

// Quiz is an ordered collection of questions with aggregate scoring,
// pass/fail evaluation and completion-code issuance. The source
// identifier locates the quiz's behavior again after a round trip
// through the wire format.
type Quiz struct {
	source    string
	name      string
	threshold float64
	shuffle   bool
	codePred  CodePredicate
	questions []*Question
	checked   bool
}

type QuizOption func(*Quiz)

// WithName sets the display name (default: the source identifier).
func WithName(name string) QuizOption {
	return func(qz *Quiz) { qz.name = name }
}

// WithThreshold sets the quiz passing percent.
func WithThreshold(pct float64) QuizOption {
	return func(qz *Quiz) { qz.threshold = pct }
}

// WithShuffle enables question and choice shuffling at render time.
func WithShuffle(on bool) QuizOption {
	return func(qz *Quiz) { qz.shuffle = on }
}

// WithCodePredicate sets the completion-code acceptance predicate.
func WithCodePredicate(p CodePredicate) QuizOption {
	return func(qz *Quiz) { qz.codePred = p }
}

// NewQuiz takes ownership of questions and assigns their positional
// identifiers.
func NewQuiz(source string, questions []*Question, opts ...QuizOption) *Quiz {
	qz := &Quiz{
		source:    source,
		threshold: DefaultThreshold,
		questions: append([]*Question(nil), questions...),
	}
	for _, o := range opts {
		o(qz)
	}
	if qz.name == "" {
		qz.name = source
	}
	qz.AssignIDs()
	return qz
}

func (qz *Quiz) Source() string { return qz.source }
func (qz *Quiz) Name() string { return qz.name }
func (qz *Quiz) Threshold() float64 { return qz.threshold }
func (qz *Quiz) ShuffleEnabled() bool { return qz.shuffle }
func (qz *Quiz) Checked() bool { return qz.checked }
func (qz *Quiz) Len() int { return len(qz.questions) }

// Questions returns the questions in order. The slice is a copy; the
// questions are the quiz's own.
func (qz *Quiz) Questions() []*Question {
	return append([]*Question(nil), qz.questions...)
}

// AssignIDs gives every question its positional identifier, stable for
// one render/check cycle.
func (qz *Quiz) AssignIDs() {
	for i, q := range qz.questions {
		q.id = fmt.Sprintf("q%d", i)
	}
}

// Check scores every question against the positionally corresponding
// response. Missing responses count as empty answers; extra responses
// are ignored.
func (qz *Quiz) Check(responses []string) (Result, error) {
	for i, q := range qz.questions {
		resp := ""
		if i < len(responses) {
			resp = responses[i]
		}
		if _, err := q.Check([]string{resp}); err != nil {
			return Result{}, err
		}
	}
	qz.checked = true
	total := qz.Total()
	if total == 0 {
		return Result{}, &DegenerateTotalError{Name: qz.name}
	}
	score, err := qz.Score()
	if err != nil {
		return Result{}, err
	}
	return Result{Score: score, Total: total, Passing: score/total*100 >= qz.threshold}, nil
}

func (qz *Quiz) Score() (float64, error) {
	if !qz.checked {
		return 0, ErrUnchecked
	}
	sum := 0.0
	for _, q := range qz.questions {
		s, err := q.Score()
		if err != nil {
			return 0, err
		}
		sum += s
	}
	return sum, nil
}

func (qz *Quiz) Total() float64 {
	sum := 0.0
	for _, q := range qz.questions {
		sum += q.Total()
	}
	return sum
}

func (qz *Quiz) Passing() (bool, error) {
	score, err := qz.Score()
	if err != nil {
		return false, err
	}
	total := qz.Total()
	if total == 0 {
		return false, &DegenerateTotalError{Name: qz.name}
	}
	return score/total*100 >= qz.threshold, nil
}

// ShuffleQuestions permutes question order and each multiple-choice
// question's display choices, then reassigns positional identifiers.
// Canonical answers are untouched.
func (qz *Quiz) ShuffleQuestions(r *rand.Rand) {
	shuffle(r, len(qz.questions), func(i, j int) {
		qz.questions[i], qz.questions[j] = qz.questions[j], qz.questions[i]
	})
	for _, q := range qz.questions {
		if q.kind != KindMultipleChoice {
			continue
		}
		shuffle(r, len(q.choices), func(i, j int) {
			q.choices[i], q.choices[j] = q.choices[j], q.choices[i]
		})
	}
	qz.AssignIDs()
}

// GenerateCode issues a completion code accepted by the quiz's
// predicate.
func (qz *Quiz) GenerateCode(r *rand.Rand) (int64, error) {
	return GenerateCode(r, qz.codePred)
}
