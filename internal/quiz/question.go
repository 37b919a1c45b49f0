package quiz

// Kind discriminates the concrete question variants. The values double
// as the class tags on the wire.
type Kind string

const (
	KindQuestion       Kind = "Question"
	KindMultipleChoice Kind = "MultipleChoice"
)

// Category is the selection mode of a multiple-choice question.
type Category string

const (
	CategorySingle Category = "single"
	CategoryMulti  Category = "multi"
)

// Question is a checkable prompt with an expected answer. A plain
// question takes a typed response; a multiple-choice question carries a
// choice list and compares against the canonical correct choice,
// independent of display order.
type Question struct {
	id        string
	kind      Kind
	prompt    string
	answer    string
	total     float64
	threshold float64
	choices   []string
	category  Category
	vocab     *Vocabulary
	settings  *Settings
	scoreFn   ScoreFunc

	checked  bool
	score    float64
	response string
}

type QuestionOption func(*Question)

// WithPoints sets the point total (default 1).
func WithPoints(total float64) QuestionOption {
	return func(q *Question) { q.total = total }
}

// WithPassThreshold sets the per-question passing percent (default 100).
func WithPassThreshold(pct float64) QuestionOption {
	return func(q *Question) { q.threshold = pct }
}

// WithScorer replaces the scoring function.
func WithScorer(fn ScoreFunc) QuestionOption {
	return func(q *Question) { q.scoreFn = fn }
}

// WithCategory sets the selection mode of a multiple-choice question.
func WithCategory(c Category) QuestionOption {
	return func(q *Question) { q.category = c }
}

// NewQuestion builds a plain typed-answer question.
func NewQuestion(prompt, answer string, opts ...QuestionOption) *Question {
	q := &Question{
		kind:      KindQuestion,
		prompt:    prompt,
		answer:    answer,
		total:     1,
		threshold: 100,
	}
	for _, o := range opts {
		o(q)
	}
	if q.scoreFn == nil {
		q.scoreFn = ScoreExact
	}
	return q
}

// NewMultipleChoice builds a multiple-choice question. answer must be
// the canonical correct choice; choices is the display list containing
// it.
func NewMultipleChoice(prompt, answer string, choices []string, opts ...QuestionOption) *Question {
	q := &Question{
		kind:      KindMultipleChoice,
		prompt:    prompt,
		answer:    answer,
		choices:   append([]string(nil), choices...),
		category:  CategorySingle,
		total:     1,
		threshold: 100,
	}
	for _, o := range opts {
		o(q)
	}
	if q.scoreFn == nil {
		if q.category == CategoryMulti {
			q.scoreFn = ScoreSelections
		} else {
			q.scoreFn = ScoreExact
		}
	}
	return q
}

func (q *Question) ID() string { return q.id }
func (q *Question) Kind() Kind { return q.kind }
func (q *Question) Prompt() string { return q.prompt }
func (q *Question) Answer() string { return q.answer }
func (q *Question) Category() Category { return q.category }
func (q *Question) Checked() bool { return q.checked }
func (q *Question) Response() string { return q.response }

// Choices returns a copy of the display choice list.
func (q *Question) Choices() []string {
	return append([]string(nil), q.choices...)
}

// Vocabulary returns the sampling source this question was generated
// from, if any.
func (q *Question) Vocabulary() *Vocabulary { return q.vocab }

// Check scores the first response against the stored answer. A missing
// response counts as an empty answer. Earned credit is the scoring
// function's fraction clamped to [0, 1] times the point total.
func (q *Question) Check(responses []string) (Result, error) {
	response := ""
	if len(responses) > 0 {
		response = responses[0]
	}
	q.response = response
	q.score = clamp01(q.scoreFn(q.answer, response)) * q.total
	q.checked = true
	if q.total == 0 {
		return Result{}, &DegenerateTotalError{Name: q.displayName()}
	}
	return Result{Score: q.score, Total: q.total, Passing: q.score/q.total*100 >= q.threshold}, nil
}

func (q *Question) Score() (float64, error) {
	if !q.checked {
		return 0, ErrUnchecked
	}
	return q.score, nil
}

func (q *Question) Total() float64 { return q.total }

func (q *Question) Passing() (bool, error) {
	if !q.checked {
		return false, ErrUnchecked
	}
	if q.total == 0 {
		return false, &DegenerateTotalError{Name: q.displayName()}
	}
	return q.score/q.total*100 >= q.threshold, nil
}

// Fields returns the renderable input units for this question: one text
// box for a plain question, one radio or checkbox per choice otherwise.
// After checking, fields are read-only and carry verdicts.
func (q *Question) Fields() []Field {
	if q.kind == KindMultipleChoice {
		return q.choiceFields()
	}
	f := Field{ID: q.id, Kind: FieldText, Checked: q.checked}
	if q.checked {
		f.Value = q.response
		if q.total > 0 && q.score >= q.total {
			f.Verdict = VerdictChosenRight
		} else {
			f.Verdict = VerdictChosenWrong
		}
	}
	return []Field{f}
}

func (q *Question) choiceFields() []Field {
	kind := FieldRadio
	if q.category == CategoryMulti {
		kind = FieldCheckbox
	}
	fields := make([]Field, 0, len(q.choices))
	var key, picks map[string]struct{}
	if q.checked && q.category == CategoryMulti {
		key = toSet(splitSelections(q.answer))
		picks = toSet(splitSelections(q.response))
	}
	for _, c := range q.choices {
		f := Field{ID: q.id, Kind: kind, Label: c, Value: c, Checked: q.checked}
		if q.checked {
			var correct, picked bool
			if q.category == CategoryMulti {
				_, correct = key[c]
				_, picked = picks[c]
			} else {
				correct = c == q.answer
				picked = c == q.response
			}
			f.Selected = picked
			switch {
			case picked && correct:
				f.Verdict = VerdictChosenRight
			case picked:
				f.Verdict = VerdictChosenWrong
			case correct && q.category == CategoryMulti && len(picks) > 0:
				f.Verdict = VerdictMissed
			case correct:
				f.Verdict = VerdictCorrect
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// Repeat returns n more questions of the same shape: regenerated from
// the vocabulary and settings when attached, unchecked copies otherwise.
func (q *Question) Repeat(n int) ([]*Question, error) {
	out := make([]*Question, 0, n)
	for i := 0; i < n; i++ {
		if q.vocab != nil && q.settings != nil {
			gq, err := GenerateMultipleChoice(q.vocab, *q.settings)
			if err != nil {
				return nil, err
			}
			out = append(out, gq)
			continue
		}
		out = append(out, q.Copy())
	}
	return out, nil
}

// Copy returns an unchecked copy with no quiz identifier.
func (q *Question) Copy() *Question {
	cp := *q
	cp.id = ""
	cp.choices = append([]string(nil), q.choices...)
	cp.checked = false
	cp.score = 0
	cp.response = ""
	return &cp
}

func (q *Question) displayName() string {
	if q.id != "" {
		return q.id
	}
	return q.prompt
}
