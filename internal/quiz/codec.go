package quiz

import "encoding/json"

// The wire format carries data, not behavior: a source identifier plus
// one record per question, tagged with its concrete kind.
type questionRecord struct {
	Class    string   `json:"class"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Choices  []string `json:"choices,omitempty"`
}

type quizRecord struct {
	Source    string           `json:"source"`
	Questions []questionRecord `json:"questions"`
}

// Behavior is everything the wire format leaves behind: display name,
// thresholds, the code predicate, and the vocabulary plus settings that
// let multiple-choice questions regenerate.
type Behavior struct {
	Name       string
	Threshold  float64
	Shuffle    bool
	Predicate  CodePredicate
	Vocabulary *Vocabulary
	Settings   *Settings
}

// SourceResolver maps a source identifier back to quiz behavior after a
// round trip. A nil resolver or a nil result leaves the decoded quiz on
// defaults, which still checks and scores fine.
type SourceResolver func(source string) *Behavior

// EncodeQuiz serializes a quiz for the stateless request boundary.
// Encoding is deterministic: encode, decode and encode again yields
// byte-identical output.
func EncodeQuiz(qz *Quiz) ([]byte, error) {
	rec := quizRecord{
		Source:    qz.source,
		Questions: make([]questionRecord, 0, len(qz.questions)),
	}
	for _, q := range qz.questions {
		qr := questionRecord{Class: string(q.kind), Question: q.prompt, Answer: q.answer}
		if q.kind == KindMultipleChoice {
			qr.Choices = q.Choices()
		}
		rec.Questions = append(rec.Questions, qr)
	}
	return json.Marshal(rec)
}

// DecodeQuiz rebuilds a quiz from its wire record, dispatching on each
// question's kind tag and re-resolving the source identifier to
// re-attach behavior.
func DecodeQuiz(data []byte, resolve SourceResolver) (*Quiz, error) {
	var rec quizRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	questions := make([]*Question, 0, len(rec.Questions))
	for _, qr := range rec.Questions {
		switch Kind(qr.Class) {
		case KindQuestion:
			questions = append(questions, NewQuestion(qr.Question, qr.Answer))
		case KindMultipleChoice:
			questions = append(questions, NewMultipleChoice(qr.Question, qr.Answer, qr.Choices))
		default:
			return nil, &UnknownKindError{Kind: qr.Class}
		}
	}

	var b *Behavior
	if resolve != nil {
		b = resolve(rec.Source)
	}
	var opts []QuizOption
	if b != nil {
		if b.Name != "" {
			opts = append(opts, WithName(b.Name))
		}
		if b.Threshold > 0 {
			opts = append(opts, WithThreshold(b.Threshold))
		}
		opts = append(opts, WithShuffle(b.Shuffle), WithCodePredicate(b.Predicate))
	}
	qz := NewQuiz(rec.Source, questions, opts...)
	if b != nil && b.Vocabulary != nil {
		for _, q := range qz.questions {
			if q.kind != KindMultipleChoice {
				continue
			}
			q.vocab = b.Vocabulary
			if b.Settings != nil {
				st := *b.Settings
				q.settings = &st
			}
		}
	}
	return qz, nil
}
