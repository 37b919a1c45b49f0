package quiz_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alvinwan/goquiz/internal/quiz"
)

func TestCodec_WireShape(t *testing.T) {
	qz := quiz.NewQuiz("demo", []*quiz.Question{quiz.NewQuestion("Why?", "Why not?")})
	data, err := quiz.EncodeQuiz(qz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"source":"demo","questions":[{"class":"Question","question":"Why?","answer":"Why not?"}]}`
	if string(data) != want {
		t.Fatalf("wire record mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestCodec_RoundTripIsByteIdentical(t *testing.T) {
	qs := []*quiz.Question{
		quiz.NewQuestion("Why?", "Why not?"),
		quiz.NewMultipleChoice("Pick", "b", []string{"a", "b", "c"}),
	}
	qz := quiz.NewQuiz("demo", qs)

	first, err := quiz.EncodeQuiz(qz)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := quiz.DecodeQuiz(first, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	second, err := quiz.EncodeQuiz(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip not byte-identical:\n first %s\nsecond %s", first, second)
	}
}

func TestCodec_DecodedQuizStillChecks(t *testing.T) {
	qz := quiz.NewQuiz("demo", []*quiz.Question{
		quiz.NewMultipleChoice("Pick", "b", []string{"a", "b", "c"}),
	})
	data, err := quiz.EncodeQuiz(qz)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := quiz.DecodeQuiz(data, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	res, err := decoded.Check([]string{"b"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Score != 1 || !res.Passing {
		t.Fatalf("expected a decoded quiz to score normally; got %+v", res)
	}
}

func TestCodec_UnknownKind(t *testing.T) {
	data := []byte(`{"source":"demo","questions":[{"class":"Essay","question":"?","answer":"!"}]}`)
	_, err := quiz.DecodeQuiz(data, nil)
	var uke *quiz.UnknownKindError
	if !errors.As(err, &uke) {
		t.Fatalf("expected UnknownKindError; got %v", err)
	}
	if uke.Kind != "Essay" {
		t.Fatalf("expected the offending tag in the error; got %q", uke.Kind)
	}
}

func TestCodec_ResolverReattachesBehavior(t *testing.T) {
	v, err := quiz.NewVocabulary("v", []quiz.Term{
		quiz.NewTerm("A", "1"),
		quiz.NewTerm("B", "2"),
		quiz.NewTerm("C", "3"),
	})
	if err != nil {
		t.Fatalf("vocabulary: %v", err)
	}
	src, err := quiz.GenerateMultipleChoice(v, quiz.Settings{Side: quiz.SideFront, Distractors: 2})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := quiz.EncodeQuiz(quiz.NewQuiz("v", []*quiz.Question{src}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	resolve := func(source string) *quiz.Behavior {
		if source != "v" {
			return nil
		}
		return &quiz.Behavior{
			Name:       "Vocab Drill",
			Threshold:  50,
			Vocabulary: v,
			Settings:   &quiz.Settings{Side: quiz.SideFront, Distractors: 2},
		}
	}
	decoded, err := quiz.DecodeQuiz(data, resolve)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name() != "Vocab Drill" || decoded.Threshold() != 50 {
		t.Fatalf("behavior not reattached: name=%q threshold=%v", decoded.Name(), decoded.Threshold())
	}
	q := decoded.Questions()[0]
	if q.Vocabulary() == nil {
		t.Fatalf("expected vocabulary reattached to the decoded question")
	}
	more, err := q.Repeat(2)
	if err != nil {
		t.Fatalf("repeat after decode: %v", err)
	}
	if len(more) != 2 {
		t.Fatalf("expected regeneration to work after decoding; got %d questions", len(more))
	}
}
