// Package markdown parses the line-oriented quiz source format: "Q:"
// lines open a prompt and "-" or "*" lines list its options, the first
// option being the canonical answer.
package markdown

import (
	"fmt"
	"os"
	"strings"

	"github.com/alvinwan/goquiz/internal/quiz"
)

// MalformedSourceError reports a line that fits neither the prompt nor
// the option format. Line is a 0-based index into the source.
type MalformedSourceError struct {
	Path string
	Line int
	Text string
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("markdown: line %d in %s is not a supported format", e.Line, e.Path)
}

// Entry is one parsed prompt with its options in file order.
type Entry struct {
	Prompt  string
	Options []string

	line int
}

// Document is a parsed quiz source.
type Document struct {
	Path    string
	Entries []Entry
}

// Parse scans data line by line. Blank lines are skipped but still
// counted, so a malformed line reports its true position.
func Parse(path string, data []byte) (*Document, error) {
	doc := &Document{Path: path}
	cur := -1
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Q:"):
			doc.Entries = append(doc.Entries, Entry{
				Prompt: strings.TrimSpace(line[len("Q:"):]),
				line:   i,
			})
			cur = len(doc.Entries) - 1
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			if cur < 0 {
				return nil, &MalformedSourceError{Path: path, Line: i, Text: raw}
			}
			e := &doc.Entries[cur]
			e.Options = append(e.Options, strings.TrimSpace(line[1:]))
		default:
			return nil, &MalformedSourceError{Path: path, Line: i, Text: raw}
		}
	}
	for _, e := range doc.Entries {
		if len(e.Options) == 0 {
			return nil, &MalformedSourceError{Path: path, Line: e.line, Text: "Q: " + e.Prompt}
		}
	}
	return doc, nil
}

// ParseFile reads and parses a quiz source from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Quiz builds a quiz from the parsed entries: a single option becomes a
// typed answer, several become a multiple-choice question whose first
// option is the canonical answer and whose display order follows the
// file until shuffled.
func (d *Document) Quiz(source string, opts ...quiz.QuizOption) *quiz.Quiz {
	qs := make([]*quiz.Question, 0, len(d.Entries))
	for _, e := range d.Entries {
		if len(e.Options) == 1 {
			qs = append(qs, quiz.NewQuestion(e.Prompt, e.Options[0]))
			continue
		}
		qs = append(qs, quiz.NewMultipleChoice(e.Prompt, e.Options[0], e.Options))
	}
	return quiz.NewQuiz(source, qs, opts...)
}
