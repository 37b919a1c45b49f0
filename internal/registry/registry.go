// Package registry holds the quiz sources a host can serve: static
// sources loaded once at startup from a config file plus built-ins, and
// uploaded sources persisted through a SQL store.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alvinwan/goquiz/internal/markdown"
	"github.com/alvinwan/goquiz/internal/quiz"
)

// Source is one available quiz: a key, display behavior and a way to
// materialize fresh questions. File-backed sources carry a parsed
// document; generator-backed sources carry a vocabulary and sampling
// settings.
type Source struct {
	Key       string
	Name      string
	Threshold float64
	Shuffle   bool
	Predicate quiz.CodePredicate

	Doc *markdown.Document

	Vocabulary *quiz.Vocabulary
	Settings   quiz.Settings
	Count      int
}

// New materializes a fresh quiz. Generator-backed sources sample new
// questions on every call.
func (s *Source) New() (*quiz.Quiz, error) {
	opts := s.quizOptions()
	if s.Doc != nil {
		return s.Doc.Quiz(s.Key, opts...), nil
	}
	if s.Vocabulary != nil {
		count := s.QuestionCount()
		qs := make([]*quiz.Question, 0, count)
		for i := 0; i < count; i++ {
			q, err := quiz.GenerateMultipleChoice(s.Vocabulary, s.Settings)
			if err != nil {
				return nil, err
			}
			qs = append(qs, q)
		}
		return quiz.NewQuiz(s.Key, qs, opts...), nil
	}
	return nil, fmt.Errorf("registry: source %q has no content", s.Key)
}

// QuestionCount is how many questions New materializes.
func (s *Source) QuestionCount() int {
	if s.Doc != nil {
		return len(s.Doc.Entries)
	}
	if s.Count > 0 {
		return s.Count
	}
	return 5
}

// Behavior is the source's contribution to decoding: what the wire
// format does not carry.
func (s *Source) Behavior() *quiz.Behavior {
	b := &quiz.Behavior{
		Name:       s.Name,
		Threshold:  s.Threshold,
		Shuffle:    s.Shuffle,
		Predicate:  s.Predicate,
		Vocabulary: s.Vocabulary,
	}
	if s.Vocabulary != nil {
		st := s.Settings
		b.Settings = &st
	}
	return b
}

func (s *Source) quizOptions() []quiz.QuizOption {
	opts := []quiz.QuizOption{quiz.WithShuffle(s.Shuffle)}
	if s.Name != "" {
		opts = append(opts, quiz.WithName(s.Name))
	}
	if s.Threshold > 0 {
		opts = append(opts, quiz.WithThreshold(s.Threshold))
	}
	if s.Predicate != nil {
		opts = append(opts, quiz.WithCodePredicate(s.Predicate))
	}
	return opts
}

// Registry is the read-only set of static sources, built once at
// startup and safe for concurrent readers without locking.
type Registry struct {
	sources map[string]*Source
	order   []string
}

// Load builds a registry from programmatic built-ins plus every file
// listed under the config's "app" tag. An empty config path loads only
// the built-ins.
func Load(cfgPath string, builtins ...*Source) (*Registry, error) {
	r := &Registry{sources: map[string]*Source{}}
	for _, s := range builtins {
		if err := r.add(s); err != nil {
			return nil, err
		}
	}
	if cfgPath == "" {
		return r, nil
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(cfgPath)
	for _, path := range cfg[TagApp] {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		doc, err := markdown.ParseFile(path)
		if err != nil {
			return nil, err
		}
		key := KeyFromPath(path)
		if err := r.add(&Source{Key: key, Name: key, Doc: doc}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(s *Source) error {
	if s.Key == "" {
		return fmt.Errorf("registry: source with empty key")
	}
	if _, dup := r.sources[s.Key]; dup {
		return fmt.Errorf("registry: duplicate source key %q", s.Key)
	}
	r.sources[s.Key] = s
	r.order = append(r.order, s.Key)
	return nil
}

// Get looks a source up by key.
func (r *Registry) Get(key string) (*Source, bool) {
	s, ok := r.sources[key]
	return s, ok
}

// List returns the sources in registration order.
func (r *Registry) List() []*Source {
	out := make([]*Source, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.sources[k])
	}
	return out
}

// Resolver adapts the registry for quiz decoding.
func (r *Registry) Resolver() quiz.SourceResolver {
	return func(source string) *quiz.Behavior {
		s, ok := r.sources[source]
		if !ok {
			return nil
		}
		return s.Behavior()
	}
}

// KeyFromPath derives a stable, URL-safe source key from a file path.
func KeyFromPath(p string) string {
	base := filepath.Base(p)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return safeKey(base)
}

func safeKey(t string) string {
	t = strings.ToLower(t)
	t = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, t)
	if t == "" {
		t = "quiz"
	}
	return t
}
