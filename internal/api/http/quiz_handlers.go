package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alvinwan/goquiz/internal/quiz"
	"github.com/alvinwan/goquiz/internal/registry"
	"github.com/alvinwan/goquiz/internal/state"
)

// maxFormAnswers bounds the count field of a form submission.
const maxFormAnswers = 1000

type questionView struct {
	ID       string        `json:"id"`
	Kind     quiz.Kind     `json:"kind"`
	Category quiz.Category `json:"category"`
	Prompt   string        `json:"prompt"`
	Fields   []quiz.Field  `json:"fields"`
}

type quizView struct {
	Source    string         `json:"source"`
	Name      string         `json:"name"`
	Questions []questionView `json:"questions"`
	State     string         `json:"state"`
}

type checkView struct {
	Score     float64        `json:"score"`
	Total     float64        `json:"total"`
	Passing   bool           `json:"passing"`
	Code      *int64         `json:"code,omitempty"`
	Questions []questionView `json:"questions"`
	State     string         `json:"state"`
}

func questionViews(qz *quiz.Quiz) []questionView {
	out := make([]questionView, 0, qz.Len())
	for _, q := range qz.Questions() {
		out = append(out, questionView{
			ID:       q.ID(),
			Kind:     q.Kind(),
			Category: q.Category(),
			Prompt:   q.Prompt(),
			Fields:   q.Fields(),
		})
	}
	return out
}

// behaviorResolver re-attaches source behavior after a state round
// trip: static registry first, then the uploaded-quiz store.
func behaviorResolver(ctx context.Context, reg *registry.Registry, store registry.Store) quiz.SourceResolver {
	return func(source string) *quiz.Behavior {
		if s, ok := reg.Get(source); ok {
			return s.Behavior()
		}
		if store == nil {
			return nil
		}
		rec, err := store.Get(ctx, source)
		if err != nil {
			return nil
		}
		return &quiz.Behavior{Name: rec.Name, Threshold: rec.Threshold, Shuffle: rec.Shuffle}
	}
}

func materializeQuiz(ctx context.Context, reg *registry.Registry, store registry.Store, key string) (*quiz.Quiz, error) {
	if s, ok := reg.Get(key); ok {
		return s.New()
	}
	if store == nil {
		return nil, registry.ErrNotFound
	}
	rec, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return quiz.DecodeQuiz(rec.Payload, behaviorResolver(ctx, reg, store))
}

// GET /quizzes/{source}
func GetQuizHandler(reg *registry.Registry, store registry.Store, signer *state.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "source")
		qz, err := materializeQuiz(r.Context(), reg, store, key)
		if err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				http.Error(w, "quiz not found", 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		if qz.ShuffleEnabled() {
			qz.ShuffleQuestions(nil)
		}
		payload, err := quiz.EncodeQuiz(qz)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		token, err := signer.Issue(payload)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(quizView{
			Source:    qz.Source(),
			Name:      qz.Name(),
			Questions: questionViews(qz),
			State:     token,
		})
	}
}

func parseCheckRequest(r *http.Request) (token string, responses []string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			State     string   `json:"state"`
			Responses []string `json:"responses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", nil, errors.New("bad json")
		}
		return req.State, req.Responses, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", nil, err
	}
	count, err := strconv.Atoi(r.PostFormValue("count"))
	if err != nil || count < 0 || count > maxFormAnswers {
		return "", nil, errors.New("count required")
	}
	responses = make([]string, count)
	for i := 0; i < count; i++ {
		// checkboxes submit one value per picked choice
		responses[i] = strings.Join(r.PostForm[fmt.Sprintf("q%d", i)], quiz.SelectionSeparator)
	}
	return r.PostFormValue("state"), responses, nil
}

// POST /quizzes/{source}/check
func CheckQuizHandler(reg *registry.Registry, store registry.Store, signer *state.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, responses, err := parseCheckRequest(r)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		payload, err := signer.Open(token)
		if err != nil {
			http.Error(w, "bad state token", 400)
			return
		}
		qz, err := quiz.DecodeQuiz(payload, behaviorResolver(r.Context(), reg, store))
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if key := chi.URLParam(r, "source"); key != "" && key != qz.Source() {
			http.Error(w, "state is for a different quiz", 400)
			return
		}
		res, err := qz.Check(responses)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		fresh, err := signer.Issue(payload)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		view := checkView{
			Score:     res.Score,
			Total:     res.Total,
			Passing:   res.Passing,
			Questions: questionViews(qz),
			State:     fresh,
		}
		if res.Passing {
			code, err := qz.GenerateCode(nil)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			view.Code = &code
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	}
}
