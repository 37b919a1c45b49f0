package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alvinwan/goquiz/internal/markdown"
	"github.com/alvinwan/goquiz/internal/quiz"
	"github.com/alvinwan/goquiz/internal/registry"
	"github.com/alvinwan/goquiz/internal/state"
	"github.com/alvinwan/goquiz/internal/storage"
)

const demoSource = `Q: Which command stages a file?
- git add
- git commit
- git push

Q: What does DVCS stand for?
- Distributed version control system
`

type fakeStore struct {
	recs  map[string]registry.Record
	order []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]registry.Record{}}
}

func (f *fakeStore) Put(_ context.Context, rec registry.Record) error {
	if _, ok := f.recs[rec.Source]; !ok {
		f.order = append(f.order, rec.Source)
	}
	f.recs[rec.Source] = rec
	return nil
}

func (f *fakeStore) Get(_ context.Context, source string) (registry.Record, error) {
	rec, ok := f.recs[source]
	if !ok {
		return registry.Record{}, registry.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) List(_ context.Context, limit, offset int) ([]registry.Record, error) {
	out := []registry.Record{}
	for i, key := range f.order {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, f.recs[key])
	}
	return out, nil
}

var _ registry.Store = (*fakeStore)(nil)

type testEnv struct {
	reg    *registry.Registry
	store  *fakeStore
	signer *state.Signer
	mux    *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	doc, err := markdown.Parse("demo.md", []byte(demoSource))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	reg, err := registry.Load("", &registry.Source{Key: "demo", Name: "Demo Quiz", Doc: doc})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	store := newFakeStore()
	signer := state.NewSigner("test-secret", time.Hour)
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	mux := chi.NewRouter()
	mux.Get("/quizzes", ListQuizzesHandler(reg, store))
	mux.Post("/quizzes", UploadQuizHandler(reg, store, bs, false))
	mux.Get("/quizzes/{source}", GetQuizHandler(reg, store, signer))
	mux.Post("/quizzes/{source}/check", CheckQuizHandler(reg, store, signer))
	mux.Get("/quizzes/{source}/export", ExportQuizHandler(reg, store, bs))
	return &testEnv{reg: reg, store: store, signer: signer, mux: mux}
}

func (env *testEnv) getQuiz(t *testing.T, source string) quizView {
	t.Helper()
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/quizzes/"+source, nil))
	if rr.Code != 200 {
		t.Fatalf("get quiz: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var view quizView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("parse quiz view: %v", err)
	}
	return view
}

func TestGetQuiz_IssuesState(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")
	if view.Source != "demo" || view.Name != "Demo Quiz" {
		t.Fatalf("unexpected header fields: %+v", view)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(view.Questions))
	}
	if view.State == "" {
		t.Fatalf("expected a state token")
	}
	q0 := view.Questions[0]
	if q0.Kind != quiz.KindMultipleChoice || len(q0.Fields) != 3 {
		t.Fatalf("unexpected first question: %+v", q0)
	}
	for _, f := range q0.Fields {
		if f.Verdict != quiz.VerdictNone {
			t.Fatalf("expected no verdicts before checking, got %q", f.Verdict)
		}
	}
	if view.Questions[1].Fields[0].Kind != quiz.FieldText {
		t.Fatalf("expected a text field for the typed answer")
	}
}

func TestGetQuiz_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/quizzes/missing", nil))
	if rr.Code != 404 {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCheckQuiz_FormFullMarks(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")

	form := url.Values{}
	form.Set("state", view.State)
	form.Set("count", "2")
	form.Set("q0", "git add")
	form.Set("q1", "Distributed version control system")
	req := httptest.NewRequest("POST", "/quizzes/demo/check", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res checkView
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("parse check view: %v", err)
	}
	if res.Score != 2 || res.Total != 2 || !res.Passing {
		t.Fatalf("expected full marks, got %+v", res)
	}
	if res.Code == nil {
		t.Fatalf("expected a completion code on a passing result")
	}
	if res.State == "" {
		t.Fatalf("expected a reissued state token")
	}
}

func TestCheckQuiz_JSONWrongAnswers(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")

	body, _ := json.Marshal(map[string]interface{}{
		"state":     view.State,
		"responses": []string{"git push", "wrong"},
	})
	req := httptest.NewRequest("POST", "/quizzes/demo/check", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res checkView
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("parse check view: %v", err)
	}
	if res.Score != 0 || res.Passing {
		t.Fatalf("expected a failing result, got %+v", res)
	}
	if res.Code != nil {
		t.Fatalf("expected no completion code on a failing result")
	}
	verdicts := map[string]quiz.Verdict{}
	for _, f := range res.Questions[0].Fields {
		verdicts[f.Label] = f.Verdict
	}
	if verdicts["git push"] != quiz.VerdictChosenWrong {
		t.Fatalf("expected the picked choice marked wrong, got %q", verdicts["git push"])
	}
	if verdicts["git add"] != quiz.VerdictCorrect {
		t.Fatalf("expected the answer revealed, got %q", verdicts["git add"])
	}
	if f := res.Questions[1].Fields[0]; f.Verdict != quiz.VerdictChosenWrong || f.Value != "wrong" {
		t.Fatalf("expected the typed response echoed with a verdict, got %+v", f)
	}
}

func TestCheckQuiz_RejectsTamperedState(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")

	form := url.Values{}
	form.Set("state", view.State+"x")
	form.Set("count", "0")
	req := httptest.NewRequest("POST", "/quizzes/demo/check", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCheckQuiz_RejectsForeignSource(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")

	body, _ := json.Marshal(map[string]interface{}{"state": view.State, "responses": []string{}})
	req := httptest.NewRequest("POST", "/quizzes/other/check", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCheckQuiz_MissingCount(t *testing.T) {
	env := newTestEnv(t)
	view := env.getQuiz(t, "demo")

	form := url.Values{}
	form.Set("state", view.State)
	req := httptest.NewRequest("POST", "/quizzes/demo/check", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCheckQuiz_FormJoinsCheckboxValues(t *testing.T) {
	env := newTestEnv(t)

	q := quiz.NewMultipleChoice("Pick the distributed systems", "Git;Mercurial",
		[]string{"Git", "Mercurial", "SVN"}, quiz.WithCategory(quiz.CategoryMulti))
	qz := quiz.NewQuiz("multi", []*quiz.Question{q})
	payload, err := quiz.EncodeQuiz(qz)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	token, err := env.signer.Issue(payload)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	form := url.Values{}
	form.Set("state", token)
	form.Set("count", "1")
	form.Add("q0", "Git")
	form.Add("q0", "Mercurial")
	req := httptest.NewRequest("POST", "/quizzes/multi/check", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res checkView
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("parse check view: %v", err)
	}
	if res.Score != 1 || !res.Passing {
		t.Fatalf("expected both picks joined into a full-credit response, got %+v", res)
	}
}

func TestGetQuiz_UploadedSourceServedFromStore(t *testing.T) {
	env := newTestEnv(t)

	qz := quiz.NewQuiz("stored", []*quiz.Question{
		quiz.NewQuestion("Why?", "Why not?"),
		quiz.NewQuestion("When?", "Now"),
	})
	payload, err := quiz.EncodeQuiz(qz)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rec := registry.Record{Source: "stored", Name: "Stored Quiz", Threshold: 50, Payload: payload}
	if err := env.store.Put(context.Background(), rec); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	view := env.getQuiz(t, "stored")
	if view.Name != "Stored Quiz" || len(view.Questions) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}

	// one of two right is 50%: passing under the stored threshold, not
	// under the default
	body, _ := json.Marshal(map[string]interface{}{"state": view.State, "responses": []string{"Why not?", "Later"}})
	req := httptest.NewRequest("POST", "/quizzes/stored/check", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	var res checkView
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("parse check view: %v", err)
	}
	if res.Score != 1 || res.Total != 2 || !res.Passing {
		t.Fatalf("expected the stored threshold applied, got %+v", res)
	}
}
