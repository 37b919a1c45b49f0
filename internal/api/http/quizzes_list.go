package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alvinwan/goquiz/internal/registry"
)

type quizSummary struct {
	Source    string `json:"source"`
	Name      string `json:"name"`
	Questions int    `json:"questions"`
	Uploaded  bool   `json:"uploaded,omitempty"`
}

// GET /quizzes
func ListQuizzesHandler(reg *registry.Registry, store registry.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		out := []quizSummary{}
		for _, s := range reg.List() {
			out = append(out, quizSummary{Source: s.Key, Name: s.Name, Questions: s.QuestionCount()})
		}
		if store != nil {
			recs, err := store.List(r.Context(), limit, offset)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			for _, rec := range recs {
				out = append(out, quizSummary{
					Source:    rec.Source,
					Name:      rec.Name,
					Questions: payloadCount(rec.Payload),
					Uploaded:  true,
				})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// payloadCount peeks at a stored wire record without rebuilding it.
func payloadCount(payload []byte) int {
	var rec struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return 0
	}
	return len(rec.Questions)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
