package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alvinwan/goquiz/internal/markdown"
	"github.com/alvinwan/goquiz/internal/quiz"
	"github.com/alvinwan/goquiz/internal/registry"
	"github.com/alvinwan/goquiz/internal/storage"
)

const maxSourceBytes = 1 << 20

// POST /quizzes (multipart: file=source.md, optional name/threshold/shuffle)
func UploadQuizHandler(reg *registry.Registry, store registry.Store, bs storage.Store, shuffleDefault bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", 400)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxSourceBytes+1))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if len(data) > maxSourceBytes {
			http.Error(w, "source too large", 400)
			return
		}

		doc, err := markdown.Parse(hdr.Filename, data)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}

		key := registry.KeyFromPath(hdr.Filename)
		if _, exists := reg.Get(key); exists {
			http.Error(w, "source "+key+" is reserved", 409)
			return
		}

		name := r.FormValue("name")
		if name == "" {
			name = key
		}
		threshold := parseFloatDefault(r.FormValue("threshold"), 0)
		shuffle := shuffleDefault
		if v := r.FormValue("shuffle"); v != "" {
			shuffle = v == "1" || strings.EqualFold(v, "true")
		}

		qz := doc.Quiz(key)
		payload, err := quiz.EncodeQuiz(qz)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if _, err := bs.Put(key+".md", bytes.NewReader(data)); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if err := store.Put(r.Context(), registry.Record{
			Source:    key,
			Name:      name,
			Threshold: threshold,
			Shuffle:   shuffle,
			Payload:   payload,
		}); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"source":    key,
			"name":      name,
			"filename":  hdr.Filename,
			"questions": qz.Len(),
		})
	}
}

// GET /quizzes/{source}/export?format=json|md
func ExportQuizHandler(reg *registry.Registry, store registry.Store, bs storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "source")
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = "json"
		}
		switch format {
		case "md", "markdown":
			rc, err := bs.Get(key + ".md")
			if err != nil {
				http.Error(w, "no source file", 404)
				return
			}
			defer rc.Close()
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+key+`.md"`)
			_, _ = io.Copy(w, rc)
		case "json":
			if s, ok := reg.Get(key); ok {
				qz, err := s.New()
				if err != nil {
					http.Error(w, err.Error(), 500)
					return
				}
				payload, err := quiz.EncodeQuiz(qz)
				if err != nil {
					http.Error(w, err.Error(), 500)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(payload)
				return
			}
			if store == nil {
				http.Error(w, "not found", 404)
				return
			}
			rec, err := store.Get(r.Context(), key)
			if err != nil {
				if errors.Is(err, registry.ErrNotFound) {
					http.Error(w, "not found", 404)
					return
				}
				http.Error(w, err.Error(), 500)
				return
			}
			// uploaded records export byte for byte as stored
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(rec.Payload)
		default:
			http.Error(w, "unsupported format", 400)
		}
	}
}

func parseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return v
	}
	return def
}
