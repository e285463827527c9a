package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/templates"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data := templates.IndexData{Count: 1}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		base := strings.TrimSpace(r.PostForm.Get("base"))
		count := sequence.ParseCount(r.PostForm.Get("count"))

		data.Base = base
		data.Count = count

		if base != "" {
			b, err := s.generate(r, base, count)
			if err != nil {
				data.Warning = "Labels were generated but the last number could not be saved: " + err.Error()
			}
			data.Base = b.Base
			data.Count = b.Count
			data.Requested = b.Requested
			data.Overridden = b.Overridden
			data.NextNumber = b.NextNumber
			data.PDFURL = pdfURL(b.Base, b.Count)
			for _, l := range b.Labels {
				data.Labels = append(data.Labels, templates.Label{
					Text:     l,
					ImageURL: "/label_img/" + url.PathEscape(l),
				})
			}
		}
	}

	var buf bytes.Buffer
	if err := templates.WriteIndex(&buf, data); err != nil {
		s.log.Error("failed to render index page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// generate allocates a batch and records the outcome. The batch is never nil.
func (s *Server) generate(r *http.Request, base string, count int) (*sequence.Batch, error) {
	b, err := s.gen.Generate(r.Context(), base, count)

	switch {
	case err != nil:
		s.metrics.observeBatch(resultPersistErr, 0)
	case len(b.Labels) == 0:
		s.metrics.observeBatch(resultEmpty, 0)
	case !b.Allocated():
		s.metrics.observeBatch(resultRepeated, 0)
	case b.Overridden:
		s.metrics.observeBatch(resultOverridden, len(b.Labels))
	default:
		s.metrics.observeBatch(resultAllocated, len(b.Labels))
	}
	return b, err
}

func pdfURL(base string, count int) string {
	q := url.Values{}
	q.Set("base", base)
	q.Set("count", strconv.Itoa(count))
	return "/pdf?" + q.Encode()
}

// acquireRender waits for a render slot. It reports false, after answering
// the request, when the client went away first.
func (s *Server) acquireRender(w http.ResponseWriter, r *http.Request) bool {
	if err := s.renders.Acquire(r.Context(), 1); err != nil {
		http.Error(w, "render cancelled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) labelImage(w http.ResponseWriter, r *http.Request) {
	text := mux.Vars(r)["text"]

	if !s.acquireRender(w, r) {
		return
	}
	defer s.renders.Release(1)

	raw, err := s.renderer.PNGBytes(text, s.renderer.Layout().FontSize)
	if err != nil {
		s.log.Error("failed to render label", "text", text, "error", err)
		http.Error(w, "failed to render label", http.StatusInternalServerError)
		return
	}
	s.metrics.renders.WithLabelValues("png").Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	_, _ = w.Write(raw)
}

// pdf expands base into count labels without touching the store, so the
// link on the index page reprints exactly the batch it was shown with.
func (s *Server) pdf(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base := strings.TrimSpace(q.Get("base"))
	if base == "" {
		http.Error(w, "base is required", http.StatusBadRequest)
		return
	}
	labels := s.gen.Expand(base, sequence.ParseCount(q.Get("count")))

	if !s.acquireRender(w, r) {
		return
	}
	defer s.renders.Release(1)

	var buf bytes.Buffer
	if err := s.renderer.PDF(&buf, labels); err != nil {
		s.log.Error("failed to render pdf", "base", base, "error", err)
		http.Error(w, "failed to render pdf", http.StatusInternalServerError)
		return
	}
	s.metrics.renders.WithLabelValues("pdf").Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) nextNumber(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	art := q.Get("art")
	if art == "" {
		art = q.Get("article")
	}
	p := s.gen.PeekNext(r.Context(), strings.TrimSpace(art))
	s.metrics.peeks.Inc()
	writeJSON(w, http.StatusOK, p)
}

type generateRequest struct {
	Base string `json:"base"`
	// Count accepts a number or a numeric string
	Count any `json:"count"`
}

type generateResponse struct {
	*sequence.Batch
	Warning string `json:"warning,omitempty"`
}

func (s *Server) apiGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	b, err := s.generate(r, strings.TrimSpace(req.Base), sequence.CountFrom(req.Count))
	resp := generateResponse{Batch: b}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) apiExpand(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base := strings.TrimSpace(q.Get("base"))
	labels := []string{}
	if base != "" {
		labels = s.gen.Expand(base, sequence.ParseCount(q.Get("count")))
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
