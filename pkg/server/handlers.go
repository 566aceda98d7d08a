package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/moverboard/pkg/buildinfo"
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	mvio "github.com/matzehuels/moverboard/pkg/io"
	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/store"
)

type validateResponse struct {
	Valid bool `json:"valid"`
	Pages int  `json:"pages"`
}

type renderResponse struct {
	ID        string    `json:"id"`
	TitleMain string    `json:"title_main,omitempty"`
	TitleSub  string    `json:"title_sub,omitempty"`
	Pages     int       `json:"pages"`
	Records   int       `json:"records,omitempty"`
	Formats   []string  `json:"formats"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newRenderResponse(r *store.Render) renderResponse {
	return renderResponse{
		ID:        r.ID,
		TitleMain: r.TitleMain,
		TitleSub:  r.TitleSub,
		Pages:     r.Pages,
		Records:   r.Records,
		Formats:   r.Formats,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pages, _, err := pipeline.Plan(req, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Pages: len(pages)})
}

func (s *Server) handleCreateRender(w http.ResponseWriter, r *http.Request) {
	req, opts, err := s.readRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.cfg.Runner.Execute(r.Context(), req, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := store.NewRender(result, s.cfg.TTL)
	if err := s.cfg.Store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, fmt.Errorf("store render: %w", err))
		return
	}
	s.cfg.Logger.Info("stored render", "id", rec.ID, "pages", rec.Pages, "formats", rec.Formats)

	w.Header().Set("Location", "/v1/renders/"+rec.ID)
	writeJSON(w, http.StatusCreated, newRenderResponse(rec))
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRender(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRenderResponse(rec))
}

func (s *Server) handleDeleteRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRender(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), rec.ID); err != nil {
		s.writeError(w, r, fmt.Errorf("delete render: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, format, err := parsePageFile(chi.URLParam(r, "file"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.loadRender(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := rec.Artifact(n, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", mvio.PageFileName(rec.TitleMain, n, format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.cfg.Logger.Debug("write page", "id", rec.ID, "page", n, "format", format, "err", err)
	}
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRender(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", mvio.ArchiveName(rec.TitleMain)))
	if err := mvio.WriteArchive(w, rec.TitleMain, rec.Formats, rec); err != nil {
		s.cfg.Logger.Error("write archive", "id", rec.ID, "err", err)
	}
}

// readRequest decodes and validates the body, then applies the format
// and capacity query parameters to a copy of the base options.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*chart.Request, pipeline.Options, error) {
	opts := s.cfg.Options
	opts.Formats = append([]string(nil), opts.Formats...)

	q := r.URL.Query()
	if f := q.Get("format"); f != "" {
		formats, err := pipeline.ParseFormats(f)
		if err != nil {
			return nil, opts, err
		}
		opts.Formats = formats
	}
	if c := q.Get("capacity"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 {
			return nil, opts, errors.New(errors.ErrCodeInvalidCapacity, "capacity must be a positive integer, got %q", c)
		}
		opts.Capacity = n
	}
	optionalLogo := s.cfg.OptionalLogo
	if v := q.Get("optional_logo"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, errors.New(errors.ErrCodeInvalidInput, "optional_logo must be a boolean, got %q", v)
		}
		optionalLogo = b
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, opts, err
	}
	req, err := pipeline.ParseRequestContext(r.Context(), body, optionalLogo)
	if err != nil {
		return nil, opts, err
	}
	return req, opts, nil
}

func (s *Server) loadRender(r *http.Request) (*store.Render, error) {
	id := chi.URLParam(r, "id")
	rec, err := s.cfg.Store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeRenderNotFound, err, "render %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load render %s: %w", id, err)
	}
	return rec, nil
}

// parsePageFile splits "3.png" into a 1-based page number and a format.
func parsePageFile(file string) (int, string, error) {
	num, format, ok := strings.Cut(file, ".")
	n, err := strconv.Atoi(num)
	if !ok || err != nil || n < 1 {
		return 0, "", errors.New(errors.ErrCodePageNotFound, "invalid page %q (want {n}.{format})", file)
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return 0, "", errors.New(errors.ErrCodeNotFound, "unknown format %q", format)
	}
	return n, format, nil
}
