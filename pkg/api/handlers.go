package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/restaurant"
)

// CreateRequest is the body of POST /api/v1/codes.
type CreateRequest struct {
	Scope        string `json:"scope"`
	Table        string `json:"table"`
	TargetID     string `json:"target_id,omitempty"`
	TargetName   string `json:"target_name,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// CodeResponse is a record plus its preview raster URL.
type CodeResponse struct {
	*link.Record
	PreviewURL string `json:"preview_url,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"codes":  s.Registry.Len(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	rec, err := s.create(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.Registry.Insert(rec)
	s.Logger.Info("created code", "id", rec.ID, "title", rec.Title)
	s.writeJSON(w, http.StatusCreated, s.response(rec))
}

func (s *Server) create(req CreateRequest) (*link.Record, error) {
	if s.Encoder == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no encoder configured")
	}
	scope, err := link.ParseScope(req.Scope)
	if err != nil {
		return nil, err
	}
	target, err := s.Catalog.Target(scope, req.TargetID, false)
	if err != nil {
		return nil, err
	}
	if target != nil && target.DisplayName == "" && req.TargetName != "" {
		target.DisplayName = strings.TrimSpace(req.TargetName)
	}

	rc := s.Restaurant
	if req.RestaurantID != "" {
		rc = restaurant.Context{ID: req.RestaurantID, Logo: s.Restaurant.Logo}
	}
	return s.Encoder.EncodeFor(rc, scope, req.Table, target)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records := s.Registry.List()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		if n < len(records) {
			records = records[:n]
		}
	}
	out := make([]CodeResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, s.response(rec))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	n := s.Registry.Len()
	s.Registry.Clear()
	s.writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.response(rec))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": s.Registry.DeleteByID(id)})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	if s.Exporter == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "image export is not configured"))
		return
	}

	logo := s.Restaurant.LogoRef()
	if r.URL.Query().Get("logo") == "none" {
		logo = ""
	}
	data, name, err := s.Exporter.Render(r.Context(), rec, logo)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, rec.URL, http.StatusFound)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.record(w, r)
	if !ok {
		return
	}
	if s.Previewer == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "QR preview is not configured"))
		return
	}
	http.Redirect(w, r, s.Previewer.PreviewURL(rec.URL), http.StatusFound)
}

func (s *Server) record(w http.ResponseWriter, r *http.Request) (*link.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, ok := s.Registry.Get(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "code %q not found", id))
		return nil, false
	}
	return rec, true
}

func (s *Server) response(rec *link.Record) CodeResponse {
	resp := CodeResponse{Record: rec}
	if s.Previewer != nil {
		resp.PreviewURL = s.Previewer.PreviewURL(rec.URL)
	}
	return resp
}
