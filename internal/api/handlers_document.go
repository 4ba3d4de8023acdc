package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// mutateRequest is the PATCH body. Exactly one of Value and Input is set.
type mutateRequest struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	Input *string         `json:"input,omitempty"`
	Mode  string          `json:"mode,omitempty"`
	// Replace writes without merging objects.
	Replace bool `json:"replace,omitempty"`
}

type changeResponse struct {
	Revision uint64          `json:"revision"`
	Patch    json.RawMessage `json:"patch,omitempty"`
	Document string          `json:"document"`
	// Warning is set when the change committed but an observer failed.
	Warning string `json:"warning,omitempty"`
}

func newChangeResponse(c *document.Change, err error) changeResponse {
	resp := changeResponse{Revision: c.Revision, Patch: c.Patch, Document: c.Text}
	if err != nil {
		resp.Warning = errors.UserMessage(err)
	}
	return resp
}

type revisionResponse struct {
	Revision uint64 `json:"revision"`
	Warning  string `json:"warning,omitempty"`
}

// committed reports whether err still left a commit behind.
func committed(err error) bool {
	return err == nil || errors.Is(err, errors.ErrCodeObserver)
}

func (s *Server) writeRevision(w http.ResponseWriter, err error) {
	if !committed(err) {
		s.writeError(w, err)
		return
	}
	resp := revisionResponse{Revision: s.store.Revision()}
	if err != nil {
		s.log.Warn("observer failed", "error", err)
		resp.Warning = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetDocument returns the canonical text as is.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Revision", strconv.FormatUint(s.store.Revision(), 10))
	io.WriteString(w, s.store.Read())
}

// handleReplaceDocument swaps in the request body.
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		jsonError(w, "read body: "+err.Error(), errors.ErrCodeInvalidInput, http.StatusBadRequest)
		return
	}
	s.writeRevision(w, s.store.Replace(r.Context(), string(body)))
}

// handleClearDocument resets the document to {}.
func (s *Server) handleClearDocument(w http.ResponseWriter, r *http.Request) {
	s.writeRevision(w, s.store.Clear(r.Context()))
}

// handleMutateDocument writes a value at an accessor.
func (s *Server) handleMutateDocument(w http.ResponseWriter, r *http.Request) {
	var req mutateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), errors.ErrCodeInvalidInput, http.StatusBadRequest)
		return
	}
	if err := errors.ValidateAccessor(req.Path); err != nil {
		s.writeError(w, err)
		return
	}

	value, err := s.requestValue(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	write := s.store.Mutate
	if req.Replace {
		write = s.store.Set
	}
	change, err := write(r.Context(), req.Path, value)
	if change == nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newChangeResponse(change, err))
}

// requestValue extracts the value to write from a PATCH body.
func (s *Server) requestValue(req mutateRequest) (jsonvalue.Value, error) {
	switch {
	case len(req.Value) > 0 && req.Input != nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "send either value or input, not both")
	case len(req.Value) > 0:
		v, err := jsonvalue.ParseBytes(req.Value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid value")
		}
		return v, nil
	case req.Input != nil:
		mode := s.opts.Mode
		if req.Mode != "" {
			m, err := edit.ParseMode(req.Mode)
			if err != nil {
				return nil, err
			}
			mode = m
		}
		return edit.Coerce(*req.Input, mode)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "value or input is required")
}
