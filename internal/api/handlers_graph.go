package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
	"github.com/matzehuels/jsongraph/pkg/pipeline"
	"github.com/matzehuels/jsongraph/pkg/render"
)

type nodeResponse struct {
	Node        graph.Node      `json:"node"`
	Accessor    string          `json:"accessor"`
	DisplayPath string          `json:"displayPath"`
	Content     string          `json:"content"`
	Value       json.RawMessage `json:"value"`
	Children    []string        `json:"children"`
}

type saveNodeRequest struct {
	Text    string `json:"text"`
	Replace bool   `json:"replace,omitempty"`
}

type saveNodeResponse struct {
	changeResponse
	Node *nodeResponse `json:"node,omitempty"`
}

func (s *Server) newNodeResponse(n graph.Node) *nodeResponse {
	value, err := jsonvalue.MarshalCompact(edit.NodeValue(n.Text))
	if err != nil {
		value = []byte("null")
	}
	children := s.view.Graph().Children(n.ID)
	if children == nil {
		children = []string{}
	}
	return &nodeResponse{
		Node:        n,
		Accessor:    n.Accessor(),
		DisplayPath: n.DisplayPath(),
		Content:     edit.NodeText(n.Text),
		Value:       value,
		Children:    children,
	}
}

// nodeID returns the unescaped {id} route parameter.
func nodeID(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid node id")
	}
	return id, nil
}

// handleGetGraph returns the current graph.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Revision", strconv.FormatUint(s.view.Revision(), 10))
	if err := graph.Write(s.view.Graph(), w); err != nil {
		s.log.Warn("write graph", "error", err)
	}
}

// handleGetNode returns one node with its editable text.
func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id, err := nodeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	n, ok := s.view.Node(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, s.newNodeResponse(n))
}

// handleSaveNode saves new text for a node the way the subtree editor does.
func (s *Server) handleSaveNode(w http.ResponseWriter, r *http.Request) {
	id, err := nodeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req saveNodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), errors.ErrCodeInvalidInput, http.StatusBadRequest)
		return
	}

	opts := []edit.SubtreeOption{edit.WithSubtreeLogger(s.log)}
	if req.Replace {
		opts = append(opts, edit.WithReplace())
	}
	ed, err := edit.NewSubtreeEditor(s.store, s.view, id, opts...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ed.Edit()
	ed.SetText(req.Text)
	change, err := ed.Save(r.Context())
	if change == nil {
		s.writeError(w, err)
		return
	}

	resp := saveNodeResponse{changeResponse: newChangeResponse(change, err)}
	if ed.Exists() {
		resp.Node = s.newNodeResponse(ed.Node())
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRender renders the current graph. Query: format (svg, dot, json),
// detailed (bool).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Format: pipeline.DefaultFormat}
	if f := r.URL.Query().Get("format"); f != "" {
		format, err := render.ParseFormat(f)
		if err != nil {
			jsonError(w, err.Error(), errors.ErrCodeInvalidInput, http.StatusBadRequest)
			return
		}
		opts.Format = format
	}
	if d := r.URL.Query().Get("detailed"); d != "" {
		detailed, err := strconv.ParseBool(d)
		if err != nil {
			jsonError(w, "detailed must be a boolean", errors.ErrCodeInvalidInput, http.StatusBadRequest)
			return
		}
		opts.Detailed = detailed
	}

	data, _, hit, err := s.runner.RenderWithCacheInfo(r.Context(), s.view.Graph(), opts)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", opts.Format.ContentType())
	w.Header().Set("X-Cache", map[bool]string{true: "hit", false: "miss"}[hit])
	w.Write(data)
}
