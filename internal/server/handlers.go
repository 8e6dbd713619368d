package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// stateResponse is the editor state returned by /api/tree and every mutation.
type stateResponse struct {
	Accepted bool       `json:"accepted"`
	Revision uint64     `json:"revision"`
	Selected string     `json:"selected"`
	Tree     graph.View `json:"tree"`
	Preview  string     `json:"preview"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type selectRequest struct {
	ID string `json:"id"`
}

func stateOf(snap editor.Snapshot, accepted bool) stateResponse {
	return stateResponse{
		Accepted: accepted,
		Revision: snap.Revision,
		Selected: snap.Selected,
		Tree:     graph.ViewOf(snap.Root),
		Preview:  snap.Preview,
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateOf(s.editor.Snapshot(), true))
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeMutation(w, r, func() (editor.Snapshot, error) {
		return s.editor.AddNode(r.Context(), req.Name)
	})
}

func (s *Server) handleAddChild(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s.writeMutation(w, r, func() (editor.Snapshot, error) {
		return s.editor.AddChild(r.Context(), id, req.Name)
	})
}

func (s *Server) handleAddChildToSelected(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeMutation(w, r, func() (editor.Snapshot, error) {
		return s.editor.AddChildToSelected(r.Context(), req.Name)
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeMutation(w, r, func() (editor.Snapshot, error) {
		return s.editor.Select(r.Context(), req.ID)
	})
}

// handleLoad accepts either a multipart upload in field "file" or a raw body.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMutation(w, r, func() (editor.Snapshot, error) {
		return s.editor.Load(r.Context(), data)
	})
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
		}
		f, _, err := r.FormFile("file")
		if stderrors.Is(err, http.ErrMissingFile) {
			return nil, errors.New(errors.ErrCodeNoFileSelected, "Please select a JSON file first")
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
		}
		defer f.Close()
		return readAll(f)
	}

	data, err := readAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeNoFileSelected, "Please select a JSON file first")
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "upload exceeds %d bytes", tooBig.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
	}
	return data, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.editor.Export()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", arborio.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := s.editor.Snapshot()
	opts.Selected = snap.Selected

	res, err := s.renderer.Render(r.Context(), snap.Root, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Arbor-Revision", fmt.Sprint(snap.Revision))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// handleLayout returns the layout without running Graphviz.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := s.editor.Snapshot()
	opts.Selected = snap.Selected
	opts.Format = render.FormatDOT

	res, err := s.renderer.Render(r.Context(), snap.Root, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Layout)
}

func (s *Server) renderOptions(r *http.Request) (render.Options, error) {
	q := r.URL.Query()
	opts := render.Options{Mode: s.mode, Format: s.format}
	if v := q.Get("mode"); v != "" {
		m, err := render.ParseMode(v)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	return opts, nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	ch, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	send := func(name string, ev event) bool {
		data, _ := json.Marshal(ev)
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	// Every stream, including a reconnect, starts with the current revision.
	snap := s.editor.Snapshot()
	if !send("hello", event{Revision: snap.Revision, Kind: "hello"}) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok || !send("change", ev) {
				return
			}
		}
	}
}

// writeMutation runs fn and writes the resulting state. A blank name is
// accepted silently: the state is returned unchanged with accepted=false.
func (s *Server) writeMutation(w http.ResponseWriter, r *http.Request, fn func() (editor.Snapshot, error)) {
	snap, err := fn()
	if errors.Is(err, errors.ErrCodeEmptyName) {
		writeJSON(w, http.StatusOK, stateOf(snap, false))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(snap, true))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	resp := errorResponse{Code: string(code), Message: errors.UserMessage(err)}

	var verr *tree.ValidationError
	if stderrors.As(err, &verr) {
		resp.Path = verr.Path
		resp.Detail = verr.Reason
	}

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
