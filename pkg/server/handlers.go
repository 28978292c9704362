package server

import (
	stderrors "errors"
	"io"
	"net/http"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/cache"
	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/document"
	"github.com/vango-dev/htmlkit/pkg/render"
)

type htmlResponse struct {
	HTML string `json:"html"`
}

type textResponse struct {
	Text *string `json:"text"`
}

// readBody reads a size limited request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, malformed("request body too large", nil)
		}
		return nil, malformed("request body could not be read", err)
	}
	return data, nil
}

// decodeObject reads a JSON (or YAML) object body, keeping key order.
func (s *Server) decodeObject(w http.ResponseWriter, r *http.Request) (*yaml.Node, error) {
	data, err := s.readBody(w, r)
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

func decodeObject(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, malformed("body is not valid JSON", err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, malformed("body must be a JSON object", nil)
	}
	return root.Content[0], nil
}

// field returns the value of name in mapping m, or nil.
func field(m *yaml.Node, name string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == name {
			return m.Content[i+1]
		}
	}
	return nil
}

// isNull reports whether n is missing or null.
func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// attrsArg returns n as a render attrs argument; missing and null mean no
// attributes.
func attrsArg(n *yaml.Node) any {
	if isNull(n) {
		return nil
	}
	return n
}

// decodeValue decodes n into its plain Go value.
func decodeValue(n *yaml.Node) (any, error) {
	if isNull(n) {
		return nil, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, malformed("value could not be decoded", err)
	}
	return v, nil
}

func (s *Server) handleEscape(w http.ResponseWriter, r *http.Request) {
	m, err := s.decodeObject(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := decodeValue(field(m, "text"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	html, err := render.Escape(v)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, htmlResponse{HTML: html})
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	m, err := s.decodeObject(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	html, err := render.ToAttributes(attrsArg(field(m, "attributes")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, htmlResponse{HTML: html})
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	m, err := s.decodeObject(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tag := field(m, "tag")
	if tag == nil || tag.Kind != yaml.ScalarNode || tag.ShortTag() != "!!str" || tag.Value == "" {
		s.writeError(w, r, malformed("tag must be a non-empty string", nil))
		return
	}
	content, err := decodeValue(field(m, "content"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var void bool
	if n := field(m, "void"); !isNull(n) {
		if err := n.Decode(&void); err != nil {
			s.writeError(w, r, malformed("void must be a boolean", err))
			return
		}
	}

	attrs := attrsArg(field(m, "attributes"))
	var html string
	if void {
		html, err = render.Void(tag.Value, attrs, content)
	} else {
		html, err = render.Element(tag.Value, attrs, content)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, htmlResponse{HTML: html})
}

func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	m, err := s.decodeObject(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := decodeValue(field(m, "text"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in *string
	switch t := v.(type) {
	case nil:
	case string:
		in = &t
	default:
		s.writeError(w, r, errors.New("H001").WithDetailf("text must be a string or null, got %T", v))
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: render.SanitizeOptional(in)})
}

// handleRender renders a document body. ?charset= names the encoding of
// bodies that are not UTF-8.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	label := r.URL.Query().Get("charset")

	useCache := s.cache != nil && s.config.CacheTTL > 0
	key := cache.Key("render:"+label, data)
	if useCache {
		html, ok, err := s.cache.Get(r.Context(), key)
		if err != nil {
			s.log(r).Warn("cache get failed", logging.Error(err))
		}
		if ok {
			w.Header().Set("X-Cache", "HIT")
			writeHTML(w, html)
			return
		}
	}

	doc, err := document.ParseWithCharset(data, label)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	html, err := doc.Render()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if useCache {
		if err := s.cache.Set(r.Context(), key, html, s.config.CacheTTL); err != nil {
			s.log(r).Warn("cache set failed", logging.Error(err))
		}
		w.Header().Set("X-Cache", "MISS")
	}
	s.log(r).Debug("document rendered", zap.Int("bytes", len(html)))
	writeHTML(w, html)
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}
