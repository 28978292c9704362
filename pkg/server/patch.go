package server

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"

	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/builder"
	"github.com/vango-dev/htmlkit/pkg/document"
)

// patchModes maps the ?mode= values of /v1/patch.
var patchModes = map[string]datastar.ElementPatchMode{
	"outer":   datastar.ElementPatchModeOuter,
	"inner":   datastar.ElementPatchModeInner,
	"replace": datastar.ElementPatchModeReplace,
	"remove":  datastar.ElementPatchModeRemove,
	"append":  datastar.ElementPatchModeAppend,
	"prepend": datastar.ElementPatchModePrepend,
	"before":  datastar.ElementPatchModeBefore,
	"after":   datastar.ElementPatchModeAfter,
}

// patchOptions reads ?selector= and ?mode=.
func patchOptions(r *http.Request) ([]datastar.PatchElementOption, error) {
	q := r.URL.Query()
	var opts []datastar.PatchElementOption
	if sel := q.Get("selector"); sel != "" {
		opts = append(opts, datastar.WithSelector(sel))
	}
	if name := q.Get("mode"); name != "" {
		mode, ok := patchModes[name]
		if !ok {
			return nil, malformed("unknown patch mode "+name, nil)
		}
		opts = append(opts, datastar.WithMode(mode))
	}
	return opts, nil
}

// handlePatch renders a document and streams it as a datastar element
// patch.
func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	opts, err := patchOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := document.ParseWithCharset(data, r.URL.Query().Get("charset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The SSE stream commits a 200, so failures must surface before it opens.
	c, err := builder.Prerender(doc.Builder())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(c, opts...); err != nil {
		s.log(r).Warn("patch stream failed", logging.Error(err), zap.Int("nodes", len(doc.Nodes)))
	}
}
