package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vango-dev/htmlkit/pkg/document"
)

// wsReply answers one WebSocket render request.
type wsReply struct {
	ID    string     `json:"id"`
	HTML  string     `json:"html"`
	Error *errorBody `json:"error,omitempty"`
}

// handleWebSocket serves render requests over a WebSocket. Each text
// message is an object {"id": "...", "document": <document>} and is
// answered in order with a wsReply.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.log(r).Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(s.config.MaxBodyBytes)
	log := s.log(r)
	log.Debug("websocket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		reply := s.renderMessage(r, data)
		_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) renderMessage(r *http.Request, data []byte) wsReply {
	var reply wsReply
	fail := func(err error) wsReply {
		s.recordError(r, err)
		_, body := errorBodyOf(err)
		reply.Error = &body
		return reply
	}

	m, err := decodeObject(data)
	if err != nil {
		return fail(err)
	}
	if id := field(m, "id"); id != nil {
		reply.ID = id.Value
	}
	doc, err := document.ParseNode(field(m, "document"))
	if err != nil {
		return fail(err)
	}
	html, err := doc.Render()
	if err != nil {
		return fail(err)
	}
	reply.HTML = html
	s.log(r).Debug("websocket render", zap.String("id", reply.ID), zap.Int("bytes", len(html)))
	return reply
}
