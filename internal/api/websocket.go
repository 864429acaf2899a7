package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/example/everest-shop/internal/api/middleware"
	"github.com/example/everest-shop/internal/domain/chat"
)

type wsIncoming struct {
	Text string `json:"text"`
}

type wsOutgoing struct {
	Type  string         `json:"type"`
	Chat  *chat.Snapshot `json:"chat,omitempty"`
	Error string         `json:"error,omitempty"`
}

// ChatSocket serves the chat widget over a websocket. Each client text
// frame is one message, either {"text": "..."} or the bare text. The server
// answers every frame with a snapshot or an error frame.
func (h *Handlers) ChatSocket(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	log := middleware.LoggerFromContext(r.Context())

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	controller := state.Chat()
	ctx := r.Context()

	send := func(out wsOutgoing) error {
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return wsutil.WriteServerText(conn, data)
	}

	snap := controller.Snapshot()
	if err := send(wsOutgoing{Type: "snapshot", Chat: &snap}); err != nil {
		return
	}

	for {
		msg, op, err := wsutil.ReadClientData(conn)
		if err != nil {
			log.WithError(err).Debug("websocket closed")
			return
		}
		if op != ws.OpText {
			continue
		}

		text := string(msg)
		var in wsIncoming
		if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "{") && json.Unmarshal(msg, &in) == nil {
			text = in.Text
		}

		if _, err := controller.Send(ctx, text); err != nil {
			if err := send(wsOutgoing{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		snap := controller.Snapshot()
		if err := send(wsOutgoing{Type: "snapshot", Chat: &snap}); err != nil {
			return
		}
	}
}
