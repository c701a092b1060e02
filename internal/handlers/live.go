package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"bikedash/internal/chart"
	"bikedash/internal/dataset"
	"bikedash/internal/engine"
	"bikedash/internal/logger"
	"bikedash/internal/model"
	hub "bikedash/internal/services/websocket"
)

const (
	readTimeout  = 5 * time.Minute
	writeTimeout = 10 * time.Second
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RangeRequest is what a live session sends when the user moves the date picker.
type RangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LiveMessage is sent back for every range request.
type LiveMessage struct {
	Session string          `json:"session"`
	Summary *engine.Summary `json:"summary,omitempty"`
	Charts  *ChartsData     `json:"charts,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// LiveHandler upgrades to a websocket session. The session receives the
// full-range dashboard on connect and a fresh one for each RangeRequest.
func LiveHandler(ds *dataset.Dataset, renderer chart.Renderer, h *hub.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		conn.SetReadLimit(512)

		session := h.Register(conn)
		defer h.Unregister(session)

		minDate, maxDate := ds.Bounds()
		msg := buildLiveMessage(ds, renderer, RangeRequest{
			Start: minDate.Format(model.DateLayout),
			End:   maxDate.Format(model.DateLayout),
		})

		for {
			msg.Session = session.ID.String()
			if err := writeLive(conn, msg); err != nil {
				logger.Warning("Session %s write failed: %v", session.ID, err)
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var req RangeRequest
			if err := json.Unmarshal(data, &req); err != nil {
				msg = LiveMessage{Error: "malformed range request"}
				continue
			}
			msg = buildLiveMessage(ds, renderer, req)
		}
	}
}

func buildLiveMessage(ds *dataset.Dataset, renderer chart.Renderer, req RangeRequest) LiveMessage {
	dr, err := resolveRange(ds, req.Start, req.End)
	if err != nil {
		return LiveMessage{Error: err.Error()}
	}

	summary := engine.Compute(ds, dr)
	charts, err := buildChartsData(renderer, summary)
	if err != nil {
		return LiveMessage{Error: err.Error()}
	}
	return LiveMessage{Summary: summary, Charts: charts}
}

func writeLive(conn *websocket.Conn, msg LiveMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}
