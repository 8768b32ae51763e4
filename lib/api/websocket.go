package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.Warn(fmt.Sprintf("couldn't make websocket: %s", err), slog.String("module", "api"))
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			slog.Debug(fmt.Sprintf("could not close websocket: %s", err), slog.String("module", "api"))
		}
	}(ws)
	a.setWsClient(ws, true)

	go a.websocketWriter(ws)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			a.setWsClient(ws, false)
			break
		}
		slog.Debug(fmt.Sprintf("Received: %s", msg), slog.String("module", "api"))
	}
}

func (a *Api) setWsClient(ws *websocket.Conn, connected bool) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	if connected {
		a.wsClients[ws] = true
	} else {
		delete(a.wsClients, ws)
	}
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) sendStats(ws *websocket.Conn, timeout time.Duration) error {
	packet, err := json.Marshal(a.Stats.Snapshot())
	if err != nil {
		return err
	}
	err = ws.SetWriteDeadline(time.Now().Add(timeout))
	if err != nil {
		return fmt.Errorf("could not set write deadline: %w", err)
	}
	return ws.WriteMessage(websocket.TextMessage, packet)
}

func (a *Api) websocketWriter(ws *websocket.Conn) {
	pingTicker := time.NewTicker(2 * time.Second)
	defer func() {
		pingTicker.Stop()
		err := ws.Close()
		if err != nil {
			slog.Debug(fmt.Sprintf("could not close websocket: %s", err), slog.String("module", "api"))
			return
		}
	}()
	timeout := 10 * time.Second
	if err := a.sendStats(ws, timeout); err != nil {
		return
	}
	for range pingTicker.C {
		if err := a.sendStats(ws, timeout); err != nil {
			return
		}
	}
}
