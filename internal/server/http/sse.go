package httpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const keepAliveInterval = 25 * time.Second

// handleEvents streams the game state as server-sent events: one "state" event
// on connect and one per accepted change. The stream ends when the client goes
// away or the server drops it for falling behind.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ch, cancel, err := h.games.Subscribe(r.Context(), r.URL.Query().Get("game_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case snap, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(stateFromSnapshot(snap))
			if err != nil {
				log.Println("event encode error:", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
