package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/20twoes/sochess-ws/internal/render"
	"github.com/20twoes/sochess-ws/internal/server/game"
	"github.com/20twoes/sochess-ws/internal/sovereign"
)

const maxJSONBodyBytes int64 = 1 << 16

// Handler serves the /api/* routes on top of a game manager.
type Handler struct {
	games  *game.Manager
	tables *sovereign.Tables
}

// NewHandler wires the API to games. tables is used to mark piece destinations
// on board images; nil selects the defaults.
func NewHandler(games *game.Manager, tables *sovereign.Tables) *Handler {
	return &Handler{games: games, tables: tables}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/new_game":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleNewGame(w, r)

	case "/api/join":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleJoin(w, r)

	case "/api/first_move":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleMove(w, r, h.games.FirstMove)

	case "/api/first_move_choice":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleChoice(w, r)

	case "/api/move":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleMove(w, r, h.games.Move)

	case "/api/defect":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleDefect(w, r)

	case "/api/state":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleState(w, r)

	case "/api/games":
		if !allow(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, GamesResponse{Games: h.games.List()})

	case "/api/board.svg":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleBoardSVG(w, r)

	case "/api/events":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleEvents(w, r)

	default:
		http.NotFound(w, r)
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError maps session and rule errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var playErr *sovereign.PlayError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrBadToken), errors.Is(err, game.ErrNotYourTurn):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrSeatTaken):
		status = http.StatusConflict
	case errors.As(err, &playErr), errors.Is(err, sovereign.ErrInvalidMove):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Printf("api error: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap, token, err := h.games.NewGame(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, SeatResponse{GameID: snap.ID, Token: token, Seat: 1, State: stateFromSnapshot(snap)})
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap, token, err := h.games.Join(r.Context(), req.GameID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, SeatResponse{GameID: snap.ID, Token: token, Seat: 2, State: stateFromSnapshot(snap)})
}

type moveFunc func(ctx context.Context, id, token, san string) (game.Snapshot, error)

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request, play moveFunc) {
	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap, err := play(r.Context(), req.GameID, req.Token, req.SAN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateFromSnapshot(snap))
}

func (h *Handler) handleChoice(w http.ResponseWriter, r *http.Request) {
	var req ChoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap, err := h.games.FirstMoveChoice(r.Context(), req.GameID, req.Token, req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateFromSnapshot(snap))
}

func (h *Handler) handleDefect(w http.ResponseWriter, r *http.Request) {
	var req DefectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, ok := sovereign.ParseColor(req.Color)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown color %q", req.Color), http.StatusBadRequest)
		return
	}
	snap, err := h.games.Defect(r.Context(), req.GameID, req.Token, c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateFromSnapshot(snap))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	snap, err := h.games.State(r.Context(), req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	tag := etag(snap)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, stateFromSnapshot(snap))
}

// etag changes whenever the position, the phase or the move list does.
func etag(s game.Snapshot) string {
	return fmt.Sprintf("\"%016x-%d-%d\"", s.Hash, int(s.Phase), len(s.Moves))
}

// handleBoardSVG draws the current position. With ?from=<square> the legal
// destinations of that piece are marked.
func (h *Handler) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := h.games.State(r.Context(), q.Get("game_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	pos, err := sovereign.DecodePositionWithTables(snap.FEN, h.tables)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := render.Options{}
	if from := q.Get("from"); from != "" {
		sq, err := sovereign.ParseSquare(from)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(snap.Legal) > 0 {
			opts.Marked = pos.DestinationsFrom(sq)
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.Position(w, pos, opts); err != nil {
		log.Println("board svg error:", err)
	}
}
