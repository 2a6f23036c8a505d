package mobile

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/20twoes/sochess-ws/internal/server/game"
	httpserver "github.com/20twoes/sochess-ws/internal/server/http"
	"github.com/20twoes/sochess-ws/internal/sovereign"
)

var (
	mu      sync.Mutex
	running *httpserver.Server
	games   *game.Manager
)

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// maxRange: slider range, 8 for the physical set or 16 for the full board
func StartServer(webDir string, port string, maxRange int) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		log.Printf("Server already running")
		return
	}
	if maxRange < 1 || maxRange > sovereign.BoardWidth {
		maxRange = sovereign.BoardWidth
	}

	tables := sovereign.Build(sovereign.WithMaxRange(maxRange))
	games = game.NewManager(context.Background(), tables)
	srv := httpserver.NewServer(httpserver.NewHandler(games, tables), webDir)
	running = srv

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := srv.Listen("127.0.0.1:" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server Error: %v", err)
		}
	}()
}

// StopServer shuts the server down and ends every game session.
func StopServer() {
	mu.Lock()
	defer mu.Unlock()
	if running == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := games.Close(); err != nil {
		log.Printf("Close games: %v", err)
	}
	if err := running.Close(ctx); err != nil {
		log.Printf("Close server: %v", err)
	}
	running, games = nil, nil
}
