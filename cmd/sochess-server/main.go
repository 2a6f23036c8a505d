package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/20twoes/sochess-ws/internal/server/game"
	httpserver "github.com/20twoes/sochess-ws/internal/server/http"
	"github.com/20twoes/sochess-ws/internal/sovereign"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start()
}

func main() {
	addr := flag.String("addr", getenv("SOCHESS_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("SOCHESS_WEB", ""), "directory with the web client (empty: API only)")
	maxRange := flag.Int("max-range", getenvInt("SOCHESS_MAX_RANGE", sovereign.BoardWidth), "how far bishops, rooks and queens may slide")
	browser := flag.Bool("open", getenb("SOCHESS_OPEN_BROWSER", false), "open the web client in a browser")
	flag.Parse()

	if *maxRange < 1 || *maxRange > sovereign.BoardWidth {
		log.Fatalf("max-range must be between 1 and %d, got %d", sovereign.BoardWidth, *maxRange)
	}
	tables := sovereign.Build(sovereign.WithMaxRange(*maxRange))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := game.NewManager(ctx, tables)
	srv := httpserver.NewServer(httpserver.NewHandler(games, tables), *webDir)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Listen(*addr); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down")
		if err := games.Close(); err != nil {
			log.Printf("closing games: %v", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	})

	if *browser && *webDir != "" {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + listenPort(*addr) + "/web/")
		}()
	}

	log.Printf("serving on %s (max slide range %d, web %q)", *addr, *maxRange, *webDir)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// listenPort turns "host:port" or ":port" into ":port".
func listenPort(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
		log.Printf("ignoring %s=%q: %v", key, v, err)
	}
	return def
}
