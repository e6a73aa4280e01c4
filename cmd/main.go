package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lantalk/relay-service/config"
	"github.com/lantalk/relay-service/internal/service"
	"github.com/lantalk/relay-service/internal/store"
	httpx "github.com/lantalk/relay-service/internal/transport/http"
	"github.com/lantalk/relay-service/internal/transport/ws"
	"github.com/lantalk/relay-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting relay-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- state ---
	rooms := store.NewRoomRegistry()
	tokens := store.NewTokenDirectory(rooms)
	index := store.NewPublicIndex()

	// --- services ---
	bcastSvc := service.NewBroadcastService(rooms, index)
	signalSvc := service.NewSignalService(tokens, index)
	sessionSvc := service.NewSessionService(rooms, tokens, index, bcastSvc, signalSvc)

	// --- WS & HTTP ---
	wsServer := ws.NewServer(sessionSvc, cfg.PingInterval(), cfg.SendTimeout(), cfg.WS.MaxMessageBytes)
	handler := httpx.NewHandler(tokens, "./static/index.html")
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr, "lan", lanIP())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}

// lanIP guesses the address peers on the local network should dial. The UDP
// dial never sends anything; it only picks the outbound interface.
func lanIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
