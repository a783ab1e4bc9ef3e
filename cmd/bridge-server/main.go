package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/NiftyLabs/kite-bridge/internal/api"
	"github.com/NiftyLabs/kite-bridge/internal/broker"
	"github.com/NiftyLabs/kite-bridge/internal/config"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/server"
	"github.com/NiftyLabs/kite-bridge/internal/session"
	"github.com/joho/godotenv"
)

const _bridgeCfgFilePath = "./configs/bridge.yaml"

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Debug)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadBridgeConfig(_bridgeCfgFilePath)
	if err != nil {
		zapLogger.Fatalf("%s: can't load bridge cfg", err)
	}

	portFrom, portTo := cfg.Ports.From, cfg.Ports.To
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil {
			zapLogger.Fatalf("invalid port number: %s", os.Args[1])
		}
		portFrom, portTo = port, port
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		zapLogger.Fatalf("%s: can't load credentials", err)
	}

	sess := session.NewManager(cfg, creds, zapLogger)
	if !sess.Authenticated() {
		zapLogger.Fatalf("no access token in %s, run bridge-panel and complete a login cycle first", cfg.EnvFile)
	}

	forwarder := broker.NewForwarder(sess.Client(), zapLogger)
	router := api.NewRouter(api.NewHandler(forwarder, zapLogger))

	ln, err := server.ListenFirstFree(cfg.Host, portFrom, portTo)
	if err != nil {
		zapLogger.Fatalf("%s: can't bind a port", err)
	}

	s := server.NewHTTPServer(ctx, ln, router)
	zapLogger.Infof("serving at http://%s", s.Addr())

	if err := s.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Fatalf("%s: server stopped", err)
	}
}
