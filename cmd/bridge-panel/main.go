package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NiftyLabs/kite-bridge/internal/config"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/panel"
	"github.com/NiftyLabs/kite-bridge/internal/session"
	"github.com/joho/godotenv"
)

const _bridgeCfgFilePath = "./configs/bridge.yaml"

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info)
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

	// the panel drives the login cycle, so only key and secret are
	// mandatory here; the token may not exist yet
	creds, err := config.LoadCredentials()
	if err != nil {
		zapLogger.Fatalf("%s: can't load credentials", err)
	}

	sess := session.NewManager(cfg, creds, zapLogger)
	super := panel.NewSupervisor(cfg.ServerCommand, zapLogger)

	p := panel.New(sess, super, os.Stdin, os.Stdout, zapLogger)
	if err := p.Run(ctx); err != nil && ctx.Err() == nil {
		zapLogger.Fatalf("%s: panel stopped", err)
	}
}
