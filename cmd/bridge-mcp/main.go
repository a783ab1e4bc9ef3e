package main

import (
	"log"

	"github.com/NiftyLabs/kite-bridge/internal/broker"
	"github.com/NiftyLabs/kite-bridge/internal/config"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/mcptool"
	"github.com/NiftyLabs/kite-bridge/internal/session"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

const _bridgeCfgFilePath = "./configs/bridge.yaml"

func main() {
	// stdout carries the tool protocol, logs go to stderr
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Info, logger.ToStderr())
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	cfg, err := config.LoadBridgeConfig(_bridgeCfgFilePath)
	if err != nil {
		zapLogger.Fatalf("%s: can't load bridge cfg", err)
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
	s := mcptool.NewServer(forwarder, zapLogger)

	zapLogger.Infof("serving tools over stdio")
	if err := server.ServeStdio(s); err != nil {
		zapLogger.Fatalf("%s: stdio server stopped", err)
	}
}
