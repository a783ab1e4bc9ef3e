// Package session owns the long-lived kite client handle and the
// login/token lifecycle around it.
package session

import (
	"context"

	"github.com/NiftyLabs/kite-bridge/internal/config"
	"github.com/NiftyLabs/kite-bridge/internal/envfile"
	"github.com/NiftyLabs/kite-bridge/internal/kite"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
)

type Manager struct {
	client    *kite.Client
	apiSecret string
	envPath   string

	logger logger.Logger
}

// NewManager builds the manager and binds a pre-existing access token
// when the credentials carry one. Token expiry is not tracked locally:
// a stale token fails at call time, not here.
func NewManager(cfg config.BridgeConfig, creds config.Credentials, logger logger.Logger) *Manager {
	client := kite.NewClient(cfg.Kite, creds.APIKey, logger)
	if creds.AccessToken != "" {
		client.SetAccessToken(creds.AccessToken)
	}

	return &Manager{
		client:    client,
		apiSecret: creds.APISecret,
		envPath:   cfg.EnvFile,
		logger:    logger,
	}
}

// Client exposes the owned handle for the forwarder.
func (m *Manager) Client() *kite.Client {
	return m.client
}

// Authenticated reports whether a token is bound. The forwarder must
// not be constructed while this is false.
func (m *Manager) Authenticated() bool {
	return m.client.HasAccessToken()
}

func (m *Manager) LoginURL() string {
	return m.client.LoginURL()
}

// ExchangeToken trades a one-time request token for an access token,
// persists it and rebinds the client. One successful call per daily
// login cycle is expected.
func (m *Manager) ExchangeToken(ctx context.Context, requestToken string) (string, error) {
	if requestToken == "" {
		return "", model.NewAuthError("request token is required")
	}

	accessToken, err := m.client.GenerateSession(ctx, requestToken, m.apiSecret)
	if err != nil {
		return "", err
	}

	if err := envfile.Set(m.envPath, envfile.KeyAccessToken, accessToken); err != nil {
		return "", err
	}

	m.client.SetAccessToken(accessToken)
	m.logger.Infof("access token refreshed and persisted to %s", m.envPath)

	return accessToken, nil
}
