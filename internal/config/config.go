package config

import (
	"os"

	"github.com/NiftyLabs/kite-bridge/internal/envfile"
	"github.com/NiftyLabs/kite-bridge/internal/model"
)

type Credentials struct {
	APIKey      string
	APISecret   string
	AccessToken string
}

// LoadCredentials reads the Kite credentials from the environment
// (mains load .env into it beforehand). Key and secret are mandatory;
// the access token may be absent until a login cycle has run.
func LoadCredentials() (Credentials, error) {
	c := Credentials{
		APIKey:      os.Getenv(envfile.KeyAPIKey),
		APISecret:   os.Getenv(envfile.KeyAPISecret),
		AccessToken: os.Getenv(envfile.KeyAccessToken),
	}

	var missing []string
	if c.APIKey == "" {
		missing = append(missing, envfile.KeyAPIKey)
	}
	if c.APISecret == "" {
		missing = append(missing, envfile.KeyAPISecret)
	}
	if len(missing) > 0 {
		return Credentials{}, model.NewConfigError("missing required credentials: %v", missing)
	}

	return c, nil
}
