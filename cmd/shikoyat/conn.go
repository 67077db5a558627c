package main

import (
	"fmt"
	"os"

	"github.com/ravshan77/shikoyatlar-web/internal/api"
	"github.com/ravshan77/shikoyatlar-web/internal/config"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
	"github.com/ravshan77/shikoyatlar-web/internal/session"
)

const defaultConfigPath = "shikoyat.yaml"

// tokenFile resolves the session token location. SHIKOYAT_TOKEN_FILE
// overrides the per-user default, which tests and daemons rely on.
func tokenFile() (session.TokenFile, error) {
	if path := os.Getenv("SHIKOYAT_TOKEN_FILE"); path != "" {
		return session.TokenFile{Path: path}, nil
	}
	return session.DefaultTokenFile()
}

// connectFromConfig loads the config and builds an API client. In
// bearer mode the saved session's token is attached when one exists;
// sess is nil otherwise.
func connectFromConfig(configPath string) (*config.Config, *api.Client, *models.Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	var sess *models.Session
	tf, err := tokenFile()
	if err == nil {
		if s, ok, _ := tf.Load(); ok {
			sess = &s
		}
	}

	var creds api.Credentials
	switch cfg.API.AuthMode {
	case config.AuthBasic:
		creds = api.BasicAuth{User: cfg.API.BasicUser, Pass: cfg.API.BasicPass}
	default:
		var token string
		if sess != nil {
			token = sess.Token
		}
		creds = api.BearerToken{Token: token}
	}

	client, err := api.New(api.Options{
		BaseURL:      cfg.API.BaseURL,
		Credentials:  creds,
		Timeout:      cfg.API.Timeout(),
		ShowEndpoint: cfg.API.ShowEndpoint,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, client, sess, nil
}

// requireSession is connectFromConfig for commands that write records:
// they need a worker identity for the author stamp.
func requireSession(configPath string) (*config.Config, *api.Client, models.Session, error) {
	cfg, client, sess, err := connectFromConfig(configPath)
	if err != nil {
		return nil, nil, models.Session{}, err
	}
	if sess == nil {
		return nil, nil, models.Session{}, fmt.Errorf("login required: run `shikoyat login` first")
	}
	return cfg, client, *sess, nil
}
