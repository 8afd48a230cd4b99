package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/config"
	"github.com/schoolctl/schoolctl/internal/identity"
	"github.com/schoolctl/schoolctl/internal/log"
	"github.com/schoolctl/schoolctl/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "schoolctl",
	Short: "Administrative back-office client",
	Long: `schoolctl is the terminal client for the school-management backend.
It manages subjects, courses, students, teachers, enrollments, and
payments, with a persisted login session shared across invocations.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// app bundles the wired client-side components. One instance per
// process, built lazily on first use so plain commands like 'version'
// never touch config or the session file.
type app struct {
	cfg    config.Config
	logger *log.Logger
	store  *session.Store
	client *api.Client
	query  *identity.Query
}

var currentApp *app

// getApp wires configuration, logging, the session store, the API
// client, and the identity query together.
func getApp() (*app, error) {
	if currentApp != nil {
		return currentApp, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: log.OutputStderr(),
	})
	log.SetDefaultLogger(logger)

	var storage session.Storage
	if cfg.SessionPassphrase != "" {
		storage = session.NewEncryptedStorage(cfg.SessionFile, cfg.SessionPassphrase)
	} else {
		storage = session.NewFileStorage(cfg.SessionFile)
	}

	store, err := session.New(storage, logger)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		// Credential provider reads through the persisted storage on
		// every request, so a token written by another invocation (or
		// cleared by a concurrent logout) is always honored.
		TokenFunc: func() string {
			rec, err := storage.Load()
			if err != nil || rec == nil {
				return store.Token()
			}
			return rec.State.Token
		},
		// Authentication failure: clear the session once and steer the
		// user to the login entry point. Authorization failures never
		// land here; they surface inline at the call site.
		OnAuthFailure: func() {
			store.Logout()
			fmt.Fprintln(os.Stderr, "Session expired or invalid. Run 'schoolctl auth login' to sign in again.")
		},
		Logger: logger,
	})

	currentApp = &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: client,
		query:  identity.New(store, client),
	}
	return currentApp, nil
}
