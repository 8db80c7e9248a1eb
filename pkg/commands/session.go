package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/logger"
	"tableflip.dev/annals/pkg/store"
)

// workspace is what every command that touches the dataset needs.
type workspace struct {
	Config  store.Config
	Log     *logger.Logger
	Session *app.Session
}

func loadWorkspace(cmd *cobra.Command) (*workspace, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cmd.ErrOrStderr(), cfg.LogLevel())

	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	opts, err := app.OptionsFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	s, err := app.NewSession(commandContext(cmd), p, opts)
	if err != nil {
		return nil, err
	}
	return &workspace{Config: cfg, Log: log, Session: s}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errInvalidID(arg)
	}
	return id, nil
}

type errInvalidID string

func (e errInvalidID) Error() string { return strconv.Quote(string(e)) + " is not an event id" }
