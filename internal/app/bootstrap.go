package app

import (
	"context"

	"github.com/google/uuid"
	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/etudes/internal/config"
	"github.com/dshills/etudes/internal/editor"
	"github.com/dshills/etudes/internal/plugin/api"
	"github.com/dshills/etudes/internal/plugin/lua"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 4),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"session", b.initSession},
		{"scripts", b.initScripts},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}

	b.app.logger.Debug("initialized %v", b.initOrder)
	return nil
}

func (b *bootstrapper) initConfig() error {
	opts := []config.Option{config.WithEnv(!b.opts.IgnoreEnv)}
	if b.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(b.opts.ConfigPath))
	}

	cfg := config.New(opts...)
	if err := cfg.Load(context.Background()); err != nil {
		return err
	}

	overrides := map[string]string{
		"buffer.kind":     b.opts.Kind,
		"buffer.capacity": b.opts.Capacity,
		"logging.level":   b.opts.LogLevel,
	}
	for path, value := range overrides {
		if value == "" {
			continue
		}
		if err := cfg.Set(path, value); err != nil {
			return err
		}
	}

	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	logger, err := NewLoggerFromConfig(b.app.config.Logging(), b.opts.LogOutput)
	if err != nil {
		return err
	}
	b.app.logger = logger
	return nil
}

func (b *bootstrapper) initSession() error {
	id := uuid.New()
	b.app.session = editor.NewSession(
		editor.WithID(id),
		editor.WithLogger(b.app.logger.WithComponent("session").WithField("session", id)),
		editor.WithStateFiles(b.app.config.Buffer().StateFiles),
	)
	return nil
}

func (b *bootstrapper) initScripts() error {
	state, err := lua.NewState(
		lua.WithTimeout(b.app.config.Script().Timeout),
		lua.WithOutput(b.opts.Output),
	)
	if err != nil {
		return err
	}

	registry, err := api.DefaultRegistry(b.app.session)
	if err != nil {
		_ = state.Close()
		return err
	}
	if err := state.Register(func(L *glua.LState) error {
		return registry.InjectAll(L)
	}); err != nil {
		_ = state.Close()
		return err
	}

	b.app.scripts = state
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "scripts":
			_ = b.app.scripts.Close()
		case "session":
			_ = b.app.session.Close()
		case "logger":
			_ = b.app.logger.Close()
		}
	}
}
