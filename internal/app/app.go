package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/dshills/etudes/internal/config"
	"github.com/dshills/etudes/internal/editor"
	"github.com/dshills/etudes/internal/engine/buffer"
	"github.com/dshills/etudes/internal/plugin/lua"
)

// Application owns the configuration, logger, session and script host of
// one etude run.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *Logger
	session *editor.Session
	scripts *lua.State

	opts   Options
	closed bool
}

// Options configures the application. Empty override fields leave the
// configured value in place.
type Options struct {
	// ConfigPath is the TOML file to load. Empty uses config.DefaultPath.
	ConfigPath string

	// IgnoreEnv skips ETUDES_* environment overrides.
	IgnoreEnv bool

	// Kind overrides buffer.kind.
	Kind string

	// Capacity overrides buffer.capacity ("64KiB", "4096").
	Capacity string

	// LogLevel overrides logging.level.
	LogLevel string

	// Output receives script print output. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log lines when no log file is configured.
	// Defaults to os.Stderr.
	LogOutput io.Writer
}

// New creates an Application with all components initialized.
func New(opts Options) (*Application, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Session returns the editor session.
func (app *Application) Session() *editor.Session {
	return app.session
}

// Open opens path as the active document using the buffer settings.
func (app *Application) Open(path string) error {
	if app.isClosed() {
		return ErrClosed
	}

	opts, err := app.config.BufferOptions(path)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	if err := app.session.Open(opts); err != nil {
		return NewOperationError("open", path, err).WithContext(opts.Kind.String())
	}
	return nil
}

// OpenOptions opens a document from explicit buffer options.
func (app *Application) OpenOptions(opts buffer.Options) error {
	if app.isClosed() {
		return ErrClosed
	}
	if err := app.session.Open(opts); err != nil {
		return NewOperationError("open", opts.Path, err).WithContext(opts.Kind.String())
	}
	return nil
}

// RunScript runs the Lua file at path against the session.
func (app *Application) RunScript(ctx context.Context, path string) error {
	if app.isClosed() {
		return ErrClosed
	}

	log := app.logger.WithComponent("script")
	log.Debug("running %s", path)
	if err := app.scripts.DoFile(ctx, path); err != nil {
		log.Warn("script failed: %v", err)
		return NewOperationError("run", path, err)
	}
	return nil
}

// Close saves and closes the active document, then releases the script
// host and log file. It is safe to call more than once.
func (app *Application) Close() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var errs []error
	if app.session != nil {
		errs = append(errs, app.session.Close())
	}
	if app.scripts != nil {
		errs = append(errs, app.scripts.Close())
	}
	if app.logger != nil {
		app.logger.Debug("shutdown complete")
		errs = append(errs, app.logger.Close())
	}
	return errors.Join(errs...)
}

func (app *Application) isClosed() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.closed
}
