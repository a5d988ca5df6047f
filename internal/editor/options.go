package editor

import "github.com/google/uuid"

// Logger is the logging surface the session needs. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStateFiles enables or disables sidecar state files for file-backed
// buffers. Enabled by default.
func WithStateFiles(enable bool) Option {
	return func(s *Session) {
		s.stateFiles = enable
	}
}

// WithID sets the session identifier instead of generating one, so a
// caller can tag its logger before the session exists.
func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		if id != uuid.Nil {
			s.id = id
		}
	}
}
