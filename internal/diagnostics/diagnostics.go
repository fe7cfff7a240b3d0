// Package diagnostics reports notes and per-file errors from a generation run.
package diagnostics

import (
	"log/slog"
	"os"

	"msgtools/internal/provider"
)

// Reporter receives generation diagnostics. Implementations must be safe for
// concurrent use.
type Reporter interface {
	Note(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

const (
	SlogName    = "slog"
	ConsoleName = "console"
)

// Register adds the slog and console reporters to r, slog first.
func Register(r *provider.Registry) {
	r.Register(provider.Diagnostics, SlogName, func() (any, error) {
		return NewSlog(slog.Default()), nil
	})
	r.Register(provider.Diagnostics, ConsoleName, func() (any, error) {
		return NewConsole(os.Stderr), nil
	})
}

// Slog reports through a structured logger.
type Slog struct {
	logger *slog.Logger
}

// NewSlog returns a Reporter writing to logger.
func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger}
}

func (s *Slog) Note(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *Slog) Error(msg string, err error, args ...any) {
	s.logger.Error(msg, append(args, "error", err)...)
}
