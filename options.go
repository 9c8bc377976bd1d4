package pagevec

import (
	"io"
	"log/slog"
	"unsafe"
)

type options struct {
	mapper Mapper
	base   unsafe.Pointer
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		mapper: osMapper{},
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
	}
}

// Option configures New.
type Option func(*options)

// WithMapper replaces the default OS-backed Mapper. Passing nil restores
// the default.
func WithMapper(m Mapper) Option {
	return func(o *options) {
		if m == nil {
			m = osMapper{}
		}
		o.mapper = m
	}
}

// WithBaseAddress requests that the initial mapping be placed at exactly
// addr. The request has fail-if-occupied semantics: if the range is already
// mapped, New returns ErrAddressOccupied instead of relocating. addr must be
// page-aligned.
func WithBaseAddress(addr unsafe.Pointer) Option {
	return func(o *options) {
		o.base = addr
	}
}

// WithLogger attaches a structured logger. Only growth decisions are logged,
// at debug level; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
		}
		o.logger = l
	}
}
