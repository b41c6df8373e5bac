package internal

import (
	"context"
	"io"
	"log/slog"
)

// CliOutputHandler extends slog.TextHandler to provide customized CLI
// output for the search loop: records carrying a "template" attribute
// (the fixpoint driver's per-template diagnostics) are prefixed with
// the template name, so an operator scanning a long search's logs can
// tell at a glance which attack pattern a given line came from without
// reading the full key=value attribute list.
type CliOutputHandler struct {
	handler slog.Handler
}

// NewCliOutputHandler creates a new CliOutputHandler with the given options
func NewCliOutputHandler(w io.Writer, opts *slog.HandlerOptions) *CliOutputHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &CliOutputHandler{
		handler: slog.NewTextHandler(w, opts),
	}
}

// Enabled implements slog.Handler.Enabled
func (h *CliOutputHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.Handle
func (h *CliOutputHandler) Handle(ctx context.Context, r slog.Record) error {
	template, ok := templateAttr(r)
	if !ok {
		return h.handler.Handle(ctx, r)
	}

	prefixed := slog.NewRecord(r.Time, r.Level, "["+template+"] "+r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "template" {
			return true
		}
		prefixed.AddAttrs(a)
		return true
	})
	return h.handler.Handle(ctx, prefixed)
}

func templateAttr(r slog.Record) (string, bool) {
	var name string
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "template" {
			name = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return name, found
}

// WithAttrs implements slog.Handler.WithAttrs
func (h *CliOutputHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CliOutputHandler{
		handler: h.handler.WithAttrs(attrs),
	}
}

// WithGroup implements slog.Handler.WithGroup
func (h *CliOutputHandler) WithGroup(name string) slog.Handler {
	return &CliOutputHandler{
		handler: h.handler.WithGroup(name),
	}
}
