package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/globfind/internal/ui/output"
	"go.trai.ch/globfind/internal/ui/style"
)

// PrettyHandler renders records as one line each: a level marker, the
// message, then key=value attributes, colored when the writer supports it.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs are already qualified with the group that was open when they were added.
	attrs []slog.Attr
	group string
}

// NewPrettyHandler writes to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := levelStyle(r.Level)

	var line strings.Builder
	if marker != "" {
		line.WriteString(marker + " ")
	}
	line.WriteString(r.Message)

	for _, attr := range h.attrs {
		line.WriteString(" " + qualify("", attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteString(" " + qualify(h.group, attr))
		return true
	})

	_, err := h.out.WriteString(h.out.String(line.String()).Foreground(color).String() + "\n")
	return err
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		attr.Key = qualifiedKey(h.group, attr.Key)
		next.attrs = append(next.attrs, attr)
	}
	return next
}

// WithGroup implements slog.Handler. Groups nest with ".".
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.group = qualifiedKey(h.group, name)
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	c := *h
	return &c
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

func qualifiedKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func qualify(group string, attr slog.Attr) string {
	return qualifiedKey(group, attr.Key) + "=" + attr.Value.String()
}
