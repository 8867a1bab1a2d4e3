package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/fatih/color"
)

var (
	keyColor   = color.New(color.FgHiBlack)
	msgColor   = color.New(color.Bold)
	textColor  = color.New(color.FgCyan)
	numColor   = color.New(color.FgYellow)
	trueColor  = color.New(color.FgGreen)
	falseColor = color.New(color.FgRed)
	timeColor  = color.New(color.FgBlue)
)

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen)
	case level >= slog.LevelDebug:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgMagenta)
	}
}

func valueColor(v slog.Value) *color.Color {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return numColor
	case slog.KindBool:
		if v.Bool() {
			return trueColor
		}

		return falseColor
	case slog.KindTime, slog.KindDuration:
		return timeColor
	default:
		return textColor
	}
}

type boundAttr struct {
	prefix string
	slog.Attr
}

// colorHandler writes one colorized key=value line per record. Colors are
// dropped automatically when the output is not a terminal.
type colorHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []boundAttr
	prefix string
}

func newColorHandler(w io.Writer, opts *slog.HandlerOptions) *colorHandler {
	return &colorHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(timeColor.Sprint(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level))
	buf.WriteString(levelColor(r.Level).Sprintf("%-5s", level.Value.String()))

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		buf.WriteByte(' ')
		buf.WriteString(keyColor.Sprint(
			filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line),
		))
	}

	buf.WriteByte(' ')
	buf.WriteString(msgColor.Sprint(r.Message))

	for _, a := range h.attrs {
		writeColorAttr(&buf, a.prefix, a.Attr)
	}

	r.Attrs(func(a slog.Attr) bool {
		writeColorAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]boundAttr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		c.attrs = append(c.attrs, boundAttr{prefix: h.prefix, Attr: a})
	}

	return &c
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *colorHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func writeColorAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			writeColorAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(keyColor.Sprint(prefix + a.Key + "="))
	buf.WriteString(valueColor(a.Value).Sprint(a.Value.String()))
}

// indentHandler renders each record with the standard JSON handler and
// re-indents it across multiple lines.
type indentHandler struct {
	inner slog.Handler
	buf   *bytes.Buffer
	mu    *sync.Mutex
	w     io.Writer
}

func newIndentHandler(w io.Writer, opts *slog.HandlerOptions) *indentHandler {
	buf := new(bytes.Buffer)

	return &indentHandler{
		inner: slog.NewJSONHandler(buf, opts),
		buf:   buf,
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *indentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *indentHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *indentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)

	return &c
}

func (h *indentHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)

	return &c
}
