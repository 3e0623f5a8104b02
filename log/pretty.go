package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colorize records. Styles are bound to a
// renderer for the output writer, so writers that are not terminals receive
// plain text.
type palette struct {
	key, str, num, bool, time, null lipgloss.Style
	level                           map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		bool: fg("2"),
		time: fg("4"),
		null: fg("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("5"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	best := slog.Level(LevelTrace)
	for k := range p.level {
		if k <= l && k > best {
			best = k
		}
	}

	return p.level[best]
}

// prettyHandler renders records as colorized "key=value" lines
// ([FormatText]) or as indented, colorized objects ([FormatJSON]).
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	out    io.Writer
	mu     *sync.Mutex
	pal    palette
	prefix string      // group prefix applied to attribute keys
	attrs  []slog.Attr // attributes added with WithAttrs, already prefixed
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, f Format) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: f,
		out:    w,
		mu:     &sync.Mutex{},
		pal:    newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], h.prefixed(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) prefixed(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	fields = append(fields, h.prefixed(own)...)

	var buf bytes.Buffer

	first := true

	for _, a := range fields {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key == "" {
			continue
		}

		h.writeAttr(&buf, a, &first)
	}

	if h.format == FormatJSON {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, first *bool) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			g.Key = a.Key + "." + g.Key
			h.writeAttr(buf, g, first)
		}

		return
	}

	switch {
	case h.format == FormatJSON && *first:
		buf.WriteString("{\n  ")
	case h.format == FormatJSON:
		buf.WriteString(",\n  ")
	case !*first:
		buf.WriteByte(' ')
	}

	*first = false

	buf.WriteString(h.pal.key.Render(a.Key))

	if h.format == FormatJSON {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	buf.WriteString(h.value(a))
}

func (h *prettyHandler) value(a slog.Attr) string {
	v := a.Value

	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if a.Key == slog.LevelKey {
			return h.pal.levelStyle(slog.Level(ParseLevel(s))).Render(s)
		}

		if h.format == FormatText && strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		return h.pal.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.pal.num.Render(v.String())

	case slog.KindBool:
		return h.pal.bool.Render(v.String())

	case slog.KindTime, slog.KindDuration:
		return h.pal.time.Render(v.String())

	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return h.pal.null.Render("null")
		case slog.Level:
			return h.pal.levelStyle(x).Render(strings.ToUpper(Level(x).String()))
		case error:
			return h.pal.str.Render(x.Error())
		}
	}

	return h.pal.str.Render(v.String())
}
