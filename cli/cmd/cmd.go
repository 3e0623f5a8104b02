package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/rulex/log"
)

type (
	kongKey   struct{}
	inputKey  struct{}
	outputKey struct{}
)

// WithContext returns a copy of ctx holding ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongKey{}).(*kong.Context)

	return ktx
}

// WithInput returns a copy of ctx whose standard input source is r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a copy of ctx whose commands write results to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func stdin(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

func stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

const stdinSource = "-"

// DefaultChunkSize is the read size used when streaming input.
const DefaultChunkSize = 4096

// input is a source read through a read-ahead buffer.
type input struct {
	name   string
	file   io.Closer
	reader io.ReadCloser
	buf    []byte
	err    error
}

func openInput(ctx context.Context, source string, chunk int) (*input, error) {
	if chunk < 1 {
		chunk = DefaultChunkSize
	}

	in := &input{name: source, buf: make([]byte, chunk)}

	var r io.Reader

	if source == "" || source == stdinSource {
		in.name = stdinSource
		r = stdin(ctx)
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, ErrReadInput.Wrap(err).With(slog.String("source", source))
		}

		in.file, r = f, f
	}

	ra, err := readahead.NewReaderSize(r, 4, chunk)
	if err != nil {
		in.closeFile()

		return nil, ErrReadInput.Wrap(err).With(slog.String("source", in.name))
	}

	in.reader = ra

	return in, nil
}

func (in *input) closeFile() {
	if in.file != nil {
		_ = in.file.Close()
	}
}

// Close releases the read-ahead buffers and the underlying file.
func (in *input) Close() error {
	err := in.reader.Close()
	in.closeFile()

	return err
}

// ReadAll returns the remaining input as a string.
func (in *input) ReadAll() (string, error) {
	var sb strings.Builder

	if _, err := io.Copy(&sb, in.reader); err != nil {
		return sb.String(), ErrReadInput.Wrap(err).With(slog.String("source", in.name))
	}

	return sb.String(), nil
}

// Refill returns the next chunk of input. It reports false once the input
// is exhausted or failed; [input.Err] distinguishes the two.
func (in *input) Refill() (string, bool) {
	if in.err != nil {
		return "", false
	}

	n, err := in.reader.Read(in.buf)
	chunk := string(in.buf[:n])

	switch {
	case err == io.EOF:
		in.err = io.EOF
	case err != nil:
		in.err = ErrReadInput.Wrap(err).With(slog.String("source", in.name))
		log.Debug("input failed", slog.Any("error", in.err))
	}

	return chunk, in.err == nil
}

// Err returns the read error that ended [input.Refill], if any.
func (in *input) Err() error {
	if in.err == io.EOF {
		return nil
	}

	return in.err
}

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

// write encodes v in format f, or calls text for the text format.
func (f format) write(ctx context.Context, w io.Writer, v any, text func(io.Writer) error) error {
	switch f {
	case formatText, "":
		return text(w)

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(v); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case formatYAML:
		b, err := yaml.MarshalContext(ctx, v)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(b)

		return err

	default:
		return ErrInvalidFormat.With(slog.String("format", string(f)))
	}
}
