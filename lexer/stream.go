package lexer

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/rulex/rule"
	"github.com/ardnew/rulex/source"
)

// Stream is a character context fed incrementally with [Stream.Push].
//
// IsEOF reports true only after [Stream.Finish] and once all buffered input
// has been read, so a reader can tell "nothing buffered yet" apart from
// "input closed". Until Finish, a multi-byte rune split across pushes is not
// visible.
//
// A read that runs past the buffered input of an unfinished stream marks the
// stream starved until the next [Stream.Checkpoint]; see [Stream.Starved].
type Stream struct {
	sb       strings.Builder
	buf      string
	off      int
	pos      source.Position
	finished bool
	starved  bool
}

// NewStream returns an empty, unfinished stream.
func NewStream() *Stream {
	return &Stream{pos: source.Start()}
}

// NewStreamString returns a finished stream holding s.
func NewStreamString(s string) *Stream {
	st := NewStream()
	st.Push(s)
	st.Finish()

	return st
}

// Push appends s to the buffer and reopens the stream if it was finished.
func (s *Stream) Push(text string) {
	s.sb.WriteString(text)
	s.buf = s.sb.String()
	s.finished = false
}

// PushRune appends r to the buffer.
func (s *Stream) PushRune(r rune) {
	s.sb.WriteRune(r)
	s.buf = s.sb.String()
	s.finished = false
}

// Finish marks the end of input.
func (s *Stream) Finish() { s.finished = true }

// Finished reports whether [Stream.Finish] was called since the last push.
func (s *Stream) Finished() bool { return s.finished }

// Starved reports whether a read since the last [Stream.Checkpoint] wanted
// input that was not pushed yet. A rule that matched while the stream was
// starved may have decided on missing lookahead.
func (s *Stream) Starved() bool { return s.starved }

// Len returns the number of bytes pushed so far.
func (s *Stream) Len() int { return len(s.buf) }

// Buffered returns the number of pushed bytes not yet read.
func (s *Stream) Buffered() int { return len(s.buf) - s.off }

// RemainingRunes returns the number of buffered runes not yet read.
func (s *Stream) RemainingRunes() int { return utf8.RuneCountInString(s.buf[s.off:]) }

func (s *Stream) decode(off int) (rune, int, bool) {
	if off >= len(s.buf) {
		if !s.finished {
			s.starved = true
		}

		return 0, 0, false
	}

	rest := s.buf[off:]
	if !s.finished && !utf8.FullRuneInString(rest) {
		s.starved = true

		return 0, 0, false
	}

	r, n := utf8.DecodeRuneInString(rest)

	return r, n, true
}

// Peek returns the next buffered rune.
func (s *Stream) Peek() (rune, bool) {
	r, _, ok := s.decode(s.off)

	return r, ok
}

// PeekAt returns the buffered rune k runes past the next one.
func (s *Stream) PeekAt(k int) (rune, bool) {
	if k < 0 {
		return 0, false
	}

	off := s.off

	for {
		r, n, ok := s.decode(off)
		if !ok || k == 0 {
			return r, ok
		}

		k--
		off += n
	}
}

// Advance consumes the next buffered rune.
func (s *Stream) Advance() (rune, bool) {
	r, n, ok := s.decode(s.off)
	if !ok {
		return 0, false
	}

	s.off += n
	s.pos = s.pos.AdvanceSize(r, n)

	return r, true
}

// ConsumeWhile advances past the longest buffered run satisfying pred.
func (s *Stream) ConsumeWhile(pred func(rune) bool) source.TextSlice {
	start := s.off

	for {
		r, n, ok := s.decode(s.off)
		if !ok || !pred(r) {
			break
		}

		s.off += n
		s.pos = s.pos.AdvanceSize(r, n)
	}

	return source.MakeTextSlice(s.buf, start, s.off)
}

// Position returns the position of the next rune.
func (s *Stream) Position() source.Position { return s.pos }

// Index returns the byte offset of the next rune.
func (s *Stream) Index() int { return s.off }

// IsEOF reports whether the stream is finished and fully read.
func (s *Stream) IsEOF() bool { return s.finished && s.off >= len(s.buf) }

// Checkpoint snapshots the read position and clears the starved mark.
func (s *Stream) Checkpoint() source.Checkpoint {
	s.starved = false

	return source.MakeCheckpoint(s.off, s.pos)
}

// Restore moves the read position to cp.
func (s *Stream) Restore(cp source.Checkpoint) error {
	if cp.Index() < 0 || cp.Index() > len(s.buf) {
		return rule.ErrRestore.With(restoreAttrs(cp, len(s.buf))...)
	}

	s.off, s.pos = cp.Index(), cp.Position()

	return nil
}

func restoreAttrs(cp source.Checkpoint, limit int) []slog.Attr {
	return []slog.Attr{
		slog.Int("index", cp.Index()),
		slog.Int("limit", limit),
	}
}
