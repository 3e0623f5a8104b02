package source

import "cmp"

// Checkpoint is an opaque snapshot of a scanning context.
//
// Index is a byte offset for character contexts and an element index for
// token contexts. A Checkpoint is only meaningful to the context that
// produced it. Equality and ordering consider Index only.
type Checkpoint struct {
	index int
	pos   Position
}

// MakeCheckpoint returns a checkpoint at index with position pos.
func MakeCheckpoint(index int, pos Position) Checkpoint {
	return Checkpoint{index: index, pos: pos}
}

// Index returns the scan index recorded by c.
func (c Checkpoint) Index() int { return c.index }

// Position returns the source position recorded by c.
func (c Checkpoint) Position() Position { return c.pos }

// Equal reports whether c and d refer to the same scan index.
func (c Checkpoint) Equal(d Checkpoint) bool { return c.index == d.index }

// Compare orders checkpoints by scan index.
func (c Checkpoint) Compare(d Checkpoint) int { return cmp.Compare(c.index, d.index) }
