package rule

import "github.com/ardnew/rulex/source"

// Context is the scan state a [Rule] operates on: a sequence of items of
// type T with a movable read position.
//
// Index is a byte offset for character contexts and an element index for
// token contexts. A [source.Checkpoint] returned by Checkpoint is only valid
// for the context that produced it. Restore returns an error if the
// checkpoint can no longer be honored.
type Context[T any] interface {
	// Peek returns the next unread item without consuming it.
	Peek() (T, bool)
	// PeekAt returns the item k positions past the next unread item.
	PeekAt(k int) (T, bool)
	// Advance consumes and returns the next unread item.
	Advance() (T, bool)
	Position() source.Position
	Index() int
	// IsEOF reports whether no item can ever be read again.
	IsEOF() bool
	Checkpoint() source.Checkpoint
	Restore(source.Checkpoint) error
}

// Committer is implemented by contexts that can discard history.
// Commit promises that no later Restore targets an index before the
// current one.
type Committer interface {
	Commit()
}
