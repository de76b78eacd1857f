// Package input defines the pointer and keyboard events an annotator
// consumes and the source that delivers them.
package input

import "strings"

// PointerKind distinguishes press, move and release
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// Button identifies a pointer button
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent carries a pointer position in client coordinates
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	Button Button
}

// Primary reports whether the event should drive box interaction.
// Moves carry no button; presses and releases must use the left button.
func (e PointerEvent) Primary() bool {
	if e.Kind == PointerMove {
		return true
	}
	return e.Button == ButtonLeft || e.Button == ButtonNone
}

// Key names for the keys the annotator reacts to
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

// KeyEvent carries a key identifier, named like DOM KeyboardEvent.key
type KeyEvent struct {
	Key string
}

// IsDelete reports whether the key removes the last box
func (e KeyEvent) IsDelete() bool {
	return strings.EqualFold(e.Key, KeyBackspace) || strings.EqualFold(e.Key, KeyDelete)
}

// Handler receives input events
type Handler interface {
	HandlePointer(PointerEvent)
	HandleKey(KeyEvent)
}

// Source delivers events to subscribed handlers. The returned function
// removes the subscription.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}
