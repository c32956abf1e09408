package parser

import (
	"fmt"

	"github.com/dhamidi/greenleaf/syntax"
)

type EventKind uint8

const (
	// EventStart opens a node. A start whose node kind is still
	// syntax.Tombstone when processing begins is ignored.
	EventStart EventKind = iota
	// EventToken consumes NRawTokens lexer tokens as one leaf.
	EventToken
	// EventError records a diagnostic at the current position.
	EventError
	// EventFinish closes the most recently opened node.
	EventFinish
)

var eventKindNames = map[EventKind]string{
	EventStart:  "Start",
	EventToken:  "Token",
	EventError:  "Error",
	EventFinish: "Finish",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event is one step of a parse. The parser only ever appends events; the
// tree is built afterwards by [Process].
type Event struct {
	Kind     EventKind
	NodeKind syntax.Kind

	// ForwardParent is set on a Start event whose node was later wrapped by
	// a parent started at index i+ForwardParent. Zero means no parent.
	ForwardParent int

	NRawTokens int
	Message    string
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		if e.ForwardParent != 0 {
			return fmt.Sprintf("Start(%v, +%d)", e.NodeKind, e.ForwardParent)
		}
		return fmt.Sprintf("Start(%v)", e.NodeKind)
	case EventToken:
		return fmt.Sprintf("Token(%v, %d)", e.NodeKind, e.NRawTokens)
	case EventError:
		return fmt.Sprintf("Error(%q)", e.Message)
	default:
		return e.Kind.String()
	}
}

func tombstone() Event {
	return Event{Kind: EventStart, NodeKind: syntax.Tombstone}
}
