package defparser

import "fmt"

// NameID identifies an interned name string. Ids are assigned sequentially
// from zero in first-seen order and are stable for the life of the table.
type NameID int

// NoID marks a symbol that carries no interned identity (EOF, invalid
// lexemes, unclosed comments).
const NoID NameID = -1

// ErrorCode identifies one collaborator-defined semantic fault. Codes are
// allocated from their own counter and carry their own type, so a code can
// never collide with a NameID or with another collaborator's codes.
type ErrorCode int

// Names maps name strings to small integer ids and back. It also allocates
// blocks of fresh error codes so each collaborator (devices, network,
// monitors) can define its own fault set without clashes.
type Names struct {
	names []string
	index map[string]NameID

	errorCodeCount int
}

// NewNames returns an empty interning table.
func NewNames() *Names {
	return &Names{index: make(map[string]NameID)}
}

// Lookup returns the id for each string, interning any string seen for the
// first time.
func (n *Names) Lookup(strings []string) []NameID {
	ids := make([]NameID, len(strings))
	for i, s := range strings {
		ids[i] = n.intern(s)
	}
	return ids
}

func (n *Names) intern(s string) NameID {
	if id, ok := n.index[s]; ok {
		return id
	}
	id := NameID(len(n.names))
	n.names = append(n.names, s)
	n.index[s] = id
	return id
}

// Query returns the id for s without interning it. The second return is
// false if s has never been seen.
func (n *Names) Query(s string) (NameID, bool) {
	id, ok := n.index[s]
	if !ok {
		return NoID, false
	}
	return id, true
}

// NameString returns the string interned under id.
func (n *Names) NameString(id NameID) (string, error) {
	if id < 0 || int(id) >= len(n.names) {
		return "", fmt.Errorf("name id %d out of range [0, %d)", id, len(n.names))
	}
	return n.names[int(id)], nil
}

// Len reports how many names have been interned.
func (n *Names) Len() int { return len(n.names) }

// UniqueErrorCodes returns count fresh error codes. Codes are monotonically
// increasing across calls and never reused, so blocks handed to different
// collaborators are disjoint.
func (n *Names) UniqueErrorCodes(count int) []ErrorCode {
	codes := make([]ErrorCode, count)
	for i := range codes {
		codes[i] = ErrorCode(n.errorCodeCount + i)
	}
	n.errorCodeCount += count
	return codes
}
