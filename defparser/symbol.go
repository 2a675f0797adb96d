package defparser

import "fmt"

// SymbolKind classifies one lexeme.
type SymbolKind int

const (
	KindKeyword SymbolKind = iota
	KindName
	KindNumber
	KindPunctuation
	KindEOF
	KindInvalidChar
	KindUnclosedComment
)

var symbolKindNames = map[SymbolKind]string{
	KindKeyword:         "keyword",
	KindName:            "name",
	KindNumber:          "number",
	KindPunctuation:     "punctuation",
	KindEOF:             "end of file",
	KindInvalidChar:     "invalid character",
	KindUnclosedComment: "unclosed comment",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// Position locates a symbol in the source buffer. All three fields exist
// purely so the caret renderer can reproduce the offending line later.
type Position struct {
	Offset    int // byte offset of the symbol's first character
	Line      int // 1-based line number
	LineStart int // byte offset of the start of Line
}

// Column returns the symbol's 0-based column within its line.
func (p Position) Column() int { return p.Offset - p.LineStart }

// Symbol is one classified lexeme. ID is the interned name id for keywords,
// names and punctuation; for numbers it is the literal value itself, a
// conflation the parser relies on when reading ID uniformly. Symbols are
// immutable once returned by the scanner.
type Symbol struct {
	Kind SymbolKind
	ID   NameID
	Pos  Position
}
