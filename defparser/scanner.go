package defparser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var keywordStrings = []string{"CIRCUIT", "DEVICES", "CONNECTIONS", "MONITORS", "id", "kind", "qual"}

var punctuationStrings = []string{":", "[", "]", "{", "}", ";", ",", "."}

// Scanner translates the definition file's characters into Symbols. The
// reserved words and punctuation characters are interned at construction so
// their ids are stable and exposed as fields for the parser to match on.
type Scanner struct {
	src   []byte
	names *Names

	pos       int // byte offset of the next unread character
	line      int // 1-based line of the next unread character
	lineStart int // byte offset of the start of line

	// Reserved word ids.
	CircuitID     NameID
	DevicesID     NameID
	ConnectionsID NameID
	MonitorsID    NameID
	IDKeywordID   NameID
	KindKeywordID NameID
	QualKeywordID NameID

	// Punctuation ids.
	Colon       NameID
	OpenSquare  NameID
	CloseSquare NameID
	OpenCurly   NameID
	CloseCurly  NameID
	Semicolon   NameID
	Comma       NameID
	Dot         NameID

	keywords map[string]bool
}

// NewScanner returns a Scanner over src, interning the reserved words and
// punctuation into names.
func NewScanner(src []byte, names *Names) *Scanner {
	s := &Scanner{src: src, names: names, line: 1}

	kw := names.Lookup(keywordStrings)
	s.CircuitID, s.DevicesID, s.ConnectionsID, s.MonitorsID = kw[0], kw[1], kw[2], kw[3]
	s.IDKeywordID, s.KindKeywordID, s.QualKeywordID = kw[4], kw[5], kw[6]

	punct := names.Lookup(punctuationStrings)
	s.Colon, s.OpenSquare, s.CloseSquare, s.OpenCurly = punct[0], punct[1], punct[2], punct[3]
	s.CloseCurly, s.Semicolon, s.Comma, s.Dot = punct[4], punct[5], punct[6], punct[7]

	s.keywords = make(map[string]bool, len(keywordStrings))
	for _, w := range keywordStrings {
		s.keywords[w] = true
	}
	return s
}

func (s *Scanner) atEnd() bool { return s.pos >= len(s.src) }

func (s *Scanner) peekRune() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRune(s.src[s.pos:])
	return r
}

func (s *Scanner) advanceRune() rune {
	r, size := utf8.DecodeRune(s.src[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.lineStart = s.pos
	}
	return r
}

func (s *Scanner) position() Position {
	return Position{Offset: s.pos, Line: s.line, LineStart: s.lineStart}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isPunctChar(r rune) bool {
	switch r {
	case ':', '[', ']', '{', '}', ';', ',', '.':
		return true
	}
	return false
}

// isStray reports whether r can appear in no lexeme at all: not whitespace,
// not alphanumeric, not punctuation, and not a comment opener. Stray
// characters embedded in a name or number run poison the whole lexeme.
func isStray(r rune) bool {
	return !unicode.IsSpace(r) && !isAlnum(r) && !isPunctChar(r) && r != '#' && r != '/'
}

// NextSymbol skips whitespace and comments, then classifies the next lexeme.
// At the end of input it returns an EOF symbol; an unterminated '#' comment
// yields an UnclosedComment symbol positioned at the comment's opening hash.
func (s *Scanner) NextSymbol() Symbol {
	for {
		for !s.atEnd() && unicode.IsSpace(s.peekRune()) {
			s.advanceRune()
		}
		if s.atEnd() {
			return Symbol{Kind: KindEOF, ID: NoID, Pos: s.position()}
		}

		switch s.peekRune() {
		case '#':
			// Closed comment: '#' up to and including the next '#'.
			start := s.position()
			s.advanceRune()
			closed := false
			for !s.atEnd() {
				if s.advanceRune() == '#' {
					closed = true
					break
				}
			}
			if !closed {
				return Symbol{Kind: KindUnclosedComment, ID: NoID, Pos: start}
			}
			continue
		case '/':
			// Line comment: '/' up to the next newline or end of input.
			for !s.atEnd() && s.peekRune() != '\n' {
				s.advanceRune()
			}
			continue
		}
		break
	}

	pos := s.position()
	r := s.peekRune()

	switch {
	case unicode.IsLetter(r):
		return s.scanName(pos)
	case unicode.IsDigit(r):
		return s.scanNumber(pos)
	case isPunctChar(r):
		s.advanceRune()
		id, _ := s.names.Query(string(r))
		return Symbol{Kind: KindPunctuation, ID: id, Pos: pos}
	default:
		// A single stray character.
		s.advanceRune()
		return Symbol{Kind: KindInvalidChar, ID: NoID, Pos: pos}
	}
}

// scanName consumes a maximal run of alphanumeric characters together with
// any stray characters embedded in the run. A run containing a stray
// character is reported whole as InvalidChar rather than silently split.
func (s *Scanner) scanName(pos Position) Symbol {
	start := s.pos
	poisoned := false
run:
	for !s.atEnd() {
		r := s.peekRune()
		switch {
		case isAlnum(r):
			s.advanceRune()
		case isStray(r):
			poisoned = true
			s.advanceRune()
		default:
			break run
		}
	}
	if poisoned {
		return Symbol{Kind: KindInvalidChar, ID: NoID, Pos: pos}
	}
	text := string(s.src[start:s.pos])
	id := s.names.Lookup([]string{text})[0]
	if s.keywords[text] {
		return Symbol{Kind: KindKeyword, ID: id, Pos: pos}
	}
	return Symbol{Kind: KindName, ID: id, Pos: pos}
}

// scanNumber consumes a maximal run of digits together with any embedded
// stray characters. A clean run becomes a Number symbol whose ID is the
// literal value; a poisoned run becomes InvalidChar with no value.
func (s *Scanner) scanNumber(pos Position) Symbol {
	start := s.pos
	poisoned := false
run:
	for !s.atEnd() {
		r := s.peekRune()
		switch {
		case unicode.IsDigit(r):
			s.advanceRune()
		case isStray(r):
			poisoned = true
			s.advanceRune()
		default:
			break run
		}
	}
	if poisoned {
		return Symbol{Kind: KindInvalidChar, ID: NoID, Pos: pos}
	}
	value, err := strconv.Atoi(string(s.src[start:s.pos]))
	if err != nil {
		// Digit-only runs always parse; a run long enough to overflow is
		// reported as an invalid lexeme rather than a wrapped value.
		return Symbol{Kind: KindInvalidChar, ID: NoID, Pos: pos}
	}
	return Symbol{Kind: KindNumber, ID: NameID(value), Pos: pos}
}

// SymbolText returns a printable rendering of sym for diagnostics.
func (s *Scanner) SymbolText(sym Symbol) string {
	switch sym.Kind {
	case KindNumber:
		return strconv.Itoa(int(sym.ID))
	case KindEOF:
		return "end of file"
	case KindInvalidChar:
		return "invalid character(s)"
	case KindUnclosedComment:
		return "unclosed comment"
	}
	text, err := s.names.NameString(sym.ID)
	if err != nil {
		return "NONE"
	}
	return text
}

// RenderDiagnostic reproduces the source line containing sym with a caret
// under the symbol's starting column, and returns it along with the line
// number and column. When the symbol sits at the very first column of a line
// after the first, the previous line is included above it for context.
// Rendering reads straight from the source buffer, so the scan cursor is
// never disturbed.
func (s *Scanner) RenderDiagnostic(sym Symbol) (string, int, int) {
	col := sym.Pos.Column()
	lineText := s.lineAt(sym.Pos.LineStart)

	var b strings.Builder
	if col == 0 && sym.Pos.Line > 1 {
		prevStart := s.lineStartBefore(sym.Pos.LineStart)
		b.WriteString(s.lineAt(prevStart))
		b.WriteByte('\n')
	}
	b.WriteString(lineText)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteByte('^')
	return b.String(), sym.Pos.Line, col
}

// lineAt returns the text of the line starting at byte offset start,
// without its trailing newline.
func (s *Scanner) lineAt(start int) string {
	end := start
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	return string(s.src[start:end])
}

// lineStartBefore returns the starting offset of the line preceding the
// line that starts at offset start.
func (s *Scanner) lineStartBefore(start int) int {
	// start-1 is the newline ending the previous line.
	i := start - 2
	for i >= 0 && s.src[i] != '\n' {
		i--
	}
	return i + 1
}
