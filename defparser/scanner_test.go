package defparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSymbols(t *testing.T, src string) (*Scanner, []Symbol) {
	t.Helper()
	sc := NewScanner([]byte(src), NewNames())
	var syms []Symbol
	for {
		sym := sc.NextSymbol()
		syms = append(syms, sym)
		if sym.Kind == KindEOF || sym.Kind == KindUnclosedComment {
			break
		}
	}
	return sc, syms
}

func TestScannerPunctuation(t *testing.T) {
	sc, syms := collectSymbols(t, ": [ ] { } ; , .")
	expected := []NameID{
		sc.Colon, sc.OpenSquare, sc.CloseSquare, sc.OpenCurly,
		sc.CloseCurly, sc.Semicolon, sc.Comma, sc.Dot,
	}
	require.Len(t, syms, len(expected)+1)
	for i, id := range expected {
		assert.Equal(t, KindPunctuation, syms[i].Kind, "symbol %d", i)
		assert.Equal(t, id, syms[i].ID, "symbol %d", i)
	}
	assert.Equal(t, KindEOF, syms[len(expected)].Kind)
}

func TestScannerKeywords(t *testing.T) {
	tests := []struct {
		input string
		id    func(*Scanner) NameID
	}{
		{"CIRCUIT", func(s *Scanner) NameID { return s.CircuitID }},
		{"DEVICES", func(s *Scanner) NameID { return s.DevicesID }},
		{"CONNECTIONS", func(s *Scanner) NameID { return s.ConnectionsID }},
		{"MONITORS", func(s *Scanner) NameID { return s.MonitorsID }},
		{"id", func(s *Scanner) NameID { return s.IDKeywordID }},
		{"kind", func(s *Scanner) NameID { return s.KindKeywordID }},
		{"qual", func(s *Scanner) NameID { return s.QualKeywordID }},
	}
	for _, tt := range tests {
		sc, syms := collectSymbols(t, tt.input)
		require.Len(t, syms, 2, "input: %s", tt.input)
		assert.Equal(t, KindKeyword, syms[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.id(sc), syms[0].ID, "input: %s", tt.input)
	}
}

func TestScannerNamesAndCase(t *testing.T) {
	// Reserved words are case sensitive: "devices" is an ordinary name.
	sc, syms := collectSymbols(t, "devices dtype1 G1")
	require.Len(t, syms, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, KindName, syms[i].Kind, "symbol %d", i)
	}
	assert.Equal(t, "devices", sc.SymbolText(syms[0]))
	assert.Equal(t, "dtype1", sc.SymbolText(syms[1]))
	assert.Equal(t, "G1", sc.SymbolText(syms[2]))
}

func TestScannerNumbers(t *testing.T) {
	_, syms := collectSymbols(t, "0 69420 007")
	require.Len(t, syms, 4)
	assert.Equal(t, KindNumber, syms[0].Kind)
	assert.Equal(t, NameID(0), syms[0].ID)
	assert.Equal(t, KindNumber, syms[1].Kind)
	assert.Equal(t, NameID(69420), syms[1].ID)
	assert.Equal(t, KindNumber, syms[2].Kind)
	assert.Equal(t, NameID(7), syms[2].ID)
}

func TestScannerNumberThenLetterSplits(t *testing.T) {
	// Letters terminate a digit run: "2x" is the number 2 then the name x.
	_, syms := collectSymbols(t, "2x")
	require.Len(t, syms, 3)
	assert.Equal(t, KindNumber, syms[0].Kind)
	assert.Equal(t, NameID(2), syms[0].ID)
	assert.Equal(t, KindName, syms[1].Kind)
}

func TestScannerStrayCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int // InvalidChar symbols expected
	}{
		{"lone stray", "?", 1},
		{"stray in name", "na?me", 1},
		{"stray in number", "1?2", 1},
		{"two lone strays", "? !", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, syms := collectSymbols(t, tt.input)
			invalid := 0
			for _, sym := range syms {
				if sym.Kind == KindInvalidChar {
					invalid++
				}
			}
			assert.Equal(t, tt.count, invalid)
		})
	}
}

func TestScannerClosedComment(t *testing.T) {
	_, syms := collectSymbols(t, "a # a comment # b")
	require.Len(t, syms, 3)
	assert.Equal(t, KindName, syms[0].Kind)
	assert.Equal(t, KindName, syms[1].Kind)
	assert.Equal(t, KindEOF, syms[2].Kind)
}

func TestScannerLineComment(t *testing.T) {
	_, syms := collectSymbols(t, "a / the rest is skipped ; [ ]\nb")
	require.Len(t, syms, 3)
	assert.Equal(t, KindName, syms[0].Kind)
	assert.Equal(t, KindName, syms[1].Kind)
	assert.Equal(t, 2, syms[1].Pos.Line)
}

func TestScannerUnclosedComment(t *testing.T) {
	_, syms := collectSymbols(t, "a # never closed")
	require.Len(t, syms, 2)
	assert.Equal(t, KindName, syms[0].Kind)
	last := syms[1]
	assert.Equal(t, KindUnclosedComment, last.Kind)
	// Positioned at the opening hash.
	assert.Equal(t, 1, last.Pos.Line)
	assert.Equal(t, 2, last.Pos.Column())
}

func TestScannerHashTerminatesName(t *testing.T) {
	// The comment opener ends a name run instead of poisoning it.
	sc, syms := collectSymbols(t, "DEVICES# comment #[")
	require.Len(t, syms, 3)
	assert.Equal(t, KindKeyword, syms[0].Kind)
	assert.Equal(t, sc.DevicesID, syms[0].ID)
	assert.Equal(t, KindPunctuation, syms[1].Kind)
	assert.Equal(t, sc.OpenSquare, syms[1].ID)
}

func TestScannerPositions(t *testing.T) {
	src := "DEVICES [\n  {id: sw;\n"
	_, syms := collectSymbols(t, src)
	require.True(t, len(syms) >= 7)

	assert.Equal(t, 1, syms[0].Pos.Line) // DEVICES
	assert.Equal(t, 0, syms[0].Pos.Column())
	assert.Equal(t, 1, syms[1].Pos.Line) // [
	assert.Equal(t, 8, syms[1].Pos.Column())
	assert.Equal(t, 2, syms[2].Pos.Line) // {
	assert.Equal(t, 2, syms[2].Pos.Column())
	assert.Equal(t, 2, syms[3].Pos.Line) // id
	assert.Equal(t, 3, syms[3].Pos.Column())
	assert.Equal(t, 2, syms[5].Pos.Line) // sw
	assert.Equal(t, 7, syms[5].Pos.Column())
}

func TestSymbolText(t *testing.T) {
	sc, syms := collectSymbols(t, "DEVICES abc 12 ; ?")
	assert.Equal(t, "DEVICES", sc.SymbolText(syms[0]))
	assert.Equal(t, "abc", sc.SymbolText(syms[1]))
	assert.Equal(t, "12", sc.SymbolText(syms[2]))
	assert.Equal(t, ";", sc.SymbolText(syms[3]))
	assert.Equal(t, "invalid character(s)", sc.SymbolText(syms[4]))
	assert.Equal(t, "end of file", sc.SymbolText(syms[5]))
}

func TestRenderDiagnosticCaret(t *testing.T) {
	sc, syms := collectSymbols(t, "DEVICES [ $ ]")
	var bad Symbol
	for _, sym := range syms {
		if sym.Kind == KindInvalidChar {
			bad = sym
		}
	}
	text, line, col := sc.RenderDiagnostic(bad)
	assert.Equal(t, 1, line)
	assert.Equal(t, 10, col)
	assert.Equal(t, "DEVICES [ $ ]\n          ^", text)
}

func TestRenderDiagnosticMidLine(t *testing.T) {
	sc, syms := collectSymbols(t, "first line\nsecond ? line")
	var bad Symbol
	for _, sym := range syms {
		if sym.Kind == KindInvalidChar {
			bad = sym
		}
	}
	text, line, col := sc.RenderDiagnostic(bad)
	assert.Equal(t, 2, line)
	assert.Equal(t, 7, col)
	assert.Equal(t, "second ? line\n       ^", text)
	assert.True(t, strings.HasSuffix(text, "^"))
}

func TestRenderDiagnosticStartOfLineShowsPrevious(t *testing.T) {
	// A symbol at column zero of a later line carries the previous line for
	// context.
	sc, syms := collectSymbols(t, "DEVICES [\n?")
	var bad Symbol
	for _, sym := range syms {
		if sym.Kind == KindInvalidChar {
			bad = sym
		}
	}
	text, line, col := sc.RenderDiagnostic(bad)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
	assert.Equal(t, "DEVICES [\n?\n^", text)
}

func TestRenderDiagnosticLeavesCursorAlone(t *testing.T) {
	// Rendering a diagnostic mid-scan must not disturb subsequent symbols.
	sc := NewScanner([]byte("DEVICES [\nabc ;"), NewNames())
	first := sc.NextSymbol()
	_, _, _ = sc.RenderDiagnostic(first)

	next := sc.NextSymbol()
	assert.Equal(t, KindPunctuation, next.Kind)
	assert.Equal(t, sc.OpenSquare, next.ID)

	name := sc.NextSymbol()
	assert.Equal(t, KindName, name.Kind)
	assert.Equal(t, 2, name.Pos.Line)
	assert.Equal(t, 0, name.Pos.Column())
}

func TestScannerEmptyInput(t *testing.T) {
	tests := []string{"", "   \n\t  ", "# just a comment #", "/ only a line comment"}
	for _, src := range tests {
		_, syms := collectSymbols(t, src)
		require.Len(t, syms, 1, "input: %q", src)
		assert.Equal(t, KindEOF, syms[0].Kind, "input: %q", src)
	}
}
