package defparser

import "fmt"

// clauseResult is the outcome of parsing one sub-unit. Recoverable faults
// travel by value so callers can pattern-match instead of chaining flags.
type clauseResult int

const (
	// clauseOK: the clause completed, possibly after inner recovery.
	clauseOK clauseResult = iota
	// clauseMissingSemicolon: everything up to the terminating semicolon
	// parsed, but the semicolon itself is absent. The enclosing rule
	// abandons the rest of the unit; its list loop resynchronizes.
	clauseMissingSemicolon
	// clauseFatal: the input ended, or an unclosed comment was found. The
	// enclosing section unwinds.
	clauseFatal
)

// resumeSet is the set of symbols that may legally follow a recovery
// semicolon. Membership by id is never tested against Number symbols,
// whose ID field holds a literal value rather than an interned id.
type resumeSet struct {
	ids   []NameID
	kinds []SymbolKind
}

func (r resumeSet) contains(sym Symbol) bool {
	if sym.Kind != KindNumber {
		for _, id := range r.ids {
			if sym.ID == id {
				return true
			}
		}
	}
	for _, k := range r.kinds {
		if sym.Kind == k {
			return true
		}
	}
	return false
}

// signalRef is one parsed signal: a device name with an optional port.
type signalRef struct {
	dev     NameID
	devSym  *Symbol
	port    *NameID
	portSym *Symbol
	text    string
}

// Parser analyses the symbol stream for syntactic and semantic correctness
// and drives the Devices/Network/Monitors collaborators. It recovers from
// every recoverable fault so that one Parse call reports every independent
// error in the file.
type Parser struct {
	names    *Names
	devices  Devices
	network  Network
	monitors Monitors
	scanner  *Scanner

	sym             Symbol
	errorCount      int
	endOfFile       bool
	unclosedComment bool
	diagnostics     []string
}

// NewParser returns a Parser reading symbols from scanner and issuing
// semantic actions against the given collaborators.
func NewParser(names *Names, devices Devices, network Network, monitors Monitors, scanner *Scanner) *Parser {
	return &Parser{
		names:    names,
		devices:  devices,
		network:  network,
		monitors: monitors,
		scanner:  scanner,
	}
}

// ErrorCount reports how many syntax and semantic errors have been found.
func (p *Parser) ErrorCount() int { return p.errorCount }

// Diagnostics returns every recorded diagnostic in emission order.
func (p *Parser) Diagnostics() []string { return p.diagnostics }

func (p *Parser) record(msg string) {
	p.diagnostics = append(p.diagnostics, msg)
}

// advance shifts the current symbol to the next one and returns it. An
// unclosed comment is a permanent lexical fault: it is diagnosed once, and
// the parse of the rest of the file is abandoned.
func (p *Parser) advance() Symbol {
	p.sym = p.scanner.NextSymbol()
	if p.sym.Kind == KindUnclosedComment {
		p.unclosedComment = true
		p.endOfFile = true
		p.errorCount++
		caret, line, col := p.scanner.RenderDiagnostic(p.sym)
		p.record(fmt.Sprintf("ERROR on line %d index %d: %s", line, col,
			"Unclosed comment found - did you want to use '/' instead of '#' for your comment?"))
		p.record(caret)
	}
	return p.sym
}

// atID reports whether the current symbol carries the given interned id.
// Number symbols never match: their ID is a literal value.
func (p *Parser) atID(id NameID) bool {
	return p.sym.Kind != KindNumber && p.sym.ID == id
}

func (p *Parser) atPunct(id NameID) bool {
	return p.sym.Kind == KindPunctuation && p.sym.ID == id
}

func (p *Parser) symbolText() string {
	return p.scanner.SymbolText(p.sym)
}

// syntaxError records a diagnostic for the current symbol and resynchronizes:
// symbols are discarded up to a semicolon, and the symbol after it must be a
// member of resume for parsing to continue there; otherwise the hunt for the
// next semicolon starts over. Reaching the end of input at any point marks
// the parse EOF-truncated and stops recovery.
func (p *Parser) syntaxError(msg string, resume resumeSet) {
	p.errorCount++
	caret, line, col := p.scanner.RenderDiagnostic(p.sym)

	if p.sym.Kind == KindEOF {
		p.record(fmt.Sprintf("ERROR on line %d index %d: %s", line, col, msg))
		p.endOfFile = true
		return
	}
	p.endOfFile = false
	p.record(fmt.Sprintf("ERROR on line %d index %d: %s, received %s", line, col, msg, p.symbolText()))
	p.record(caret)

	for {
		for !p.atPunct(p.scanner.Semicolon) {
			p.advance()
			if p.unclosedComment {
				return
			}
			if p.sym.Kind == KindEOF {
				p.record("Reached end of file without finding another semicolon - cannot perform error recovery.")
				p.endOfFile = true
				return
			}
		}
		p.advance()
		if p.unclosedComment {
			return
		}
		if p.sym.Kind == KindEOF {
			p.endOfFile = true
			return
		}
		if resume.contains(p.sym) {
			return
		}
	}
}

// skipTo advances silently until the current symbol is a member of resume or
// the input ends. Used after a missing semicolon, where the fault has
// already been reported and the rest of the unit just needs discarding.
func (p *Parser) skipTo(resume resumeSet) {
	for {
		if p.unclosedComment {
			return
		}
		if p.sym.Kind == KindEOF {
			p.endOfFile = true
			return
		}
		if resume.contains(p.sym) {
			return
		}
		p.advance()
	}
}

// recordSyntaxErrorOnly records a diagnostic for the current symbol without
// entering the recovery loop. Used where the current symbol itself is the
// resynchronization point, so discarding anything would widen the damage.
func (p *Parser) recordSyntaxErrorOnly(msg string) {
	p.errorCount++
	caret, line, col := p.scanner.RenderDiagnostic(p.sym)
	if p.sym.Kind == KindEOF {
		p.record(fmt.Sprintf("ERROR on line %d index %d: %s", line, col, msg))
		p.endOfFile = true
		return
	}
	p.record(fmt.Sprintf("ERROR on line %d index %d: %s, received %s", line, col, msg, p.symbolText()))
	p.record(caret)
}

// semanticError records a diagnostic for a collaborator-reported fault,
// pointing at the most relevant symbol (or the current one when sym is nil).
func (p *Parser) semanticError(msg string, sym *Symbol) {
	p.errorCount++
	at := p.sym
	if sym != nil {
		at = *sym
	}
	caret, line, col := p.scanner.RenderDiagnostic(at)
	p.record(fmt.Sprintf("ERROR on line %d index %d: %s", line, col, msg))
	p.record(caret)
}

// Parse parses the whole definition file. It returns true only if no syntax
// or semantic errors were found. The full diagnostics list is available from
// Diagnostics afterwards regardless of the result.
func (p *Parser) Parse() bool {
	devicesDone := false
	connectionsDone := false
	monitorsDone := false

	p.advance()
	if p.sym.Kind == KindEOF && !p.unclosedComment {
		p.recordSyntaxErrorOnly("Empty definition file was loaded.")
		p.recordSummary()
		return false
	}

loop:
	for {
		if p.unclosedComment {
			break
		}
		switch {
		case p.atID(p.scanner.DevicesID):
			if devicesDone {
				p.syntaxError("Multiple device lists found.", resumeSet{
					ids:   []NameID{p.scanner.ConnectionsID, p.scanner.MonitorsID},
					kinds: []SymbolKind{KindEOF},
				})
			} else {
				p.parseDevicesList(p.errorCount)
				devicesDone = true
			}

		case p.atID(p.scanner.ConnectionsID):
			switch {
			case connectionsDone:
				p.syntaxError("Multiple connections lists found.", resumeSet{
					ids:   []NameID{p.scanner.MonitorsID},
					kinds: []SymbolKind{KindEOF},
				})
			case devicesDone:
				p.parseConnectionsList(p.errorCount)
				connectionsDone = true
			default:
				p.syntaxError("CONNECTIONS cannot be parsed before DEVICES", resumeSet{
					ids: []NameID{p.scanner.DevicesID},
				})
				if p.sym.Kind == KindEOF {
					break loop
				}
			}

		case p.atID(p.scanner.MonitorsID):
			switch {
			case monitorsDone:
				p.syntaxError("Multiple monitors lists found.", resumeSet{
					ids:   []NameID{p.scanner.ConnectionsID},
					kinds: []SymbolKind{KindEOF},
				})
			case devicesDone:
				p.parseMonitorsList(p.errorCount)
				monitorsDone = true
			default:
				p.syntaxError("MONITORS cannot be parsed before DEVICES", resumeSet{
					ids: []NameID{p.scanner.DevicesID},
				})
				if p.sym.Kind == KindEOF {
					break loop
				}
			}

		case p.sym.Kind == KindEOF:
			break loop

		default:
			p.syntaxError("expected DEVICES, CONNECTIONS, MONITORS or end of file", resumeSet{
				ids:   []NameID{p.scanner.DevicesID, p.scanner.ConnectionsID, p.scanner.MonitorsID},
				kinds: []SymbolKind{KindEOF},
			})
			if p.sym.Kind == KindEOF {
				break loop
			}
		}
	}

	if !p.unclosedComment && p.network != nil && !p.network.Complete() {
		p.errorCount++
		p.record("Network is incomplete - all inputs must be connected.")
	}

	p.recordSummary()
	return p.errorCount == 0
}

func (p *Parser) recordSummary() {
	p.record(fmt.Sprintf("Completely parsed the definition file. %d error(s) found in total.", p.errorCount))
}

// parseDevicesList parses DEVICES "[" { device } "]" ";".
func (p *Parser) parseDevicesList(prevErrors int) {
	p.advance()
	if p.unclosedComment {
		return
	}

	for done := false; !done; done = true {
		if !p.atPunct(p.scanner.OpenSquare) {
			p.syntaxError("expected [", resumeSet{
				ids: []NameID{p.scanner.ConnectionsID, p.scanner.MonitorsID},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			break
		}

		parsing := true
		for parsing {
			if p.endOfFile {
				break
			}
			if p.atPunct(p.scanner.CloseSquare) {
				// Empty list, or end of it.
				break
			}

			res := p.parseDevice(p.errorCount)
			if res == clauseFatal || p.unclosedComment {
				break
			}
			if res == clauseMissingSemicolon {
				// The broken device has been diagnosed; discard its
				// remainder and pick up at the next device or list end.
				p.skipTo(resumeSet{ids: []NameID{
					p.scanner.OpenCurly, p.scanner.CloseSquare,
					p.scanner.ConnectionsID, p.scanner.MonitorsID,
				}})
				if p.endOfFile || p.unclosedComment {
					break
				}
				continue
			}

			switch {
			case p.atPunct(p.scanner.OpenCurly):
				// Next device.
			case p.atPunct(p.scanner.CloseSquare):
				parsing = false
			case p.atID(p.scanner.ConnectionsID) || p.atID(p.scanner.MonitorsID):
				// A broken device spilled into the next section.
				parsing = false
			case p.sym.Kind == KindEOF:
				parsing = false
			case p.sym.Kind == KindInvalidChar:
				p.syntaxError("invalid character encountered", resumeSet{
					ids:   []NameID{p.scanner.OpenCurly, p.scanner.CloseSquare, p.scanner.ConnectionsID, p.scanner.MonitorsID},
					kinds: []SymbolKind{KindEOF},
				})
				if p.unclosedComment || p.endOfFile {
					parsing = false
				} else if p.atPunct(p.scanner.CloseSquare) ||
					p.atID(p.scanner.ConnectionsID) || p.atID(p.scanner.MonitorsID) {
					parsing = false
				}
			default:
				p.syntaxError("Invalid input to a DEVICES list. Devices should start with '{', or the list should end with ']'", resumeSet{
					ids:   []NameID{p.scanner.OpenCurly, p.scanner.CloseSquare, p.scanner.ConnectionsID, p.scanner.MonitorsID},
					kinds: []SymbolKind{KindEOF},
				})
				if p.unclosedComment || p.endOfFile {
					parsing = false
				} else if p.atPunct(p.scanner.CloseSquare) ||
					p.atID(p.scanner.ConnectionsID) || p.atID(p.scanner.MonitorsID) {
					parsing = false
				}
			}
		}

		if p.unclosedComment || p.endOfFile {
			break
		}
		if p.atID(p.scanner.ConnectionsID) || p.atID(p.scanner.MonitorsID) {
			break
		}

		if !p.atPunct(p.scanner.CloseSquare) {
			p.syntaxError("expected ]", resumeSet{
				ids: []NameID{p.scanner.ConnectionsID, p.scanner.MonitorsID},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			break
		}
		if !p.atPunct(p.scanner.Semicolon) {
			p.syntaxError("expected ;", resumeSet{
				ids: []NameID{p.scanner.ConnectionsID, p.scanner.MonitorsID},
			})
			break
		}
		if p.errorCount-prevErrors != 0 {
			break
		}

		// Clean list: step past the terminating semicolon and hand control
		// back to the section dispatcher.
		p.advance()
		return
	}

	if p.unclosedComment {
		return
	}
	if !p.endOfFile &&
		!p.atID(p.scanner.ConnectionsID) && !p.atID(p.scanner.MonitorsID) {
		p.advance()
		if p.unclosedComment {
			return
		}
	}
	if d := p.errorCount - prevErrors; d != 0 {
		p.record(fmt.Sprintf("%d error(s) found when parsing the DEVICES list", d))
	}
}

// parseDevice parses "{" id_clause kind_clause [qual_clause] "}" ";" and,
// when the whole unit produced no new errors, issues the MakeDevice action.
func (p *Parser) parseDevice(prevErrors int) clauseResult {
	if !p.atPunct(p.scanner.OpenCurly) {
		p.syntaxError("expected {", resumeSet{
			ids: []NameID{p.scanner.OpenCurly, p.scanner.CloseSquare},
		})
		return clauseOK
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}

	res, nameID, nameSym := p.parseIDClause()
	switch res {
	case clauseFatal:
		return clauseFatal
	case clauseMissingSemicolon:
		if p.endOfFile {
			return clauseFatal
		}
		return clauseMissingSemicolon
	}

	res, kindID, kindSym := p.parseKindClause()
	switch res {
	case clauseFatal:
		return clauseFatal
	case clauseMissingSemicolon:
		if p.endOfFile {
			return clauseFatal
		}
		return clauseMissingSemicolon
	}

	var qual *int
	var qualSym *Symbol
	if p.atID(p.scanner.QualKeywordID) {
		res, qual, qualSym = p.parseQualClause()
		switch res {
		case clauseFatal:
			return clauseFatal
		case clauseMissingSemicolon:
			if p.endOfFile {
				return clauseFatal
			}
			return clauseMissingSemicolon
		}
	}

	if p.endOfFile {
		return clauseFatal
	}
	if !p.atPunct(p.scanner.CloseCurly) {
		p.syntaxError("expected }", resumeSet{
			ids: []NameID{p.scanner.OpenCurly, p.scanner.CloseSquare},
		})
		return clauseOK
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}
	if !p.atPunct(p.scanner.Semicolon) {
		// The current symbol is already the resynchronization point for the
		// device list ('{' of the next device, or ']'), so only the current
		// device is lost.
		p.recordSyntaxErrorOnly("expected ; at end of device definition")
		if p.endOfFile {
			return clauseFatal
		}
		return clauseMissingSemicolon
	}

	if p.errorCount-prevErrors == 0 {
		p.buildDevice(nameID, nameSym, kindID, kindSym, qual, qualSym)
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}
	return clauseOK
}

// parseIDClause parses `id ":" NAME ";"`.
func (p *Parser) parseIDClause() (clauseResult, NameID, *Symbol) {
	if p.endOfFile {
		return clauseFatal, NoID, nil
	}
	if !p.atID(p.scanner.IDKeywordID) {
		p.syntaxError("expected the id keyword here", resumeSet{
			ids: []NameID{p.scanner.KindKeywordID},
		})
		return clauseOK, NoID, nil
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, NoID, nil
	}

	if !p.atPunct(p.scanner.Colon) {
		p.syntaxError("expected :", resumeSet{
			ids: []NameID{p.scanner.KindKeywordID},
		})
		return clauseOK, NoID, nil
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, NoID, nil
	}

	if p.sym.Kind != KindName {
		if p.sym.Kind == KindKeyword {
			p.syntaxError("Invalid name provided - a keyword cannot be used as a device name", resumeSet{
				ids: []NameID{p.scanner.KindKeywordID},
			})
		} else {
			p.syntaxError("Invalid name provided - a device name should be alphanumeric", resumeSet{
				ids: []NameID{p.scanner.KindKeywordID},
			})
		}
		return clauseOK, NoID, nil
	}
	nameID := p.sym.ID
	nameSym := p.sym
	p.advance()
	if p.unclosedComment {
		return clauseFatal, nameID, &nameSym
	}

	if !p.atPunct(p.scanner.Semicolon) {
		p.recordSyntaxErrorOnly("Missing semicolon")
		return clauseMissingSemicolon, nameID, &nameSym
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, nameID, &nameSym
	}
	return clauseOK, nameID, &nameSym
}

// parseKindClause parses `kind ":" NAME ";"`.
func (p *Parser) parseKindClause() (clauseResult, NameID, *Symbol) {
	if p.endOfFile {
		return clauseFatal, NoID, nil
	}
	if !p.atID(p.scanner.KindKeywordID) {
		p.syntaxError("expected the kind keyword here", resumeSet{
			ids: []NameID{p.scanner.QualKeywordID, p.scanner.CloseCurly},
		})
		return clauseOK, NoID, nil
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, NoID, nil
	}

	if !p.atPunct(p.scanner.Colon) {
		p.syntaxError("expected :", resumeSet{
			ids: []NameID{p.scanner.QualKeywordID, p.scanner.CloseCurly},
		})
		return clauseOK, NoID, nil
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, NoID, nil
	}

	if p.sym.Kind != KindName {
		p.syntaxError("Device type must be alphanumeric", resumeSet{
			ids: []NameID{p.scanner.QualKeywordID, p.scanner.CloseCurly},
		})
		return clauseOK, NoID, nil
	}
	kindID := p.sym.ID
	kindSym := p.sym
	p.advance()
	if p.unclosedComment {
		return clauseFatal, kindID, &kindSym
	}

	if !p.atPunct(p.scanner.Semicolon) {
		p.recordSyntaxErrorOnly("Missing semicolon")
		return clauseMissingSemicolon, kindID, &kindSym
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, kindID, &kindSym
	}
	return clauseOK, kindID, &kindSym
}

// parseQualClause parses `qual ":" NUMBER ";"`. The caller has already seen
// the qual keyword.
func (p *Parser) parseQualClause() (clauseResult, *int, *Symbol) {
	p.advance()
	if p.unclosedComment {
		return clauseFatal, nil, nil
	}

	if !p.atPunct(p.scanner.Colon) {
		p.syntaxError("expected :", resumeSet{
			ids: []NameID{p.scanner.CloseCurly},
		})
		return clauseOK, nil, nil
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, nil, nil
	}

	if p.sym.Kind != KindNumber {
		p.syntaxError("unsupported qualifier input", resumeSet{
			ids: []NameID{p.scanner.CloseCurly},
		})
		return clauseOK, nil, nil
	}
	value := int(p.sym.ID)
	qualSym := p.sym
	p.advance()
	if p.unclosedComment {
		return clauseFatal, &value, &qualSym
	}

	if !p.atPunct(p.scanner.Semicolon) {
		p.recordSyntaxErrorOnly("Missing semicolon")
		return clauseMissingSemicolon, &value, &qualSym
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal, &value, &qualSym
	}
	return clauseOK, &value, &qualSym
}

// buildDevice issues the MakeDevice action and translates any fault code
// into a semantic diagnostic pointing at the most relevant symbol.
func (p *Parser) buildDevice(nameID NameID, nameSym *Symbol, kindID NameID, kindSym *Symbol, qual *int, qualSym *Symbol) {
	code := p.devices.MakeDevice(nameID, kindID, qual)
	codes := p.devices.Errors()
	if code == codes.NoError {
		return
	}

	kindText := "NONE"
	if kindID != NoID {
		if s, err := p.names.NameString(kindID); err == nil {
			kindText = s
		}
	}
	nameText := "NONE"
	if nameID != NoID {
		if s, err := p.names.NameString(nameID); err == nil {
			nameText = s
		}
	}

	switch code {
	case codes.NoQualifier:
		p.semanticError(fmt.Sprintf("%s qualifier not present.", kindText), kindSym)
	case codes.InvalidQualifier:
		p.semanticError(fmt.Sprintf("%s qualifier is invalid.", kindText), qualSym)
	case codes.QualifierPresent:
		p.semanticError(fmt.Sprintf("Qualifier provided for %s when there should be none.", kindText), qualSym)
	case codes.BadDevice:
		p.semanticError(fmt.Sprintf("Device kind %s not recognised.", kindText), kindSym)
	case codes.DevicePresent:
		p.semanticError(fmt.Sprintf("Device %s already present.", nameText), nameSym)
	default:
		p.semanticError(fmt.Sprintf("Device %s could not be built.", nameText), nameSym)
	}
}

// parseConnectionsList parses CONNECTIONS "[" { connection } "]" ";".
func (p *Parser) parseConnectionsList(prevErrors int) {
	p.advance()
	if p.unclosedComment {
		return
	}

	for done := false; !done; done = true {
		if p.endOfFile {
			break
		}
		if !p.atPunct(p.scanner.OpenSquare) {
			p.syntaxError("expected [", resumeSet{
				ids:   []NameID{p.scanner.MonitorsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			return
		}

		parsing := true
		for parsing {
			if p.endOfFile {
				break
			}
			if p.atPunct(p.scanner.CloseSquare) {
				break
			}

			res := p.parseConnection(p.errorCount)
			if res == clauseFatal || p.unclosedComment {
				return
			}
			if p.endOfFile {
				break
			}
			if res == clauseMissingSemicolon {
				if p.atID(p.scanner.MonitorsID) {
					break
				}
				continue
			}

			switch {
			case p.sym.Kind == KindName:
				// Next connection.
			case p.atPunct(p.scanner.CloseSquare):
				parsing = false
			case p.atID(p.scanner.MonitorsID):
				parsing = false
			default:
				msg := "Invalid input to a CONNECTIONS list. Expected a signal name or ']'"
				switch {
				case p.sym.Kind == KindInvalidChar:
					msg = "invalid character encountered"
				case p.sym.Kind == KindKeyword:
					msg = "Cannot use a KEYWORD for a signal name"
				}
				p.syntaxError(msg, resumeSet{
					ids:   []NameID{p.scanner.CloseSquare, p.scanner.MonitorsID},
					kinds: []SymbolKind{KindName, KindEOF},
				})
				if p.unclosedComment || p.endOfFile {
					parsing = false
				} else if p.atPunct(p.scanner.CloseSquare) || p.atID(p.scanner.MonitorsID) {
					parsing = false
				}
			}
		}

		if p.unclosedComment || p.endOfFile {
			break
		}
		if p.atID(p.scanner.MonitorsID) {
			break
		}
		if !p.atPunct(p.scanner.CloseSquare) {
			p.syntaxError("expected ]", resumeSet{
				ids:   []NameID{p.scanner.MonitorsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			return
		}
		if !p.atPunct(p.scanner.Semicolon) {
			p.syntaxError("expected ;", resumeSet{
				ids:   []NameID{p.scanner.MonitorsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		if p.errorCount-prevErrors != 0 {
			break
		}

		p.advance()
		return
	}

	if p.unclosedComment {
		return
	}
	if !p.endOfFile && !p.atID(p.scanner.MonitorsID) {
		p.advance()
		if p.unclosedComment {
			return
		}
	}
	if d := p.errorCount - prevErrors; d != 0 {
		p.record(fmt.Sprintf("%d error(s) found when parsing the CONNECTIONS list", d))
	}
}

// parseConnection parses `signal ":" signal ";"` and, when the unit
// produced no new errors, issues the MakeConnection action.
func (p *Parser) parseConnection(prevErrors int) clauseResult {
	if p.atPunct(p.scanner.Semicolon) {
		p.syntaxError("No connection found before semicolon", resumeSet{
			kinds: []SymbolKind{KindName},
		})
		return clauseOK
	}

	res, out, ok := p.parseSignal()
	if res == clauseFatal {
		return clauseFatal
	}
	if p.endOfFile {
		return clauseOK
	}
	if !ok {
		if res == clauseMissingSemicolon {
			p.record("missed colon in connection, will skip to next connection")
		}
		return clauseMissingSemicolon
	}
	if !p.atPunct(p.scanner.Colon) {
		// A lone signal terminated by ';' is not a connection. The current
		// symbol is the semicolon, so stepping past it resynchronizes.
		p.recordSyntaxErrorOnly("expected : between the two signals of a connection")
		p.record("missed colon in connection, will skip to next connection")
		p.advance()
		if p.unclosedComment {
			return clauseFatal
		}
		return clauseMissingSemicolon
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}

	res, in, ok := p.parseSignal()
	if res == clauseFatal {
		return clauseFatal
	}
	if p.endOfFile {
		return clauseOK
	}
	if !ok {
		return clauseMissingSemicolon
	}
	if !p.atPunct(p.scanner.Semicolon) {
		p.syntaxError("expected ; at end of connection", p.signalResume())
		return clauseOK
	}

	if p.errorCount-prevErrors == 0 {
		p.buildConnection(out, in)
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}
	return clauseOK
}

// signalResume is where recovery may land after a fault inside a signal:
// the start of the next unit, the list close, or the next section.
func (p *Parser) signalResume() resumeSet {
	return resumeSet{
		ids:   []NameID{p.scanner.CloseSquare, p.scanner.ConnectionsID, p.scanner.MonitorsID},
		kinds: []SymbolKind{KindName, KindEOF},
	}
}

// parseSignal parses `NAME ["." NAME]`. On success the current symbol is
// the signal's end marker (':' or ';'), which is left unconsumed. ok is
// false when the signal was malformed; recovery has then already positioned
// the parser and the caller must abandon the unit without further
// diagnostics.
func (p *Parser) parseSignal() (clauseResult, signalRef, bool) {
	ref := signalRef{dev: NoID}

	if p.sym.Kind != KindName {
		p.syntaxError("Expected an output name here", p.signalResume())
		return clauseOK, ref, false
	}
	ref.dev = p.sym.ID
	devSym := p.sym
	ref.devSym = &devSym
	ref.text = p.scanner.SymbolText(p.sym)
	p.advance()
	if p.unclosedComment {
		return clauseFatal, ref, false
	}

	if p.atPunct(p.scanner.Dot) {
		ref.text += "."
		p.advance()
		if p.unclosedComment {
			return clauseFatal, ref, false
		}
		if p.sym.Kind != KindName {
			p.syntaxError("expected a port name here", p.signalResume())
			return clauseOK, ref, false
		}
		portID := p.sym.ID
		portSym := p.sym
		ref.port = &portID
		ref.portSym = &portSym
		ref.text += p.scanner.SymbolText(p.sym)
		p.advance()
		if p.unclosedComment {
			return clauseFatal, ref, false
		}
	}

	if !p.atPunct(p.scanner.Colon) && !p.atPunct(p.scanner.Semicolon) {
		p.syntaxError("missing ':' or ';'", p.signalResume())
		return clauseMissingSemicolon, ref, false
	}
	return clauseOK, ref, true
}

// buildConnection issues the MakeConnection action and translates any fault
// code into a semantic diagnostic.
func (p *Parser) buildConnection(out, in signalRef) {
	code := p.network.MakeConnection(out.dev, out.port, in.dev, in.port)
	codes := p.network.Errors()
	switch code {
	case codes.NoError:
	case codes.DeviceAbsent:
		p.semanticError("Either left or right device is absent.", nil)
	case codes.InputConnected:
		p.semanticError(fmt.Sprintf("%s input is already connected.", in.text), in.devSym)
	case codes.InputToInput:
		p.semanticError("Both ports are inputs.", nil)
	case codes.PortAbsent:
		p.semanticError("Right port id is invalid.", in.portSym)
	case codes.OutputToOutput:
		p.semanticError("Both ports are outputs.", nil)
	default:
		p.semanticError("Connection could not be made.", nil)
	}
}

// parseMonitorsList parses MONITORS "[" { monitor } "]" ";".
func (p *Parser) parseMonitorsList(prevErrors int) {
	p.advance()
	if p.unclosedComment {
		return
	}

	for done := false; !done; done = true {
		if p.endOfFile {
			break
		}
		if !p.atPunct(p.scanner.OpenSquare) {
			p.syntaxError("expected [", resumeSet{
				ids:   []NameID{p.scanner.ConnectionsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			return
		}

		parsing := true
		for parsing {
			if p.endOfFile {
				break
			}
			if p.atPunct(p.scanner.CloseSquare) {
				break
			}

			res := p.parseMonitor(p.errorCount)
			if res == clauseFatal || p.unclosedComment {
				return
			}
			if p.endOfFile {
				break
			}
			if res == clauseMissingSemicolon {
				if p.atID(p.scanner.ConnectionsID) {
					break
				}
				continue
			}

			switch {
			case p.sym.Kind == KindName:
				// Next monitor.
			case p.atPunct(p.scanner.CloseSquare):
				parsing = false
			case p.atID(p.scanner.ConnectionsID):
				parsing = false
			default:
				msg := "Invalid input to a MONITORS list. Expected a signal name or ']'"
				if p.sym.Kind == KindInvalidChar {
					msg = "invalid character encountered"
				}
				p.syntaxError(msg, resumeSet{
					ids:   []NameID{p.scanner.CloseSquare, p.scanner.ConnectionsID},
					kinds: []SymbolKind{KindName, KindEOF},
				})
				if p.unclosedComment || p.endOfFile {
					parsing = false
				} else if p.atPunct(p.scanner.CloseSquare) || p.atID(p.scanner.ConnectionsID) {
					parsing = false
				}
			}
		}

		if p.unclosedComment || p.endOfFile {
			break
		}
		if p.atID(p.scanner.ConnectionsID) {
			break
		}
		if !p.atPunct(p.scanner.CloseSquare) {
			p.syntaxError("expected ]", resumeSet{
				ids:   []NameID{p.scanner.ConnectionsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		p.advance()
		if p.unclosedComment {
			break
		}
		if !p.atPunct(p.scanner.Semicolon) {
			p.syntaxError("expected ;", resumeSet{
				ids:   []NameID{p.scanner.ConnectionsID},
				kinds: []SymbolKind{KindEOF},
			})
			break
		}
		if p.errorCount-prevErrors != 0 {
			break
		}

		p.advance()
		return
	}

	if p.unclosedComment {
		return
	}
	if !p.endOfFile && !p.atID(p.scanner.ConnectionsID) {
		p.advance()
		if p.unclosedComment {
			return
		}
	}
	if d := p.errorCount - prevErrors; d != 0 {
		p.record(fmt.Sprintf("%d error(s) found when parsing the MONITORS list", d))
	}
}

// parseMonitor parses `signal ";"` and, when the unit produced no new
// errors, issues the MakeMonitor action.
func (p *Parser) parseMonitor(prevErrors int) clauseResult {
	if p.atPunct(p.scanner.Semicolon) {
		p.syntaxError("No signal found before semicolon", resumeSet{
			kinds: []SymbolKind{KindName},
		})
		return clauseOK
	}

	res, ref, ok := p.parseSignal()
	if res == clauseFatal {
		return clauseFatal
	}
	if p.endOfFile {
		return clauseOK
	}
	if !ok {
		return clauseMissingSemicolon
	}
	if !p.atPunct(p.scanner.Semicolon) {
		p.syntaxError("expected ; at end of monitor", p.signalResume())
		return clauseOK
	}

	if p.errorCount-prevErrors == 0 {
		p.buildMonitor(ref)
	}
	p.advance()
	if p.unclosedComment {
		return clauseFatal
	}
	return clauseOK
}

// buildMonitor issues the MakeMonitor action and translates any fault code
// into a semantic diagnostic.
func (p *Parser) buildMonitor(ref signalRef) {
	code := p.monitors.MakeMonitor(ref.dev, ref.port)
	codes := p.monitors.Errors()
	switch code {
	case codes.NoError:
	case codes.DeviceAbsent:
		p.semanticError("Device you are trying to monitor is absent.", ref.devSym)
	case codes.NotOutput:
		p.semanticError(fmt.Sprintf("%s is not an output.", ref.text), ref.portSym)
	case codes.MonitorPresent:
		p.semanticError(fmt.Sprintf("Already monitoring %s.", ref.text), ref.devSym)
	default:
		p.semanticError(fmt.Sprintf("Monitor on %s could not be made.", ref.text), ref.devSym)
	}
}
