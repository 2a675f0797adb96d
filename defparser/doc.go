// Package defparser implements the front end for the circuit definition
// language: a file of DEVICES/CONNECTIONS/MONITORS sections describing a
// logic network.
//
// The front end is structured as three layers:
//
//   - Names: a bidirectional string-to-id interning table shared by every
//     component, which also hands out disjoint blocks of semantic error
//     codes to collaborators.
//   - Scanner: converts raw bytes into a stream of Symbols, stripping
//     whitespace and both comment styles, and tagging each symbol with the
//     position data needed to render caret diagnostics.
//   - Parser: a hand-rolled recursive-descent parser with panic-mode error
//     recovery. It keeps scanning after every fault, resynchronizing on
//     semicolons, so a single Parse call reports every independent error in
//     the file.
//
// The parser does not build the logic network itself. Completed units are
// handed to Devices/Network/Monitors collaborators, and any semantic error
// codes they return are translated into caret diagnostics. Usage:
//
//	names := defparser.NewNames()
//	scanner := defparser.NewScanner(src, names)
//	parser := defparser.NewParser(names, devices, network, monitors, scanner)
//	if !parser.Parse() {
//	    for _, d := range parser.Diagnostics() {
//	        fmt.Println(d)
//	    }
//	}
package defparser
