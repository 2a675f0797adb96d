package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sheev13/logic-simulator/defparser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <circuit.def>",
	Short: "Dump the symbol stream of a definition file",
	Long:  "Scan a circuit definition file and print each symbol with its position and classification.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading definition file: %w", err)
	}

	names := defparser.NewNames()
	scanner := defparser.NewScanner(src, names)

	for {
		sym := scanner.NextSymbol()
		fmt.Printf("%4d:%-4d %-16s %s\n",
			sym.Pos.Line, sym.Pos.Column(), sym.Kind, scanner.SymbolText(sym))
		if sym.Kind == defparser.KindUnclosedComment {
			return fmt.Errorf("unclosed comment at line %d", sym.Pos.Line)
		}
		if sym.Kind == defparser.KindEOF {
			return nil
		}
	}
}
