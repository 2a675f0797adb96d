package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/Sheev13/logic-simulator/defparser"
	"github.com/Sheev13/logic-simulator/netbuild"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively build and check a circuit definition",
	Long:  "Accumulate definition lines interactively, then check the whole buffer on demand.",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const replHelp = `Commands:
  :check   parse the accumulated buffer and report errors
  :show    print the accumulated buffer
  :reset   discard the buffer
  :quit    exit
Any other input is appended to the buffer.`

func runRepl(cmd *cobra.Command, args []string) error {
	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	historyFile := filepath.Join(os.TempDir(), ".logsim_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = prompt.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = prompt.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(os.Stderr, replHelp)
	var buf []string
	for {
		input, err := prompt.Prompt("logsim> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.TrimSpace(input) {
		case "":
		case ":quit":
			return nil
		case ":help":
			fmt.Fprintln(os.Stderr, replHelp)
		case ":show":
			for _, l := range buf {
				fmt.Fprintln(os.Stderr, l)
			}
		case ":reset":
			buf = nil
			fmt.Fprintln(os.Stderr, "[repl] buffer cleared")
		case ":check":
			checkBuffer(strings.Join(buf, "\n"))
		default:
			buf = append(buf, input)
			prompt.AppendHistory(input)
		}
	}
}

func checkBuffer(src string) {
	names := defparser.NewNames()
	scanner := defparser.NewScanner([]byte(src), names)
	devices := netbuild.NewDevices(names)
	network := netbuild.NewNetwork(names, devices)
	monitors := netbuild.NewMonitors(names, devices)
	parser := defparser.NewParser(names, devices, network, monitors, scanner)

	parser.Parse()
	for _, d := range parser.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}
	if unconnected := network.Unconnected(); len(unconnected) > 0 {
		fmt.Fprintf(os.Stderr, "[repl] unconnected inputs:\n")
		for _, sig := range unconnected {
			fmt.Fprintf(os.Stderr, "  - %s\n", signalText(names, sig))
		}
	}
}
