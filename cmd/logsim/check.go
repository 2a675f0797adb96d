package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sheev13/logic-simulator/defparser"
	"github.com/Sheev13/logic-simulator/netbuild"
)

var checkCmd = &cobra.Command{
	Use:   "check <circuit.def>",
	Short: "Check a circuit definition file",
	Long:  "Parse a circuit definition file and report every syntax and semantic error found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "Emit a JSON report on stdout")

	rootCmd.AddCommand(checkCmd)
}

// checkReport is the machine-readable result of one check run.
type checkReport struct {
	ID          string   `json:"id"`
	File        string   `json:"file"`
	OK          bool     `json:"ok"`
	ErrorCount  int      `json:"error_count"`
	Diagnostics []string `json:"diagnostics"`
	Devices     []string `json:"devices"`
	Monitors    []string `json:"monitors"`
	Unconnected []string `json:"unconnected,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	file := args[0]
	verbose := viper.GetBool("verbose")
	jsonOut, _ := cmd.Flags().GetBool("json")

	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading definition file: %w", err)
	}

	names := defparser.NewNames()
	scanner := defparser.NewScanner(src, names)
	devices := netbuild.NewDevices(names)
	network := netbuild.NewNetwork(names, devices)
	monitors := netbuild.NewMonitors(names, devices)
	parser := defparser.NewParser(names, devices, network, monitors, scanner)

	ok := parser.Parse()
	for _, d := range parser.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[check] devices:\n")
		for _, dev := range devices.All() {
			name, _ := names.NameString(dev.ID)
			fmt.Fprintf(os.Stderr, "  - %s (%s)\n", name, dev.Kind)
		}
		fmt.Fprintf(os.Stderr, "[check] monitors:\n")
		for _, sig := range monitors.Points() {
			fmt.Fprintf(os.Stderr, "  - %s\n", signalText(names, sig))
		}
	}

	if jsonOut {
		report := checkReport{
			ID:          uuid.NewString(),
			File:        file,
			OK:          ok,
			ErrorCount:  parser.ErrorCount(),
			Diagnostics: parser.Diagnostics(),
		}
		for _, dev := range devices.All() {
			name, _ := names.NameString(dev.ID)
			report.Devices = append(report.Devices, fmt.Sprintf("%s (%s)", name, dev.Kind))
		}
		for _, sig := range monitors.Points() {
			report.Monitors = append(report.Monitors, signalText(names, sig))
		}
		for _, sig := range network.Unconnected() {
			report.Unconnected = append(report.Unconnected, signalText(names, sig))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if !ok {
		return fmt.Errorf("%d error(s) in %s", parser.ErrorCount(), file)
	}
	fmt.Fprintf(os.Stderr, "[check] %s: no errors\n", file)
	return nil
}

// signalText renders a signal as it appears in definition files.
func signalText(names *defparser.Names, sig netbuild.Signal) string {
	dev, err := names.NameString(sig.Dev)
	if err != nil {
		return "?"
	}
	if sig.Port == defparser.NoID {
		return dev
	}
	port, err := names.NameString(sig.Port)
	if err != nil {
		return dev
	}
	return dev + "." + port
}
