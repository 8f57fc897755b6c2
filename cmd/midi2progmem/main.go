// Package main is the entry point for the midi2progmem CLI
package main

import (
	"fmt"
	"os"

	"github.com/james-see/midi2progmem/pkg/api"
	"github.com/james-see/midi2progmem/pkg/encoder"
	"github.com/james-see/midi2progmem/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	arrayName  string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "midi2progmem",
	Short: "Convert MIDI files to PROGMEM byte arrays for firmware",
	Long: `midi2progmem converts a standard MIDI file's note events into a compact
6-byte-per-event encoding and emits it as C source (PROGMEM array literal,
count constants and accessor routine) ready to paste into microcontroller
firmware.

Examples:
  midi2progmem convert song.mid
  midi2progmem convert song.mid -o song.h
  midi2progmem convert song.mid --array-name SONG_DATA
  midi2progmem tui
  midi2progmem serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.mid>",
	Short: "Convert a MIDI file to a PROGMEM array",
	Long:  `Parses the MIDI file, encodes its note on/off events and prints the generated C source to stdout (or writes it with -o).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .h file path (default: stdout)")
	convertCmd.Flags().StringVar(&arrayName, "array-name", encoder.DefaultArrayName, "C identifier for the generated array")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	conv := encoder.NewConverter()
	enc, err := conv.ParseFile(input)
	if err != nil {
		// A file that cannot be opened or parsed is reported without
		// emitting any array output; the invocation itself still
		// finishes normally.
		fmt.Fprintf(os.Stderr, "Error opening MIDI file: %v\n", err)
		return nil
	}

	source, err := encoder.Render(enc, arrayName)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(source), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Converted %s -> %s (%d events, %d ticks/quarter)\n",
			input, outputFile, enc.Count(), enc.Resolution)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%d events, %d ticks/quarter\n", enc.Count(), enc.Resolution)
	fmt.Print(source)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
