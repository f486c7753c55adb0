package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funmulti/internal/scenario"
)

const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[2m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// colorize is disabled when stdout is not a terminal or -no-color is given.
var colorize = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func paint(code, s string) string {
	if !colorize {
		return s
	}
	return code + s + ansiReset
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: funmulti [run] <scenario.yaml> [-no-color]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Resolves every call in the scenario against its registered methods")
	fmt.Fprintln(os.Stderr, "and reports the winning method or the dispatch failure.")
}

func main() {
	var path string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "run":
			// optional subcommand
		case "-no-color", "--no-color":
			colorize = false
		case "-h", "-help", "--help":
			printUsage()
			return
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "funmulti: unknown flag %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			path = arg
		}
	}
	if path == "" {
		printUsage()
		os.Exit(2)
	}

	failed, err := runScenario(path, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funmulti: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// runScenario loads, builds and resolves a scenario file, writing one report
// line per call. It returns the number of failed calls.
func runScenario(path string, out io.Writer) (int, error) {
	file, err := scenario.Load(path)
	if err != nil {
		return 0, err
	}
	s, err := file.Build()
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range s.Run() {
		header := r.Call.Op + "(" + strings.Join(r.Call.Args, ", ") + ")"
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n", paint(ansiRed, "FAIL"), header)
			for _, line := range strings.Split(r.Err.Error(), "\n") {
				fmt.Fprintf(out, "     %s\n", paint(ansiRed, line))
			}
			continue
		}
		fmt.Fprintf(out, "%s %s -> %s %s\n",
			paint(ansiGreen, "  OK"), header, r.Label,
			paint(ansiDim, r.Call.Op+r.Sig.String()))
	}
	return failed, nil
}
