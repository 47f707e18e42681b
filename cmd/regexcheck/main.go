// Command regexcheck cross-checks the engine against a test-vector corpus.
//
// It reads two plain text files, each starting with a decimal count N on the
// first line followed by exactly N lines: a file of patterns and a file of
// input strings. Every pattern is checked for the engine's internal laws:
//
//   - parse/print/parse round trip yields a structurally equal AST;
//   - optimized and unoptimized compilations agree, via both evaluators,
//     on every input, and on the group 0 span when both match;
//   - empty-input acceptance equals the AST's epsilon acceptance;
//   - the automaton passes its consistency check before and after reduction.
//
// Mismatches are reported on stdout and the process exits non-zero.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/serrainoalessio/regex/nfa"
	"github.com/serrainoalessio/regex/syntax"
)

func main() {
	regexesPath := flag.String("regexes", "regexes.txt", "pattern vector file")
	inputsPath := flag.String("inputs", "inputs.txt", "input vector file")
	flag.Parse()

	regexes, err := readVectors(*regexesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	inputs, err := readVectors(*inputsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	failures := 0
	for _, pattern := range regexes {
		failures += checkPattern(pattern, inputs)
	}
	if failures > 0 {
		fmt.Printf("%d failure(s) over %d pattern(s) x %d input(s)\n",
			failures, len(regexes), len(inputs))
		os.Exit(1)
	}
	fmt.Printf("ok: %d pattern(s) x %d input(s)\n", len(regexes), len(inputs))
}

// readVectors reads a count-prefixed vector file: N on the first line, then
// exactly N lines of payload.
func readVectors(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing count line", path)
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("%s: bad count line: %v", path, err)
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%s: expected %d lines, got %d", path, n, i)
		}
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func checkPattern(pattern string, inputs []string) int {
	ast, err := syntax.Parse(pattern, true)
	if err != nil {
		fmt.Printf("PARSE %q: %v\n", pattern, err)
		return 1
	}

	// Print round trip.
	printed := ast.String()
	reparsed, err := syntax.Parse(printed, true)
	if err != nil {
		fmt.Printf("REPARSE %q (printed from %q): %v\n", printed, pattern, err)
		return 1
	}
	if !syntax.Equal(ast, reparsed) {
		fmt.Printf("ROUNDTRIP %q: printed form %q parses differently\n", pattern, printed)
		return 1
	}

	plain, _ := syntax.Parse(pattern, false)
	raw := nfa.Compile(plain, false)
	opt := nfa.Compile(ast, true)
	if err := raw.Check(); err != nil {
		fmt.Printf("CHECK %q (unoptimized): %v\n", pattern, err)
		return 1
	}
	if err := opt.Check(); err != nil {
		fmt.Printf("CHECK %q (optimized): %v\n", pattern, err)
		return 1
	}

	failures := 0
	for _, input := range inputs {
		capsRaw := raw.SimulateString(input)
		capsOpt := opt.SimulateString(input)
		matchRaw, matchOpt := capsRaw != nil, capsOpt != nil

		if matchRaw != raw.PowersetString(input) {
			fmt.Printf("EVAL %q on %q: simulate and powerset disagree (unoptimized)\n", pattern, input)
			failures++
		}
		if matchOpt != opt.PowersetString(input) {
			fmt.Printf("EVAL %q on %q: simulate and powerset disagree (optimized)\n", pattern, input)
			failures++
		}
		if matchRaw != matchOpt {
			fmt.Printf("OPT %q on %q: unoptimized=%v optimized=%v\n", pattern, input, matchRaw, matchOpt)
			failures++
		} else if matchRaw && capsRaw[0] != capsOpt[0] {
			fmt.Printf("OPT %q on %q: group 0 %v vs %v\n", pattern, input, capsRaw[0], capsOpt[0])
			failures++
		}
		if input == "" && matchRaw != ast.AcceptsEpsilon() {
			fmt.Printf("EPSILON %q: empty input match=%v, AcceptsEpsilon=%v\n",
				pattern, matchRaw, ast.AcceptsEpsilon())
			failures++
		}
	}
	return failures
}
