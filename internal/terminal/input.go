package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// Interactive reports whether f is attached to a terminal. Prompts are only
// printed for interactive sessions so piped input produces clean output.
func Interactive(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// readLine reads one line and trims the trailing newline. If EOF occurs
// after some input was read, the partial line is returned.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readMultiline reads lines until an empty line or EOF and joins them
// with '\n'.
func readMultiline(r *bufio.Reader) string {
	var lines []string
	for {
		line, err := readLine(r)
		if err != nil || line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
