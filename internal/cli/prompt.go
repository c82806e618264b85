package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader asks for one secret value.
type PasswordReader func(prompt string) (string, error)

// TerminalPasswordReader reads without echo when in is a terminal and falls
// back to plain line reads for pipes.
func TerminalPasswordReader(in *os.File, out io.Writer) PasswordReader {
	lines := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if term.IsTerminal(int(in.Fd())) {
			raw, err := term.ReadPassword(int(in.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}
		return readLine(lines)
	}
}

// LinePasswordReader reads one line per prompt, for tests and scripts.
func LinePasswordReader(in io.Reader, out io.Writer) PasswordReader {
	lines := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		return readLine(lines)
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}
