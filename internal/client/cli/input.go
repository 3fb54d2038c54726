package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints prompt to w and reads one trimmed line. A partial
// last line before EOF is returned as is.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo. The caller
// wipes the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

var errOutOfRange = errors.New("value out of range")

// GetInt asks for a whole number in [lo, hi] until one is given.
func GetInt(reader *bufio.Reader, prompt string, lo, hi int, w io.Writer) (int, error) {
	for {
		v, ok, err := GetOptionalInt(reader, prompt, lo, hi, w)
		if err != nil {
			return 0, err
		}
		if ok {
			return v, nil
		}
	}
}

// GetOptionalInt is GetInt where a blank answer means "skip". Invalid input
// is reported to w and reads as skipped.
func GetOptionalInt(reader *bufio.Reader, prompt string, lo, hi int, w io.Writer) (int, bool, error) {
	text, err := GetSimpleText(reader, fmt.Sprintf("%s (%d-%d)", prompt, lo, hi), w)
	if err != nil {
		return 0, false, err
	}
	if text == "" {
		return 0, false, nil
	}
	v, err := parseInRange(text, lo, hi)
	if err != nil {
		fmt.Fprintf(w, "Please enter a number from %d to %d.\n", lo, hi)
		return 0, false, nil
	}
	return v, true, nil
}

func parseInRange(text string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, errOutOfRange
	}
	return v, nil
}

// GetChoices reads a comma-separated answer. Numbers pick from options
// (1-based); anything else is taken as free text.
func GetChoices(reader *bufio.Reader, prompt string, options []string, w io.Writer) ([]string, error) {
	for i, o := range options {
		fmt.Fprintf(w, "  %d. %s\n", i+1, o)
	}
	text, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := parseInRange(part, 1, len(options)); err == nil {
			part = options[n-1]
		}
		out = append(out, part)
	}
	return out, nil
}

// Confirm asks a yes/no question; only "y" and "yes" agree.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	text, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
