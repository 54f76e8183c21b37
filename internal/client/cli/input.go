package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped in tests so they never touch the terminal.
var readPassword = term.ReadPassword

var errEmptyInput = errors.New("no input")

// readLine returns the next line without its line ending. A final line
// without a newline is still returned; io.EOF is only reported when nothing
// was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText prints prompt followed by a "> " marker on its own line and
// returns the trimmed answer.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetInt reads a base-10 integer such as a planet or character id.
func GetInt(reader *bufio.Reader, prompt string, w io.Writer) (int64, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// GetChoice reads one of choices, case-insensitively. An empty answer picks
// def when def is non-empty.
func GetChoice(reader *bufio.Reader, prompt string, choices []string, def string, w io.Writer) (string, error) {
	hint := strings.Join(choices, ", ")
	if def != "" {
		hint += "; empty for " + def
	}
	s, err := GetSimpleText(reader, fmt.Sprintf("%s (%s)", prompt, hint), w)
	if err != nil {
		return "", err
	}
	s = strings.ToLower(s)
	if s == "" && def != "" {
		return def, nil
	}
	if !slices.Contains(choices, s) {
		return "", fmt.Errorf("%q is not one of: %s", s, strings.Join(choices, ", "))
	}
	return s, nil
}

// GetPassword reads a password from the terminal without echo.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errEmptyInput
	}
	return pw, nil
}

// GetMultiline collects lines until an empty one (or end of input) and
// returns them joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(finish with an empty line)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			break
		}
		lines = append(lines, line)
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return "", errEmptyInput
	}
	return text, nil
}
