package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
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

// GetOptionalText is GetSimpleText where an empty answer yields nil.
func GetOptionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt+" (empty to skip)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// GetOptionalNumber reads a number; an empty answer yields nil.
func GetOptionalNumber(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	s, err := GetSimpleText(reader, prompt+" (empty to skip)", w)
	if err != nil || s == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &f, nil
}

// GetNumberMap reads "name=value" lines until an empty line. It returns nil
// when nothing was entered.
func GetNumberMap(reader *bufio.Reader, prompt string, w io.Writer) (map[string]float64, error) {
	if _, err := fmt.Fprint(w, prompt+" as name=value (empty line to finish)\n"); err != nil {
		return nil, err
	}

	var out map[string]float64
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return out, nil
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", line)
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if perr != nil {
			return nil, fmt.Errorf("%q is not a number", value)
		}
		if out == nil {
			out = map[string]float64{}
		}
		out[strings.TrimSpace(name)] = f
		if err != nil {
			return out, nil
		}
	}
}
