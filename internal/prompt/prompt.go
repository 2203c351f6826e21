package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Terminal reads the answer from In after writing the question to Out.
// Anything other than "y" or "yes" is a no, as is end of input.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminal returns a Terminal prompt.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Confirm implements Confirmer.
func (t *Terminal) Confirm(question string) (bool, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	if _, err := fmt.Fprintf(t.Out, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Always answers every question with its value without asking.
type Always bool

// Confirm implements Confirmer.
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}
