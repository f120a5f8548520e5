package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

// Line-oriented operator prompt. Implements report.Prompter.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Returns the answer without its line terminator. A final line without a
// newline is still returned; io.EOF is only reported when nothing was read.
func (lp *linePrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(lp.out, promptStyle.Render(question))
	line, err := lp.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
