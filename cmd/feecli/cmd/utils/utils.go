package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bgentry/speakeasy"
	isatty "github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var buf *bufio.Reader

func GetPassword(prompt string) (password string, err error) {
	if inputIsTty() {
		password, err = speakeasy.Ask(prompt)
	} else {
		password, err = stdinLine()
	}
	return
}

func GetConfirmation() (confirmation string, err error) {
	confirmation, err = stdinLine()
	return
}

func inputIsTty() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func outputIsTty() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func stdinLine() (string, error) {
	if buf == nil {
		buf = bufio.NewReader(os.Stdin)
	}
	line, err := buf.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Error prints the message, in red on a terminal, and exits.
func Error(msg string, args ...interface{}) {
	out := fmt.Sprintf(msg, args...)
	if outputIsTty() {
		out = ansi.Color(out, "red")
	}
	fmt.Print(out)
	os.Exit(1)
}
