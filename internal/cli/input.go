package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// noTerminal marks input that is not an interactive terminal.
const noTerminal = -1

// terminalFd returns the descriptor of in when it is a terminal, or
// noTerminal.
func terminalFd(in io.Reader) int {
	f, ok := in.(*os.File)
	if !ok {
		return noTerminal
	}
	fd := int(f.Fd())
	if !isTerminal(fd) {
		return noTerminal
	}
	return fd
}

// GetSimpleText prints prompt to w and reads a single line of input from
// reader. Surrounding whitespace is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "  "+prompt+": "); err != nil {
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

// GetPassword prompts for a secret. On a terminal (fd != noTerminal) it reads
// without echo; otherwise it reads a line from reader, which keeps piped and
// scripted input working.
//
// Input already buffered in reader (pasted lines, type-ahead) is consumed
// from reader even on a terminal, since the raw fd no longer sees it. Such a
// line was echoed when it was typed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer, fd int) (string, error) {
	if fd == noTerminal || reader.Buffered() > 0 {
		return GetSimpleText(reader, prompt, w)
	}
	if _, err := fmt.Fprint(w, "  "+prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// GetID reads a positive record id. Empty input returns ok=false.
func GetID(reader *bufio.Reader, prompt string, w io.Writer) (id int64, ok bool, err error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, false, err
	}
	if s == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, errInvalidID
	}
	return id, true, nil
}

// Confirm asks a yes/no question. Only "y" or "yes" count as yes.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" (y/N)", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

var errInvalidID = errors.New("invalid ID")
