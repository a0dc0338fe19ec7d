package linenoise

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
)

type LineNoise struct {
	*liner.State
}

// New puts the terminal in raw mode; Close must be called to restore it.
func New(completions []string) *LineNoise {
	ln := &LineNoise{liner.NewLiner()}
	ln.SetCtrlCAborts(true)
	if len(completions) > 0 {
		ln.SetCompleter(func(line string) []string {
			var out []string
			for _, c := range completions {
				if len(line) <= len(c) && c[:len(line)] == line {
					out = append(out, c)
				}
			}
			return out
		})
	}
	return ln
}

func (ln *LineNoise) HistoryLoad(filepath string) error {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return err
	}
	_, err = ln.ReadHistory(bytes.NewReader(content))
	return err
}

func (ln *LineNoise) HistorySave(filepath string) error {
	var buf bytes.Buffer
	_, err := ln.WriteHistory(&buf)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, buf.Bytes(), 0644)
}

func (ln *LineNoise) ClearScreen(w io.Writer) error {
	clearSeq := "\x1b[H\x1b[2J"
	_, err := fmt.Fprint(w, clearSeq)
	return err
}
