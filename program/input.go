package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

type datasetMsg struct{ ds *contextscale.Dataset }

type loadFailedMsg struct{ err error }

type inputTextMsg struct{ text string }

type counterMsg struct{ counter tokenCounter }

type errMsg struct{ err error }

func loadDataset(path string) tui.Cmd {
	return func() tui.Msg {
		ds, err := contextscale.LoadDataset(path)
		if err != nil {
			return loadFailedMsg{err}
		}
		return datasetMsg{ds}
	}
}

// readInputText seeds the estimator from -in or from piped stdin.
func readInputText() tui.Cmd {
	return func() tui.Msg {
		r, ok, err := openInput()
		if err != nil {
			return errMsg{err}
		}
		if !ok {
			return nil
		}
		defer func() { _ = r.Close() }()
		data, err := io.ReadAll(io.LimitReader(r, int64(config.MaxInputBytes)))
		if err != nil {
			return errMsg{fmt.Errorf("read input: %w", err)}
		}
		return inputTextMsg{strings.ToValidUTF8(string(data), "")}
	}
}

func openInput() (io.ReadCloser, bool, error) {
	if config.InputPath != "" {
		f, err := os.Open(config.InputPath)
		if err != nil {
			return nil, false, err
		}
		return f, true, nil
	}
	if term.IsTerminal(os.Stdin.Fd()) {
		return nil, false, nil
	}
	return io.NopCloser(os.Stdin), true, nil
}

// tokenCounter gives an exact token count for text.
type tokenCounter interface {
	Name() string
	Count(text string) int
}

type tiktokenCounter struct {
	name string
	enc  *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Name() string { return c.name }

func (c *tiktokenCounter) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// loadCounter resolves a tiktoken encoding. The first use of an encoding
// downloads its ranks, so this runs off the UI goroutine.
func loadCounter(encoding string) tui.Cmd {
	if encoding == "" {
		return nil
	}
	return func() tui.Msg {
		enc, err := tiktoken.GetEncoding(encoding)
		if err != nil {
			return errMsg{fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)}
		}
		return counterMsg{&tiktokenCounter{name: encoding, enc: enc}}
	}
}
