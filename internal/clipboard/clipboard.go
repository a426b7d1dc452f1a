// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clipboard gives the pipeline read and write access to text on the
// system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Provider reads and writes clipboard text.
type Provider interface {
	Read() (string, error)
	Write(text string) error
}

// System is the desktop clipboard. On Linux it needs xclip, xsel or
// wl-clipboard on PATH.
type System struct{}

// Read returns the current clipboard text.
func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("reading clipboard: no clipboard utility available")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// Write replaces the clipboard contents with text.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("writing clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard. It serves text piped on stdin and
// stands in for the system clipboard in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Split reads from one provider and writes to another. mdclip uses it to
// take input from stdin while still returning the output path on the
// system clipboard.
type Split struct {
	From Provider
	To   Provider
}

func (s Split) Read() (string, error)   { return s.From.Read() }
func (s Split) Write(text string) error { return s.To.Write(text) }
