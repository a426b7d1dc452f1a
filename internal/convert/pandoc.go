// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

const defaultPandoc = "pandoc"

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// PandocConverter runs a pandoc binary installed on the host.
type PandocConverter struct {
	bin  string
	exec executor
}

// NewPandocConverter resolves bin (default "pandoc") on PATH.
func NewPandocConverter(bin string) (*PandocConverter, error) {
	return newPandocConverter(bin, osExecutor{})
}

func newPandocConverter(bin string, exec executor) (*PandocConverter, error) {
	if bin == "" {
		bin = defaultPandoc
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("pandoc not available (%s): %w", bin, err)
	}
	return &PandocConverter{bin: path, exec: exec}, nil
}

// Convert runs pandoc on inputPath and writes a docx to outputPath.
func (p *PandocConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	args := []string{inputPath, "-f", "markdown", "-t", "docx", "-o", outputPath}

	var stderr bytes.Buffer
	if err := p.exec.Run(ctx, p.bin, args, io.Discard, &stderr); err != nil {
		return processError(ctx, "pandoc", err, stderr.String())
	}
	return nil
}
