// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a Markdown file into a Word document with pandoc,
// either from a local binary or from a container image.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/mdclip/internal/container"
	"github.com/pdiddy/mdclip/pkg/types"
)

// ErrTimeout is returned when a conversion outlives its context deadline.
var ErrTimeout = errors.New("conversion timed out")

// Converter transforms the Markdown file at inputPath into a document at
// outputPath. Implementations must honour ctx cancellation and deadlines.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// ExitError reports a converter process that ran but did not succeed.
type ExitError struct {
	// Backend names the tool that failed ("pandoc", "docker", "podman").
	Backend string

	// Stderr is the trimmed diagnostic output of the process.
	Stderr string

	// Err is the error returned by the process runner.
	Err error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s exited: %v: %s", e.Backend, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }

// New builds the converter selected by cfg.Backend and checks that the
// underlying tool is usable.
func New(ctx context.Context, cfg types.Config) (Converter, error) {
	switch cfg.Backend {
	case types.BackendPandoc, "":
		return NewPandocConverter(cfg.PandocPath)
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(ctx, rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

// processError maps a failed run to ErrTimeout, the context error, or an
// *ExitError carrying stderr.
func processError(ctx context.Context, backend string, err error, stderr string) error {
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", backend, ErrTimeout)
	case ctxErr != nil:
		return ctxErr
	}
	return &ExitError{Backend: backend, Stderr: strings.TrimSpace(stderr), Err: err}
}
