// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the clipboard-to-document conversion: read the
// clipboard, check for Markdown, rewrite math blocks, convert with pandoc and
// put the resulting file path back on the clipboard.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/mdclip/internal/clipboard"
	"github.com/pdiddy/mdclip/internal/convert"
	"github.com/pdiddy/mdclip/internal/markdown"
	"github.com/pdiddy/mdclip/pkg/types"
)

// Failure classes reported by Run and Prepare. Every returned error wraps
// exactly one of these.
var (
	ErrClipboard         = errors.New("clipboard unavailable")
	ErrEmptyInput        = errors.New("clipboard is empty")
	ErrNotMarkdown       = errors.New("content is not in Markdown format")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrConversionTimeout = errors.New("conversion timed out")
	ErrOutputMissing     = errors.New("output file was not created")
)

const (
	// timestampLayout gives output names second resolution.
	timestampLayout = "20060102_150405"
	outputExt       = ".docx"
)

// Deps are the collaborators a run talks to.
type Deps struct {
	Clipboard clipboard.Provider
	Converter convert.Converter

	// Now defaults to time.Now.
	Now func() time.Time

	// TempDir holds the intermediate Markdown file; empty means os.TempDir.
	TempDir string
}

// Prepared is clipboard text that passed detection and has been rewritten.
type Prepared struct {
	Text       string
	InputChars int
	MathBlocks int
}

// Prepare reads the clipboard, rejects blank or non-Markdown text and
// rewrites math blocks. It writes progress lines to w.
func Prepare(ctx context.Context, cb clipboard.Provider, w io.Writer) (Prepared, error) {
	log := zerolog.Ctx(ctx)

	fmt.Fprintln(w, "Reading content from clipboard...")
	raw, err := cb.Read()
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	if strings.TrimSpace(raw) == "" {
		return Prepared{}, ErrEmptyInput
	}

	chars := utf8.RuneCountInString(raw)
	fmt.Fprintf(w, "Clipboard content length: %d characters\n", chars)

	fmt.Fprintln(w, "Checking if content is Markdown...")
	if !markdown.IsMarkdownLike(raw) {
		return Prepared{}, ErrNotMarkdown
	}
	fmt.Fprintln(w, "Content identified as Markdown")

	fmt.Fprintln(w, "Converting LaTeX formulas...")
	blocks := markdown.CountMathBlocks(raw)
	text := markdown.RewriteMathBlocks(raw)
	log.Debug().Int("math_blocks", blocks).Int("chars", chars).Msg("Rewrote math blocks")

	return Prepared{Text: text, InputChars: chars, MathBlocks: blocks}, nil
}

// OutputPath returns the document path for a run started at now.
func OutputPath(cfg types.Config, now time.Time) string {
	name := cfg.FilePrefix + now.Format(timestampLayout) + outputExt
	return filepath.Join(cfg.OutputDir, name)
}

// Run performs one full conversion and returns where the document was
// written. An existing document with the same name is never touched; the
// new one gets a numeric suffix instead. The intermediate Markdown file is
// always removed; the new document is removed when any step after conversion
// starts fails.
func Run(ctx context.Context, cfg types.Config, deps Deps, w io.Writer) (types.Result, error) {
	log := zerolog.Ctx(ctx)

	prep, err := Prepare(ctx, deps.Clipboard, w)
	if err != nil {
		return types.Result{}, err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	outPath, err := filepath.Abs(OutputPath(cfg, now()))
	if err != nil {
		return types.Result{}, fmt.Errorf("%w: resolving output path: %w", ErrConversionFailed, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return types.Result{}, fmt.Errorf("%w: creating output directory: %w", ErrConversionFailed, err)
	}
	outPath, err = unusedPath(outPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	fmt.Fprintf(w, "Creating DOCX file at: %s\n", outPath)

	mdPath, err := writeTemp(deps.TempDir, prep.Text)
	if err != nil {
		return types.Result{}, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	fmt.Fprintf(w, "Created temporary Markdown file: %s\n", mdPath)
	defer func() {
		if err := os.Remove(mdPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", mdPath).Msg("Failed to remove temporary file")
			return
		}
		fmt.Fprintf(w, "Cleaned up temporary file: %s\n", mdPath)
	}()

	if err := convertAndPublish(ctx, cfg, deps, mdPath, outPath, w); err != nil {
		if rmErr := os.Remove(outPath); rmErr == nil {
			log.Debug().Str("path", outPath).Msg("Removed incomplete output")
		}
		return types.Result{}, err
	}

	return types.Result{
		OutputPath: outPath,
		InputChars: prep.InputChars,
		MathBlocks: prep.MathBlocks,
	}, nil
}

func convertAndPublish(ctx context.Context, cfg types.Config, deps Deps, mdPath, outPath string, w io.Writer) error {
	log := zerolog.Ctx(ctx)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	fmt.Fprintln(w, "Running pandoc conversion...")
	start := time.Now()
	if err := deps.Converter.Convert(ctx, mdPath, outPath); err != nil {
		if errors.Is(err, convert.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s: %w", ErrConversionTimeout, cfg.Timeout, err)
		}
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Str("output", outPath).Msg("Converter finished")

	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("%w: %s", ErrOutputMissing, outPath)
	}
	fmt.Fprintln(w, "Conversion completed successfully!")
	fmt.Fprintf(w, "Output file: %s\n", outPath)

	if err := deps.Clipboard.Write(outPath); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	fmt.Fprintln(w, "File path copied to clipboard")
	return nil
}

// maxCollisions bounds the numeric suffixes unusedPath tries.
const maxCollisions = 1000

// unusedPath returns path, or path with a _N suffix before the extension when
// a file of that name already exists. Two runs within the same second must
// never overwrite, or on failure delete, an earlier document.
func unusedPath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 1; n <= maxCollisions; n++ {
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("checking output path: %w", err)
		}
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	return "", fmt.Errorf("no free output name for %s", path)
}

// writeTemp stores text in a new .md file under dir.
func writeTemp(dir, text string) (string, error) {
	f, err := os.CreateTemp(dir, "mdclip-*.md")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temporary file: %w", err)
	}
	return f.Name(), nil
}
