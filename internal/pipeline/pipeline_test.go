// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdclip/internal/clipboard"
	"github.com/pdiddy/mdclip/internal/convert"
	"github.com/pdiddy/mdclip/pkg/types"
)

// fakeConverter records its input and writes a canned document unless err
// is set.
type fakeConverter struct {
	err       error
	skipWrite bool
	block     bool

	calls   int
	input   string
	tmpPath string
}

func (f *fakeConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	f.calls++
	f.tmpPath = inputPath
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	f.input = string(data)

	if f.block {
		<-ctx.Done()
		return convert.ErrTimeout
	}
	if !f.skipWrite {
		if err := os.WriteFile(outputPath, []byte("docx"), 0o644); err != nil {
			return err
		}
	}
	return f.err
}

// failingClipboard fails reads or writes on demand.
type failingClipboard struct {
	text     string
	readErr  error
	writeErr error
}

func (f *failingClipboard) Read() (string, error) { return f.text, f.readErr }
func (f *failingClipboard) Write(string) error    { return f.writeErr }

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		OutputDir:  filepath.Join(t.TempDir(), "out"),
		FilePrefix: "markdown_conversion_",
		Timeout:    time.Second,
	}
}

func testDeps(t *testing.T, cb clipboard.Provider, conv convert.Converter) Deps {
	t.Helper()
	return Deps{
		Clipboard: cb,
		Converter: conv,
		Now:       func() time.Time { return fixedNow },
		TempDir:   t.TempDir(),
	}
}

func TestRun_Success(t *testing.T) {
	cfg := testConfig(t)
	cb := clipboard.NewMemory("# Notes\n\n```math\nx^2+y^2=z^2\n```\n")
	conv := &fakeConverter{}
	deps := testDeps(t, cb, conv)

	var log bytes.Buffer
	res, err := Run(context.Background(), cfg, deps, &log)
	require.NoError(t, err)

	wantPath := filepath.Join(cfg.OutputDir, "markdown_conversion_20260314_150926.docx")
	assert.Equal(t, wantPath, res.OutputPath)
	assert.Equal(t, 1, res.MathBlocks)
	assert.FileExists(t, wantPath)

	assert.Equal(t, "# Notes\n\n$x^2+y^2=z^2$\n", conv.input)

	copied, _ := cb.Read()
	assert.Equal(t, wantPath, copied)

	assert.NoFileExists(t, conv.tmpPath, "temporary markdown should be removed")
	assert.Contains(t, log.String(), "Content identified as Markdown")
	assert.Contains(t, log.String(), "File path copied to clipboard")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name      string
		clip      clipboard.Provider
		conv      *fakeConverter
		timeout   time.Duration
		wantErr   error
		wantCalls int
	}{
		{
			name:    "clipboard read error",
			clip:    &failingClipboard{readErr: errors.New("xclip missing")},
			conv:    &fakeConverter{},
			wantErr: ErrClipboard,
		},
		{
			name:    "empty clipboard",
			clip:    clipboard.NewMemory("  \n\t"),
			conv:    &fakeConverter{},
			wantErr: ErrEmptyInput,
		},
		{
			name:    "not markdown",
			clip:    clipboard.NewMemory("just an ordinary sentence."),
			conv:    &fakeConverter{},
			wantErr: ErrNotMarkdown,
		},
		{
			name:      "converter exits non-zero",
			clip:      clipboard.NewMemory("# Title"),
			conv:      &fakeConverter{err: &convert.ExitError{Backend: "pandoc", Err: errors.New("exit status 1")}},
			wantErr:   ErrConversionFailed,
			wantCalls: 1,
		},
		{
			name:      "converter times out",
			clip:      clipboard.NewMemory("# Title"),
			conv:      &fakeConverter{block: true},
			timeout:   20 * time.Millisecond,
			wantErr:   ErrConversionTimeout,
			wantCalls: 1,
		},
		{
			name:      "output missing after success",
			clip:      clipboard.NewMemory("# Title"),
			conv:      &fakeConverter{skipWrite: true},
			wantErr:   ErrOutputMissing,
			wantCalls: 1,
		},
		{
			name:      "clipboard write error",
			clip:      &failingClipboard{text: "# Title", writeErr: errors.New("no display")},
			conv:      &fakeConverter{},
			wantErr:   ErrClipboard,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.timeout > 0 {
				cfg.Timeout = tt.timeout
			}
			deps := testDeps(t, tt.clip, tt.conv)

			var log bytes.Buffer
			_, err := Run(context.Background(), cfg, deps, &log)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCalls, tt.conv.calls)

			if tt.conv.tmpPath != "" {
				assert.NoFileExists(t, tt.conv.tmpPath, "temporary markdown should be removed")
			}
			assert.NoFileExists(t, OutputPath(cfg, fixedNow), "failed runs leave no output")

			entries, err := os.ReadDir(deps.TempDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRun_NameCollision(t *testing.T) {
	tests := []struct {
		name     string
		conv     *fakeConverter
		existing []string
		wantPath string
		wantErr  error
	}{
		{
			name:     "success takes next suffix",
			conv:     &fakeConverter{},
			existing: []string{"markdown_conversion_20260314_150926.docx"},
			wantPath: "markdown_conversion_20260314_150926_1.docx",
		},
		{
			name: "suffixes skip taken names",
			conv: &fakeConverter{},
			existing: []string{
				"markdown_conversion_20260314_150926.docx",
				"markdown_conversion_20260314_150926_1.docx",
			},
			wantPath: "markdown_conversion_20260314_150926_2.docx",
		},
		{
			name:     "failed conversion keeps earlier document",
			conv:     &fakeConverter{err: &convert.ExitError{Backend: "pandoc", Err: errors.New("exit status 1")}},
			existing: []string{"markdown_conversion_20260314_150926.docx"},
			wantErr:  ErrConversionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
			for _, name := range tt.existing {
				require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, name), []byte("earlier"), 0o644))
			}
			deps := testDeps(t, clipboard.NewMemory("# Title"), tt.conv)

			var log bytes.Buffer
			res, err := Run(context.Background(), cfg, deps, &log)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(cfg.OutputDir, tt.wantPath), res.OutputPath)
				assert.FileExists(t, res.OutputPath)
			}

			for _, name := range tt.existing {
				data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
				require.NoError(t, err, "earlier document %s must survive", name)
				assert.Equal(t, "earlier", string(data))
			}
		})
	}
}

func TestRun_ConverterErrorMessage(t *testing.T) {
	cfg := testConfig(t)
	conv := &fakeConverter{err: &convert.ExitError{Backend: "pandoc", Stderr: "bad input", Err: errors.New("exit status 1")}}
	deps := testDeps(t, clipboard.NewMemory("# Title"), conv)

	var log bytes.Buffer
	_, err := Run(context.Background(), cfg, deps, &log)
	require.Error(t, err)

	assert.Equal(t, "conversion failed: pandoc exited: exit status 1: bad input", err.Error())
	assert.Equal(t, 1, strings.Count(err.Error(), "conversion failed"))
}

func TestUnusedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.docx")

	got, err := unusedPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	got, err = unusedPath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_1.docx"), got)
}

func TestPrepare(t *testing.T) {
	var log bytes.Buffer
	cb := clipboard.NewMemory("- item\n\n```math\na = b\nc = d\n```")
	prep, err := Prepare(context.Background(), cb, &log)
	require.NoError(t, err)

	assert.Equal(t, "- item\n\n$$a = b\nc = d$$", prep.Text)
	assert.Equal(t, 1, prep.MathBlocks)
	assert.Equal(t, 31, prep.InputChars)
	assert.Contains(t, log.String(), "Clipboard content length: 31 characters")
}

func TestOutputPath(t *testing.T) {
	cfg := types.Config{OutputDir: "/docs", FilePrefix: "markdown_conversion_"}
	assert.Equal(t, "/docs/markdown_conversion_20260314_150926.docx", OutputPath(cfg, fixedNow))

	later := OutputPath(cfg, fixedNow.Add(time.Second))
	assert.NotEqual(t, OutputPath(cfg, fixedNow), later)
}
