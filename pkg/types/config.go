package types

import "time"

// ConversionBackend identifies the tool that turns Markdown into a document.
type ConversionBackend string

const (
	// BackendPandoc runs a pandoc binary found on PATH.
	BackendPandoc ConversionBackend = "pandoc"
	// BackendContainer runs pandoc from a container image under docker or podman.
	BackendContainer ConversionBackend = "container"
)

// Valid reports whether b names a known backend.
func (b ConversionBackend) Valid() bool {
	switch b {
	case BackendPandoc, BackendContainer:
		return true
	}
	return false
}

// Config holds the settings for one mdclip run. It is resolved once at
// startup and passed explicitly to the pipeline.
type Config struct {
	// OutputDir is the directory that receives generated documents.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// FilePrefix is prepended to the timestamp in output file names
	// (default "markdown_conversion_").
	FilePrefix string `json:"file_prefix" yaml:"file_prefix" mapstructure:"file_prefix"`

	// Backend selects the converter: pandoc or container.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PandocPath is the pandoc executable used by the pandoc backend.
	PandocPath string `json:"pandoc_path" yaml:"pandoc_path" mapstructure:"pandoc_path"`

	// Image is the pandoc image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Timeout bounds a single conversion (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// PauseOnExit waits for Enter before the process exits when stdin is a
	// terminal, so a window launched from a desktop shortcut stays open.
	PauseOnExit bool `json:"pause_on_exit" yaml:"pause_on_exit" mapstructure:"pause_on_exit"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}
