// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result describes a completed clipboard conversion.
type Result struct {
	// OutputPath is the absolute path of the generated document.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// InputChars is the length of the clipboard text in characters.
	InputChars int `json:"input_chars" yaml:"input_chars"`

	// MathBlocks is the number of fenced math blocks that were rewritten.
	MathBlocks int `json:"math_blocks" yaml:"math_blocks"`
}
