// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteMathBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single line becomes inline math",
			text: "```math\nx^2+y^2=z^2\n```",
			want: "$x^2+y^2=z^2$",
		},
		{
			name: "multiple lines become display math",
			text: "```math\na = b\nc = d\n```",
			want: "$$a = b\nc = d$$",
		},
		{
			name: "blank body",
			text: "```math\n\n   \n```",
			want: "$$$$",
		},
		{
			name: "blank lines dropped and indentation kept",
			text: "Before\n\n```math\n  a = b\n\n    + c\n```\n\nAfter",
			want: "Before\n\n$$a = b\n    + c$$\n\nAfter",
		},
		{
			name: "inline fence on one line",
			text: "After ```math E=mc^2``` end",
			want: "After $E=mc^2$ end",
		},
		{
			name: "several blocks",
			text: "```math\nx\n``` and ```math\ny\nz\n```",
			want: "$x$ and $$y\nz$$",
		},
		{
			name: "other fenced blocks untouched",
			text: "```python\nprint(1)\n```",
			want: "```python\nprint(1)\n```",
		},
		{
			name: "body stops at first closing fence",
			text: "```math\na\n```\nb\n```",
			want: "$a$\nb\n```",
		},
		{
			name: "no blocks",
			text: "# Title\n\nSome *text* with $x$.",
			want: "# Title\n\nSome *text* with $x$.",
		},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteMathBlocks(tt.text))
		})
	}
}

func TestRewriteMathBlocks_Idempotent(t *testing.T) {
	inputs := []string{
		"```math\nx^2+y^2=z^2\n```",
		"# Notes\n\n```math\na = b\nc = d\n```\n\nand inline ```math q```.",
		"plain text",
	}
	for _, in := range inputs {
		once := RewriteMathBlocks(in)
		assert.Equal(t, once, RewriteMathBlocks(once), "input %q", in)
		assert.Zero(t, CountMathBlocks(once))
	}
}

func TestCountMathBlocks(t *testing.T) {
	assert.Equal(t, 0, CountMathBlocks("no math here"))
	assert.Equal(t, 1, CountMathBlocks("```math\nx\n```"))
	assert.Equal(t, 2, CountMathBlocks("```math\nx\n``` and ```math\ny\n```"))
}
