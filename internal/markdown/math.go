// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"
)

// mathBlock matches a ```math fence. The body is captured lazily so a block
// ends at the first closing fence; surrounding whitespace is excluded.
var mathBlock = regexp.MustCompile("(?s)```math\\s*(.*?)\\s*```")

// RewriteMathBlocks replaces every ```math fenced block in text with dollar
// delimited math that pandoc understands. A block holding a single non-blank
// line becomes inline math ($...$); anything else becomes display math
// ($$...$$) with blank lines removed. Text outside the blocks is unchanged.
func RewriteMathBlocks(text string) string {
	locs := mathBlock.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		b.WriteString(mathReplacement(text[loc[2]:loc[3]]))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// mathReplacement converts the captured body of one math block.
func mathReplacement(body string) string {
	lines := nonBlankLines(strings.TrimSpace(body))
	if len(lines) == 1 {
		return "$" + lines[0] + "$"
	}
	return "$$" + strings.Join(lines, "\n") + "$$"
}

// CountMathBlocks returns the number of blocks RewriteMathBlocks would replace.
func CountMathBlocks(text string) int {
	return len(mathBlock.FindAllStringIndex(text, -1))
}

func nonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
