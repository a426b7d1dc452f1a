// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown implements the two text transforms mdclip applies to
// clipboard content before conversion: a heuristic Markdown detector and a
// rewriter for fenced math blocks.
//
// Both functions are pure and safe for concurrent use.
package markdown

import (
	"regexp"
	"strings"
)

// matchThreshold is the number of per-line pattern hits after which text is
// considered Markdown-like.
const matchThreshold = 2

// ws matches one Unicode whitespace rune. RE2's \s is ASCII-only, so a
// heading or list marker followed by a no-break space would otherwise be
// missed.
const ws = `[\s\v\x1c-\x1f\x85\p{Z}]`

// linePatterns are the constructs counted on each line. Order is irrelevant;
// every pattern that matches a line counts once for that line.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#{1,6}` + ws),                      // heading
	regexp.MustCompile(`\*\*.*?\*\*`),                       // bold
	regexp.MustCompile(`\*.*?\*`),                           // italic
	regexp.MustCompile("`[^`]*`"),                           // inline code
	regexp.MustCompile(`^` + ws + `*[-+*]` + ws),            // unordered list
	regexp.MustCompile(`^` + ws + `*\p{Nd}+\.` + ws),        // ordered list
	regexp.MustCompile(`\[.*?\]\(.*?\)`),                    // link
	regexp.MustCompile(`!\[.*?\]\(.*?\)`),                   // image
	regexp.MustCompile(`^` + ws + `*>`),                     // blockquote
	regexp.MustCompile("```"),                               // code fence
	regexp.MustCompile(`^` + ws + `*[-*_]{3,}` + ws + `*$`), // horizontal rule
}

// structurePatterns are checked against the whole text when the per-line
// count stays below matchThreshold. A single hit is enough.
var structurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,6}` + ws),
	regexp.MustCompile(`(?m)^` + ws + `*[-+*]` + ws),
	regexp.MustCompile(`(?m)^` + ws + `*\p{Nd}+\.` + ws),
}

// IsMarkdownLike reports whether text looks like lightweight markup.
//
// Blank text is never Markdown. Otherwise each line is tested against every
// pattern in linePatterns and the hits are accumulated; reaching two hits
// returns true immediately. If the scan finishes below the threshold, the
// whole text is checked once more for a heading or list item, any one of
// which is sufficient.
func IsMarkdownLike(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	matches := 0
	for _, line := range strings.Split(text, "\n") {
		for _, re := range linePatterns {
			if !re.MatchString(line) {
				continue
			}
			matches++
			if matches >= matchThreshold {
				return true
			}
		}
	}

	for _, re := range structurePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
