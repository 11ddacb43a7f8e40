package engine

import (
	"strings"
	"unicode"
)

// Line is one physical line of the document, split into its indentation
// prefix and its content. Blank lines never carry a prefix.
type Line struct {
	Number  int
	Prefix  string
	Content string
}

// Blank returns true if the line has no content
func (l Line) Blank() bool {
	return len(l.Content) == 0
}

// Width is the indentation width, counted in bytes of the prefix.
func (l Line) Width() int {
	return len(l.Prefix)
}

// FindIndentation splits a raw line into its leading run of blanks and tabs
// and the rest of the line, with trailing whitespace stripped.
func FindIndentation(raw string) Line {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	content := trimRight(raw[i:])
	if len(content) == 0 {
		return Line{}
	}
	return Line{Prefix: raw[:i], Content: content}
}

// SplitLines strips trailing whitespace from the whole text and returns its
// lines, numbered from 1.
func SplitLines(text string) []Line {
	text = trimRight(text)
	rawLines := strings.Split(text, "\n")

	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = FindIndentation(raw)
		lines[i].Number = i + 1
	}
	return lines
}

// blockSize returns how many lines belong to the block started by lines[0]:
// the first line plus every following line that is blank or more indented,
// without the blank lines at the end of the run.
func blockSize(lines []Line) int {
	width := lines[0].Width()

	i := 1
	for i < len(lines) {
		if !lines[i].Blank() && lines[i].Width() <= width {
			break
		}
		i++
	}

	// Trailing blank lines belong to whatever follows the block
	for i-1 > 0 && lines[i-1].Blank() {
		i--
	}

	return i
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
