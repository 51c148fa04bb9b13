// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom

import (
	"strconv"
	"strings"
)

// line is one tokenised GEDCOM line: "<level> [@pointer@] <tag> [value]".
type line struct {
	Level   int
	Pointer string
	Tag     string
	Value   string
}

// lineBreaks normalises CRLF and lone CR to LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// tokenize splits text into lines, dropping blank and malformed ones.
func tokenize(text string) []line {
	raw := strings.Split(lineBreaks.Replace(text), "\n")
	lines := make([]line, 0, len(raw))
	for _, entry := range raw {
		if parsed, ok := parseLine(entry); ok {
			lines = append(lines, parsed)
		}
	}
	return lines
}

// parseLine tokenises a single physical line. It reports false for blank
// lines and lines without at least a numeric level and a tag or pointer.
func parseLine(raw string) (line, bool) {
	raw = strings.TrimLeft(raw, " \t\ufeff")
	levelText, rest, found := strings.Cut(raw, " ")
	if !found {
		return line{}, false
	}
	level, err := strconv.Atoi(levelText)
	if err != nil || level < 0 {
		return line{}, false
	}

	rest = strings.TrimLeft(rest, " ")
	token, value, _ := strings.Cut(rest, " ")
	if token == "" {
		return line{}, false
	}

	parsed := line{Level: level}
	if strings.HasPrefix(token, "@") && strings.HasSuffix(token, "@") && len(token) > 1 && level == 0 {
		parsed.Pointer = token
		token, value, _ = strings.Cut(strings.TrimLeft(value, " "), " ")
	}
	parsed.Tag = strings.ToUpper(token)
	parsed.Value = value
	if !textTags[parsed.Tag] {
		parsed.Value = strings.TrimRight(value, " \t")
	}
	return parsed, true
}

// textTags carry free text whose surrounding whitespace is kept verbatim.
var textTags = map[string]bool{"NOTE": true, "CONT": true, "CONC": true}

// cursor walks a flat line slice. Extraction steps share a cursor instead of
// loop indices, so each step consumes exactly the lines it owns.
type cursor struct {
	lines    []line
	position int
}

func newCursor(lines []line) *cursor {
	return &cursor{lines: lines}
}

// next returns the following line and advances.
func (c *cursor) next() (line, bool) {
	if c.position >= len(c.lines) {
		return line{}, false
	}
	current := c.lines[c.position]
	c.position++
	return current, true
}

// children consumes and returns every following line nested deeper than
// level. It stops at the first line at level or shallower, which is left
// for the caller.
func (c *cursor) children(level int) []line {
	start := c.position
	for c.position < len(c.lines) && c.lines[c.position].Level > level {
		c.position++
	}
	return c.lines[start:c.position]
}

// block is the sub-tree of one line, used for direct-child lookups.
type block []line

// node is a line together with everything nested below it.
type node struct {
	Line     line
	Children block
}

// direct yields the lines exactly one level below parent, each paired with
// its own nested lines.
func (b block) direct(parent int) []node {
	var result []node
	for index := 0; index < len(b); index++ {
		if b[index].Level != parent+1 {
			continue
		}
		end := index + 1
		for end < len(b) && b[end].Level > parent+1 {
			end++
		}
		result = append(result, node{Line: b[index], Children: b[index+1 : end]})
		index = end - 1
	}
	return result
}
