// Package stylesheet parses the CSS subset used for map styling and serves
// typed border and route styles from it.
package stylesheet

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Properties is the declaration block of one rule, keyed by lower-cased
// property name.
type Properties map[string]string

// Sheet maps each selector to its properties.
type Sheet map[string]Properties

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// block is a rule as found by the first phase: raw selector text and raw body.
type block struct {
	selectors    string
	selectorsPos Position
	body         string
	bodyOffset   int
}

// Parse reads a stylesheet. Rules have the form
//
//	selector[, selector...] { key: value; key: value }
//
// Block comments are ignored. A later rule for the same selector replaces
// the properties of an earlier one.
func Parse(text string) (Sheet, error) {
	src, err := stripComments(text)
	if err != nil {
		return nil, err
	}
	lines := newLineIndex(src)

	blocks, err := scanBlocks(src, lines)
	if err != nil {
		return nil, err
	}

	sheet := make(Sheet)
	for _, b := range blocks {
		selectors, err := splitSelectors(b.selectors, b.selectorsPos)
		if err != nil {
			return nil, err
		}
		props, err := parseDeclarations(b.body, b.bodyOffset, lines)
		if err != nil {
			return nil, err
		}
		for _, sel := range selectors {
			sheet[sel] = maps.Clone(props)
		}
	}
	return sheet, nil
}

// stripComments blanks out /* ... */ comments, keeping newlines so offsets
// and positions in the result match the input.
func stripComments(text string) (string, error) {
	if !strings.Contains(text, "/*") {
		return text, nil
	}
	buf := []byte(text)
	lines := newLineIndex(text)
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] != '/' || buf[i+1] != '*' {
			continue
		}
		end := strings.Index(text[i+2:], "*/")
		if end < 0 {
			return "", parseError("unterminated comment", lines.position(i))
		}
		stop := i + 2 + end + 2
		for j := i; j < stop; j++ {
			if buf[j] != '\n' {
				buf[j] = ' '
			}
		}
		i = stop - 1
	}
	return string(buf), nil
}

// scanBlocks is the first phase: it pairs each selector run with its
// brace-delimited body.
func scanBlocks(src string, lines lineIndex) ([]block, error) {
	var blocks []block
	start := 0
	for start < len(src) {
		open := strings.IndexAny(src[start:], "{}")
		if open < 0 {
			if rest := strings.TrimSpace(src[start:]); rest != "" {
				return nil, parseError("selector without block", lines.position(start+leadingSpace(src[start:])))
			}
			break
		}
		open += start
		if src[open] == '}' {
			return nil, parseError("unexpected '}'", lines.position(open))
		}

		closeRel := strings.IndexAny(src[open+1:], "{}")
		if closeRel < 0 {
			return nil, parseError("unclosed block", lines.position(open))
		}
		closing := open + 1 + closeRel
		if src[closing] == '{' {
			return nil, parseError("nested block", lines.position(closing))
		}

		blocks = append(blocks, block{
			selectors:    src[start:open],
			selectorsPos: lines.position(start + leadingSpace(src[start:open])),
			body:         src[open+1 : closing],
			bodyOffset:   open + 1,
		})
		start = closing + 1
	}
	return blocks, nil
}

// splitSelectors accepts runs of word characters and dots separated by
// whitespace or commas.
func splitSelectors(text string, pos Position) ([]string, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, parseError("empty selector", pos)
	}
	for _, f := range fields {
		if !isSelector(f) {
			return nil, zerr.With(parseError("invalid selector", pos), "selector", f)
		}
	}
	return fields, nil
}

// isSelector reports whether s is a run of word characters and dots. Word
// characters are letters and numbers in any script, and underscore.
func isSelector(s string) bool {
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_', r == '.':
		default:
			return false
		}
	}
	return s != ""
}

// parseDeclarations is the second phase: it splits a block body into
// key/value pairs.
func parseDeclarations(body string, offset int, lines lineIndex) (Properties, error) {
	props := make(Properties)
	pos := 0
	for _, decl := range strings.Split(body, ";") {
		declStart := offset + pos + leadingSpace(decl)
		pos += len(decl) + 1

		if strings.TrimSpace(decl) == "" {
			continue
		}
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			return nil, zerr.With(parseError("declaration without ':'", lines.position(declStart)), "declaration", strings.TrimSpace(decl))
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, parseError("empty property name", lines.position(declStart))
		}
		props[key] = strings.TrimSpace(value)
	}
	return props, nil
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t\r\n"))
}

func parseError(reason string, pos Position) error {
	err := zerr.Wrap(domain.ErrParse, "invalid stylesheet")
	err = zerr.With(err, "reason", reason)
	err = zerr.With(err, "line", pos.Line)
	return zerr.With(err, "column", pos.Column)
}

// lineIndex converts byte offsets to positions.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) position(offset int) Position {
	line, found := slices.BinarySearch(l, offset)
	if !found {
		line--
	}
	return Position{Line: line + 1, Column: offset - l[line] + 1}
}
