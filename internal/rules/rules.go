package rules

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// parse builds a goldmark AST for the source document.
func parse(source []byte) ast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(source))
}

// lineOf converts a byte offset into a 1-based line number.
func lineOf(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}

// headingLine returns the 1-based line number of a heading node, falling
// back to 1 for headings with no recorded segments.
func headingLine(source []byte, heading *ast.Heading) int {
	if heading.Lines().Len() == 0 {
		return 1
	}
	return lineOf(source, heading.Lines().At(0).Start)
}

// checkHeadingIncrement implements MD001: heading levels increment by one.
func checkHeadingIncrement(source []byte) []Violation {
	var violations []Violation

	doc := parse(source)
	prevLevel := 0

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		if prevLevel > 0 && heading.Level > prevLevel+1 {
			violations = append(violations, Violation{
				Line: headingLine(source, heading),
				Rule: "MD001",
				Message: fmt.Sprintf("heading level jumps from h%d to h%d",
					prevLevel, heading.Level),
			})
		}
		prevLevel = heading.Level

		return ast.WalkSkipChildren, nil
	})

	return violations
}

// checkFirstLineHeading implements MD041: the first content in a file
// should be a top-level heading.
func checkFirstLineHeading(source []byte) []Violation {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil
	}

	doc := parse(source)
	first := doc.FirstChild()
	if first == nil {
		return nil
	}

	if heading, ok := first.(*ast.Heading); ok && heading.Level == 1 {
		return nil
	}

	line := 1
	if first.Type() == ast.TypeBlock && first.Lines().Len() > 0 {
		line = lineOf(source, first.Lines().At(0).Start)
	}

	return []Violation{{
		Line:    line,
		Rule:    "MD041",
		Message: "first line should be a top-level heading",
	}}
}

// checkTrailingWhitespace implements MD009: no trailing spaces or tabs.
func checkTrailingWhitespace(source []byte) []Violation {
	var violations []Violation

	for i, line := range splitLines(source) {
		if line == "" {
			continue
		}
		if strings.TrimRight(line, " \t") != line {
			violations = append(violations, Violation{
				Line:    i + 1,
				Rule:    "MD009",
				Message: "trailing whitespace",
			})
		}
	}

	return violations
}

// checkConsecutiveBlanks implements MD012: no multiple consecutive blank
// lines. The violation is reported at the second blank line of each run.
func checkConsecutiveBlanks(source []byte) []Violation {
	var violations []Violation

	blanks := 0
	for i, line := range splitLines(source) {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks == 2 {
				violations = append(violations, Violation{
					Line:    i + 1,
					Rule:    "MD012",
					Message: "multiple consecutive blank lines",
				})
			}
			continue
		}
		blanks = 0
	}

	return violations
}

// checkFinalNewline implements MD047: files end with a single newline.
func checkFinalNewline(source []byte) []Violation {
	if len(source) == 0 {
		return nil
	}

	lastLine := bytes.Count(source, []byte("\n"))
	if !bytes.HasSuffix(source, []byte("\n")) {
		return []Violation{{
			Line:    lastLine + 1,
			Rule:    "MD047",
			Message: "file should end with a single newline",
		}}
	}
	if bytes.HasSuffix(source, []byte("\n\n")) {
		return []Violation{{
			Line:    lastLine,
			Rule:    "MD047",
			Message: "file should end with a single newline",
		}}
	}

	return nil
}

// checkLineLength implements MD013 for the configured limit.
func checkLineLength(source []byte, limit int) []Violation {
	var violations []Violation

	for i, line := range splitLines(source) {
		if utf8.RuneCountInString(line) > limit {
			violations = append(violations, Violation{
				Line:    i + 1,
				Rule:    "MD013",
				Message: fmt.Sprintf("line length %d exceeds %d", utf8.RuneCountInString(line), limit),
			})
		}
	}

	return violations
}

// splitLines splits source into lines without their terminators. A file
// ending in a newline does not produce a phantom final line.
func splitLines(source []byte) []string {
	lines := strings.Split(string(source), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
