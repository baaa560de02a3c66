// Package assembler turns MIPS-I assembly source into an Altera-MIF-style
// hex image: a lexer splits each line into at most three tokens, a label
// table resolves symbolic names to step numbers, and the top-level
// Assembler drives the two-phase parse-then-encode pipeline.
package assembler

import (
	"regexp"
	"strings"

	"github.com/fiesterovishwa12/eseasm/vm"
)

// Line is one tokenized source line: an optional label, an optional
// mnemonic, and its raw operand text (not yet split by comma).
type Line struct {
	LineNo   int
	Label    string
	Mnemonic string
	Operands string
}

// wsRun matches a run of the space/tab used to separate tokens (spec.md
// §4.10 step 3).
var wsRun = regexp.MustCompile(`[ \t]+`)

// Lex tokenizes source into Lines per spec.md §4.10. Each non-blank line
// is split by runs of space/tab into at most three tokens; a label always
// occupies token[0] (empty when the line has no label, which is why a
// bare instruction line needs a leading tab or space ahead of the
// mnemonic — without it, the mnemonic itself lands in token[0] and is
// rejected as an unlabeled, colon-less token). Errors are accumulated
// rather than returned eagerly, so a caller sees every bad line from one
// pass instead of stopping at the first.
func Lex(source string) ([]Line, *vm.ErrorList) {
	errs := &vm.ErrorList{}
	var out []Line

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		text := strings.TrimRight(stripComment(raw), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		tokens := wsRun.Split(text, 3)
		if len(tokens) != 1 && len(tokens) != 3 {
			errs.Add(vm.NewSyntaxError("No arguments given (maybe you're missing head tab/space?)", lineNo))
			continue
		}

		label, ok := labelFromHeadToken(tokens[0], errs, lineNo)
		if !ok {
			continue
		}

		if len(tokens) == 1 {
			out = append(out, Line{LineNo: lineNo, Label: label})
			continue
		}

		out = append(out, Line{
			LineNo:   lineNo,
			Label:    label,
			Mnemonic: strings.ToLower(tokens[1]),
			Operands: strings.TrimSpace(tokens[2]),
		})
	}
	return out, errs
}

// labelFromHeadToken validates token[0]: empty means no label; a
// ':'-suffixed, non-integer name is the label; anything else is a syntax
// error. The bool result reports whether the line should still be kept.
func labelFromHeadToken(head string, errs *vm.ErrorList, lineNo int) (string, bool) {
	if head == "" {
		return "", true
	}
	if !strings.HasSuffix(head, ":") {
		errs.Add(vm.NewSyntaxError("Label must be followed by ':'", lineNo))
		return "", false
	}
	name := strings.TrimSuffix(head, ":")
	if isIntegerLiteral(name) {
		errs.Add(vm.NewSyntaxError("Label cannot be an integer", lineNo))
		return "", false
	}
	return name, true
}

// stripComment removes everything from the first ';' onward.
func stripComment(s string) string {
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// isIntegerLiteral reports whether s matches the integer-label guard
// regex `-?\d+` (spec.md §8 property 10).
func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start >= len(s) {
		return false
	}
	for _, c := range s[start:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
