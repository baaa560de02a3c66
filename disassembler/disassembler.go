// Package disassembler turns a hex image back into readable MIPS-I text.
package disassembler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fiesterovishwa12/eseasm/vm"
)

// imageLinePattern is the looser input regex from spec.md §4.12: only the
// leading address, a colon, 8 hex characters, and a trailing ';' are
// required — the Altera-MIF comment trailer is not.
var imageLinePattern = regexp.MustCompile(`^\s*([a-zA-Z0-9]+)\s*:\s*([a-zA-Z0-9]{8});.*$`)

// Decode parses a hex image into an ordered instruction list. The leading
// field of each line is a byte address; its step index is value/4. Lines
// that are blank are skipped; any other non-matching line is a syntax
// error.
func Decode(image string) ([]vm.Instruction, error) {
	errs := &vm.ErrorList{}
	var out []vm.Instruction

	for i, raw := range strings.Split(image, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(raw) == "" {
			continue
		}
		m := imageLinePattern.FindStringSubmatch(raw)
		if m == nil {
			errs.Add(vm.NewSyntaxError("invalid format", lineNo))
			continue
		}
		addr, err := strconv.ParseInt(m[1], 16, 64)
		if err != nil {
			errs.Add(vm.NewSyntaxError("invalid format", lineNo))
			continue
		}
		ins, err := vm.Decode(m[2], lineNo)
		if err != nil {
			errs.Add(err)
			continue
		}
		ins.StepNo = int(addr / 4)
		out = append(out, ins)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return out, nil
}

// Disassemble concatenates each instruction's rendered text, separated by
// newlines, in list order.
func Disassemble(instructions []vm.Instruction) string {
	lines := make([]string, len(instructions))
	for i, ins := range instructions {
		lines[i] = ins.Render()
	}
	return strings.Join(lines, "\n")
}
