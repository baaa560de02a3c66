package assembler

import "github.com/fiesterovishwa12/eseasm/vm"

// LabelTable maps a symbolic label to the step number of the instruction
// that follows it.
type LabelTable struct {
	steps map[string]int
}

// NewLabelTable returns an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{steps: make(map[string]int)}
}

// Define records label at stepNo. Redefining an existing label is a
// syntax error, grounded on the duplicate-symbol check every assembler in
// the pack performs before resolution begins.
func (lt *LabelTable) Define(label string, stepNo, lineNo int) error {
	if _, exists := lt.steps[label]; exists {
		return vm.NewSyntaxError("label already defined: "+label, lineNo)
	}
	lt.steps[label] = stepNo
	return nil
}

// Snapshot returns the underlying label-to-step map, ready for
// vm.Instruction.Encode.
func (lt *LabelTable) Snapshot() map[string]int {
	return lt.steps
}
