// Package tools provides small static-analysis utilities over an
// assembled program, independent of assembling or running it.
package tools

import (
	"sort"

	"github.com/fiesterovishwa12/eseasm/assembler"
	"github.com/fiesterovishwa12/eseasm/vm"
)

// ReferenceType classifies how a label is used at a given instruction.
type ReferenceType int

const (
	RefDefinition ReferenceType = iota // label defined here
	RefBranch                          // BEQ/BNE target
	RefJump                            // J target
	RefJumpAndLink                      // JAL target
)

func (r ReferenceType) String() string {
	switch r {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefJump:
		return "jump"
	case RefJumpAndLink:
		return "jump-and-link"
	default:
		return "unknown"
	}
}

// Reference is one use of a symbol at a given step.
type Reference struct {
	Type   ReferenceType
	StepNo int
}

// Symbol collects every reference to one label name.
type Symbol struct {
	Name       string
	Definition *Reference
	References []*Reference
}

// Generate builds a cross-reference table from an already-parsed
// assembler result: one Symbol per label, with its definition step and
// every instruction that targets it symbolically.
func Generate(r *assembler.Result) map[string]*Symbol {
	symbols := make(map[string]*Symbol)

	get := func(name string) *Symbol {
		sym, ok := symbols[name]
		if !ok {
			sym = &Symbol{Name: name}
			symbols[name] = sym
		}
		return sym
	}

	for name, step := range r.Labels.Snapshot() {
		sym := get(name)
		sym.Definition = &Reference{Type: RefDefinition, StepNo: step}
	}

	for _, ins := range r.Instructions {
		if ins.JumpTo == "" {
			continue
		}
		sym := get(ins.JumpTo)
		var refType ReferenceType
		switch ins.Kind {
		case vm.BEQ, vm.BNE:
			refType = RefBranch
		case vm.JAL:
			refType = RefJumpAndLink
		default:
			refType = RefJump
		}
		sym.References = append(sym.References, &Reference{Type: refType, StepNo: ins.StepNo})
	}

	return symbols
}

// SortedNames returns every symbol name in the table, alphabetically.
func SortedNames(symbols map[string]*Symbol) []string {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
