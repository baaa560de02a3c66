package assembler

import (
	"strconv"
	"strings"

	"github.com/fiesterovishwa12/eseasm/vm"
)

// Result bundles the outcome of a two-phase assemble: the decoded
// instruction list (in step order) and the label table used to resolve
// branch and jump targets, kept around so the caller can re-derive the
// hex image or feed the instructions straight to a simulator.
type Result struct {
	Instructions []vm.Instruction
	Labels       *LabelTable
}

// Assembler turns MIPS-I assembly source into an Instruction list and,
// from there, an Altera-MIF-style hex image. It runs in two phases: Parse
// builds the instruction list and label table without resolving symbolic
// operands; Encode resolves them and renders hex.
type Assembler struct{}

// New returns a ready-to-use Assembler.
func New() *Assembler {
	return &Assembler{}
}

// Parse tokenizes source, resolves mnemonics and registers, and assigns
// step numbers, without resolving label references (spec.md §4.10).
func (a *Assembler) Parse(source string) (*Result, error) {
	lines, errs := Lex(source)
	labels := NewLabelTable()

	var instructions []vm.Instruction
	stepNo := 0

	for _, ln := range lines {
		if ln.Label != "" {
			if err := labels.Define(ln.Label, stepNo, ln.LineNo); err != nil {
				errs.Add(err)
			}
		}
		if ln.Mnemonic == "" {
			continue
		}

		kind, ok := vm.LookupMnemonic(ln.Mnemonic)
		if !ok {
			errs.Add(vm.NewSyntaxError("unknown mnemonic \""+ln.Mnemonic+"\"", ln.LineNo))
			continue
		}

		ins := vm.Instruction{Kind: kind, LineNo: ln.LineNo, StepNo: stepNo}
		if err := parseArgs(&ins, ln.Operands, ln.LineNo); err != nil {
			errs.Add(err)
			stepNo++
			continue
		}

		instructions = append(instructions, ins)
		stepNo++
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return &Result{Instructions: instructions, Labels: labels}, nil
}

// Encode resolves every instruction's symbolic operands against the label
// table and renders the Altera-MIF-style hex image (spec.md §4.11): one
// line per instruction, "<byte-hex> :     <word-hex>; % (<byte-hex>) %",
// where both address fields hold the byte address step*4.
func (a *Assembler) Encode(r *Result) (string, error) {
	labels := r.Labels.Snapshot()
	errs := &vm.ErrorList{}
	var sb strings.Builder

	for _, ins := range r.Instructions {
		hex, err := ins.Encode(labels)
		if err != nil {
			errs.Add(err)
			continue
		}
		sb.WriteString(formatImageLine(ins.StepNo, hex))
	}

	if errs.HasErrors() {
		return "", errs
	}
	return sb.String(), nil
}

// Assemble runs Parse followed by Encode in one call.
func (a *Assembler) Assemble(source string) (string, *Result, error) {
	r, err := a.Parse(source)
	if err != nil {
		return "", nil, err
	}
	image, err := a.Encode(r)
	if err != nil {
		return "", r, err
	}
	return image, r, nil
}

// formatImageLine renders one Altera-MIF-style hex image line for the
// instruction at stepNo with encoded word hex. The leading field before
// the colon carries the byte address step*4: the disassembler's decode
// recovers stepNo as value/4, so the two sides must agree on what that
// field holds regardless of how it is labeled in prose. The trailing
// parenthetical repeats the same byte address, zero-padded, as the
// Altera-MIF comment convention does. WORD_HEX is the 8-char lowercase
// hex word already produced by Instruction.Encode (spec.md §6, §4.11).
func formatImageLine(stepNo int, hex string) string {
	byteAddr := int64(stepNo * 4)
	leadHex := strings.ToUpper(strconv.FormatInt(byteAddr, 16))
	if len(leadHex) < 2 {
		leadHex = " " + leadHex
	}
	byteHex := strings.ToUpper(strconv.FormatInt(byteAddr, 16))
	if len(byteHex) < 2 {
		byteHex = "0" + byteHex
	}
	return leadHex + " :     " + hex + "; % (" + byteHex + ") %\n"
}
