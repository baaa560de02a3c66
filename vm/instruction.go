package vm

import "strconv"

// Instruction is the central tagged entity of the instruction model: a
// Kind plus the operand slots relevant to its form, plus source-location
// metadata. Only the slots relevant to Kind's form are meaningful; the
// rest are zero. When JumpTo is set on a branch or jump, it shadows the
// numeric Immediate/Address slot until Encode resolves it against a label
// table (spec.md §3, §9.2).
type Instruction struct {
	Kind   Kind
	LineNo int // 1-based source line, or hex-image line when decoded
	StepNo int // 0-based ordinal in the instruction list

	RS, RT, RD, SA int
	Immediate      int32
	Address        int32

	JumpTo string // unresolved symbolic branch/jump target; "" if none
}

// Render produces the tab-indented disassembly text for the instruction
// (spec.md §4.7). Register operands always render as "$<index>".
func (ins *Instruction) Render() string {
	info := kindTable[ins.Kind]
	reg := func(i int) string { return "$" + strconv.Itoa(i) }

	switch ins.Kind {
	case ADD, SUB, AND, OR, XOR:
		return "\t" + info.name + "\t" + reg(ins.RD) + ", " + reg(ins.RS) + ", " + reg(ins.RT)
	case SLL, SRL, SRA:
		return "\t" + info.name + "\t" + reg(ins.RD) + ", " + reg(ins.RT) + ", " + strconv.Itoa(ins.SA)
	case JR:
		return "\t" + info.name + "\t" + reg(ins.RS)
	case ADDI:
		return "\t" + info.name + "\t" + reg(ins.RT) + ", " + reg(ins.RS) + ", " + strconv.Itoa(int(SignExtend(ins.Immediate, 16)))
	case ANDI, ORI, XORI:
		return "\t" + info.name + "\t" + reg(ins.RT) + ", " + reg(ins.RS) + ", " + strconv.Itoa(int(ZeroExtend(ins.Immediate, 16)))
	case LW, SW:
		return "\t" + info.name + "\t" + reg(ins.RT) + ", " + strconv.Itoa(int(SignExtend(ins.Immediate, 16))) + "(" + reg(ins.RS) + ")"
	case BEQ, BNE:
		target := ins.branchOrJumpText()
		return "\t" + info.name + "\t" + reg(ins.RS) + ", " + reg(ins.RT) + ", " + target
	case LUI:
		return "\t" + info.name + "\t" + reg(ins.RT) + ", " + strconv.Itoa(int(ins.Immediate))
	case J, JAL:
		return "\t" + info.name + "\t" + ins.branchOrJumpText()
	}
	return "?"
}

// branchOrJumpText renders the symbolic label if present, else the
// numeric operand (there are never labels after a hex-image decode).
func (ins *Instruction) branchOrJumpText() string {
	if ins.JumpTo != "" {
		return ins.JumpTo
	}
	switch kindTable[ins.Kind].form {
	case FormJ:
		return strconv.Itoa(int(ins.Address))
	default:
		return strconv.Itoa(int(ins.Immediate))
	}
}
