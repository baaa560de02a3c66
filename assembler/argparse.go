package assembler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fiesterovishwa12/eseasm/vm"
)

// memOperandPattern matches the "imm($reg)" shape used by LW and SW, e.g.
// "0($t0)" or "-4($sp)".
var memOperandPattern = regexp.MustCompile(`^(-?\w+)\(\s*(\$\w+)\s*\)$`)

// splitOperands splits a comma-separated operand list, trimming whitespace
// around each field.
func splitOperands(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// parseRegister resolves a "$..." token to its register index.
func parseRegister(tok string, lineNo int) (int, error) {
	if !strings.HasPrefix(tok, "$") {
		return 0, vm.NewInvalidArgumentError("expected a register, got \""+tok+"\"", lineNo)
	}
	idx, ok := vm.ResolveRegister(tok)
	if !ok {
		return 0, vm.NewInvalidArgumentError("unknown register \""+tok+"\"", lineNo)
	}
	return idx, nil
}

// parseIntLiteral parses a decimal or 0x-prefixed hexadecimal integer
// literal, signed.
func parseIntLiteral(tok string, lineNo int) (int64, error) {
	base := 10
	s := tok
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		base = 16
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, vm.NewInvalidArgumentError("not a valid integer literal: \""+tok+"\"", lineNo)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// canonicalImmediate range-checks v against n bits via vm.FitSigned, then
// normalizes it to the value Decode would reconstruct from the same bits:
// the low n bits, sign-extended back to 32 bits. This keeps the assembler
// and the disassembler in agreement about what a stored immediate means,
// even for literals like 65535 that fit the range check but whose top bit
// reads back as a sign bit.
func canonicalImmediate(v int64, n uint, lineNo int) (int32, error) {
	if _, err := vm.FitSigned(v, n); err != nil {
		return 0, vm.NewInvalidArgumentError(err.Error(), lineNo)
	}
	return vm.SignExtend(int32(v), n), nil
}

// resolveJumpOperand parses a branch or jump target: either a label, left
// unresolved in JumpTo for Encode to look up later, or a bare integer
// literal stored directly, range-checked against the form's field width
// (16 bits for BEQ/BNE, 26 for J/JAL).
func resolveJumpOperand(tok string, width uint, lineNo int) (string, int32, error) {
	if tok == "" {
		return "", 0, vm.NewInvalidArgumentError("missing branch/jump target", lineNo)
	}
	c := tok[0]
	if c == '-' || (c >= '0' && c <= '9') {
		lit, err := parseIntLiteral(tok, lineNo)
		if err != nil {
			return "", 0, err
		}
		v, err := canonicalImmediate(lit, width, lineNo)
		if err != nil {
			return "", 0, err
		}
		return "", v, nil
	}
	return tok, 0, nil
}

// parseArgs fills in ins's operand fields from the raw operand text
// according to ins.Kind's expected shape (spec.md §4.8).
func parseArgs(ins *vm.Instruction, operandText string, lineNo int) error {
	switch ins.Kind {
	case vm.ADD, vm.SUB, vm.AND, vm.OR, vm.XOR:
		ops := splitOperands(operandText)
		if len(ops) != 3 {
			return vm.NewInvalidArgumentError("expected 3 operands", lineNo)
		}
		rd, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		rs, err := parseRegister(ops[1], lineNo)
		if err != nil {
			return err
		}
		rt, err := parseRegister(ops[2], lineNo)
		if err != nil {
			return err
		}
		ins.RD, ins.RS, ins.RT = rd, rs, rt

	case vm.SLL, vm.SRL, vm.SRA:
		ops := splitOperands(operandText)
		if len(ops) != 3 {
			return vm.NewInvalidArgumentError("expected 3 operands", lineNo)
		}
		rd, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		rt, err := parseRegister(ops[1], lineNo)
		if err != nil {
			return err
		}
		shamt, err := parseIntLiteral(ops[2], lineNo)
		if err != nil {
			return err
		}
		sa, err := canonicalImmediate(shamt, 5, lineNo)
		if err != nil {
			return err
		}
		ins.RD, ins.RT, ins.SA = rd, rt, int(vm.ZeroExtend(sa, 5))

	case vm.JR:
		ops := splitOperands(operandText)
		if len(ops) != 1 {
			return vm.NewInvalidArgumentError("expected 1 operand", lineNo)
		}
		rs, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		ins.RS = rs

	case vm.ADDI:
		ops := splitOperands(operandText)
		if len(ops) != 3 {
			return vm.NewInvalidArgumentError("expected 3 operands", lineNo)
		}
		rt, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		rs, err := parseRegister(ops[1], lineNo)
		if err != nil {
			return err
		}
		lit, err := parseIntLiteral(ops[2], lineNo)
		if err != nil {
			return err
		}
		imm, err := canonicalImmediate(lit, 16, lineNo)
		if err != nil {
			return err
		}
		ins.RT, ins.RS, ins.Immediate = rt, rs, imm

	case vm.ANDI, vm.ORI, vm.XORI:
		ops := splitOperands(operandText)
		if len(ops) != 3 {
			return vm.NewInvalidArgumentError("expected 3 operands", lineNo)
		}
		rt, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		rs, err := parseRegister(ops[1], lineNo)
		if err != nil {
			return err
		}
		lit, err := parseIntLiteral(ops[2], lineNo)
		if err != nil {
			return err
		}
		imm, err := canonicalImmediate(lit, 16, lineNo)
		if err != nil {
			return err
		}
		ins.RT, ins.RS, ins.Immediate = rt, rs, imm

	case vm.LUI:
		ops := splitOperands(operandText)
		if len(ops) != 2 {
			return vm.NewInvalidArgumentError("expected 2 operands", lineNo)
		}
		rt, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		lit, err := parseIntLiteral(ops[1], lineNo)
		if err != nil {
			return err
		}
		imm, err := canonicalImmediate(lit, 16, lineNo)
		if err != nil {
			return err
		}
		ins.RT, ins.Immediate = rt, imm

	case vm.LW, vm.SW:
		ops := splitOperands(operandText)
		if len(ops) != 2 {
			return vm.NewInvalidArgumentError("expected 2 operands", lineNo)
		}
		rt, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		m := memOperandPattern.FindStringSubmatch(ops[1])
		if m == nil {
			return vm.NewInvalidArgumentError("expected \"offset($reg)\", got \""+ops[1]+"\"", lineNo)
		}
		lit, err := parseIntLiteral(m[1], lineNo)
		if err != nil {
			return err
		}
		imm, err := canonicalImmediate(lit, 16, lineNo)
		if err != nil {
			return err
		}
		rs, err := parseRegister(m[2], lineNo)
		if err != nil {
			return err
		}
		ins.RT, ins.RS, ins.Immediate = rt, rs, imm

	case vm.BEQ, vm.BNE:
		ops := splitOperands(operandText)
		if len(ops) != 3 {
			return vm.NewInvalidArgumentError("expected 3 operands", lineNo)
		}
		rs, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return err
		}
		rt, err := parseRegister(ops[1], lineNo)
		if err != nil {
			return err
		}
		label, lit, err := resolveJumpOperand(ops[2], 16, lineNo)
		if err != nil {
			return err
		}
		ins.RS, ins.RT, ins.JumpTo, ins.Immediate = rs, rt, label, lit

	case vm.J, vm.JAL:
		ops := splitOperands(operandText)
		if len(ops) != 1 {
			return vm.NewInvalidArgumentError("expected 1 operand", lineNo)
		}
		label, lit, err := resolveJumpOperand(ops[0], 26, lineNo)
		if err != nil {
			return err
		}
		ins.JumpTo, ins.Address = label, lit
	}
	return nil
}
