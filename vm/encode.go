package vm

// Encode produces the 8-character lowercase hex word for the instruction
// (spec.md §4.5). labels maps label name to stepNo, consulted only when
// JumpTo is set. ins.LineNo is used for any LabelNotFoundError raised.
func (ins *Instruction) Encode(labels map[string]int) (string, error) {
	info := kindTable[ins.Kind]

	switch info.form {
	case FormR:
		funct := info.funct
		bits := ToBits(int64(info.opcode), 6) +
			ToBits(int64(ins.RS), 5) +
			ToBits(int64(ins.RT), 5) +
			ToBits(int64(ins.RD), 5) +
			ToBits(int64(ins.SA), 5) +
			ToBits(int64(funct), 6)
		return WordToHex(bitsToWord(bits)), nil

	case FormI:
		imm := ins.Immediate
		if ins.Kind == BEQ || ins.Kind == BNE {
			if ins.JumpTo != "" {
				target, ok := labels[ins.JumpTo]
				if !ok {
					return "", NewLabelNotFoundError(ins.JumpTo, ins.LineNo)
				}
				offset := int64(target) - 1 - int64(ins.StepNo)
				if _, err := FitSigned(offset, 16); err != nil {
					return "", NewInvalidArgumentError(err.Error(), ins.LineNo)
				}
				imm = int32(offset)
			}
		}
		bits := ToBits(int64(info.opcode), 6) +
			ToBits(int64(ins.RS), 5) +
			ToBits(int64(ins.RT), 5) +
			ToBits(int64(imm), 16)
		return WordToHex(bitsToWord(bits)), nil

	case FormJ:
		addr := ins.Address
		if ins.JumpTo != "" {
			target, ok := labels[ins.JumpTo]
			if !ok {
				return "", NewLabelNotFoundError(ins.JumpTo, ins.LineNo)
			}
			addr = int32(target)
		}
		bits := ToBits(int64(info.opcode), 6) + ToBits(int64(addr), 26)
		return WordToHex(bitsToWord(bits)), nil
	}

	return "", NewInvalidArgumentError("unknown instruction form", ins.LineNo)
}
