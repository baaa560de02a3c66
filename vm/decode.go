package vm

// Decode interprets an 8-character hex word as an Instruction. lineNo is
// attached to the result and to any error (the disassembler passes the
// hex-image line number). Matching walks kindTable in declaration order and keeps the last
// kind that matches: a full match requires both opcode and, where the kind
// carries one, funct; if no full match exists for an opcode-0 word, the
// last kind sharing that opcode wins regardless of funct (spec.md §9.3 —
// this is how an unrecognized R-type funct still decodes, as JR, the last
// opcode-0 kind declared).
func Decode(hex string, lineNo int) (Instruction, error) {
	word, err := HexToWord(hex)
	if err != nil {
		return Instruction{}, NewInvalidInstructionError(hex, lineNo)
	}
	bits := wordToBits(word)

	opcode := bitsToWord(bits[0:6])
	rs := int(bitsToWord(bits[6:11]))
	rt := int(bitsToWord(bits[11:16]))
	rd := int(bitsToWord(bits[16:21]))
	sa := int(bitsToWord(bits[21:26]))
	funct := bitsToWord(bits[26:32])
	imm := int32(int16(bitsToWord(bits[16:32])))
	addr := SignExtend(int32(bitsToWord(bits[6:32])), 26)

	full := -1
	opcodeOnly := -1
	for k, info := range kindTable {
		if info.opcode != opcode {
			continue
		}
		opcodeOnly = k
		if info.hasFunct {
			if info.funct == funct {
				full = k
			}
		} else {
			full = k
		}
	}

	match := full
	if match < 0 {
		match = opcodeOnly
	}
	if match < 0 {
		return Instruction{}, NewInvalidInstructionError(hex, lineNo)
	}

	kind := Kind(match)
	ins := Instruction{Kind: kind, LineNo: lineNo}

	switch kindTable[kind].form {
	case FormR:
		ins.RS, ins.RT, ins.RD, ins.SA = rs, rt, rd, sa
	case FormI:
		ins.RS, ins.RT = rs, rt
		ins.Immediate = imm
	case FormJ:
		ins.Address = addr
	}
	return ins, nil
}
