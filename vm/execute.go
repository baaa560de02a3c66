package vm

// Execute runs the instruction's single-cycle semantics against regs and
// mem, starting from pc (the step number of this instruction, not a byte
// address), and returns the next step number. Most kinds return pc+1;
// branches and jumps compute their own target (spec.md §4.9).
//
// SRL and SRA are swapped from their canonical MIPS meaning: SRL performs
// an arithmetic (sign-preserving) shift and SRA a logical (zero-fill)
// shift. This is intentional and preserved exactly (spec.md §9.1).
func (ins *Instruction) Execute(pc int, regs *RegisterFile, mem *Memory) (int, error) {
	next := pc + 1

	switch ins.Kind {
	case ADD:
		regs.Set(ins.RD, regs.Get(ins.RS)+regs.Get(ins.RT))
	case SUB:
		regs.Set(ins.RD, regs.Get(ins.RS)-regs.Get(ins.RT))
	case AND:
		regs.Set(ins.RD, regs.Get(ins.RS)&regs.Get(ins.RT))
	case OR:
		regs.Set(ins.RD, regs.Get(ins.RS)|regs.Get(ins.RT))
	case XOR:
		regs.Set(ins.RD, regs.Get(ins.RS)^regs.Get(ins.RT))
	case SLL:
		regs.Set(ins.RD, regs.Get(ins.RT)<<uint(ins.SA))
	case SRL:
		regs.Set(ins.RD, regs.Get(ins.RT)>>uint(ins.SA))
	case SRA:
		regs.Set(ins.RD, int32(uint32(regs.Get(ins.RT))>>uint(ins.SA)))
	case JR:
		next = int(regs.Get(ins.RS))
	case ADDI:
		regs.Set(ins.RT, regs.Get(ins.RS)+ins.Immediate)
	case ANDI:
		regs.Set(ins.RT, regs.Get(ins.RS)&ZeroExtend(ins.Immediate, 16))
	case ORI:
		regs.Set(ins.RT, regs.Get(ins.RS)|ZeroExtend(ins.Immediate, 16))
	case XORI:
		regs.Set(ins.RT, regs.Get(ins.RS)^ZeroExtend(ins.Immediate, 16))
	case LW:
		regs.Set(ins.RT, mem.Read(regs.Get(ins.RS)+ins.Immediate))
	case SW:
		mem.Write(regs.Get(ins.RS)+ins.Immediate, regs.Get(ins.RT))
	case BEQ:
		if regs.Get(ins.RS) == regs.Get(ins.RT) {
			next = pc + 1 + int(ins.Immediate)
		}
	case BNE:
		if regs.Get(ins.RS) != regs.Get(ins.RT) {
			next = pc + 1 + int(ins.Immediate)
		}
	case LUI:
		regs.Set(ins.RT, ins.Immediate<<16)
	case J:
		next = int((uint32(pc+1) & 0xF0000000) | (uint32(ins.Address) << 2 / 4))
	case JAL:
		regs.Set(31, int32(pc+1))
		next = int((uint32(pc+1) & 0xF0000000) | (uint32(ins.Address) << 2 / 4))
	default:
		return pc, NewSimulationError("unknown instruction kind", pc)
	}

	return next, nil
}
