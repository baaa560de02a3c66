// Package simulator executes a decoded MIPS-I instruction list against a
// register file and sparse memory, one instruction at a time, honoring a
// cooperative cross-actor kill flag between instructions.
package simulator

import (
	"sync/atomic"

	"github.com/fiesterovishwa12/eseasm/vm"

	"github.com/fiesterovishwa12/eseasm/disassembler"
)

// Simulator owns a register file, memory, and a decoded instruction list
// for the lifetime of one run. It is not safe to share a Simulator across
// concurrent runs; the kill flag is the only state meant to cross the
// supervisor/runner boundary while Run is in progress.
type Simulator struct {
	regs  *vm.RegisterFile
	mem   *vm.Memory
	insts []vm.Instruction
	pc    int
	kill  atomic.Bool
}

// New returns a Simulator with a fresh register file and memory.
func New() *Simulator {
	return &Simulator{
		regs: vm.NewRegisterFile(),
		mem:  vm.NewMemory(),
	}
}

// LoadImage decodes a hex image and installs its instructions, resetting
// the program counter to 0 (spec.md §4.13).
func (s *Simulator) LoadImage(image string) error {
	insts, err := disassembler.Decode(image)
	if err != nil {
		return err
	}
	s.insts = insts
	s.pc = 0
	return nil
}

// LoadInstructions installs an already-decoded instruction list directly,
// for callers that assembled in-process rather than round-tripping
// through a hex image.
func (s *Simulator) LoadInstructions(insts []vm.Instruction) {
	s.insts = insts
	s.pc = 0
}

// Kill requests cooperative termination of an in-progress Run. It is safe
// to call from any goroutine; the runner observes it at the next
// instruction boundary, not mid-instruction.
func (s *Simulator) Kill() {
	s.kill.Store(true)
}

// Run executes instructions in program order starting from the current
// PC until the instruction list is exhausted, an out-of-range PC is
// reached, or Kill is observed between instructions (spec.md §4.13, §5).
func (s *Simulator) Run() error {
	return s.RunWithLimit(0)
}

// RunWithLimit behaves like Run but additionally self-terminates (as if
// Kill had been called) after maxCycles instructions, a configured
// last-resort bound for programs whose termination condition of spec.md
// §8 property 8 ("PC falls off the end") never holds, such as an
// intentional halt loop (spec.md §8 scenario S2). maxCycles == 0 means
// unbounded.
func (s *Simulator) RunWithLimit(maxCycles uint64) error {
	var executed uint64
	for {
		if s.kill.Load() {
			return nil
		}
		if maxCycles > 0 && executed >= maxCycles {
			s.Kill()
			return nil
		}
		done, err := s.Step()
		executed++
		if err != nil || done {
			return err
		}
	}
}

// Step executes exactly one instruction and reports whether the program
// has terminated (PC reached the end of the instruction list). It does
// not consult the kill flag; callers driving their own loop (the api
// package's live-stream handler, for instance) check Killed between
// calls.
func (s *Simulator) Step() (bool, error) {
	if s.pc == len(s.insts) {
		return true, nil
	}
	if s.pc < 0 || s.pc > len(s.insts) {
		return false, vm.NewSimulationError("no instructions here", s.pc)
	}

	ins := s.insts[s.pc]
	next, err := ins.Execute(s.pc, s.regs, s.mem)
	if err != nil {
		return false, err
	}
	s.pc = next
	return s.pc == len(s.insts), nil
}

// Killed reports whether Kill has been requested.
func (s *Simulator) Killed() bool {
	return s.kill.Load()
}

// CurrentInstruction returns the instruction at the current PC and
// whether one exists there.
func (s *Simulator) CurrentInstruction() (vm.Instruction, bool) {
	if s.pc < 0 || s.pc >= len(s.insts) {
		return vm.Instruction{}, false
	}
	return s.insts[s.pc], true
}

// SetMemory writes value at addr, bypassing instruction execution.
func (s *Simulator) SetMemory(addr, value int32) {
	s.mem.Write(addr, value)
}

// GetMemory reads the word at addr.
func (s *Simulator) GetMemory(addr int32) int32 {
	return s.mem.Read(addr)
}

// GetRegfile returns the simulator's register file.
func (s *Simulator) GetRegfile() *vm.RegisterFile {
	return s.regs
}

// GetPc returns the current program counter (a step index, not a byte
// address).
func (s *Simulator) GetPc() int {
	return s.pc
}
