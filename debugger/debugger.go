// Package debugger provides an interactive step-through session over an
// assembled program: breakpoints keyed on step number or label, and a
// tcell/tview text UI exposing disassembly, registers, memory, and a
// command line.
package debugger

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fiesterovishwa12/eseasm/assembler"
	"github.com/fiesterovishwa12/eseasm/disassembler"
	"github.com/fiesterovishwa12/eseasm/vm"
)

// Debugger owns a register file, memory, and program counter directly,
// executing one instruction at a time through vm.Instruction.Execute
// rather than driving a simulator.Simulator's free-running Run loop.
type Debugger struct {
	Regs        *vm.RegisterFile
	Mem         *vm.Memory
	PC          int
	Insts       []vm.Instruction
	Labels      map[string]int
	Breakpoints *BreakpointManager
	Output      bytes.Buffer
	Halted      bool
}

// New assembles source and returns a Debugger positioned at step 0.
func New(source string) (*Debugger, error) {
	a := assembler.New()
	result, err := a.Parse(source)
	if err != nil {
		return nil, err
	}
	if _, err := a.Encode(result); err != nil {
		return nil, err
	}

	return &Debugger{
		Regs:        vm.NewRegisterFile(),
		Mem:         vm.NewMemory(),
		Insts:       result.Instructions,
		Labels:      result.Labels.Snapshot(),
		Breakpoints: NewBreakpointManager(),
	}, nil
}

// GetOutput returns the accumulated command output.
func (d *Debugger) GetOutput() string {
	return d.Output.String()
}

// resolveStepArg parses a command argument as a step number or a label.
func (d *Debugger) resolveStepArg(tok string) (int, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		return n, nil
	}
	if step, ok := d.Labels[tok]; ok {
		return step, nil
	}
	return 0, fmt.Errorf("unknown step or label %q", tok)
}

// Step executes exactly one instruction, or reports the program has
// already halted.
func (d *Debugger) Step() error {
	if d.Halted || d.PC >= len(d.Insts) {
		d.Halted = true
		fmt.Fprintln(&d.Output, "program halted")
		return nil
	}
	ins := d.Insts[d.PC]
	next, err := ins.Execute(d.PC, d.Regs, d.Mem)
	if err != nil {
		return err
	}
	d.PC = next
	if d.PC >= len(d.Insts) {
		d.Halted = true
	}
	if bp := d.Breakpoints.ProcessHit(d.PC); bp != nil {
		fmt.Fprintf(&d.Output, "breakpoint %d hit at step %d\n", bp.ID, d.PC)
	}
	return nil
}

// Continue single-steps until a breakpoint is hit or the program halts.
func (d *Debugger) Continue() error {
	for !d.Halted {
		before := d.PC
		if err := d.Step(); err != nil {
			return err
		}
		if d.Halted {
			break
		}
		if d.PC != before && d.Breakpoints.HasBreakpoint(d.PC) {
			fmt.Fprintf(&d.Output, "stopped at step %d\n", d.PC)
			break
		}
	}
	return nil
}

// ExecuteCommand interprets a single debugger command line, writing any
// response to Output.
func (d *Debugger) ExecuteCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "step", "s":
		return d.Step()
	case "continue", "c":
		return d.Continue()
	case "break", "b":
		if len(fields) < 2 {
			return fmt.Errorf("usage: break <label|step>")
		}
		step, err := d.resolveStepArg(fields[1])
		if err != nil {
			return err
		}
		d.Breakpoints.AddBreakpoint(step, false)
		fmt.Fprintf(&d.Output, "breakpoint set at step %d\n", step)
		return nil
	case "regs", "r":
		snap := d.Regs.Snapshot()
		for i, v := range snap {
			fmt.Fprintf(&d.Output, "%-5s $%-2d = %d\n", vm.RegisterName(i), i, v)
		}
		return nil
	case "mem", "m":
		if len(fields) < 2 {
			return fmt.Errorf("usage: mem <addr>")
		}
		addr, err := strconv.ParseInt(fields[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid address %q", fields[1])
		}
		fmt.Fprintf(&d.Output, "mem[%d] = %d\n", addr, d.Mem.Read(int32(addr)))
		return nil
	case "quit", "q":
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// Disassembly returns the full program disassembly text.
func (d *Debugger) Disassembly() string {
	return disassembler.Disassemble(d.Insts)
}
