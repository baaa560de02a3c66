// Package service defines the JSON-serializable snapshot types shared by
// the api and debugger packages.
package service

import "github.com/fiesterovishwa12/eseasm/vm"

// RegisterSnapshot is a JSON-friendly view of all 32 registers plus PC.
type RegisterSnapshot struct {
	Registers [32]int32 `json:"registers"`
	PC        int       `json:"pc"`
}

// SnapshotRegisters builds a RegisterSnapshot from a live register file
// and program counter.
func SnapshotRegisters(regs *vm.RegisterFile, pc int) RegisterSnapshot {
	return RegisterSnapshot{Registers: regs.Snapshot(), PC: pc}
}

// ExecutionState is the coarse-grained status of a session's simulation.
type ExecutionState string

const (
	StateIdle    ExecutionState = "idle"
	StateRunning ExecutionState = "running"
	StateHalted  ExecutionState = "halted"
	StateError   ExecutionState = "error"
)

// StepEvent is one frame of a live-simulation stream: the instruction
// that just executed and the resulting register state.
type StepEvent struct {
	StepNo      int              `json:"step_no"`
	Instruction string           `json:"instruction"`
	Registers   RegisterSnapshot `json:"registers"`
	State       ExecutionState   `json:"state"`
}

// BreakpointInfo is a UI-facing view of one breakpoint.
type BreakpointInfo struct {
	ID      int  `json:"id"`
	StepNo  int  `json:"step_no"`
	Enabled bool `json:"enabled"`
}
