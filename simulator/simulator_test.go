package simulator

import (
	"testing"
	"time"

	"github.com/fiesterovishwa12/eseasm/assembler"
)

func assembleOrFatal(t *testing.T, src string) string {
	t.Helper()
	a := assembler.New()
	image, _, err := a.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return image
}

// TestMultiplicationScenario exercises S1: memory[0]=5, memory[4]=7 loaded
// through LW, multiplied by repeated addition, and stored back to
// memory[8], with the product also left in $3.
func TestMultiplicationScenario(t *testing.T) {
	src := "\tlw $1, 0($0)\n" +
		"\tlw $2, 4($0)\n" +
		"\taddi $3, $0, 0\n" +
		"\taddi $4, $0, 0\n" +
		"loop:\tbeq $4, $2, done\n" +
		"\tadd $3, $3, $1\n" +
		"\taddi $4, $4, 1\n" +
		"\tj loop\n" +
		"done:\tsw $3, 8($0)\n"

	sim := New()
	if err := sim.LoadImage(assembleOrFatal(t, src)); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	sim.SetMemory(0, 5)
	sim.SetMemory(4, 7)

	if err := sim.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sim.GetRegfile().Get(3); got != 35 {
		t.Errorf("$3 = %d, want 35", got)
	}
	if got := sim.GetMemory(8); got != 35 {
		t.Errorf("mem[8] = %d, want 35", got)
	}
	if sim.GetPc() != 9 {
		t.Errorf("PC = %d, want 9 (instruction count)", sim.GetPc())
	}
}

// TestHaltLoopKill exercises S2: "start: j start" spins forever; an
// external Kill must stop it within a bounded number of additional
// instructions, leaving PC at 0.
func TestHaltLoopKill(t *testing.T) {
	sim := New()
	if err := sim.LoadImage(assembleOrFatal(t, "start:\tj start\n")); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- sim.Run() }()

	time.Sleep(5 * time.Millisecond)
	sim.Kill()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after Kill")
	}

	if sim.GetPc() != 0 {
		t.Errorf("PC = %d, want 0", sim.GetPc())
	}
}

// TestJALScenario exercises S6: jal at stepNo 3 targeting a label at
// stepNo 7 sets $31 = 4 and jumps PC to 7.
func TestJALScenario(t *testing.T) {
	src := "\taddi $1, $0, 0\n" +
		"\taddi $1, $0, 0\n" +
		"\taddi $1, $0, 0\n" +
		"\tjal target\n" +
		"\taddi $1, $0, 0\n" +
		"\taddi $1, $0, 0\n" +
		"\taddi $1, $0, 0\n" +
		"target:\taddi $2, $0, 99\n"

	sim := New()
	if err := sim.LoadImage(assembleOrFatal(t, src)); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := sim.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sim.GetRegfile().Get(31); got != 4 {
		t.Errorf("$31 = %d, want 4", got)
	}
	if got := sim.GetRegfile().Get(2); got != 99 {
		t.Errorf("$2 = %d, want 99", got)
	}
}

// TestRunWithLimitStopsRunawayProgram guards against an unbounded halt
// loop wedging a caller that wants a synchronous, bounded run (the CLI
// report path) rather than a supervisor/runner pair.
func TestRunWithLimitStopsRunawayProgram(t *testing.T) {
	sim := New()
	if err := sim.LoadImage(assembleOrFatal(t, "start:\tj start\n")); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := sim.RunWithLimit(100); err != nil {
		t.Fatalf("RunWithLimit: %v", err)
	}
	if !sim.Killed() {
		t.Error("expected simulator to be marked killed after exceeding the cycle limit")
	}
}

// TestRegisterZeroInvariant checks that writing $0 never becomes visible,
// even via an ADD targeting rd=0.
func TestRegisterZeroInvariant(t *testing.T) {
	sim := New()
	if err := sim.LoadImage(assembleOrFatal(t, "\tadd $0, $0, $0\n\taddi $1, $0, 5\n\tadd $0, $1, $1\n")); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := sim.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sim.GetRegfile().Get(0); got != 0 {
		t.Errorf("$0 = %d, want 0", got)
	}
}
