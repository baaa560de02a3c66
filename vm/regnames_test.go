package vm

import "testing"

func TestRegisterNameKnownIndices(t *testing.T) {
	cases := map[int]string{0: "zero", 29: "sp", 31: "ra"}
	for idx, want := range cases {
		if got := RegisterName(idx); got != want {
			t.Errorf("RegisterName(%d) = %q, want %q", idx, got, want)
		}
	}
}

func TestRegisterNameOutOfRange(t *testing.T) {
	if got := RegisterName(-1); got != "" {
		t.Errorf("RegisterName(-1) = %q, want empty", got)
	}
	if got := RegisterName(32); got != "" {
		t.Errorf("RegisterName(32) = %q, want empty", got)
	}
}

func TestResolveRegisterByNumber(t *testing.T) {
	idx, ok := ResolveRegister("$3")
	if !ok || idx != 3 {
		t.Errorf("ResolveRegister($3) = (%d, %v), want (3, true)", idx, ok)
	}
}

func TestResolveRegisterByName(t *testing.T) {
	idx, ok := ResolveRegister("$ra")
	if !ok || idx != 31 {
		t.Errorf("ResolveRegister($ra) = (%d, %v), want (31, true)", idx, ok)
	}
}

func TestResolveRegisterRejectsOutOfRangeNumber(t *testing.T) {
	if _, ok := ResolveRegister("$32"); ok {
		t.Error("expected $32 to be rejected")
	}
}

func TestResolveRegisterRejectsMalformed(t *testing.T) {
	for _, tok := range []string{"", "$", "3", "$unknown"} {
		if _, ok := ResolveRegister(tok); ok {
			t.Errorf("ResolveRegister(%q) should fail", tok)
		}
	}
}
