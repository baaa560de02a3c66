package vm

import "strconv"

// registerNames is the frozen, ordered list of canonical MIPS register
// names, indexed 0..31.
var registerNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegisterName returns the canonical name of register index i, or "" if i
// is out of range.
func RegisterName(i int) string {
	if i < 0 || i >= len(registerNames) {
		return ""
	}
	return registerNames[i]
}

// ResolveRegister resolves a register operand of the form "$<n>" or
// "$<name>" to its index 0..31. The second return value is false if the
// token does not resolve to a register.
func ResolveRegister(token string) (int, bool) {
	if len(token) < 2 || token[0] != '$' {
		return 0, false
	}
	body := token[1:]
	if n, err := strconv.Atoi(body); err == nil {
		if n >= 0 && n <= 31 {
			return n, true
		}
		return 0, false
	}
	for i, name := range registerNames {
		if name == body {
			return i, true
		}
	}
	return 0, false
}
