package disassembler

import (
	"strings"
	"testing"

	"github.com/fiesterovishwa12/eseasm/assembler"
)

// TestADDIRoundTrip exercises S3: "addi $2, $0, -1" assembles to
// 2002ffff and disassembles back to the identical text.
func TestADDIRoundTrip(t *testing.T) {
	a := assembler.New()
	image, _, err := a.Assemble("\taddi $2, $0, -1\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.Contains(image, "2002ffff") {
		t.Fatalf("expected image to contain 2002ffff, got %q", image)
	}

	insts, err := Decode(image)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := Disassemble(insts)
	if got != "\taddi\t$2, $0, -1" {
		t.Errorf("Disassemble() = %q, want %q", got, "\taddi\t$2, $0, -1")
	}
}

// TestLWOffsetRoundTrip exercises S5: "lw $4, -4($1)" disassembles back
// to identical text after a full assemble/decode round trip.
func TestLWOffsetRoundTrip(t *testing.T) {
	a := assembler.New()
	image, _, err := a.Assemble("\tlw $4, -4($1)\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	insts, err := Decode(image)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := Disassemble(insts)
	if got != "\tlw\t$4, -4($1)" {
		t.Errorf("Disassemble() = %q, want %q", got, "\tlw\t$4, -4($1)")
	}
}

// TestDisassembleAssembleNoLabels exercises property 5: reassembling the
// disassembly of a label-free program reproduces the identical hex
// image's instruction words.
func TestDisassembleAssembleNoLabels(t *testing.T) {
	src := "\taddi $1, $0, 5\n\taddi $2, $0, 7\n\tadd $3, $1, $2\n\tsw $3, 8($0)\n"
	a := assembler.New()
	image, _, err := a.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	insts, err := Decode(image)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	text := Disassemble(insts)

	reparsed, err := a.Parse(text)
	if err != nil {
		t.Fatalf("re-Parse of disassembly: %v", err)
	}
	reimage, err := a.Encode(reparsed)
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}

	wantWords := wordsOf(image)
	gotWords := wordsOf(reimage)
	if len(wantWords) != len(gotWords) {
		t.Fatalf("word count mismatch: got %d, want %d", len(gotWords), len(wantWords))
	}
	for i := range wantWords {
		if wantWords[i] != gotWords[i] {
			t.Errorf("word %d: got %q, want %q", i, gotWords[i], wantWords[i])
		}
	}
}

// TestDecodeInvalidFormat rejects a line that doesn't match the loose
// "<addr>:<8 hex chars>;" shape of spec.md §4.12.
func TestDecodeInvalidFormat(t *testing.T) {
	if _, err := Decode("not an image line\n"); err == nil {
		t.Error("expected Syntax error for malformed line")
	}
}

// wordsOf extracts just the 8-hex-char instruction word from each line of
// an Altera-MIF-style image, ignoring address/comment formatting.
func wordsOf(image string) []string {
	var out []string
	for _, line := range strings.Split(image, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := imageLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, m[2])
	}
	return out
}
