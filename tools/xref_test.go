package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesterovishwa12/eseasm/assembler"
)

func TestGenerateClassifiesReferenceKinds(t *testing.T) {
	src := "\tbeq $1, $0, loop\n" +
		"\tj loop\n" +
		"\tjal loop\n" +
		"loop:\taddi $1, $0, 0\n"

	a := assembler.New()
	result, err := a.Parse(src)
	require.NoError(t, err)

	symbols := Generate(result)
	sym, ok := symbols["loop"]
	require.True(t, ok)
	require.NotNil(t, sym.Definition)
	assert.Equal(t, RefDefinition, sym.Definition.Type)
	assert.Equal(t, 3, sym.Definition.StepNo)

	require.Len(t, sym.References, 3)
	kinds := make(map[ReferenceType]int)
	for _, ref := range sym.References {
		kinds[ref.Type]++
	}
	assert.Equal(t, 1, kinds[RefBranch])
	assert.Equal(t, 1, kinds[RefJump])
	assert.Equal(t, 1, kinds[RefJumpAndLink])
}

func TestSortedNamesAlphabetical(t *testing.T) {
	src := "\tj zebra\n\tj apple\nzebra:\taddi $1, $0, 0\napple:\taddi $1, $0, 0\n"
	a := assembler.New()
	result, err := a.Parse(src)
	require.NoError(t, err)

	symbols := Generate(result)
	assert.Equal(t, []string{"apple", "zebra"}, SortedNames(symbols))
}

func TestReferenceTypeString(t *testing.T) {
	assert.Equal(t, "definition", RefDefinition.String())
	assert.Equal(t, "branch", RefBranch.String())
	assert.Equal(t, "jump", RefJump.String())
	assert.Equal(t, "jump-and-link", RefJumpAndLink.String())
}
