package stonapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExistingPoolError_Match(t *testing.T) {
	payload := "1020: pool for pair already exists for selected type of router: [EQabc, EQdef]"
	assert.True(t, IsExistingPoolError(payload))
}

func TestIsExistingPoolError_OtherFailure(t *testing.T) {
	assert.False(t, IsExistingPoolError("insufficient funds"))
}

func TestIsExistingPoolError_CodeWithoutPhrase(t *testing.T) {
	assert.False(t, IsExistingPoolError("1020: something unrelated"))
}

func TestIsExistingPoolError_PhraseWithoutCode(t *testing.T) {
	assert.False(t, IsExistingPoolError("pool already exists for selected type of router: [EQabc]"))
}

func TestExtractPoolAddress_First(t *testing.T) {
	addr, ok := ExtractPoolAddress("1020: ... router: [EQabc, EQdef]")
	assert.True(t, ok)
	assert.Equal(t, "EQabc", addr)
}

func TestExtractPoolAddress_TrimsWhitespace(t *testing.T) {
	addr, ok := ExtractPoolAddress("router: [ EQabc , EQdef ]")
	assert.True(t, ok)
	assert.Equal(t, "EQabc", addr)
}

func TestExtractPoolAddress_EmptyList(t *testing.T) {
	_, ok := ExtractPoolAddress("1020: ... router: []")
	assert.False(t, ok)
}

func TestExtractPoolAddress_NoBrackets(t *testing.T) {
	_, ok := ExtractPoolAddress("1020: pool already exists")
	assert.False(t, ok)
}
