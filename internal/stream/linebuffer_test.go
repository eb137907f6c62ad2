package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBufferHoldsPartialLine(t *testing.T) {
	var b lineBuffer

	assert.Nil(t, b.feed(`data: {"type":"te`))
	assert.Nil(t, b.feed(`xt","content":"hi"}`))

	lines := b.feed("\n")
	assert.Equal(t, []string{`data: {"type":"text","content":"hi"}`}, lines)
}

func TestLineBufferSplitsMultipleLines(t *testing.T) {
	var b lineBuffer

	lines := b.feed("one\n\ntwo\nthree")
	assert.Equal(t, []string{"one", "", "two"}, lines)

	// "three" stays buffered until its terminator shows up
	lines = b.feed("\n")
	assert.Equal(t, []string{"three"}, lines)
}

func TestLineBufferNeverFlushesResidual(t *testing.T) {
	var b lineBuffer

	assert.Nil(t, b.feed("no terminator here"))
	assert.Nil(t, b.feed(" still none"))
}

func TestLineBufferFragmentPerByte(t *testing.T) {
	var b lineBuffer

	input := "alpha\nbeta\n"
	var lines []string
	for _, r := range input {
		lines = append(lines, b.feed(string(r))...)
	}
	assert.Equal(t, []string{"alpha", "beta"}, lines)
}
