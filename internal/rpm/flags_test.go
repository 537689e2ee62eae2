package rpm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagsToString(t *testing.T) {
	tests := []struct {
		flags int
		want  string
	}{
		{0, ""},
		{senseEqual, "EQ"},
		{senseLess, "LT"},
		{senseLess | senseEqual, "LE"},
		{senseGreater, "GT"},
		{senseGreater | senseEqual, "GE"},
		// Bits outside the comparison sub-field are ignored.
		{senseEqual | sensePrereqMask, "EQ"},
		{senseGreater | senseEqual | senseRpmlib, "GE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FlagsToString(tt.flags), "flags %#x", tt.flags)
	}
}

func TestIsPreReq(t *testing.T) {
	assert.False(t, IsPreReq(0))
	assert.False(t, IsPreReq(senseEqual))
	assert.True(t, IsPreReq(0x100))
	assert.True(t, IsPreReq(0x1000))
	assert.True(t, IsPreReq(senseEqual|0x1100))
}

func TestIsRpmlib(t *testing.T) {
	assert.False(t, IsRpmlib(0))
	assert.False(t, IsRpmlib(senseEqual|sensePrereqMask))
	assert.True(t, IsRpmlib(senseRpmlib))
	assert.True(t, IsRpmlib(senseRpmlib|senseEqual))
}
