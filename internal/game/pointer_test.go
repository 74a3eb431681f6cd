package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointer_Filter(t *testing.T) {
	var p Pointer

	assert.True(t, p.Filter(Press(0)))
	assert.False(t, p.Filter(Enter(0)), "still over the pressed cell")
	assert.True(t, p.Filter(Enter(1)))
	assert.False(t, p.Filter(Enter(1)))
	assert.False(t, p.Filter(Enter(1)))
	assert.True(t, p.Filter(Enter(2)))
	assert.True(t, p.Filter(Enter(1)), "moving back is a new cell")
	assert.True(t, p.Filter(Release()))

	// Not held: hover events pass through untouched.
	assert.True(t, p.Filter(Enter(1)))
	assert.True(t, p.Filter(Enter(1)))

	assert.True(t, p.Filter(Clear()))
	assert.False(t, p.Filter(Intent{}))
}
