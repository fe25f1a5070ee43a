package concessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Adjust(t *testing.T) {
	sel := NewSelection()

	assert.Equal(t, 2, sel.Adjust("popcorn", 2))
	assert.Equal(t, 3, sel.Adjust("popcorn", 1))
	assert.Equal(t, 1, sel.Adjust("soda", 1))
	assert.Equal(t, 4, sel.TotalItems())

	// Dropping to zero removes the entry entirely.
	assert.Equal(t, 0, sel.Adjust("soda", -1))
	assert.NotContains(t, sel, "soda")

	// Over-decrementing clamps at removal instead of going negative.
	assert.Equal(t, 0, sel.Adjust("popcorn", -10))
	assert.NotContains(t, sel, "popcorn")
	assert.Equal(t, 0, sel.TotalItems())
}

func TestSelection_AdjustUnknownItem(t *testing.T) {
	sel := NewSelection()

	// A negative delta on an absent item is a no-op.
	assert.Equal(t, 0, sel.Adjust("nachos", -1))
	assert.Empty(t, sel)

	assert.Equal(t, 0, sel.Quantity("nachos"))
}
