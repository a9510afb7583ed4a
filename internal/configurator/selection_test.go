package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleOptionSingleSelectReplaces(t *testing.T) {
	sel := NewSelection()
	sel = ToggleOption(sel, "size", "small", false)
	sel = ToggleOption(sel, "size", "large", false)

	assert.Equal(t, []string{"large"}, sel.Options("size"))
}

func TestToggleOptionSingleSelectReclickKeepsChoice(t *testing.T) {
	sel := NewSelection()
	sel = ToggleOption(sel, "size", "large", false)
	require.Equal(t, []string{"large"}, sel.Options("size"))

	sel = ToggleOption(sel, "size", "large", false)
	assert.Equal(t, []string{"large"}, sel.Options("size"))
}

func TestToggleOptionSingleSelectNeverExceedsOne(t *testing.T) {
	clicks := []string{"a", "b", "a", "c", "c", "b", "a"}
	sel := NewSelection()
	for _, id := range clicks {
		sel = ToggleOption(sel, "size", id, false)
		assert.LessOrEqual(t, len(sel.Chosen["size"]), 1)
	}
}

func TestToggleOptionMultiSelectIsInvolution(t *testing.T) {
	base := ToggleOption(NewSelection(), "extras", "basil", true)
	for _, id := range []string{"basil", "chili"} {
		twice := ToggleOption(ToggleOption(base, "extras", id, true), "extras", id, true)
		assert.Equal(t, base.Chosen, twice.Chosen, "toggling %s twice", id)
	}
}

func TestToggleOptionRemovesEmptyType(t *testing.T) {
	sel := ToggleOption(NewSelection(), "extras", "basil", true)
	sel = ToggleOption(sel, "extras", "basil", true)

	_, ok := sel.Chosen["extras"]
	assert.False(t, ok, "empty type entry must be removed")
}

func TestToggleOptionDoesNotMutateInput(t *testing.T) {
	before := ToggleOption(NewSelection(), "extras", "basil", true)
	_ = ToggleOption(before, "extras", "chili", true)

	assert.Equal(t, []string{"basil"}, before.Options("extras"))
}

func TestNewSelectionDefaults(t *testing.T) {
	sel := NewSelection()
	assert.Equal(t, 1, sel.Quantity)
	assert.Zero(t, sel.Count())
	assert.Empty(t, sel.Note)
}
