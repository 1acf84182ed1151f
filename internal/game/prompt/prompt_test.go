package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancellableAppendsSentinel(t *testing.T) {
	got := Cancellable([]Choice{NewChoice("A"), NewChoice("B")}, false)

	assert.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
	assert.Equal(t, CancelTitle, got[2].Title)
	assert.True(t, got[2].Cancel)
}

func TestCancellableSorted(t *testing.T) {
	got := Cancellable([]Choice{NewChoice("B"), NewChoice("A")}, true)

	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
	assert.True(t, got[2].Cancel)
}

func TestCancellableSortStableForTies(t *testing.T) {
	got := Cancellable([]Choice{
		{Title: "A", Value: 1},
		{Title: "B", Value: 2},
		{Title: "A", Value: 3},
	}, true)

	assert.Equal(t, 1, got[0].Value)
	assert.Equal(t, 3, got[1].Value)
	assert.Equal(t, 2, got[2].Value)
	assert.True(t, got[3].Cancel)
}

func TestCancellableDoesNotMutateInput(t *testing.T) {
	in := []Choice{NewChoice("B"), NewChoice("A")}
	_ = Cancellable(in, true)

	assert.Equal(t, "B", in[0].Title)
	assert.Equal(t, "A", in[1].Title)
}

func TestCancellableEmpty(t *testing.T) {
	got := Cancellable(nil, false)
	assert.Len(t, got, 1)
	assert.True(t, got[0].Cancel)
}
