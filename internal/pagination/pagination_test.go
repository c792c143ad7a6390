package pagination

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// render prints a plan as "0 1 … 9" for compact assertions.
func render(p Plan) string {
	parts := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		if it.Ellipsis {
			parts = append(parts, "…")
			continue
		}
		parts = append(parts, strconv.Itoa(it.Page))
	}
	return strings.Join(parts, " ")
}

func TestNewHiddenForSinglePage(t *testing.T) {
	for _, total := range []int{0, 1} {
		p := New(0, total)
		assert.True(t, p.Hidden)
		assert.Empty(t, p.Items)
	}
}

func TestNewListsAllPagesUpToFive(t *testing.T) {
	assert.Equal(t, "0 1", render(New(0, 2)))
	assert.Equal(t, "0 1 2 3 4", render(New(3, 5)))
}

func TestNewWindowed(t *testing.T) {
	cases := []struct {
		current int
		want    string
	}{
		{0, "0 1 2 3 … 9"},
		{1, "0 1 2 3 … 9"},
		{2, "0 1 2 3 … 9"},
		{3, "0 … 2 3 4 … 9"},
		{5, "0 … 4 5 6 … 9"},
		{7, "0 … 6 7 8 9"},
		{8, "0 … 6 7 8 9"},
		{9, "0 … 6 7 8 9"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, render(New(tc.current, 10)), "current=%d", tc.current)
	}
}

func TestNewSixPages(t *testing.T) {
	assert.Equal(t, "0 1 2 3 … 5", render(New(0, 6)))
	assert.Equal(t, "0 … 2 3 4 5", render(New(3, 6)))
	assert.Equal(t, "0 … 2 3 4 5", render(New(5, 6)))
}

func TestNewPrevNextState(t *testing.T) {
	first := New(0, 10)
	assert.True(t, first.PrevDisabled)
	assert.False(t, first.NextDisabled)

	last := New(9, 10)
	assert.False(t, last.PrevDisabled)
	assert.True(t, last.NextDisabled)
	assert.Equal(t, 8, last.Prev())

	mid := New(4, 10)
	assert.Equal(t, 3, mid.Prev())
	assert.Equal(t, 5, mid.Next())
}

func TestNewClampsCurrent(t *testing.T) {
	assert.Equal(t, 9, New(42, 10).Current)
	assert.Equal(t, 0, New(-3, 10).Current)
}
