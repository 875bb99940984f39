package todo

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderWithinGroup(t *testing.T) {
	s, _ := newStore(t)
	a := mustAdd(t, s, "a", "Work")
	g := mustAdd(t, s, "g", "General")
	b := mustAdd(t, s, "b", "Work")
	c := mustAdd(t, s, "c", "Work")

	require.NoError(t, s.Reorder("Work", 0, 2))
	assert.Equal(t, []int64{b.ID, c.ID, a.ID}, ids(s.GroupItems("Work")))
	// the General item keeps its slot
	assert.Equal(t, g.ID, s.Items()[1].ID)

	require.NoError(t, s.Reorder("Work", 2, 0))
	assert.Equal(t, []int64{a.ID, b.ID, c.ID}, ids(s.GroupItems("Work")))
}

func TestReorderPreservesMultiset(t *testing.T) {
	s, _ := newStore(t)
	for _, txt := range []string{"a", "b", "c", "d", "e"} {
		mustAdd(t, s, txt, "Work")
	}
	mustAdd(t, s, "x", "Home")

	before := ids(s.GroupItems("Work"))
	total := len(s.Items())
	moves := [][2]int{{0, 4}, {3, 1}, {2, 2}, {4, 0}, {1, 3}}
	for _, m := range moves {
		require.NoError(t, s.Reorder("Work", m[0], m[1]))
		after := ids(s.GroupItems("Work"))
		assert.ElementsMatch(t, before, after)
		assert.Len(t, s.Items(), total)
	}
}

func TestReorderOutOfBoundsIsNoop(t *testing.T) {
	s, _ := newStore(t)
	mustAdd(t, s, "a", "Work")
	mustAdd(t, s, "b", "Work")
	before := s.Snapshot()

	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 7}, {1, 1}}
	for _, c := range cases {
		require.NoError(t, s.Reorder("Work", c[0], c[1]))
	}
	require.NoError(t, s.Reorder("Nope", 0, 1))
	assert.Empty(t, cmp.Diff(before, s.Snapshot()))
}

func TestReorderGroups(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.AddGroup("Work"))
	require.NoError(t, s.AddGroup("Home"))

	require.NoError(t, s.ReorderGroups(2, 0))
	assert.Equal(t, []string{"Home", "General", "Work"}, s.Groups())

	require.NoError(t, s.ReorderGroups(0, 3))
	require.NoError(t, s.ReorderGroups(-1, 0))
	assert.Equal(t, []string{"Home", "General", "Work"}, s.Groups())

	sorted := s.Groups()
	slices.Sort(sorted)
	assert.Equal(t, []string{"General", "Home", "Work"}, sorted)
}

func TestMoveHelper(t *testing.T) {
	assert.Equal(t, []int{2, 3, 1}, move([]int{1, 2, 3}, 0, 2))
	assert.Equal(t, []int{3, 1, 2}, move([]int{1, 2, 3}, 2, 0))
	assert.Equal(t, []int{1, 3, 2}, move([]int{1, 2, 3}, 1, 2))
}
