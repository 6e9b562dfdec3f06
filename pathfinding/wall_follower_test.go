package pathfinding

import (
	"testing"

	"github.com/beka-birhanu/vinom-pathviz/canvas"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallFollowerTwoCells(t *testing.T) {
	for _, name := range []string{LeftWallFollower, RightWallFollower} {
		t.Run(name, func(t *testing.T) {
			m := twoCells(t, true)
			e, err := New(name, m, m)
			require.NoError(t, err)

			assert.True(t, e.Step())
			st := e.State()
			assert.True(t, st.Found)
			assert.Equal(t, []maze.Position{pos(0, 0), pos(1, 0)}, st.FinalPath)
			assert.Equal(t, "right", st.Facing)
			assert.Equal(t, pos(1, 0), *st.Position)
		})
	}
}

func TestWallFollowerTurnPreference(t *testing.T) {
	// From (0,0) facing right on an open 2x2 grid the left hand finds no
	// opening above and goes straight, the right hand turns down.
	m := openGrid(t, 2, 2)

	left := NewLeftWallFollower(m, m)
	require.False(t, left.Step())
	at, facing := left.Position()
	assert.Equal(t, pos(1, 0), at)
	assert.Equal(t, maze.Right, facing)

	right := NewRightWallFollower(m, m)
	require.False(t, right.Step())
	at, facing = right.Position()
	assert.Equal(t, pos(0, 1), at)
	assert.Equal(t, maze.Down, facing)
}

func TestWallFollowerReversesAtDeadEnd(t *testing.T) {
	// S . .
	// # # E   (walls below the first two cells)
	m, err := maze.New(3, 2)
	require.NoError(t, err)
	m.Carve(pos(0, 0), maze.Right)
	m.Carve(pos(1, 0), maze.Right)
	m.Carve(pos(2, 0), maze.Down)

	e := NewRightWallFollower(m, m)
	runToEnd(t, e, 10)
	assert.Equal(t, []maze.Position{pos(0, 0), pos(1, 0), pos(2, 0), pos(2, 1)}, e.State().FinalPath)

	// A dead end forces a reversal as a move.
	m, err = maze.New(2, 2)
	require.NoError(t, err)
	m.Carve(pos(0, 0), maze.Right)
	m.Carve(pos(0, 0), maze.Down)
	m.Carve(pos(0, 1), maze.Right)

	e = NewLeftWallFollower(m, m)
	runToEnd(t, e, 10)
	assert.Equal(t, []maze.Position{pos(0, 0), pos(1, 0), pos(0, 0), pos(0, 1), pos(1, 1)}, e.State().FinalPath)
}

func TestWallFollowerBoxedIn(t *testing.T) {
	m := twoCells(t, false)
	e := NewLeftWallFollower(m, m)

	for i := 0; i < 6; i++ {
		assert.False(t, e.Step())
	}
	st := e.State()
	assert.False(t, st.Done)
	assert.Equal(t, pos(0, 0), *st.Position)
	assert.Equal(t, "right", st.Facing, "an even number of half turns")
	assert.Equal(t, []maze.Position{pos(0, 0)}, st.CurrentPath)
	assert.Equal(t, 6, st.Steps)
}

func TestDrawWallFollower(t *testing.T) {
	m := openGrid(t, 3, 1)
	e := NewRightWallFollower(m, m)
	require.False(t, e.Step())

	rec := &canvas.Recorder{}
	e.Draw(rec, 30)

	assert.Len(t, rec.Filter(canvas.OpFillRect), 2)

	strokes := rec.Filter(canvas.OpStrokePolyline)
	require.Len(t, strokes, 1)
	assert.Equal(t, 10.0, strokes[0].Stroke.Width)
	assert.Equal(t, rightPalette.current, strokes[0].Color)

	circles := rec.Filter(canvas.OpFillCircle)
	require.Len(t, circles, 1)
	assert.Equal(t, canvas.Point{X: 45, Y: 15}, circles[0].Center)
}
