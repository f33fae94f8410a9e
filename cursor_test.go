// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 2: try_insert(42) then, without update, try_insert(99) fails
// with NeedsUpdate.
func TestTryInsertWithoutUpdateNeedsUpdate(t *testing.T) {
	l := New[int]()
	c, err := l.First()
	require.NoError(t, err)

	require.NoError(t, c.TryInsert(42))
	require.ErrorIs(t, c.TryInsert(99), ErrNeedsUpdate)
}

// update ∘ update = update: calling Update twice in a row with no
// intervening structural change leaves the cursor exactly as the first
// call left it.
func TestUpdateIsIdempotentOnceQuiesced(t *testing.T) {
	l := New[int]()
	c, err := l.First()
	require.NoError(t, err)
	require.NoError(t, c.Insert(1))
	require.NoError(t, c.Insert(2))

	c, err = l.First()
	require.NoError(t, err)

	before := *c
	require.NoError(t, c.Update())
	require.Equal(t, before, *c)
	require.NoError(t, c.Update())
	require.Equal(t, before, *c)
}

// try_insert(v) followed by re-seeking from First and try_delete returns a
// Data cell whose Val() == v, absent concurrent interposition.
func TestInsertThenDeleteRoundTrip(t *testing.T) {
	l := New[int]()
	c, err := l.First()
	require.NoError(t, err)
	require.NoError(t, c.TryInsert(7))

	c, err = l.First()
	require.NoError(t, err)

	d, err := c.TryDelete()
	require.NoError(t, err)

	v, ok := d.Val()
	require.True(t, ok)
	require.Equal(t, 7, v)
}

func TestNextOnUnsetCursorIsErrCursorInvalid(t *testing.T) {
	c := &Cursor[int]{}
	ok, err := c.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, ErrCursorInvalid)
}

func TestNextReturnsFalseAtTail(t *testing.T) {
	l := New[int]()
	c, err := l.First()
	require.NoError(t, err)

	more, err := c.Next()
	require.NoError(t, err)
	require.False(t, more)
}
