// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import "github.com/concurrentkit/auxlist/internal/cell"

// Cursor is a position in a List. It tracks the normal cell it sits behind
// (preCell), the auxiliary cell that should immediately follow it
// (preAux), and the next normal cell (target), which is nil until
// established by Update.
//
// A Cursor is not safe for concurrent use by multiple goroutines; each
// goroutine should hold its own cursor (e.g. one obtained from its own call
// to [List.First]).
type Cursor[T any] struct {
	preCell *cell.Cell[T]
	preAux  *cell.Cell[T]
	target  *cell.Cell[T]
}

// Update re-establishes the cursor invariant — preAux is the Aux
// immediately following preCell, and target is the normal cell immediately
// following preAux — which concurrent inserts and deletes may have broken.
// It is idempotent once the list has quiesced.
func (c *Cursor[T]) Update() error {
	if c.target != nil && c.preAux.NextCmp(c.target) {
		// Invariant already holds.
		return nil
	}

	p := c.preAux
	n, ok := p.NextDup()
	if !ok {
		return ErrNilNext
	}
	c.target = nil

	for !n.IsLast() && !n.IsDataCell() {
		// n is an Aux immediately following another Aux: an interstitial
		// state left behind by a concurrent delete. Splice it out on a
		// best-effort basis; any CAS failure here is benign (someone else
		// is helping, or already has) and must not propagate.
		_, _ = c.preCell.SwapInNext(p, n)

		p = n
		next, ok := n.NextDup()
		if !ok {
			return ErrNilNext
		}
		n = next
	}

	c.preAux = p
	c.target = n
	return nil
}

// Next advances the cursor to the position after its current target and
// re-syncs it. It returns false (with a nil error) iff the prior target was
// the Tail sentinel, meaning there was nothing to advance past.
func (c *Cursor[T]) Next() (bool, error) {
	if c.target == nil {
		return false, ErrCursorInvalid
	}
	if c.target.IsLast() {
		return false, nil
	}

	c.preCell = c.target
	preAux, ok := c.target.NextDup()
	if !ok {
		return false, ErrNilNext
	}
	c.preAux = preAux
	c.target = nil

	if err := c.Update(); err != nil {
		return false, err
	}
	return true, nil
}

// TryInsert makes a single attempt to insert v immediately before the
// cursor's current target. It fails with [ErrNeedsUpdate] if the cursor's
// target is unset or if a concurrent operation has steered preAux's next
// link elsewhere since the cursor was last synced; on success the cursor is
// left stale and callers should call Update before another TryInsert.
func (c *Cursor[T]) TryInsert(v T) error {
	target := c.target
	if target == nil {
		return ErrNeedsUpdate
	}

	aux := cell.NewAux(target)
	data := cell.NewData(v, aux)

	if _, err := c.preAux.SwapInNext(target, data); err != nil {
		return ErrNeedsUpdate
	}
	return nil
}

// Insert retries TryInsert, re-syncing the cursor via Update after every
// [ErrNeedsUpdate], until the insert succeeds or a non-recoverable error
// occurs.
func (c *Cursor[T]) Insert(v T) error {
	for {
		err := c.TryInsert(v)
		if err == nil {
			return nil
		}
		if err != ErrNeedsUpdate {
			return err
		}
		if err := c.Update(); err != nil {
			return err
		}
	}
}
