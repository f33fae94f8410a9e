// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

// Package cell implements the node type shared by every auxlist list: a
// small tagged union with two atomic slots (a strong "next" link and a weak
// "back" link) that together let callers perform Harris/Michael-style
// lock-free insert and delete without any surrounding lock.
//
// A Cell's tag and payload never change after construction; the only
// mutable state is the pair of atomic slots. That split is what lets
// concurrent readers walk the list with nothing but atomic loads while
// writers make progress with a single compare-and-swap.
package cell

import (
	"sync/atomic"
	"weak"

	"github.com/concurrentkit/auxlist/internal/cerr"
)

// ErrCASMismatch is returned by SwapInNext when the next slot no longer
// identifies the expected cell. It is not itself a NeedsUpdate condition —
// that classification happens one layer up, in the cursor and delete
// protocols, which are the only callers equipped to decide whether the
// mismatch is ordinary contention or something the caller must re-sync for.
const ErrCASMismatch = cerr.Error("cell: next no longer identifies expected cell")

// ErrNoNext is returned by SwapInNext when called on a Tail cell, which
// carries no next slot at all.
const ErrNoNext = cerr.Error("cell: tail cell has no next link")

type tag uint8

const (
	tagData tag = iota
	tagAux
	tagHead
	tagTail
)

// Cell is one node of an auxlist list. The zero value is not usable; cells
// are always obtained from NewHead, NewTail, NewAux, or NewData.
type Cell[T any] struct {
	tag  tag
	data T

	next atomic.Pointer[Cell[T]]
	back atomic.Pointer[weak.Pointer[Cell[T]]]
}

// NewHead constructs the list's head sentinel with the given initial next
// link (conventionally a freshly built Aux cell).
func NewHead[T any](next *Cell[T]) *Cell[T] {
	c := &Cell[T]{tag: tagHead}
	c.next.Store(next)
	return c
}

// NewTail constructs the list's tail sentinel. A Tail has no next slot;
// callers must never call StoreNext/SwapInNext against one.
func NewTail[T any]() *Cell[T] {
	return &Cell[T]{tag: tagTail}
}

// NewAux constructs an auxiliary marker cell with no payload.
func NewAux[T any](next *Cell[T]) *Cell[T] {
	c := &Cell[T]{tag: tagAux}
	c.next.Store(next)
	return c
}

// NewData constructs a data-bearing cell carrying v.
func NewData[T any](v T, next *Cell[T]) *Cell[T] {
	c := &Cell[T]{tag: tagData, data: v}
	c.next.Store(next)
	return c
}

// IsLast reports whether c is the Tail sentinel.
func (c *Cell[T]) IsLast() bool {
	return c.tag == tagTail
}

// IsDataCell reports whether c carries a payload.
func (c *Cell[T]) IsDataCell() bool {
	return c.tag == tagData
}

// IsNormalCell reports whether c is Data, Head, or Tail — i.e. anything
// that is not an Aux marker.
func (c *Cell[T]) IsNormalCell() bool {
	return c.tag != tagAux
}

// Val returns c's payload and true iff c is a data cell.
func (c *Cell[T]) Val() (T, bool) {
	if c.tag != tagData {
		var zero T
		return zero, false
	}
	return c.data, true
}

// NextDup returns the cell currently installed in c's next slot. The second
// return value is false iff c is Tail (which has no next slot) or the slot
// has not yet been initialized — the latter is only expected to happen
// transiently during construction or teardown.
func (c *Cell[T]) NextDup() (*Cell[T], bool) {
	if c.tag == tagTail {
		return nil, false
	}
	n := c.next.Load()
	if n == nil {
		return nil, false
	}
	return n, true
}

// NextCmp reports whether c's next slot currently identifies target.
func (c *Cell[T]) NextCmp(target *Cell[T]) bool {
	if c.tag == tagTail {
		return false
	}
	return c.next.Load() == target
}

// StoreNext unconditionally replaces c's next slot.
func (c *Cell[T]) StoreNext(next *Cell[T]) {
	if c.tag == tagTail {
		return
	}
	c.next.Store(next)
}

// SwapInNext performs the structural CAS at the heart of every insert and
// delete: if c's next slot currently identifies expected, it is atomically
// replaced with next and the evicted cell is returned. If the slot no
// longer identifies expected, ErrCASMismatch is returned and neither
// expected nor next is touched.
func (c *Cell[T]) SwapInNext(expected, next *Cell[T]) (*Cell[T], error) {
	if c.tag == tagTail {
		return nil, ErrNoNext
	}
	if !c.next.CompareAndSwap(expected, next) {
		return nil, ErrCASMismatch
	}
	return expected, nil
}

// StoreBacklink installs (or, passed nil, clears) the weak backlink used by
// concurrent deleters to resynchronize on a stable predecessor. It is a
// no-op on any cell that is not a data cell, matching the rest of the
// protocol's "auxes and sentinels never carry a backlink" rule.
func (c *Cell[T]) StoreBacklink(target *Cell[T]) {
	if c.tag != tagData {
		return
	}
	if target == nil {
		c.back.Store(nil)
		return
	}
	w := weak.Make(target)
	c.back.Store(&w)
}

// BacklinkDup attempts to upgrade c's weak backlink. The second return
// value is false if c carries no backlink, or if the backlink's target has
// already been collected — upgrade failure is never a structural error; it
// only means "that predecessor is gone, walk further".
func (c *Cell[T]) BacklinkDup() (*Cell[T], bool) {
	if c.tag != tagData {
		return nil, false
	}
	w := c.back.Load()
	if w == nil {
		return nil, false
	}
	target := w.Value()
	if target == nil {
		return nil, false
	}
	return target, true
}

// DropLinks drains c's atomic slots. It exists so that a caller holding the
// last handles to a run of removed cells can release the chain iteratively
// — list item by list item — instead of relying on the garbage collector to
// walk an arbitrarily long next-chain in one pass.
func (c *Cell[T]) DropLinks() {
	if c.tag == tagTail {
		return
	}
	c.next.Store(nil)
	if c.tag == tagData {
		c.back.Store(nil)
	}
}
