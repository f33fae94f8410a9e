// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import "github.com/concurrentkit/auxlist/internal/cell"

// Cell is a single removed or inspected node of a List, as returned by
// [Cursor.TryDelete] and [Cursor.Delete]. Its constructors are internal;
// callers only ever receive a Cell back from a delete.
type Cell[T any] = cell.Cell[T]

// List is a lock-free, singly-linked, auxiliary-node ordered list. The zero
// value is not usable; construct one with [New].
type List[T any] struct {
	head *cell.Cell[T]
	tail *cell.Cell[T]
}

// New constructs an empty List: the sentinel skeleton Head -> Aux -> Tail.
func New[T any]() *List[T] {
	tail := cell.NewTail[T]()
	aux := cell.NewAux(tail)
	head := cell.NewHead(aux)
	return &List[T]{head: head, tail: tail}
}

// First returns a Cursor positioned before the first real cell of the list.
// The returned cursor has already been synced, so its target is either the
// first data cell or the Tail sentinel on an empty list.
func (l *List[T]) First() (*Cursor[T], error) {
	preAux, ok := l.head.NextDup()
	if !ok {
		return nil, ErrNilNext
	}
	c := &Cursor[T]{
		preCell: l.head,
		preAux:  preAux,
	}
	if err := c.Update(); err != nil {
		return nil, err
	}
	return c, nil
}
