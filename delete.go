// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import "github.com/concurrentkit/auxlist/internal/cell"

// deleteLoopCondition classifies the outcome of one iteration of
// TryDelete's physical unlink CAS: a clean success, an ordinary CAS race
// worth retrying, or one of two concurrent-delete handoffs where the work
// has already been (or will be) finished by whichever cursor holds the
// longer span.
type deleteLoopCondition int

const (
	deleteSuccess deleteLoopCondition = iota
	deleteFailure
	deleteConcurrentDelForward
	deleteConcurrentDelPrev
)

// outlinkTarget performs delete's first phase: it CASes the cursor's preAux
// next pointer past the current target, making the target unreachable from
// the live spine. It returns the removed cell d and its successor n (the
// Aux that had followed d).
func (c *Cursor[T]) outlinkTarget() (d, n *cell.Cell[T], err error) {
	target := c.target
	if target == nil {
		return nil, nil, ErrNeedsUpdate
	}
	if target.IsLast() {
		return nil, nil, ErrTargetIsLast
	}

	d = target
	n, ok := target.NextDup()
	if !ok {
		return nil, nil, ErrNilNext
	}

	if _, err := c.preAux.SwapInNext(d, n); err != nil {
		return nil, nil, ErrNeedsUpdate
	}

	c.target = nil
	return d, n, nil
}

// calculateDeleteStart walks backlinks from the cursor's preCell to find a
// stable predecessor p — one that has not itself been outlinked — and
// returns it along with its current successor s.
func (c *Cursor[T]) calculateDeleteStart() (p, s *cell.Cell[T], err error) {
	p = c.preCell
	for {
		q, ok := p.BacklinkDup()
		if !ok {
			break
		}
		p = q
	}
	s, ok := p.NextDup()
	if !ok {
		return nil, nil, ErrNilNext
	}
	return p, s, nil
}

// nIsLastAux reports whether n is the final Aux of the trailing aux run,
// i.e. whether the cell after n is a normal cell rather than another Aux.
func nIsLastAux[T any](n *cell.Cell[T]) (bool, error) {
	nNext, ok := n.NextDup()
	if !ok {
		return false, ErrNilNext
	}
	return nNext.IsNormalCell(), nil
}

// advanceDeleteEnd extends the removal window past any run of Aux cells
// that concurrent outlinks have accumulated after n.
func advanceDeleteEnd[T any](n *cell.Cell[T]) (*cell.Cell[T], error) {
	nNext, ok := n.NextDup()
	if !ok {
		return nil, ErrNilNext
	}
	for !nNext.IsNormalCell() {
		n = nNext
		nNext, ok = n.NextDup()
		if !ok {
			return nil, ErrNilNext
		}
	}
	return n, nil
}

// classifyDeleteLoop decides what a failed physical-unlink CAS means: that
// p has itself been concurrently deleted (ConcurrentDelPrev), that n is no
// longer the trailing aux because another delete extended the run past it
// (ConcurrentDelForward), or that both p and n are still current and the
// CAS should simply be retried (Failure).
func classifyDeleteLoop[T any](success bool, p, n *cell.Cell[T]) (deleteLoopCondition, error) {
	if success {
		return deleteSuccess, nil
	}
	if _, ok := p.BacklinkDup(); ok {
		return deleteConcurrentDelPrev, nil
	}
	isLast, err := nIsLastAux(n)
	if err != nil {
		return 0, err
	}
	if !isLast {
		return deleteConcurrentDelForward, nil
	}
	return deleteFailure, nil
}

// TryDelete makes a single attempt to remove the cursor's current target.
// It fails with [ErrNeedsUpdate] if the target is unset or a concurrent
// operation invalidated the cursor since it was last synced, and with
// [ErrTargetIsLast] if the target is the Tail sentinel. On success it
// returns the removed cell; the caller now owns the only reference the
// list itself held to it.
func (c *Cursor[T]) TryDelete() (*cell.Cell[T], error) {
	d, n, err := c.outlinkTarget()
	if err != nil {
		return nil, err
	}

	p, s, err := c.calculateDeleteStart()
	if err != nil {
		return nil, err
	}

	// Publish "I was deleted; look back from me to find the stable
	// predecessor" for any concurrent deleter that later walks through d.
	d.StoreBacklink(p)

	n, err = advanceDeleteEnd(n)
	if err != nil {
		return nil, err
	}

	for {
		_, casErr := p.SwapInNext(s, n)

		cond, err := classifyDeleteLoop(casErr == nil, p, n)
		if err != nil {
			return nil, err
		}

		switch cond {
		case deleteSuccess, deleteConcurrentDelPrev, deleteConcurrentDelForward:
			// Physically unlinked, or handed off to whichever cursor next
			// observes and successfully CASes the longer span.
			return d, nil
		case deleteFailure:
			refreshed, ok := p.NextDup()
			if !ok {
				return nil, ErrNilNext
			}
			s = refreshed
			continue
		}
	}
}

// Delete retries TryDelete, re-syncing the cursor via Update after every
// [ErrNeedsUpdate], until the delete succeeds or a non-recoverable error
// occurs.
func (c *Cursor[T]) Delete() (*cell.Cell[T], error) {
	for {
		d, err := c.TryDelete()
		if err == nil {
			return d, nil
		}
		if err != ErrNeedsUpdate {
			return nil, err
		}
		if err := c.Update(); err != nil {
			return nil, err
		}
	}
}
