// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

// Package auxlist implements a lock-free, singly-linked, auxiliary-node
// ordered list in the style of Harris/Michael and Sundell/Tsigas. Insert and
// delete make progress through compare-and-swap on next-pointers alone;
// there is no mutual exclusion anywhere in the package.
//
// # Shape of the list
//
// Every data cell in the list is flanked by an auxiliary marker cell with no
// payload:
//
//	Head, Aux, Data, Aux, Data, Aux, ..., Data, Aux, Tail
//
// The auxiliary cells exist purely as stable CAS targets: inserting next to
// a data cell means CASing the preceding Aux's next pointer rather than
// racing directly against whatever the data cell's neighbors are doing.
// Deleting a data cell happens in two phases — an "outlink" CAS that makes
// the cell unreachable from the live spine, followed by a best-effort
// "unlink" CAS that trims the auxiliary run left behind. Any cursor that
// later passes through a stale auxiliary run helps compact it; no single
// goroutine owns cleanup.
//
// # Cursor model
//
// [List.First] returns a [Cursor] positioned just before the first real
// cell. A cursor tracks three cells: the normal cell it sits behind
// (pre_cell), the auxiliary cell immediately after that ([Cursor.Update]
// maintains this invariant), and the next normal cell (target). Concurrent
// inserts and deletes can invalidate a cursor at any time; operations that
// notice this return [ErrNeedsUpdate] rather than silently retrying. The
// retrying [Cursor.Insert] and [Cursor.Delete] methods call [Cursor.Update]
// and try again; [Cursor.TryInsert] and [Cursor.TryDelete] make exactly one
// attempt.
//
// # What this package does not do
//
// There is no search by value and no sorted order — positional traversal
// only. There is no size counter and no guarantee on iteration order under
// concurrent mutation beyond linearizability of insert/delete on the
// positions a cursor resolves to. The iteration/collection ergonomics,
// allocator choices, and any wider API built on top of cursors are left to
// callers; this package is the structural core.
package auxlist
