// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import "github.com/concurrentkit/auxlist/internal/cerr"

// ErrNeedsUpdate marks cursor staleness: a structural CAS was lost to a
// concurrent insert or delete. Cursor.Insert and Cursor.Delete retry
// automatically after calling Cursor.Update; Cursor.TryInsert and
// Cursor.TryDelete surface it directly so single-attempt callers can decide
// how to react.
const ErrNeedsUpdate = cerr.Error("auxlist: cursor needs update")

// ErrTargetIsLast is returned by TryDelete (and so by Delete) when the
// cursor's target is currently the list's Tail sentinel. TryInsert does not
// return it: inserting before Tail is how an element enters an empty list.
const ErrTargetIsLast = cerr.Error("auxlist: target is the tail sentinel")

// ErrCursorInvalid is returned by Next when called on a cursor whose target
// has not yet been established by Update.
const ErrCursorInvalid = cerr.Error("auxlist: cursor target is unset; call Update first")

// ErrNilNext is a programmatic error: a next-pointer slot that the
// structural invariant guarantees is populated was observed nil outside of
// construction or teardown. It should never occur in correct use of the
// API.
const ErrNilNext = cerr.Error("auxlist: observed nil next pointer on a live cell")
