// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package auxlist

import (
	"cmp"
	"slices"
	"testing"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestSingleActorStateMachine drives a single cursor through randomized
// Insert/Delete/Next/Update sequences and checks every observation against
// a plain-slice model that tracks the cursor's position, exercising the round-trip laws from the conservation
// and structural-alternation invariants without any concurrency.
func TestSingleActorStateMachine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := New[int]()
		var model []int // model[0] is the value nearest Head
		pos := 0        // index in model of c's target; len(model) when it is Tail

		c, err := l.First()
		require.NoError(t, err)

		t.Repeat(map[string]func(*rapid.T){
			"insert": func(t *rapid.T) {
				v := rapid.Int().Draw(t, "v")
				require.NoError(t, c.Insert(v))
				require.NoError(t, c.Update())
				model = slices.Insert(model, pos, v)
			},
			"delete": func(t *rapid.T) {
				if pos == len(model) {
					t.Skip("cursor target is Tail")
				}
				d, err := c.Delete()
				require.NoError(t, err)
				got, ok := d.Val()
				require.True(t, ok)
				require.Equal(t, model[pos], got)
				model = slices.Delete(model, pos, pos+1)
				require.NoError(t, c.Update())
			},
			"next": func(t *rapid.T) {
				more, err := c.Next()
				require.NoError(t, err)
				if more {
					pos++
				}
			},
			"reseekAndCheck": func(t *rapid.T) {
				c, err = l.First()
				require.NoError(t, err)
				for _, want := range model {
					v, ok := c.target.Val()
					require.True(t, ok)
					require.Equal(t, want, v)
					more, err := c.Next()
					require.NoError(t, err)
					require.True(t, more)
				}
				require.True(t, c.target.IsLast())
				pos = len(model)
			},
		})
	})
}

// simulatedOp is one scheduled mutation against the shared list, played back
// in the logical-time order a heap.Heap[_, heap.Min] produces. Using a heap
// to linearize a randomly-jittered schedule, and a deque as an overflow
// queue once too many actors are mid-operation, follows the same pattern
// the surrounding library's own concurrency simulations use to explore
// interleavings deterministically under rapid.
type simulatedOp struct {
	actor     int
	fireOrder int
	kind      string // "insert" or "delete"
	value     int
}

func (a *simulatedOp) Cmp(b *simulatedOp) int {
	return cmp.Compare(a.fireOrder, b.fireOrder)
}

// TestInterleavedActorsConserveCount models several independent actors, each
// with its own cursor, whose insert/delete operations are interleaved in an
// order drawn by rapid rather than left to the Go scheduler. After all
// operations fire, it checks invariant 2 (conservation): exactly
// inserts-deletes data cells remain reachable, each visited once.
func TestInterleavedActorsConserveCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numActors := rapid.IntRange(1, 6).Draw(t, "numActors")
		opsPerActor := rapid.IntRange(0, 8).Draw(t, "opsPerActor")

		l := New[int]()
		cursors := make([]*Cursor[int], numActors)
		for i := range cursors {
			c, err := l.First()
			require.NoError(t, err)
			cursors[i] = c
		}

		var schedule heap.Heap[simulatedOp, heap.Min]
		nextValue := 0
		for a := 0; a < numActors; a++ {
			for i := 0; i < opsPerActor; i++ {
				kind := "insert"
				if rapid.Bool().Draw(t, "isDelete") {
					kind = "delete"
				}
				op := simulatedOp{
					actor:     a,
					fireOrder: rapid.IntRange(0, 1_000_000).Draw(t, "fireOrder"),
					kind:      kind,
				}
				if kind == "insert" {
					op.value = nextValue
					nextValue++
				}
				heap.PushOrderable(&schedule, op)
			}
		}

		// Cap how many actors may be mid-operation at once; the rest queue
		// up and are admitted one-for-one as slots free, the same
		// queue-on-overflow shape the surrounding library uses to bound
		// concurrent gather threads.
		maxActive := min(numActors, 3)
		var waiting deque.Deque[simulatedOp]
		active := 0
		wantCount := 0

		apply := func(op simulatedOp) {
			c := cursors[op.actor]
			require.NoError(t, c.Update())
			switch op.kind {
			case "insert":
				require.NoError(t, c.Insert(op.value))
				wantCount++
			case "delete":
				if !c.target.IsLast() {
					_, err := c.Delete()
					require.NoError(t, err)
					wantCount--
				}
			}
		}

		admit := func(op simulatedOp) {
			if active < maxActive {
				active++
				apply(op)
				active--
				if waiting.Len() > 0 {
					apply(waiting.PopFront())
				}
				return
			}
			waiting.PushBack(op)
		}

		for {
			op, ok := heap.PopOrderable(&schedule)
			if !ok {
				break
			}
			admit(op)
		}
		for waiting.Len() > 0 {
			apply(waiting.PopFront())
		}

		c, err := l.First()
		require.NoError(t, err)
		gotCount := 0
		seen := map[int]bool{}
		for {
			if !c.target.IsLast() {
				v, ok := c.target.Val()
				require.True(t, ok)
				require.False(t, seen[v], "value %d visited more than once", v)
				seen[v] = true
				gotCount++
			}
			more, err := c.Next()
			require.NoError(t, err)
			if !more {
				break
			}
		}
		require.Equal(t, wantCount, gotCount)
	})
}
