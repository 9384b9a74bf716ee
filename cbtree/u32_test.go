// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI

package cbtree

import (
	"math/rand"
	"testing"
)

func TestU32Empty(t *testing.T) {
	tree := &U32Tree{}

	if rec, ok := tree.Lookup(42); ok || rec != nil {
		t.Errorf("Lookup() = (%v, %t); want (nil, false)", rec, ok)
	}
	if rec := tree.First(); rec != nil {
		t.Errorf("First() = %v; want nil", rec)
	}
	if rec := tree.Last(); rec != nil {
		t.Errorf("Last() = %v; want nil", rec)
	}
	if rec, ok := tree.Delete(&U32Record{}); ok || rec != nil {
		t.Errorf("Delete() = (%v, %t); want (nil, false)", rec, ok)
	}
}

func TestU32InsertLookup(t *testing.T) {
	tree := &U32Tree{}
	keys := []uint32{10, 20, 30, 40, 50}

	for _, k := range keys {
		rec := &U32Record{key: k}
		got, ok := tree.Insert(rec)
		if !ok || got != rec {
			t.Fatalf("Insert(%d) = (%v, %t); want (rec, true)", k, got, ok)
		}
	}

	for _, k := range keys {
		rec, ok := tree.Lookup(k)
		if !ok || rec.Key() != k {
			t.Errorf("Lookup(%d) = (%v, %t); want a match", k, rec, ok)
		}
	}

	if rec, ok := tree.Lookup(99); ok || rec != nil {
		t.Errorf("Lookup(99) = (%v, %t); want (nil, false)", rec, ok)
	}
}

func TestU32InsertDuplicate(t *testing.T) {
	tree := &U32Tree{}
	first := &U32Record{key: 4}
	second := &U32Record{key: 4}

	tree.Insert(first)
	got, ok := tree.Insert(second)
	if ok || got != first {
		t.Fatalf("Insert(duplicate) = (%v, %t); want (first, false)", got, ok)
	}
	if second.InTree() {
		t.Errorf("second.InTree() = true; want false, duplicate must stay unlinked")
	}
}

func TestU32Ordering(t *testing.T) {
	tree := &U32Tree{}
	in := []uint32{50, 10, 40, 4, 20, 30}
	for _, k := range in {
		tree.Insert(&U32Record{key: k})
	}

	want := []uint32{4, 10, 20, 30, 40, 50}
	var got []uint32
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		got = append(got, rec.Key())
	}
	assertU32Slice(t, got, want)

	got = nil
	for rec := tree.Last(); rec != nil; rec = tree.Prev(rec) {
		got = append(got, rec.Key())
	}
	for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
		want[i], want[j] = want[j], want[i]
	}
	assertU32Slice(t, got, want)
}

func TestU32Bounds(t *testing.T) {
	tree := &U32Tree{}
	for _, k := range []uint32{10, 20, 30, 40, 50} {
		tree.Insert(&U32Record{key: k})
	}

	cases := []struct {
		name    string
		fn      func(uint32) (*U32Record, bool)
		key     uint32
		wantKey uint32
		wantOK  bool
	}{
		{"le_exact", tree.LookupLE, 30, 30, true},
		{"le_between", tree.LookupLE, 25, 20, true},
		{"le_below", tree.LookupLE, 5, 0, false},
		{"lt_exact", tree.LookupLT, 30, 20, true},
		{"lt_below", tree.LookupLT, 10, 0, false},
		{"ge_exact", tree.LookupGE, 30, 30, true},
		{"ge_between", tree.LookupGE, 25, 30, true},
		{"ge_above", tree.LookupGE, 55, 0, false},
		{"gt_exact", tree.LookupGT, 30, 40, true},
		{"gt_above", tree.LookupGT, 50, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, ok := c.fn(c.key)
			if ok != c.wantOK {
				t.Fatalf("ok = %t; want %t", ok, c.wantOK)
			}
			if ok && rec.Key() != c.wantKey {
				t.Errorf("key = %d; want %d", rec.Key(), c.wantKey)
			}
		})
	}
}

func TestU32DeleteMiddle(t *testing.T) {
	tree := &U32Tree{}
	recs := map[uint32]*U32Record{}
	for _, k := range []uint32{10, 20, 30, 40, 50} {
		rec := &U32Record{key: k}
		recs[k] = rec
		tree.Insert(rec)
	}

	got, ok := tree.Delete(recs[30])
	if !ok || got != recs[30] {
		t.Fatalf("Delete(30) = (%v, %t); want (rec, true)", got, ok)
	}
	if recs[30].InTree() {
		t.Errorf("deleted record still reports InTree() == true")
	}

	if _, ok := tree.Lookup(30); ok {
		t.Errorf("Lookup(30) found a deleted key")
	}

	want := []uint32{10, 20, 40, 50}
	var gotKeys []uint32
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		gotKeys = append(gotKeys, rec.Key())
	}
	assertU32Slice(t, gotKeys, want)

	// re-insert after delete must succeed and restore full ordering.
	again := &U32Record{key: 30}
	if _, ok := tree.Insert(again); !ok {
		t.Fatalf("re-insert after delete failed")
	}
	gotKeys = nil
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		gotKeys = append(gotKeys, rec.Key())
	}
	assertU32Slice(t, gotKeys, []uint32{10, 20, 30, 40, 50})
}

func TestU32DeleteDown(t *testing.T) {
	tree := &U32Tree{}
	var recs []*U32Record
	for _, k := range []uint32{10, 20, 30, 40, 50} {
		rec := &U32Record{key: k}
		recs = append(recs, rec)
		tree.Insert(rec)
	}

	for len(recs) > 0 {
		rec := recs[0]
		recs = recs[1:]
		if _, ok := tree.Delete(rec); !ok {
			t.Fatalf("Delete(%d) failed", rec.Key())
		}

		var got []uint32
		for r := tree.First(); r != nil; r = tree.Next(r) {
			got = append(got, r.Key())
		}
		var want []uint32
		for _, r := range recs {
			want = append(want, r.Key())
		}
		// assert right after this delete, not only once at the end, so a
		// regression points at the exact deletion that broke the tree.
		if len(got) != len(want) {
			t.Fatalf("after deleting %d: len(got) = %d; want %d (survivors %v, got %v)",
				rec.Key(), len(got), len(want), want, got)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("after deleting %d: got %v; want %v", rec.Key(), got, want)
			}
		}
	}

	if tree.First() != nil {
		t.Errorf("tree not empty after deleting every record")
	}
}

// TestU32DeleteDownToOne isolates the exact sequence that once silently
// dropped a surviving record: inserting 10,20,30,40,50 and deleting 10, 20,
// 30 in that order must leave both 40 and 50 reachable, and deleting down to
// the last record must leave that record reachable too.
func TestU32DeleteDownToOne(t *testing.T) {
	tree := &U32Tree{}
	recs := map[uint32]*U32Record{}
	for _, k := range []uint32{10, 20, 30, 40, 50} {
		rec := &U32Record{key: k}
		recs[k] = rec
		tree.Insert(rec)
	}

	walk := func() []uint32 {
		var got []uint32
		for r := tree.First(); r != nil; r = tree.Next(r) {
			got = append(got, r.Key())
		}
		return got
	}

	if _, ok := tree.Delete(recs[10]); !ok {
		t.Fatalf("Delete(10) failed")
	}
	assertU32Slice(t, walk(), []uint32{20, 30, 40, 50})

	if _, ok := tree.Delete(recs[20]); !ok {
		t.Fatalf("Delete(20) failed")
	}
	assertU32Slice(t, walk(), []uint32{30, 40, 50})

	if _, ok := tree.Delete(recs[30]); !ok {
		t.Fatalf("Delete(30) failed")
	}
	// this is the step that used to drop 40 outright, leaving only a
	// self-looped 50.
	assertU32Slice(t, walk(), []uint32{40, 50})
	if got, ok := tree.Lookup(40); !ok || got != recs[40] {
		t.Fatalf("Lookup(40) = (%v, %t); want (recs[40], true)", got, ok)
	}

	if _, ok := tree.Delete(recs[40]); !ok {
		t.Fatalf("Delete(40) failed")
	}
	assertU32Slice(t, walk(), []uint32{50})
	if got := tree.First(); got != recs[50] {
		t.Fatalf("First() = %v; want recs[50]", got)
	}
	if got := tree.Last(); got != recs[50] {
		t.Fatalf("Last() = %v; want recs[50]", got)
	}

	if _, ok := tree.Delete(recs[50]); !ok {
		t.Fatalf("Delete(50) failed")
	}
	if tree.First() != nil {
		t.Errorf("tree not empty after deleting down to one and then to zero")
	}
}

// TestU32DeleteDanglingPointer exercises the other failure mode of the same
// bug: in a two-record tree, deleting the nodeless leaf must promote its
// leaf-parent to nodeless form rather than leave it pointing at the deleted
// record, which used to crash the very next traversal.
func TestU32DeleteDanglingPointer(t *testing.T) {
	tree := &U32Tree{}
	two := &U32Record{key: 2}
	four := &U32Record{key: 4}
	tree.Insert(two)
	tree.Insert(four)

	if _, ok := tree.Delete(two); !ok {
		t.Fatalf("Delete(2) failed")
	}

	if got := tree.First(); got != four {
		t.Fatalf("First() = %v; want recs[4]", got)
	}
	if got := tree.Last(); got != four {
		t.Fatalf("Last() = %v; want recs[4]", got)
	}
	if got := tree.Next(four); got != nil {
		t.Fatalf("Next(4) = %v; want nil", got)
	}
	if got := tree.Prev(four); got != nil {
		t.Fatalf("Prev(4) = %v; want nil", got)
	}
	if got, ok := tree.Lookup(4); !ok || got != four {
		t.Fatalf("Lookup(4) = (%v, %t); want (recs[4], true)", got, ok)
	}
}

func TestU32Chain(t *testing.T) {
	tree := &U32Tree{}
	const n = 1000
	recs := make([]*U32Record, n)
	for i := 0; i < n; i++ {
		recs[i] = &U32Record{key: uint32(i + 1)}
		tree.Insert(recs[i])
	}

	i := 0
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		i++
		if rec.Key() != uint32(i) {
			t.Fatalf("chain position %d has key %d", i, rec.Key())
		}
	}
	if i != n {
		t.Fatalf("walked %d records; want %d", i, n)
	}

	for i := 0; i < n; i += 2 {
		tree.Delete(recs[i])
	}
	i = 0
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		i++
		if rec.Key()%2 != 0 {
			t.Fatalf("odd key %d survived the even-index purge", rec.Key())
		}
	}
	if i != n/2 {
		t.Fatalf("walked %d survivors; want %d", i, n/2)
	}
}

func TestU32Pick(t *testing.T) {
	tree := &U32Tree{}
	tree.Insert(&U32Record{key: 7})
	tree.Insert(&U32Record{key: 9})

	rec, ok := tree.Pick(7)
	if !ok || rec.Key() != 7 {
		t.Fatalf("Pick(7) = (%v, %t); want a match", rec, ok)
	}
	if _, ok := tree.Lookup(7); ok {
		t.Errorf("Pick did not unlink the record")
	}
	if _, ok := tree.Pick(7); ok {
		t.Errorf("second Pick(7) unexpectedly succeeded")
	}
}

func TestU32Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := &U32Tree{}
	seen := map[uint32]bool{}
	var inserted []uint32

	for len(inserted) < 500 {
		k := rng.Uint32()
		if seen[k] {
			continue
		}
		seen[k] = true
		inserted = append(inserted, k)
		tree.Insert(&U32Record{key: k})
	}

	var got []uint32
	for rec := tree.First(); rec != nil; rec = tree.Next(rec) {
		got = append(got, rec.Key())
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("random walk out of order at %d: %d >= %d", i, got[i-1], got[i])
		}
	}
	if len(got) != len(inserted) {
		t.Fatalf("walked %d records; want %d", len(got), len(inserted))
	}
}

func assertU32Slice(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
}
