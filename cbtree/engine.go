// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// Generic descent engine shared by every key flavour.
//

package cbtree

// Record is the physical unit of storage for every key flavour: two branch
// references and the key payload. A Record plays the leaf role (where a
// key logically lives) and, for every record but one in a given tree, the
// internal-node role (a split point between two subtrees) as well. Both
// roles are realised by the very same struct; nothing distinguishes them
// except where the record sits relative to the root.
type Record[K any] struct {
	b   [2]*Record[K]
	key K
}

// Key returns the key carried by r.
func (r *Record[K]) Key() K { return r.key }

// InTree reports whether r is currently linked into some tree.
func (r *Record[K]) InTree() bool { return r.b[0] != nil }

// branch is the address of a two-way fork: either a Record's own b field or
// a Tree's root field. Both have the same Go type, so the engine never
// needs a synthetic "virtual root node" the way a fixed-struct
// implementation would — taking &root directly serves as the one slot a
// virtual root's left branch would otherwise occupy.
type branch[K any] = **Record[K]

// slotOf returns the branch cell described by (parent, side): &parent.b[side],
// or root itself when parent is nil. nil-parent is this engine's stand-in
// for "the tree's root slot", used throughout in place of a virtual node.
func slotOf[K any](root branch[K], parent *Record[K], side int) branch[K] {
	if parent == nil {
		return root
	}
	return &parent.b[side]
}

// rank is the engine's unified split discriminator. Smaller means finer:
// the two compared keys differ at a more specific position. Scalar
// flavours derive rank directly from XOR magnitude; byte flavours derive
// it from (byteRankBase - common-prefix-length), so a longer shared prefix
// yields a smaller rank, matching XOR's convention.
type rank uint64

const byteRankBase rank = 1 << 56

// discriminator wraps a rank together with an "initial" flag so that the
// coarsest-possible starting value (conceptually "all-ones XOR, zero
// common prefix") never collides with a legitimate rank at the extreme of
// the numeric range — e.g. two u64 keys that are exact bitwise complements.
type discriminator struct {
	initial bool
	value   rank
}

func coarsest() discriminator { return discriminator{initial: true} }

func finer(r rank) discriminator { return discriminator{value: r} }

// finerThan reports whether d represents a strictly finer split than prev.
func (d discriminator) finerThan(prev discriminator) bool {
	if d.initial {
		return false
	}
	if prev.initial {
		return true
	}
	return d.value < prev.value
}

// traits supplies the per-flavour comparison primitives the engine needs.
// It is implemented once per key flavour in traits.go and is otherwise
// opaque to the descent loop.
type traits[K any] interface {
	// equal reports whether a and b are the same key.
	equal(a, b K) bool
	// less reports a strict total order over K, used only to decide which
	// branch a freshly-spliced record's own leaf occupies, and to find the
	// bound side when a lookup_le/lt/ge/gt key is absent.
	less(a, b K) bool
	// side picks the child (0 or 1) more similar to k between candidates l
	// and r.
	side(k, l, r K) int
	// splitRank returns the discriminator an internal node with children l
	// and r splits on.
	splitRank(l, r K) rank
	// mismatch reports whether k cannot possibly belong under a node whose
	// children split at the given rank.
	mismatch(k, l, r K, split rank) bool
}

// descentState accumulates the bookkeeping a descent produces: the
// terminal record, whether it was an exact match, and the ancestor
// pointers delete and insert need to splice or unlink a record.
type descentState[K any] struct {
	slot  branch[K] // insertion locus / terminal branch cell
	found bool

	lparent *Record[K] // leaf-parent (nil = tree root)
	lpside  int

	gparent *Record[K] // grandparent on the leaf side (nil = tree root)
	gpside  int

	nparent *Record[K] // node-role parent of the searched key, if visited
	npside  int
	haveN   bool

	altL branch[K] // last branch ref where descent turned right (seed for Prev)
	altR branch[K] // last branch ref where descent turned left (seed for Next)

	// split discriminators in force at slot, altL and altR, used to seed an
	// extreme walk from there
	prev, altLPrev, altRPrev discriminator
}

func (ds *descentState[K]) rec() *Record[K] { return *ds.slot }

// search performs a KEY descent for key starting at root, tracking every
// ancestor reference insert/delete/next/prev need.
func search[K any](root branch[K], tr traits[K], key K) *descentState[K] {
	ds := &descentState[K]{slot: root}
	var lparent, gparent, nparent *Record[K]
	var lpside, gpside, npside int
	haveN := false
	var altL, altR branch[K]
	var altLPrev, altRPrev discriminator
	prev := coarsest()

	slot := root
	for {
		p := *slot

		if p.b[0] == p.b[1] {
			ds.slot = slot
			ds.found = tr.equal(p.key, key)
			break
		}

		l, r := p.b[0], p.b[1]

		if !haveN && tr.equal(p.key, key) {
			nparent, npside, haveN = lparent, lpside, true
		}

		split := tr.splitRank(l.key, r.key)
		d := finer(split)
		if !d.finerThan(prev) {
			ds.slot = slot
			ds.found = tr.equal(p.key, key)
			break
		}

		if tr.mismatch(key, l.key, r.key, split) {
			ds.slot = slot
			ds.found = false
			break
		}

		side := tr.side(key, l.key, r.key)
		if side == 0 {
			altR, altRPrev = &p.b[1], d
		} else {
			altL, altLPrev = &p.b[0], d
		}

		gparent, gpside = lparent, lpside
		lparent, lpside = p, side
		prev = d

		next := &p.b[side]
		if *next == p {
			ds.slot = next
			ds.found = tr.equal(p.key, key)
			break
		}
		slot = next
	}

	ds.lparent, ds.lpside = lparent, lpside
	ds.gparent, ds.gpside = gparent, gpside
	ds.nparent, ds.npside, ds.haveN = nparent, npside, haveN
	ds.altL, ds.altR = altL, altR
	ds.prev, ds.altLPrev, ds.altRPrev = prev, altLPrev, altRPrev
	return ds
}

// extreme performs a key-less walk from slot, following branch dir (0 =
// leftmost/minimum, 1 = rightmost/maximum) at every step, stopping at the
// first record that plays only the leaf role along this path. prev is the
// split in force above slot (coarsest() at the tree root), so that a leaf
// sitting directly at slot is recognised as one.
func extreme[K any](slot branch[K], tr traits[K], dir int, prev discriminator) *Record[K] {
	for {
		p := *slot
		l, r := p.b[0], p.b[1]
		if l == r {
			return p
		}
		d := finer(tr.splitRank(l.key, r.key))
		if !d.finerThan(prev) {
			return p
		}
		prev = d
		next := &p.b[dir]
		if *next == p {
			return p
		}
		slot = next
	}
}

func insertRecord[K any](root branch[K], tr traits[K], rec *Record[K]) (*Record[K], bool) {
	if *root == nil {
		*root = rec
		rec.b[0], rec.b[1] = rec, rec
		return rec, true
	}

	ds := search(root, tr, rec.key)
	if ds.found {
		return ds.rec(), false
	}

	existing := ds.rec()
	if tr.less(rec.key, existing.key) {
		rec.b[0], rec.b[1] = rec, existing
	} else {
		rec.b[0], rec.b[1] = existing, rec
	}
	*ds.slot = rec
	return rec, true
}

func lookupRecord[K any](root branch[K], tr traits[K], key K) (*Record[K], bool) {
	if *root == nil {
		return nil, false
	}
	ds := search(root, tr, key)
	if !ds.found {
		return nil, false
	}
	return ds.rec(), true
}

func firstRecord[K any](root branch[K], tr traits[K]) *Record[K] {
	if *root == nil {
		return nil
	}
	return extreme(root, tr, 0, coarsest())
}

func lastRecord[K any](root branch[K], tr traits[K]) *Record[K] {
	if *root == nil {
		return nil
	}
	return extreme(root, tr, 1, coarsest())
}

func nextRecord[K any](root branch[K], tr traits[K], x *Record[K]) *Record[K] {
	ds := search(root, tr, x.key)
	if ds.altR == nil {
		return nil
	}
	return extreme(ds.altR, tr, 0, ds.altRPrev)
}

func prevRecord[K any](root branch[K], tr traits[K], x *Record[K]) *Record[K] {
	ds := search(root, tr, x.key)
	if ds.altL == nil {
		return nil
	}
	return extreme(ds.altL, tr, 1, ds.altLPrev)
}

// bounds returns, for a key that may or may not be present, the floor
// (largest record <= key) and ceiling (smallest record >= key). Both may be
// nil. When key is present, floor == ceiling == the matching record.
func bounds[K any](root branch[K], tr traits[K], key K) (floor, ceil *Record[K]) {
	if *root == nil {
		return nil, nil
	}
	ds := search(root, tr, key)
	if ds.found {
		m := ds.rec()
		return m, m
	}

	rep := extreme(ds.slot, tr, 0, ds.prev)
	if tr.less(rep.key, key) {
		floor = extreme(ds.slot, tr, 1, ds.prev)
		ceil = nextRecord(root, tr, floor)
	} else {
		ceil = extreme(ds.slot, tr, 0, ds.prev)
		floor = prevRecord(root, tr, ceil)
	}
	return floor, ceil
}

func deleteRecord[K any](root branch[K], tr traits[K], x *Record[K]) (*Record[K], bool) {
	if x.b[0] == nil || *root == nil {
		return nil, false
	}

	ds := search(root, tr, x.key)
	if ds.rec() != x {
		return nil, false
	}

	L := ds.lparent
	if L == nil {
		*root = nil
		x.b[0] = nil
		return x, true
	}

	sibling := L.b[1-ds.lpside]
	*slotOf(root, ds.gparent, ds.gpside) = sibling

	if L != x {
		if ds.haveN {
			L.b[0], L.b[1] = x.b[0], x.b[1]
			*slotOf(root, ds.nparent, ds.npside) = L
		} else {
			L.b[0], L.b[1] = L, L
		}
	}

	x.b[0] = nil
	return x, true
}

func pickRecord[K any](root branch[K], tr traits[K], key K) (*Record[K], bool) {
	if *root == nil {
		return nil, false
	}
	ds := search(root, tr, key)
	if !ds.found {
		return nil, false
	}
	return deleteRecord(root, tr, ds.rec())
}
