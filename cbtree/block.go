// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// MB facade: keys are fixed-length byte blocks (every key in a given tree
// has the same length, fixed when the tree is created).
//

package cbtree

// BlockRecord is a record keyed by a fixed-length byte block.
type BlockRecord = Record[[]byte]

// NewBlockRecord allocates a record keyed by key. The caller retains
// ownership of the backing array.
func NewBlockRecord(key []byte) *BlockRecord { return &BlockRecord{key: key} }

// BlockTree is a compact binary tree over fixed-length byte-block keys.
// All keys inserted into a given tree must have the same length as the
// one passed to NewBlockTree; Insert panics otherwise.
type BlockTree struct {
	root *BlockRecord
	n    int
}

// NewBlockTree creates a tree whose keys are all n bytes long.
func NewBlockTree(n int) *BlockTree { return &BlockTree{n: n} }

func (t *BlockTree) trait() blockTraits { return blockTraits{n: t.n} }

func (t *BlockTree) checkLen(key []byte) {
	if len(key) != t.n {
		panic("cbtree: block key length mismatch")
	}
}

// Insert splices rec into the tree, keyed by rec.Key().
func (t *BlockTree) Insert(rec *BlockRecord) (*BlockRecord, bool) {
	t.checkLen(rec.Key())
	return insertRecord(&t.root, t.trait(), rec)
}

// Lookup returns the record keyed by key, if present.
func (t *BlockTree) Lookup(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	return lookupRecord(&t.root, t.trait(), key)
}

// LookupLE returns the record with the largest key <= key, if any.
func (t *BlockTree) LookupLE(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupLT returns the record with the largest key < key, if any.
func (t *BlockTree) LookupLT(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	if m, ok := t.Lookup(key); ok {
		p := prevRecord(&t.root, t.trait(), m)
		return p, p != nil
	}
	floor, _ := bounds(&t.root, t.trait(), key)
	return floor, floor != nil
}

// LookupGE returns the record with the smallest key >= key, if any.
func (t *BlockTree) LookupGE(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// LookupGT returns the record with the smallest key > key, if any.
func (t *BlockTree) LookupGT(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	if m, ok := t.Lookup(key); ok {
		n := nextRecord(&t.root, t.trait(), m)
		return n, n != nil
	}
	_, ceil := bounds(&t.root, t.trait(), key)
	return ceil, ceil != nil
}

// First returns the record with the smallest key, if the tree is non-empty.
func (t *BlockTree) First() *BlockRecord { return firstRecord(&t.root, t.trait()) }

// Last returns the record with the largest key, if the tree is non-empty.
func (t *BlockTree) Last() *BlockRecord { return lastRecord(&t.root, t.trait()) }

// Next returns the record immediately after rec in key order, if any.
func (t *BlockTree) Next(rec *BlockRecord) *BlockRecord { return nextRecord(&t.root, t.trait(), rec) }

// Prev returns the record immediately before rec in key order, if any.
func (t *BlockTree) Prev(rec *BlockRecord) *BlockRecord { return prevRecord(&t.root, t.trait(), rec) }

// Delete unlinks rec from the tree.
func (t *BlockTree) Delete(rec *BlockRecord) (*BlockRecord, bool) {
	return deleteRecord(&t.root, t.trait(), rec)
}

// Pick looks up and deletes the record keyed by key in one operation.
func (t *BlockTree) Pick(key []byte) (*BlockRecord, bool) {
	t.checkLen(key)
	return pickRecord(&t.root, t.trait(), key)
}
