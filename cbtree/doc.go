// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// Package cbtree implements compact binary trees: in-memory, ordered
// associative containers in which every stored element carries exactly two
// branch references and nothing else — no parent pointer, no balance
// field, no subtree size. A single generic descent engine (engine.go)
// drives insert, lookup, ordered neighbour queries and delete for six key
// flavours (u32, u64, fixed-length byte blocks, NUL-free strings, indirect
// strings, and pointer identity), each exposed through a small facade type
// in its own file.
//
// A tree never allocates on behalf of the caller: every Record embedded in
// a value the caller already owns becomes insertable by taking its
// address. Deletion never frees anything either — it only unlinks a
// Record, leaving its storage to whatever owns it.
//
// Trees are not safe for concurrent use by multiple writers. A single
// writer plus any number of readers that tolerate torn reads is the
// expected concurrency model; the shardpool package above this one hands
// out whole trees for exclusive use, parallelising across many trees
// instead of locking inside one.
package cbtree
