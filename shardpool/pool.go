// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// Checkout/return pool of independently-owned cbtree shards.
//
// Pool hands out whole *cbtree.StringTree shards for exclusive use, one
// goroutine at a time, the same way a checked-out net.Conn is exclusively
// owned by whichever goroutine holds it. A tree is only safe for
// concurrent readers and writers if the caller serializes its own access;
// Pool's checkout/return protocol is exactly that serialization.

package shardpool

import (
	"errors"
	"sync"
	"sync/atomic"

	"cbtree/cbtree"
	"cbtree/log"
)

// ErrUnknownShard is returned by Checkout for a name the pool was never
// configured with.
var ErrUnknownShard = errors.New("shardpool: unknown shard name")

// ErrNotCheckedOut is returned by Return when the named shard was not
// currently checked out.
var ErrNotCheckedOut = errors.New("shardpool: shard not checked out")

// Shard is one named, independently-lockable tree.
type Shard struct {
	Name string
	Tree *cbtree.StringTree

	mu         sync.Mutex
	checkedOut bool
}

// Pool owns a fixed set of named shards, each checked out for exclusive
// single-writer use at a time.
type Pool struct {
	shards map[string]*Shard
	active atomic.Int32
}

// New creates a pool with one empty shard per name in names.
func New(names []string) *Pool {
	p := &Pool{shards: make(map[string]*Shard, len(names))}
	for _, name := range names {
		p.shards[name] = &Shard{Name: name, Tree: &cbtree.StringTree{}}
	}
	return p
}

// Checkout locks the named shard for exclusive use by the caller. It
// blocks until the shard is available.
func (p *Pool) Checkout(name string) (*Shard, error) {
	s, ok := p.shards[name]
	if !ok {
		return nil, ErrUnknownShard
	}
	s.mu.Lock()
	s.checkedOut = true
	p.active.Add(1)
	log.Debugf("shardpool: checked out shard %q", name)
	return s, nil
}

// Return releases a shard checked out via Checkout.
func (p *Pool) Return(s *Shard) error {
	if !s.checkedOut {
		return ErrNotCheckedOut
	}
	s.checkedOut = false
	p.active.Add(-1)
	s.mu.Unlock()
	log.Debugf("shardpool: returned shard %q", s.Name)
	return nil
}

// Names lists every shard name the pool was created with, in no particular
// order.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.shards))
	for name := range p.shards {
		names = append(names, name)
	}
	return names
}

// Active reports how many shards are currently checked out.
func (p *Pool) Active() int {
	return int(p.active.Load())
}
