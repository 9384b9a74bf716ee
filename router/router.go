// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI
//
// Prefix-based shard routing.
//
// A zone like "example.com" must match itself and every subdomain but
// nothing else. Router uses a reversed, dot-terminated key (NewKey below)
// over cbtree's ST flavour: the floor (LookupLE) of the query key is
// checked for being an actual prefix, and if it isn't, the search retries
// against the next smaller registered key (LookupLT), until a genuine
// ancestor zone is found or the table is exhausted.
//

package router

import (
	"errors"
	"strings"
	"sync"

	"cbtree/cbtree"
	"cbtree/log"
)

var ErrUnknownZone = errors.New("router: zone not registered")

// Route describes a matched zone and the shard that should handle it.
type Route struct {
	Zone  string
	Shard string
}

// Router matches a query name against a table of zones, each bound to a
// shard name, returning the most specific (longest) matching zone.
type Router struct {
	tree    cbtree.StringTree
	records map[string]*cbtree.StringRecord
	shards  map[string]string // lookup key -> shard name
	lock    sync.RWMutex
}

// New creates an empty router.
func New() *Router {
	return &Router{
		records: make(map[string]*cbtree.StringRecord),
		shards:  make(map[string]string),
	}
}

// NewKey converts a dotted zone/query name into the trie-style lookup key:
// strip a trailing dot, lower-case, reverse, append a dot. Reversing turns
// "common suffix" (the part of a domain name that matters for zone
// matching) into "common prefix", which is what cbtree's byte-key
// flavours discriminate on.
func NewKey(name string) string {
	name = strings.TrimSuffix(name, ".")
	lower := strings.ToLower(name)
	b := make([]byte, len(lower)+1)
	for i := 0; i < len(lower); i++ {
		b[len(lower)-1-i] = lower[i]
	}
	b[len(lower)] = '.'
	return string(b)
}

// AddRoute registers zone as routing to shard. Re-adding the same zone
// replaces its previous shard binding.
func (r *Router) AddRoute(zone, shard string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	key := NewKey(zone)
	if rec, ok := r.records[key]; ok {
		r.tree.Delete(rec)
	}

	rec := cbtree.NewStringRecord(key)
	r.tree.Insert(rec)
	r.records[key] = rec
	r.shards[key] = shard
	log.Infof("router: bound zone %q to shard %q", zone, shard)
}

// RemoveRoute unregisters zone, if present.
func (r *Router) RemoveRoute(zone string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	key := NewKey(zone)
	rec, ok := r.records[key]
	if !ok {
		return ErrUnknownZone
	}
	r.tree.Delete(rec)
	delete(r.records, key)
	delete(r.shards, key)
	log.Infof("router: removed route for zone %q", zone)
	return nil
}

// Match finds the most specific registered zone covering name, returning
// its shard binding. ok is false if no registered zone covers name.
func (r *Router) Match(name string) (route Route, ok bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	key := NewKey(name)
	candidate, found := r.tree.LookupLE(key)
	for found {
		if strings.HasPrefix(key, candidate.Key()) {
			zoneKey := candidate.Key()
			return Route{Zone: reverseKey(zoneKey), Shard: r.shards[zoneKey]}, true
		}
		candidate, found = r.tree.LookupLT(candidate.Key())
	}
	return Route{}, false
}

// Zones lists every zone currently registered, in no particular order.
func (r *Router) Zones() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	zones := make([]string, 0, len(r.records))
	for key := range r.records {
		zones = append(zones, reverseKey(key))
	}
	return zones
}

// reverseKey undoes NewKey's transform for display purposes.
func reverseKey(key string) string {
	key = strings.TrimSuffix(key, ".")
	b := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		b[len(key)-1-i] = key[i]
	}
	return string(b)
}
