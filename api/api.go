// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024-2025 Aaron LI
//
// cbtreed API handlers.
//
// http.ServeMux-based, method+path pattern routing (Go 1.22+ patterns),
// operating on named cbtree shards and the zone router in front of them.
//

package api

import (
	"net/http"
	"strconv"
	"strings"

	"cbtree/cbtree"
	"cbtree/config"
	"cbtree/log"
	"cbtree/router"
	"cbtree/shardpool"
)

type ApiHandler struct {
	pool   *shardpool.MeteredPool
	router *router.Router
	mux    *http.ServeMux
}

func NewApiHandler(pool *shardpool.MeteredPool, rt *router.Router) *ApiHandler {
	h := &ApiHandler{
		pool:   pool,
		router: rt,
		mux:    http.NewServeMux(),
	}
	// NOTE: Patterns require Go 1.22.0+
	h.mux.HandleFunc("GET /version", h.getVersion)
	h.mux.HandleFunc("GET /shards", h.listShards)
	h.mux.HandleFunc("GET /shards/{name}/dump", h.dumpShard)
	h.mux.HandleFunc("POST /shards/{name}/keys", h.insertKey)
	h.mux.HandleFunc("GET /shards/{name}/keys/{key}", h.lookupKey)
	h.mux.HandleFunc("DELETE /shards/{name}/keys/{key}", h.deleteKey)
	h.mux.HandleFunc("GET /shards/{name}/first", h.first)
	h.mux.HandleFunc("GET /shards/{name}/last", h.last)
	h.mux.HandleFunc("GET /shards/{name}/next/{key}", h.next)
	h.mux.HandleFunc("GET /shards/{name}/prev/{key}", h.prev)
	h.mux.HandleFunc("GET /shards/{name}/bounds/{key}", h.bounds)
	h.mux.HandleFunc("POST /routes", h.addRoute)
	h.mux.HandleFunc("GET /routes/match", h.matchRoute)
	return h
}

func (h *ApiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *ApiHandler) getVersion(w http.ResponseWriter, r *http.Request) {
	vi := config.GetVersion()
	writeJSON(w, &struct {
		Version string `json:"version"`
		Date    string `json:"date"`
	}{Version: vi.Version, Date: vi.Date})
}

func (h *ApiHandler) listShards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, &struct {
		Shards []string `json:"shards"`
		Active int      `json:"active"`
	}{Shards: h.pool.Names(), Active: h.pool.Active()})
}

type keyRequest struct {
	Key string `json:"key"`
}

type keyResponse struct {
	Key string `json:"key"`
}

func (h *ApiHandler) checkout(w http.ResponseWriter, name string) *shardpool.Shard {
	s, err := h.pool.Checkout(name)
	if err != nil {
		log.Warnf("api: checkout %q failed: %v", name, err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil
	}
	return s
}

func (h *ApiHandler) insertKey(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	var req keyRequest
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := cbtree.NewStringRecord(req.Key)
	if _, ok := s.Tree.Insert(rec); !ok {
		http.Error(w, "key already exists", http.StatusConflict)
		return
	}

	writeJSONStatus(w, http.StatusCreated, &keyResponse{Key: req.Key})
}

func (h *ApiHandler) lookupKey(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	key := r.PathValue("key")
	if _, ok := s.Tree.Lookup(key); !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: key})
}

func (h *ApiHandler) deleteKey(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	key := r.PathValue("key")
	rec, ok := s.Tree.Lookup(key)
	if !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}
	s.Tree.Delete(rec)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApiHandler) first(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	rec := s.Tree.First()
	if rec == nil {
		http.Error(w, "shard is empty", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: rec.Key()})
}

func (h *ApiHandler) last(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	rec := s.Tree.Last()
	if rec == nil {
		http.Error(w, "shard is empty", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: rec.Key()})
}

func (h *ApiHandler) next(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	rec, ok := s.Tree.Lookup(r.PathValue("key"))
	if !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}
	next := s.Tree.Next(rec)
	if next == nil {
		http.Error(w, "no successor", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: next.Key()})
}

func (h *ApiHandler) prev(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	rec, ok := s.Tree.Lookup(r.PathValue("key"))
	if !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}
	prev := s.Tree.Prev(rec)
	if prev == nil {
		http.Error(w, "no predecessor", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: prev.Key()})
}

// bounds answers lookup_le/lt/ge/gt via a `?rel=` query parameter, one of
// "le", "lt", "ge", "gt".
func (h *ApiHandler) bounds(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	key := r.PathValue("key")
	var rec *cbtree.StringRecord
	var ok bool
	switch rel := r.URL.Query().Get("rel"); rel {
	case "le", "":
		rec, ok = s.Tree.LookupLE(key)
	case "lt":
		rec, ok = s.Tree.LookupLT(key)
	case "ge":
		rec, ok = s.Tree.LookupGE(key)
	case "gt":
		rec, ok = s.Tree.LookupGT(key)
	default:
		http.Error(w, "unknown rel: "+rel, http.StatusBadRequest)
		return
	}

	if !ok {
		http.Error(w, "no matching record", http.StatusNotFound)
		return
	}
	writeJSON(w, &keyResponse{Key: rec.Key()})
}

func (h *ApiHandler) dumpShard(w http.ResponseWriter, r *http.Request) {
	s := h.checkout(w, r.PathValue("name"))
	if s == nil {
		return
	}
	defer h.pool.Return(s)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	cbtree.Dump(s.Tree.Root(), func(k string) string { return strconv.Quote(k) }, w)
}

func (h *ApiHandler) addRoute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zone  string `json:"zone"`
		Shard string `json:"shard"`
	}
	if err := readJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.router.AddRoute(req.Zone, req.Shard)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApiHandler) matchRoute(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name query parameter", http.StatusBadRequest)
		return
	}
	route, ok := h.router.Match(strings.TrimSpace(name))
	if !ok {
		http.Error(w, "no matching zone", http.StatusNotFound)
		return
	}
	writeJSON(w, &router.Route{Zone: route.Zone, Shard: route.Shard})
}
