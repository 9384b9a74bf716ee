// SPDX-License-Identifier: MIT
//
// Copyright (c) 2025 Aaron LI

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "."},
		{".", "."},
		{"com", "moc."},
		{"com.", "moc."},
		{"example.com", "moc.elpmaxe."},
		{"ExamPle.com", "moc.elpmaxe."},
		{"123.ABC.com", "moc.cba.321."},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NewKey(c.name), "NewKey(%q)", c.name)
	}
}

func TestRouterMatchExactAndSubdomain(t *testing.T) {
	r := New()
	r.AddRoute("example.com", "shard-a")
	r.AddRoute("other.net", "shard-b")

	route, ok := r.Match("example.com")
	require.True(t, ok)
	assert.Equal(t, "shard-a", route.Shard)
	assert.Equal(t, "example.com", route.Zone)

	route, ok = r.Match("www.example.com")
	require.True(t, ok)
	assert.Equal(t, "shard-a", route.Shard)

	_, ok = r.Match("example.org")
	assert.False(t, ok)
}

func TestRouterMostSpecificWins(t *testing.T) {
	r := New()
	r.AddRoute("com", "shard-com")
	r.AddRoute("example.com", "shard-example")

	route, ok := r.Match("www.example.com")
	require.True(t, ok)
	assert.Equal(t, "shard-example", route.Shard, "the more specific zone must win")

	route, ok = r.Match("other.com")
	require.True(t, ok)
	assert.Equal(t, "shard-com", route.Shard)
}

func TestRouterRejectsSiblingLabels(t *testing.T) {
	r := New()
	r.AddRoute("a.com", "shard-a")

	_, ok := r.Match("ab.com")
	assert.False(t, ok, "ab.com is not a subdomain of a.com")
}

func TestRouterRemoveRoute(t *testing.T) {
	r := New()
	r.AddRoute("example.com", "shard-a")

	require.NoError(t, r.RemoveRoute("example.com"))
	_, ok := r.Match("example.com")
	assert.False(t, ok)

	assert.ErrorIs(t, r.RemoveRoute("example.com"), ErrUnknownZone)
}

func TestRouterZones(t *testing.T) {
	r := New()
	r.AddRoute("a.com", "shard-a")
	r.AddRoute("b.com", "shard-b")

	assert.ElementsMatch(t, []string{"a.com", "b.com"}, r.Zones())
}
