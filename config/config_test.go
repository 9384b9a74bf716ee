// SPDX-License-Identifier: MIT

package config

import (
	"testing"
)

func TestInitializeAndLoad(t *testing.T) {
	dir := t.TempDir()

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	// Re-initializing the same directory must fail.
	if err := Initialize(dir); err == nil {
		t.Errorf("Initialize() on existing config file = nil; want error")
	}

	if err := Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	c := Get()
	if c.ListenAddr != "127.0.0.1" {
		t.Errorf("ListenAddr = %q; want 127.0.0.1", c.ListenAddr)
	}
	if c.ListenPort != 8553 {
		t.Errorf("ListenPort = %d; want 8553", c.ListenPort)
	}
	if c.DefaultFlavour != "string" {
		t.Errorf("DefaultFlavour = %q; want string", c.DefaultFlavour)
	}
	if c.Shards != 1 {
		t.Errorf("Shards = %d; want 1", c.Shards)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	if err := Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c := Get(); c.Shards != 1 {
		t.Errorf("Shards = %d; want 1", c.Shards)
	}
}

func TestSetPersists(t *testing.T) {
	dir := t.TempDir()
	if err := Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := Set(&ConfigFile{ListenAddr: "0.0.0.0", ListenPort: 9000, Shards: 4}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := Load(dir); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	c := Get()
	if c.ListenAddr != "0.0.0.0" || c.ListenPort != 9000 || c.Shards != 4 {
		t.Errorf("reloaded config = %+v; want updated values", c)
	}
}
