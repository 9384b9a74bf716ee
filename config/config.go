// SPDX-License-Identifier: MIT
//
// Configuration management.
//

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"cbtree/log"
)

const (
	configFilename = "config.json"
)

type Config struct {
	// Embed the config file content for later save.
	ConfigFile
}

type ConfigFile struct {
	// The listening address and port of the HTTP API.
	ListenAddr string `json:"listen_addr"`
	ListenPort int    `json:"listen_port"`
	// Key flavour of the daemon's shards. cbtreed only hosts string-keyed
	// shards and refuses to start unless this is "string" (the default).
	DefaultFlavour string `json:"default_flavour"`
	// Number of shards hosted by the daemon.
	Shards int `json:"shards"`
}

func (cf *ConfigFile) setDefaults() {
	if cf.ListenAddr == "" {
		cf.ListenAddr = "127.0.0.1"
	}
	if cf.ListenPort == 0 {
		cf.ListenPort = 8553
	}
	if cf.DefaultFlavour == "" {
		cf.DefaultFlavour = "string"
	}
	if cf.Shards == 0 {
		cf.Shards = 1
	}
}

var (
	config    *Config
	configDir string
)

func Initialize(dir string) error {
	fp := filepath.Join(dir, configFilename)
	if _, err := os.Stat(fp); err == nil {
		log.Errorf("config file [%s] already exists", fp)
		return errors.New("file already exists")
	}

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			log.Errorf("failed to create config dir [%s]: %v", dir, err)
			return err
		}
		log.Infof("created config dir: %s", dir)
	} else if err != nil {
		log.Errorf("cannot stat config dir [%s]: %v", dir, err)
		return err
	}

	cf := ConfigFile{}
	cf.setDefaults()
	data, err := json.MarshalIndent(&cf, "", "    ")
	if err != nil {
		panic(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(fp, data, 0644); err != nil {
		log.Errorf("failed to write config file [%s]: %v", fp, err)
		return err
	}
	log.Infof("created config file: %s", fp)

	return nil
}

func Load(dir string) error {
	conf := Config{}

	fp := filepath.Join(dir, configFilename)
	if data, err := os.ReadFile(fp); err == nil {
		if err := json.Unmarshal(data, &conf.ConfigFile); err != nil {
			log.Errorf("failed to load config from file [%s]: %v", fp, err)
			return err
		}
		log.Infof("read config from file: %s", fp)
	} else if errors.Is(err, os.ErrNotExist) {
		log.Infof("config file [%s] doesn't exist; use the defaults", fp)
	} else {
		log.Errorf("failed to read config file [%s]: %v", fp, err)
		return err
	}

	conf.ConfigFile.setDefaults()
	log.Debugf("config file content: %+v", conf.ConfigFile)

	config = &conf
	configDir = dir
	log.Infof("loaded config from directory: %s", dir)

	return nil
}

func Get() *Config {
	if config == nil {
		panic("config is nil; Load() was not called or failed?")
	}
	return config
}

func Set(cf *ConfigFile) error {
	if config == nil {
		panic("config is nil; Load() was not called or failed?")
	}
	config.ConfigFile = *cf
	config.ConfigFile.setDefaults()

	fp := filepath.Join(configDir, configFilename)
	data, err := json.MarshalIndent(&config.ConfigFile, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(fp, data, 0644); err != nil {
		log.Errorf("failed to write config file [%s]: %v", fp, err)
		return err
	}
	return nil
}
