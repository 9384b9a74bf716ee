// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024-2025 Aaron LI
//
// cbtreed - a daemon hosting named compact binary tree shards behind an
// HTTP API.
//

package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"cbtree/api"
	"cbtree/config"
	"cbtree/log"
	"cbtree/router"
	"cbtree/shardpool"
)

const progname = "cbtreed"

var (
	// set by build flags
	version     string
	versionDate string
)

func main() {
	var (
		flagLevel      string
		flagConfigDir  string
		flagConfigInit bool
		flagAddr       string
		flagPort       uint16
		flagShards     int
		flagVersion    bool
	)

	pflag.StringVarP(&flagLevel, "log-level", "l", "info", "log level: debug/info/notice/warn/error")
	pflag.StringVarP(&flagConfigDir, "config-dir", "c", "",
		fmt.Sprintf("config directory (default \"${XDG_CONFIG_HOME}/%s\")", progname))
	pflag.BoolVar(&flagConfigInit, "config-init", false, "initialize with the default configs")
	pflag.StringVarP(&flagAddr, "listen-addr", "a", "", "HTTP API listen address (overrides config)")
	pflag.Uint16VarP(&flagPort, "listen-port", "p", 0, "HTTP API listen port (overrides config)")
	pflag.IntVarP(&flagShards, "shards", "n", 0, "number of shards to host (overrides config)")
	pflag.BoolVar(&flagVersion, "version", false, "show version")
	pflag.Parse()

	if flagVersion {
		fmt.Printf("%s %s (%s)\n", progname, version, versionDate)
		return
	}

	config.SetVersion(&config.VersionInfo{Version: version, Date: versionDate})

	log.SetLevelString(flagLevel)
	log.Infof("set log level to [%s]", flagLevel)

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if zl, err := zerolog.ParseLevel(flagLevel); err == nil {
		zlog = zlog.Level(zl)
	}

	if flagConfigDir == "" {
		dir := os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			fmt.Printf("ERROR: ${XDG_CONFIG_HOME} required but missing\n")
			os.Exit(1)
		}
		flagConfigDir = filepath.Join(dir, progname)
		log.Infof("use default config directory: %s", flagConfigDir)
	}

	if flagConfigInit {
		if err := config.Initialize(flagConfigDir); err != nil {
			fmt.Printf("ERROR: failed to initialize config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := config.Load(flagConfigDir); err != nil {
		fmt.Printf("ERROR: failed to load config: %v\n", err)
		os.Exit(1)
	}

	cf := config.Get().ConfigFile
	if flagAddr != "" {
		cf.ListenAddr = flagAddr
	}
	if flagPort != 0 {
		cf.ListenPort = int(flagPort)
	}
	if flagShards != 0 {
		cf.Shards = flagShards
	}

	// The HTTP API below speaks string keys over JSON; every other flavour
	// cbtree supports (u32, u64, block, istring, addr) has no natural JSON
	// path-segment encoding and isn't hosted by this daemon.
	if cf.DefaultFlavour != "string" {
		log.Fatalf("unsupported default_flavour %q: cbtreed only hosts string-keyed shards", cf.DefaultFlavour)
	}

	addr, err := netip.ParseAddr(cf.ListenAddr)
	if err != nil {
		log.Fatalf("invalid listen address: %s, error: %v", cf.ListenAddr, err)
	}
	addrport := netip.AddrPortFrom(addr, uint16(cf.ListenPort))

	names := make([]string, cf.Shards)
	for i := range names {
		names[i] = "shard-" + strconv.Itoa(i)
	}
	pool := shardpool.NewMeteredPool(shardpool.New(names))
	rt := router.New()
	apiHandler := api.NewApiHandler(pool, rt)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", withAccessLog(zlog, apiHandler)))
	mux.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", addrport.String())
	if err != nil {
		log.Fatalf("failed to listen at: %s, error: %v", addrport.String(), err)
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	server := &http.Server{Handler: mux}
	go func() {
		defer wg.Done()
		log.Infof("serving %d shard(s) at: http://%s", cf.Shards, addrport.String())
		err := server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("api server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := server.Close(); err != nil {
		log.Errorf("failed to close the api server: %v", err)
	}
	wg.Wait()
	log.Infof("done; exiting")
}

// withAccessLog wraps h with a per-request structured log line (method,
// path, status, duration), layered above the leveled log package rather
// than replacing it: log keeps the startup/shutdown narration, zerolog
// covers the per-request firehose.
func withAccessLog(zlog zerolog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		zlog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Str("shard", shardFromPath(r.URL.Path)).
			Dur("duration", time.Since(start)).
			Msg("api request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func shardFromPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "shards" {
		return parts[1]
	}
	return ""
}
