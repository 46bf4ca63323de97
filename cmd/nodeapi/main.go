// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blinklabs-io/nodeapi/api"
	"github.com/blinklabs-io/nodeapi/ledger/memory"
	"github.com/blinklabs-io/nodeapi/transaction"
	"github.com/blinklabs-io/nodeapi/user"
)

type globalFlags struct {
	flagset       *flag.FlagSet
	socket        string
	address       string
	admin         bool
	maxAPIRecords int
	allowedHosts  string
	genesisFile   string
	rollbackDepth int
	logLevel      string
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.socket,
		"socket",
		"",
		"UNIX socket path to listen on",
	)
	f.flagset.StringVar(
		&f.address,
		"address",
		"127.0.0.1:8125",
		"TCP address to listen on in address:port format",
	)
	f.flagset.BoolVar(
		&f.admin,
		"admin",
		false,
		"treat API callers as administrators (disables paging limits)",
	)
	f.flagset.IntVar(
		&f.maxAPIRecords,
		"max-records",
		100,
		"maximum number of records returned by paged requests",
	)
	f.flagset.StringVar(
		&f.allowedHosts,
		"allowed-hosts",
		"localhost",
		"comma separated list of hosts or subnets allowed to use the API, or *",
	)
	f.flagset.StringVar(
		&f.genesisFile,
		"genesis",
		"",
		"path to a JSON file with the initial ledger contents",
	)
	f.flagset.IntVar(
		&f.rollbackDepth,
		"rollback-depth",
		memory.DefaultRollbackDepth,
		"number of blocks below the tip for which state is retained",
	)
	f.flagset.StringVar(
		&f.logLevel,
		"log-level",
		"info",
		"log level (debug, info, warn, error)",
	)
	return f
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		fmt.Printf("Invalid log level specified: %s\n", f.logLevel)
		os.Exit(1)
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)

	if err := run(f, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(f *globalFlags, logger *slog.Logger) error {
	state := memory.New(memory.WithRollbackDepth(f.rollbackDepth))
	if f.genesisFile != "" {
		genesis, err := memory.NewGenesisFromFile(f.genesisFile)
		if err != nil {
			return fmt.Errorf("failed to read genesis: %w", err)
		}
		if err := state.LoadGenesis(genesis); err != nil {
			return fmt.Errorf("failed to load genesis: %w", err)
		}
	}

	users, err := user.NewManager(user.Config{
		AllowedHosts: strings.Split(f.allowedHosts, ","),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create user manager: %w", err)
	}
	if err := users.Start(); err != nil {
		return fmt.Errorf("failed to start user manager: %w", err)
	}
	defer func() {
		_ = users.Stop()
	}()

	pool := transaction.NewPool(
		transaction.WithPoolLogger(logger),
		transaction.WithTxAddedFunc(users.TransactionAdded),
	)
	dispatcher := api.NewDefaultDispatcher(api.Config{
		State:         state,
		Logger:        logger,
		Admin:         f.admin,
		MaxAPIRecords: f.maxAPIRecords,
		Processor:     pool,
		HostFilter:    users,
	})

	listen, err := createListenerSocket(f)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api", trackUsers(users, dispatcher))
	mux.Handle("/user", users)
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down server", "error", err)
		}
	}()

	logger.Info(
		"serving API",
		"address", listen.Addr().String(),
		"request_types", dispatcher.RequestTypes(),
	)
	if err := server.Serve(listen); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// trackUsers records activity for the remote host before passing the request on
func trackUsers(users *user.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if users.AllowedHost(host) {
			users.GetUser(host)
		}
		next.ServeHTTP(w, r)
	})
}

func createListenerSocket(f *globalFlags) (net.Listener, error) {
	var err error
	var listen net.Listener

	switch {
	case f.socket != "":
		if err := os.Remove(f.socket); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove existing socket: %w", err)
		}
		listen, err = net.Listen("unix", f.socket)
		if err != nil {
			return nil, fmt.Errorf("failed to open listening socket: %w", err)
		}
	case f.address != "":
		listen, err = net.Listen("tcp", f.address)
		if err != nil {
			return nil, fmt.Errorf("failed to open listening socket: %w", err)
		}
	default:
		return nil, errors.New("no listening address or socket specified")
	}

	return listen, nil
}
