package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/labsx402/paradoxd/internal/config"
	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/dex"
	"github.com/labsx402/paradoxd/internal/rpc"
	"github.com/labsx402/paradoxd/internal/storage/eventlog"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
	leveldbstore "github.com/labsx402/paradoxd/internal/storage/statestore/leveldb"
	pebblestore "github.com/labsx402/paradoxd/internal/storage/statestore/pebble"
	"github.com/labsx402/paradoxd/internal/token"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the paradoxd daemon",
	Long: `Start the daemon: opens the state store and event journal, then
serves the JSON-RPC API, the websocket event feed and a health check
endpoint until interrupted.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// server is the default action
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("Starting paradoxd %s (%s)\n", rootCmd.Version, cfg)
	}

	kv, cleanup, err := openBackend(cfg.Store)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := statestore.NewStore(kv)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer store.Close()

	var publishers engine.MultiPublisher
	var journal *eventlog.Journal
	if cfg.EventLog.Enabled {
		journal, err = eventlog.Open(cfg.EventLog.Driver, cfg.EventLog.DSN)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer journal.Close()
		publishers = append(publishers, journal)
	}

	var hub *rpc.Hub
	if cfg.Server.Websocket {
		hub = rpc.NewHub()
		defer hub.Close()
		publishers = append(publishers, hub)
	}

	// Standalone mode runs against in-memory pool and token adapters.
	// Live deployments replace these with bindings to the real venue.
	eng := engine.New(store, token.NewStub(), dex.NewStub(1),
		engine.WithPublisher(publishers))

	service := &rpc.Service{
		Engine:    eng,
		Store:     store,
		Journal:   journal,
		Clock:     engine.SystemClock(),
		Version:   rootCmd.Version,
		StartedAt: time.Now(),
	}

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	rpcServer := rpc.NewServer(service, timeout)

	mux := http.NewServeMux()
	mux.Handle("/", rpcServer)
	mux.Handle("/rpc", rpcServer)
	mux.HandleFunc("/health", rpcServer.Health)
	if hub != nil {
		mux.Handle("/ws", hub)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !quiet {
			fmt.Printf("Listening on http://%s (rpc), ws://%s/ws (events)\n",
				cfg.Server.ListenAddr, cfg.Server.ListenAddr)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openBackend opens the configured KV backend and returns it together
// with a cleanup for the owning manager.
func openBackend(cfg config.StoreConfig) (statestore.KV, func(), error) {
	switch cfg.Backend {
	case "memory":
		return statestore.NewMemoryKV(), func() {}, nil
	case "pebble":
		mgr := pebblestore.NewManager(cfg.Path)
		kv, err := mgr.OpenDB("state")
		if err != nil {
			return nil, nil, fmt.Errorf("open pebble backend: %w", err)
		}
		return kv, func() { mgr.Close() }, nil
	case "leveldb":
		mgr := leveldbstore.NewManager(cfg.Path)
		kv, err := mgr.OpenDB("state")
		if err != nil {
			return nil, nil, fmt.Errorf("open leveldb backend: %w", err)
		}
		return kv, func() { mgr.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
