package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/internal/server"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/store"
)

// serveCommand creates the serve command: run the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		redisAddr     string
		mongoURI      string
		cacheCapacity int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Packs sections and manages saved layouts over HTTP. By default everything is
in-process: an in-memory layout cache and an in-memory store. Point --redis
at a Redis server to share the cache across replicas, and --mongo at a
MongoDB deployment to persist saved layouts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, cacheCapacity)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared layout cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb uri for persistent saved layouts")
	cmd.Flags().IntVar(&cacheCapacity, "cache-capacity", cache.DefaultMemoryCapacity, "in-memory cache entry limit")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, cacheCapacity int) error {
	var (
		layoutCache cache.Cache
		err         error
	)
	if redisAddr != "" {
		layoutCache, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return fmt.Errorf("connect cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
	} else {
		layoutCache = cache.NewMemoryCache(cacheCapacity)
	}
	defer layoutCache.Close()

	var layoutStore store.Store
	if mongoURI != "" {
		layoutStore, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		c.Logger.Info("using mongo store")
	} else {
		layoutStore = store.NewMemoryStore()
	}
	defer layoutStore.Close(context.Background())

	srv := server.New(server.Config{
		Addr:   addr,
		Cache:  layoutCache,
		Store:  layoutStore,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}
