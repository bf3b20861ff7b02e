// README: Entry point; loads config, wires the graph/routing/matching
// stack, starts the HTTP server and the matching engine's background
// workers.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchd/internal/config"
	httptransport "matchd/internal/http"
	"matchd/internal/geoindex"
	"matchd/internal/graph"
	"matchd/internal/infra"
	"matchd/internal/modules/graphstore"
	"matchd/internal/modules/matching"
	"matchd/internal/routing"
)

const shutdownGrace = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	store := graphstore.NewStore(dbPool)
	roadGraph, err := store.Load(ctx)
	if err != nil {
		logger.Warn("graph snapshot load failed, starting with an empty graph", "error", err)
		roadGraph = graph.New()
	}

	routeCache := routing.NewRedisRouteCache(redisClient, cfg.Routing.RouteCacheTTL())
	routeEngine := routing.New(roadGraph, routing.Config{
		MaxSpeedMetersPerSecond: cfg.Routing.MaxSpeedMetersPerSecond,
		EdgeTieToleranceMeters:  cfg.Routing.EdgeTieToleranceMeters,
	}, routeCache)

	grid := geoindex.DefaultGrid(referenceLatitude(roadGraph))
	publisher := matching.NewRedisPublisher(redisClient)
	matchEngine := matching.New(matching.Config{
		Workers:             cfg.Matching.Workers,
		OffersPerRider:      cfg.Matching.OffersPerRider,
		CandidateRing:       cfg.Matching.CandidateRing,
		RiderTimeout:        cfg.Matching.RiderTimeout(),
		TimeoutScanInterval: cfg.Matching.TimeoutScanInterval(),
		QueueCapacity:       matching.DefaultConfig().QueueCapacity,
	}, grid, routeEngine, publisher)

	if err := matchEngine.Start(); err != nil {
		logger.Error("matching engine start failed", "error", err)
		os.Exit(1)
	}
	defer matchEngine.Stop()

	router := httptransport.NewRouter(logger, matchEngine, routeEngine)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("matchd listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

// referenceLatitude picks a latitude to center the spatial grid's
// equirectangular projection on, using the first node of the loaded
// graph when one exists and falling back to the equator otherwise.
func referenceLatitude(g *graph.Graph) float64 {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0
	}
	return nodes[0].Lat
}
