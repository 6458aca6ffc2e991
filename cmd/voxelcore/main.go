package main

import (
	"flag"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xlab/closer"

	"voxelcore/internal/config"
	"voxelcore/internal/meshing"
	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

func main() {
	configPath := flag.String("config", "voxelcore.yaml", "path to config file")
	metricsAddr := flag.String("metrics", ":9090", "prometheus listen address, empty to disable")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	config.SetViewDistance(cfg.ViewDistance)
	slog.Info("starting", "seed", cfg.Seed, "workers", cfg.Workers, "view_distance", cfg.ViewDistance)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("metrics server failed", "err", err)
			}
		}()
	}

	gen := world.NewGenerator(cfg.Seed)
	if !cfg.Caves {
		gen.DisableCaves()
	}

	store := world.NewChunkStore()
	chunkLoader := world.NewChunkLoaderWithFactory(func() world.TerrainGenerator {
		g := world.NewGenerator(cfg.Seed)
		if !cfg.Caves {
			g.DisableCaves()
		}
		return g
	}, cfg.Workers, cfg.ChunkQueueSize)
	meshLoader := meshing.NewMeshLoader(store, gen, cfg.Workers, cfg.MeshQueueSize)

	closer.Bind(func() {
		chunkLoader.Close()
		meshLoader.Close()
		slog.Info("shut down", "chunks_loaded", store.ChunkCount())
	})

	spawnX, spawnY, spawnZ := gen.FindSpawnPoint()
	slog.Info("spawn point", "x", spawnX, "y", spawnY, "z", spawnZ)

	// Generate the immediate spawn area synchronously so there is ground
	// under the observer before the async pipeline spins up.
	spawnCX := floorDiv(int(math.Floor(float64(spawnX))), world.ChunkSizeX)
	spawnCZ := floorDiv(int(math.Floor(float64(spawnZ))), world.ChunkSizeZ)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			store.EnsureGenerated(spawnCX+dx, spawnCZ+dz, gen)
		}
	}

	go runStream(store, gen, chunkLoader, meshLoader, spawnX, spawnZ)

	closer.Hold()
}

// runStream drives the load/mesh/evict cycle around a fixed observer,
// the same loop a renderer would run once per frame.
func runStream(store *world.ChunkStore, gen *world.Generator, chunkLoader *world.ChunkLoader, meshLoader *meshing.MeshLoader, obsX, obsZ float32) {
	centerCX := floorDiv(int(math.Floor(float64(obsX))), world.ChunkSizeX)
	centerCZ := floorDiv(int(math.Floor(float64(obsZ))), world.ChunkSizeZ)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	meshCount := 0

	for {
		select {
		case <-ticker.C:
			requestMissingChunks(store, chunkLoader, centerCX, centerCZ)

			for _, res := range chunkLoader.PollResults(world.MaxChunksPerFrame) {
				coord := world.ChunkCoord{X: res.CX, Z: res.CZ}
				store.AddChunk(coord, res.Chunk)
				// Border faces of the neighbors may have become hidden.
				for sy := 0; sy < world.NumSubChunks; sy++ {
					store.MarkSubChunkDirty(res.CX-1, res.CZ, sy)
					store.MarkSubChunkDirty(res.CX+1, res.CZ, sy)
					store.MarkSubChunkDirty(res.CX, res.CZ-1, sy)
					store.MarkSubChunkDirty(res.CX, res.CZ+1, sy)
				}
			}

			requestDirtyMeshes(store, meshLoader)

			for i := 0; i < meshing.MaxMeshBuildsPerFrame; i++ {
				res, ok := meshLoader.PollResult()
				if !ok {
					break
				}
				if c := store.GetChunk(res.CX, res.CZ); c != nil {
					if sub := c.SubChunk(res.SY); sub != nil {
						sub.NumIndices = uint32(len(res.Terrain.Indices))
						sub.NumWaterIndices = uint32(len(res.Water.Indices))
					}
				}
				meshCount++
			}

			store.UpdateAround(obsX, obsZ, config.GetUnloadDistance())

		case <-statsTicker.C:
			slog.Info("stream stats",
				"chunks", store.ChunkCount(),
				"pending", chunkLoader.PendingCount(),
				"mesh_queue", meshLoader.QueueLength(),
				"meshes_built", meshCount,
				"hotspots", profiling.TopN(3))
			profiling.Reset()
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// requestMissingChunks queues every unloaded chunk in view, nearest first.
func requestMissingChunks(store *world.ChunkStore, chunkLoader *world.ChunkLoader, centerCX, centerCZ int) {
	viewDistance := config.GetViewDistance()

	var reqs []world.ChunkGenRequest
	for dx := -viewDistance; dx <= viewDistance; dx++ {
		for dz := -viewDistance; dz <= viewDistance; dz++ {
			cx := centerCX + dx
			cz := centerCZ + dz
			if store.HasChunk(world.ChunkCoord{X: cx, Z: cz}) {
				continue
			}
			reqs = append(reqs, world.ChunkGenRequest{
				CX:       cx,
				CZ:       cz,
				Priority: dx*dx + dz*dz,
			})
		}
	}
	chunkLoader.RequestChunks(reqs)
}

// requestDirtyMeshes scans loaded chunks for dirty, non-empty subchunks
// and queues rebuilds up to the per-frame budget.
func requestDirtyMeshes(store *world.ChunkStore, meshLoader *meshing.MeshLoader) {
	budget := meshing.MaxMeshBuildsPerFrame
	for _, coord := range store.AllCoords() {
		if budget == 0 {
			return
		}
		c := store.GetChunk(coord.X, coord.Z)
		if c == nil {
			continue
		}
		for sy := 0; sy < world.NumSubChunks && budget > 0; sy++ {
			sub := c.SubChunk(sy)
			if sub == nil || sub.IsEmpty() || !sub.IsMeshDirty() {
				continue
			}
			if store.IsSubChunkOccluded(coord.X, coord.Z, sy) {
				continue
			}
			if meshLoader.RequestMesh(coord.X, coord.Z, sy) {
				sub.ClearMeshDirty()
				budget--
			}
		}
	}
}
