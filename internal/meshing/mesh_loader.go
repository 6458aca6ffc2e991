package meshing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

// Queue and budget defaults for the mesh pipeline.
const (
	MeshRequestQueueSize  = 128
	MeshResultQueueSize   = 128
	MaxMeshBuildsPerFrame = 6
)

var meshBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "voxelcore",
	Subsystem: "meshloader",
	Name:      "builds_total",
	Help:      "Subchunk meshes built by the background workers.",
})

// MeshRequest asks for one subchunk mesh rebuild.
type MeshRequest struct {
	CX, CZ, SY int
}

// MeshResult is a finished subchunk mesh pair.
type MeshResult struct {
	CX, CZ, SY int
	Terrain    Mesh
	Water      Mesh
}

// MeshLoader rebuilds subchunk meshes on background workers. Unlike the
// chunk loader it keeps no pending set: mesh requests are cheap to re-issue
// and the dirty flag on the subchunk already deduplicates real work at the
// caller.
type MeshLoader struct {
	requests chan MeshRequest
	results  chan MeshResult

	store  *world.ChunkStore
	gen    world.TerrainGenerator
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMeshLoader starts workerCount mesh workers over the given store.
// queueSize bounds the request queue; zero or negative selects the default.
func NewMeshLoader(store *world.ChunkStore, gen world.TerrainGenerator, workerCount, queueSize int) *MeshLoader {
	if workerCount <= 0 {
		workerCount = world.AsyncWorkerCount
	}
	if queueSize <= 0 {
		queueSize = MeshRequestQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())

	ml := &MeshLoader{
		requests: make(chan MeshRequest, queueSize),
		results:  make(chan MeshResult, MeshResultQueueSize),
		store:    store,
		gen:      gen,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workerCount; i++ {
		ml.wg.Add(1)
		go ml.worker()
	}
	slog.Info("mesh loader started", "component", "meshloader", "workers", workerCount)

	return ml
}

func (ml *MeshLoader) worker() {
	defer ml.wg.Done()

	for {
		select {
		case req := <-ml.requests:
			stop := profiling.Track("meshing.BuildSubChunkMesh")
			terrain, water := BuildSubChunkMesh(ml.store, ml.gen, req.CX, req.CZ, req.SY)
			stop()
			meshBuildsTotal.Inc()

			select {
			case ml.results <- MeshResult{CX: req.CX, CZ: req.CZ, SY: req.SY, Terrain: terrain, Water: water}:
			case <-ml.ctx.Done():
				return
			}

		case <-ml.ctx.Done():
			return
		}
	}
}

// RequestMesh queues a rebuild. Returns false when the queue is full; the
// subchunk stays dirty and the caller retries next frame.
func (ml *MeshLoader) RequestMesh(cx, cz, sy int) bool {
	select {
	case ml.requests <- MeshRequest{CX: cx, CZ: cz, SY: sy}:
		return true
	default:
		return false
	}
}

// PollResult returns one finished mesh, or false if none is ready.
func (ml *MeshLoader) PollResult() (MeshResult, bool) {
	select {
	case res := <-ml.results:
		return res, true
	default:
		return MeshResult{}, false
	}
}

// QueueLength returns the number of requests waiting for a worker.
func (ml *MeshLoader) QueueLength() int {
	return len(ml.requests)
}

// Close stops the workers and waits for them to exit.
func (ml *MeshLoader) Close() {
	ml.cancel()
	ml.wg.Wait()
}
