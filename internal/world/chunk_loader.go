package world

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"voxelcore/internal/profiling"
)

// Default concurrency settings for the streaming pipeline.
const (
	AsyncWorkerCount      = 4
	ChunkRequestQueueSize = 256
	ChunkResultQueueSize  = 64
	MaxChunksPerFrame     = 4
)

var (
	chunksGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelcore",
		Subsystem: "chunkloader",
		Name:      "chunks_generated_total",
		Help:      "Number of chunks generated by the background workers.",
	})
	chunkRequestsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelcore",
		Subsystem: "chunkloader",
		Name:      "requests_dropped_total",
		Help:      "Chunk requests rejected because the queue was full.",
	})
	chunksPendingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxelcore",
		Subsystem: "chunkloader",
		Name:      "pending",
		Help:      "Chunk requests currently queued or generating.",
	})
)

// ChunkGenRequest asks the loader to generate one chunk. Priority orders
// requests within a batch; lower values are generated first.
type ChunkGenRequest struct {
	CX, CZ   int
	Priority int
}

// ChunkGenResult is a finished chunk ready to be installed by the caller.
type ChunkGenResult struct {
	CX, CZ int
	Chunk  *Chunk
}

// ChunkLoader generates chunks on background workers. Requests and results
// flow over bounded channels so a stalled consumer throttles generation
// instead of growing memory. Each worker owns its own Generator, so the
// noise state is never shared across goroutines.
type ChunkLoader struct {
	requests chan ChunkGenRequest
	results  chan ChunkGenResult

	pending   map[ChunkCoord]struct{}
	pendingMu sync.Mutex

	newGen func() TerrainGenerator
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *slog.Logger
}

// NewChunkLoader starts workerCount background generation workers for the
// given seed.
func NewChunkLoader(seed int64, workerCount int) *ChunkLoader {
	return NewChunkLoaderWithFactory(func() TerrainGenerator {
		return NewGenerator(seed)
	}, workerCount, 0)
}

// NewChunkLoaderWithFactory is NewChunkLoader with a custom generator
// constructor. The factory is called once per worker so each goroutine
// gets its own noise state. queueSize bounds the request queue; zero or
// negative selects the default.
func NewChunkLoaderWithFactory(newGen func() TerrainGenerator, workerCount, queueSize int) *ChunkLoader {
	if workerCount <= 0 {
		workerCount = AsyncWorkerCount
	}
	if queueSize <= 0 {
		queueSize = ChunkRequestQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())

	cl := &ChunkLoader{
		requests: make(chan ChunkGenRequest, queueSize),
		results:  make(chan ChunkGenResult, ChunkResultQueueSize),
		pending:  make(map[ChunkCoord]struct{}),
		newGen:   newGen,
		ctx:      ctx,
		cancel:   cancel,
		log:      slog.With("component", "chunkloader"),
	}

	for i := 0; i < workerCount; i++ {
		cl.wg.Add(1)
		go cl.worker()
	}
	cl.log.Info("chunk loader started", "workers", workerCount)

	return cl
}

func (cl *ChunkLoader) worker() {
	defer cl.wg.Done()

	gen := cl.newGen()
	for {
		select {
		case req := <-cl.requests:
			stop := profiling.Track("world.GenerateChunk")
			chunk := gen.GenerateChunk(req.CX, req.CZ)
			stop()
			chunksGeneratedTotal.Inc()

			select {
			case cl.results <- ChunkGenResult{CX: req.CX, CZ: req.CZ, Chunk: chunk}:
			case <-cl.ctx.Done():
				return
			}

		case <-cl.ctx.Done():
			return
		}
	}
}

// RequestChunk queues one chunk for generation. Returns false if the chunk
// is already pending or the request queue is full; a rejected request
// leaves no trace and can simply be retried next frame.
func (cl *ChunkLoader) RequestChunk(cx, cz int) bool {
	coord := ChunkCoord{X: cx, Z: cz}

	cl.pendingMu.Lock()
	if _, ok := cl.pending[coord]; ok {
		cl.pendingMu.Unlock()
		return false
	}
	cl.pending[coord] = struct{}{}
	cl.pendingMu.Unlock()

	select {
	case cl.requests <- ChunkGenRequest{CX: cx, CZ: cz}:
		chunksPendingGauge.Inc()
		return true
	default:
		// queue full: rollback
		cl.pendingMu.Lock()
		delete(cl.pending, coord)
		cl.pendingMu.Unlock()
		chunkRequestsDropped.Inc()
		return false
	}
}

// RequestChunks queues a batch, nearest (lowest priority value) first.
// Already-pending coordinates are skipped. Returns how many were accepted.
func (cl *ChunkLoader) RequestChunks(reqs []ChunkGenRequest) int {
	if len(reqs) == 0 {
		return 0
	}

	cl.pendingMu.Lock()
	filtered := make([]ChunkGenRequest, 0, len(reqs))
	for _, req := range reqs {
		if _, ok := cl.pending[ChunkCoord{X: req.CX, Z: req.CZ}]; !ok {
			filtered = append(filtered, req)
		}
	}
	cl.pendingMu.Unlock()

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Priority < filtered[j].Priority
	})

	accepted := 0
	for _, req := range filtered {
		if cl.RequestChunk(req.CX, req.CZ) {
			accepted++
		}
	}
	return accepted
}

// IsPending reports whether the chunk is queued or currently generating.
func (cl *ChunkLoader) IsPending(cx, cz int) bool {
	cl.pendingMu.Lock()
	defer cl.pendingMu.Unlock()
	_, ok := cl.pending[ChunkCoord{X: cx, Z: cz}]
	return ok
}

// PendingCount returns the number of in-flight requests.
func (cl *ChunkLoader) PendingCount() int {
	cl.pendingMu.Lock()
	defer cl.pendingMu.Unlock()
	return len(cl.pending)
}

// PollResults drains up to maxResults finished chunks without blocking.
// Completion order follows worker scheduling, not request order.
func (cl *ChunkLoader) PollResults(maxResults int) []ChunkGenResult {
	var out []ChunkGenResult
	for maxResults <= 0 || len(out) < maxResults {
		select {
		case res := <-cl.results:
			coord := ChunkCoord{X: res.CX, Z: res.CZ}
			cl.pendingMu.Lock()
			if _, ok := cl.pending[coord]; ok {
				// A cancelled request already gave back its gauge
				// slot; only a live entry decrements here.
				delete(cl.pending, coord)
				chunksPendingGauge.Dec()
			}
			cl.pendingMu.Unlock()
			out = append(out, res)
		default:
			return out
		}
	}
	return out
}

// PollAllResults drains every finished chunk currently buffered.
func (cl *ChunkLoader) PollAllResults() []ChunkGenResult {
	return cl.PollResults(0)
}

// Cancel forgets a pending request. The worker may still generate the
// chunk; its result is discarded on the next poll by the caller checking
// against its own load set.
func (cl *ChunkLoader) Cancel(cx, cz int) {
	cl.pendingMu.Lock()
	if _, ok := cl.pending[ChunkCoord{X: cx, Z: cz}]; ok {
		delete(cl.pending, ChunkCoord{X: cx, Z: cz})
		chunksPendingGauge.Dec()
	}
	cl.pendingMu.Unlock()
}

// ClearPending forgets all pending requests.
func (cl *ChunkLoader) ClearPending() {
	cl.pendingMu.Lock()
	n := len(cl.pending)
	cl.pending = make(map[ChunkCoord]struct{})
	cl.pendingMu.Unlock()
	chunksPendingGauge.Sub(float64(n))
}

// Close stops the workers and waits for them to exit.
func (cl *ChunkLoader) Close() {
	cl.cancel()
	cl.wg.Wait()
	cl.log.Info("chunk loader stopped")
}
