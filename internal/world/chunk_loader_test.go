package world

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateGenerator blocks in GenerateChunk until released, so tests control
// exactly how many requests the workers can drain.
type gateGenerator struct {
	started chan struct{}
	release chan struct{}
}

func newGateGenerator() *gateGenerator {
	return &gateGenerator{
		started: make(chan struct{}, 1024),
		release: make(chan struct{}),
	}
}

func (g *gateGenerator) GenerateChunk(cx, cz int) *Chunk {
	g.started <- struct{}{}
	<-g.release
	return NewChunk(cx, cz)
}

func (g *gateGenerator) GetTerrainHeight(x, z int) int { return SeaLevel + 1 }
func (g *gateGenerator) GetBiome(x, z int) Biome       { return BiomePlains }
func (g *gateGenerator) Seed() int64                   { return 0 }

func TestChunkLoaderGeneratesChunks(t *testing.T) {
	cl := NewChunkLoader(2147, 2)
	defer cl.Close()

	require.True(t, cl.RequestChunk(0, 0))
	require.True(t, cl.RequestChunk(1, 0))

	deadline := time.After(10 * time.Second)
	got := map[ChunkCoord]bool{}
	for len(got) < 2 {
		select {
		case <-deadline:
			t.Fatalf("timed out, got %d of 2 chunks", len(got))
		default:
		}
		for _, res := range cl.PollResults(8) {
			require.NotNil(t, res.Chunk)
			got[ChunkCoord{X: res.CX, Z: res.CZ}] = true
		}
		time.Sleep(10 * time.Millisecond)
	}

	assert.Zero(t, cl.PendingCount())
}

func TestChunkLoaderDuplicateRequestRejected(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 0)
	defer func() {
		close(gen.release)
		cl.Close()
	}()

	require.True(t, cl.RequestChunk(3, 4))
	assert.False(t, cl.RequestChunk(3, 4), "second request for a pending chunk must be rejected")
	assert.True(t, cl.IsPending(3, 4))
}

func TestChunkLoaderBackpressure(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 0)
	defer func() {
		close(gen.release)
		cl.Close()
	}()

	// Occupy the single worker.
	require.True(t, cl.RequestChunk(0, 0))
	<-gen.started

	// Fill the request queue to capacity.
	for i := 1; i <= ChunkRequestQueueSize; i++ {
		require.True(t, cl.RequestChunk(i, 0), "request %d should fit in the queue", i)
	}

	// One more must be rejected and must leave no pending entry behind.
	rejected := ChunkCoord{X: ChunkRequestQueueSize + 1, Z: 0}
	assert.False(t, cl.RequestChunk(rejected.X, rejected.Z))
	assert.False(t, cl.IsPending(rejected.X, rejected.Z), "rejected request must roll back its pending entry")
}

func TestChunkLoaderConfiguredQueueSize(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 1)
	defer func() {
		close(gen.release)
		cl.Close()
	}()

	// Occupy the single worker, then the one queue slot.
	require.True(t, cl.RequestChunk(0, 0))
	<-gen.started
	require.True(t, cl.RequestChunk(1, 0))

	assert.False(t, cl.RequestChunk(2, 0), "queue of size 1 must reject the second queued request")
	assert.False(t, cl.IsPending(2, 0))
}

func TestChunkLoaderCancelKeepsPendingGaugeBalanced(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 0)
	defer cl.Close()

	before := testutil.ToFloat64(chunksPendingGauge)

	require.True(t, cl.RequestChunk(7, 7))
	<-gen.started
	cl.Cancel(7, 7)
	assert.Equal(t, before, testutil.ToFloat64(chunksPendingGauge))

	// The worker still delivers the cancelled chunk; polling it must not
	// decrement the gauge a second time.
	close(gen.release)
	deadline := time.After(10 * time.Second)
	for len(cl.PollResults(1)) == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the cancelled chunk's result")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	assert.Equal(t, before, testutil.ToFloat64(chunksPendingGauge))
}

func TestChunkLoaderRequestChunksOrdersByPriority(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 0)
	defer cl.Close()

	reqs := []ChunkGenRequest{
		{CX: 5, CZ: 0, Priority: 25},
		{CX: 1, CZ: 0, Priority: 1},
		{CX: 3, CZ: 0, Priority: 9},
	}
	accepted := cl.RequestChunks(reqs)
	assert.Equal(t, 3, accepted)

	// The nearest chunk reaches the single worker first.
	<-gen.started
	close(gen.release)

	var first *ChunkGenResult
	deadline := time.After(10 * time.Second)
	for first == nil {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for first result")
		default:
		}
		if res := cl.PollResults(1); len(res) == 1 {
			first = &res[0]
		} else {
			time.Sleep(5 * time.Millisecond)
		}
	}
	assert.Equal(t, 1, first.CX, "lowest priority value must be generated first")
}

func TestChunkLoaderCancel(t *testing.T) {
	gen := newGateGenerator()
	cl := NewChunkLoaderWithFactory(func() TerrainGenerator { return gen }, 1, 0)
	defer func() {
		close(gen.release)
		cl.Close()
	}()

	require.True(t, cl.RequestChunk(0, 0))
	<-gen.started
	require.True(t, cl.RequestChunk(9, 9))

	cl.Cancel(9, 9)
	assert.False(t, cl.IsPending(9, 9))
	assert.True(t, cl.RequestChunk(9, 9), "cancelled chunk can be requested again")
}
