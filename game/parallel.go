package game

import (
	"math/rand"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/systems"
)

// blobSnapshot captures one entity's state for the compute phase.
type blobSnapshot struct {
	Entity ecs.Entity
	Blob   components.Blob
}

// numChunks is the fixed number of ranges a step is split into. It does
// not depend on the worker count, so a seed replays identically on any
// machine.
const numChunks = 64

// workChunk represents a range of snapshots for a worker to process.
// Chunk c always uses rngs[c], whichever worker picks it up.
type workChunk struct {
	start, end int
	rng        int
}

// parallelState holds resources for parallel stepping.
type parallelState struct {
	snapshots  []blobSnapshot
	rngs       []*rand.Rand
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// newParallelState creates one generator per chunk. The chunk generators
// are seeded from a single sub-generator, so master advances by exactly one
// draw.
func newParallelState(numWorkers, threshold int, master *rand.Rand) *parallelState {
	if numWorkers < 1 {
		numWorkers = 1
	}
	sub := rand.New(rand.NewSource(master.Int63()))
	rngs := make([]*rand.Rand, numChunks)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(sub.Int63()))
	}
	return &parallelState{
		numWorkers: numWorkers,
		threshold:  threshold,
		rngs:       rngs,
		snapshots:  make([]blobSnapshot, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, len(p.rngs))
	p.doneChan = make(chan struct{}, len(p.rngs))
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// chunks splits n snapshots into at most numChunks contiguous ranges.
func (p *parallelState) chunks(n int) []workChunk {
	count := len(p.rngs)
	chunkSize := (n + count - 1) / count
	out := make([]workChunk, 0, count)
	for c := 0; c < count; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}
		out = append(out, workChunk{start: start, end: end, rng: c})
	}
	return out
}

// compute steps every snapshot. Small populations run inline over the same
// chunks and generators as the pool, so both paths produce identical state.
func (p *parallelState) compute() {
	n := len(p.snapshots)
	if n == 0 {
		return
	}

	chunks := p.chunks(n)
	if n < p.threshold {
		for _, c := range chunks {
			p.computeChunk(c)
		}
		return
	}

	if !p.running {
		p.startWorkers()
	}
	for _, c := range chunks {
		p.workChan <- c
	}
	// Wait for all chunks to complete
	for range chunks {
		<-p.doneChan
	}
}

// computeChunk runs the per-blob rules over one range of snapshots.
func (p *parallelState) computeChunk(c workChunk) {
	rng := p.rngs[c.rng]
	for i := c.start; i < c.end; i++ {
		systems.StepBlob(rng, &p.snapshots[i].Blob)
	}
}

// snapshotBlobs copies ECS state into the step buffer in population order.
func (g *Game) snapshotBlobs() {
	p := g.parallel
	p.snapshots = p.snapshots[:0]
	for _, e := range g.entities {
		pos, internal, genes := g.blobMap.Get(e)
		p.snapshots = append(p.snapshots, blobSnapshot{
			Entity: e,
			Blob:   components.Blob{Position: *pos, Internal: *internal, Genes: *genes},
		})
	}
}

// applySnapshots writes computed state back to ECS components.
// Genomes never change within a generation and are not written.
func (g *Game) applySnapshots() {
	for i := range g.parallel.snapshots {
		snap := &g.parallel.snapshots[i]
		pos, internal, _ := g.blobMap.Get(snap.Entity)
		*pos = snap.Blob.Position
		*internal = snap.Blob.Internal
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
