package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/aldodev/portfolio-api/internal/api/metrics"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes asset-deletion jobs to a fixed set of workers using
// consistent hashing on the public ID, so work for the same asset never
// runs concurrently.
type Dispatcher struct {
	workers []chan ports.AssetJob
	store   ports.AssetStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.AssetStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AssetJob, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AssetJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its public ID.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.AssetJob) {
	d.workers[d.shardIndex(job.PublicID)] <- job
	metrics.AssetJobsEnqueuedTotal.WithLabelValues(job.Category).Inc()
}

// shardIndex maps a public ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(publicID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(publicID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AssetJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Destroy(ctx, job.PublicID); err != nil {
				metrics.AssetJobsFailedTotal.Inc()
				d.log.Error().Err(err).
					Str("public_id", job.PublicID).
					Int("worker_id", id).
					Msg("asset deletion failed")
			}
		}
	}
}
