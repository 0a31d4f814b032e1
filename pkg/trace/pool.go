package trace

import (
	"runtime"
	"sync"

	"github.com/golenslab/lenstrace/pkg/lens"
)

// rayTask is one unit of work for the bundle pool.
type rayTask struct {
	ray *Ray
}

// rayResult reports the outcome of one traced ray.
type rayResult struct {
	blocked bool
	tir     bool
}

// BundleStats summarizes a parallel bundle trace.
type BundleStats struct {
	Traced  int // rays that exited the system cleanly
	Blocked int // rays stopped by a geometric miss or aperture
	TIR     int // rays stopped by total internal reflection
}

// TraceBundleParallel traces a bundle through a system using a pool of
// workers. Each ray's state is exclusively owned by the worker tracing it and
// the system is read-only for the duration, so no locking is needed.
// numWorkers <= 0 uses one worker per CPU.
func TraceBundleParallel(bundle Bundle, system *lens.System, numWorkers int, cfg Config) BundleStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	taskQueue := make(chan rayTask, len(bundle))
	resultQueue := make(chan rayResult, len(bundle))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskQueue {
				TraceThroughSystemConfig(task.ray, system, cfg)
				resultQueue <- rayResult{blocked: task.ray.Blocked, tir: task.ray.TIR}
			}
		}()
	}

	for _, ray := range bundle {
		taskQueue <- rayTask{ray: ray}
	}
	close(taskQueue)

	wg.Wait()
	close(resultQueue)

	var stats BundleStats
	for result := range resultQueue {
		switch {
		case result.blocked:
			stats.Blocked++
		case result.tir:
			stats.TIR++
		default:
			stats.Traced++
		}
	}
	return stats
}
