package scene

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/engine/bounds"
)

func (s *scene) ComputeBounds() bounds.Bounds {
	n := len(s.renderables)
	if n == 0 {
		return bounds.Bounds{}
	}
	if s.computeWorkers <= 1 || n < s.cfg.Scene.BoundsParallelThreshold {
		return foldBounds(s.renderables)
	}

	// Each task folds one contiguous chunk into its own slot; the slots merge here once the
	// WaitGroup releases. pool.Wait() blocks until workers idle-exit, so it is not used.
	chunks := min(s.computeWorkers, n)
	size := (n + chunks - 1) / chunks
	partial := make([]bounds.Bounds, chunks)

	var wg sync.WaitGroup
	for i := range chunks {
		lo := i * size
		if lo >= n {
			break
		}
		items := s.renderables[lo:min(lo+size, n)]
		slot := &partial[i]

		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				*slot = foldBounds(items)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var total bounds.Bounds
	for _, b := range partial {
		total.ResizeBounds(b)
	}
	return total
}

func foldBounds(items []Renderable) bounds.Bounds {
	var b bounds.Bounds
	for _, item := range items {
		b.ResizeBounds(item.Bounds())
	}
	return b
}
