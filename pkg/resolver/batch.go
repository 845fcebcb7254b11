package resolver

import (
	"sync"

	"github.com/gnana997/tokenbridge/pkg/util"
)

// MatchNodes matches a list of independent nodes concurrently. Matching is
// pure computation over the shared immutable catalog, so per-node
// goroutines only read shared state and write local results. Reports come
// back in input order. workers <= 0 auto-sizes from the CPU count.
func (o *Orchestrator) MatchNodes(nodes []NodeValues, workers int) []NodeReport {
	if len(nodes) == 0 {
		return nil
	}
	workers = util.GetOptimalPoolSizeWithOverride(workers)
	if workers > len(nodes) {
		workers = len(nodes)
	}

	reports := make([]NodeReport, len(nodes))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = o.MatchNode(nodes[i])
			}
		}()
	}

	for i := range nodes {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return reports
}
