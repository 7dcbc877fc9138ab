package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/kegliz/synthesis/qc/facade"
	"github.com/kegliz/synthesis/qc/qerr"
)

// MaxWorkers is the hard, non-tunable parallelism cap on the dispatch
// worker pool.
const MaxWorkers = 3

// Orchestrator accepts single or batched (agent, action, kwargs)
// requests, executes them against either the engine facade (reserved
// agent names) or the external agent registry, and never lets a panic
// or error cross its public boundary — every call returns a Result.
//
// The Engine is not reentrant-safe, so every synthesis/true_synthesis
// call is serialized through coordMu regardless of how many workers are
// running concurrently; external-agent calls carry no such restriction.
type Orchestrator struct {
	facade   *facade.Facade
	registry Registry
	coordMu  sync.Mutex
}

// New builds an Orchestrator over the given facade and external agent
// registry.
func New(f *facade.Facade, registry Registry) *Orchestrator {
	return &Orchestrator{facade: f, registry: registry}
}

// Dispatch executes a single request synchronously and returns its
// structured result.
func (o *Orchestrator) Dispatch(req Request) Result {
	return o.execute(req)
}

// MultiDispatch submits every request to a worker pool capped at
// MaxWorkers, waits for all to complete, and returns results in
// completion order. The call is synchronous to the caller even though
// workers run in parallel; the single-coordinator mutex still serializes
// all engine-facade calls within the batch.
//
// Reserved-agent (synthesis/true_synthesis) calls all share the one
// facade, so they run on a dedicated sequential lane that preserves
// submission order — coordMu alone only guarantees mutual exclusion
// between goroutines, not which one gets it next. External-agent calls
// carry no ordering guarantee and fan out across the remaining worker
// budget, as before.
func (o *Orchestrator) MultiDispatch(reqs []Request) MultiResult {
	start := time.Now()
	if len(reqs) == 0 {
		return MultiResult{Results: []Result{}, AllSuccess: true}
	}

	var reserved, external []Request
	for _, r := range reqs {
		if IsReservedAgent(r.Agent) {
			reserved = append(reserved, r)
		} else {
			external = append(external, r)
		}
	}

	resultsCh := make(chan Result, len(reqs))
	var wg sync.WaitGroup

	if len(reserved) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range reserved {
				resultsCh <- o.execute(r)
			}
		}()
	}

	if len(external) > 0 {
		workers := MaxWorkers
		if len(reserved) > 0 && workers > 1 {
			workers--
		}
		if len(external) < workers {
			workers = len(external)
		}

		jobs := make(chan Request, len(external))
		for _, r := range external {
			jobs <- r
		}
		close(jobs)

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := range jobs {
					resultsCh <- o.execute(r)
				}
			}()
		}
	}

	wg.Wait()
	close(resultsCh)

	results := make([]Result, 0, len(reqs))
	successCount, failureCount := 0, 0
	for r := range resultsCh {
		if r.Success {
			successCount++
		} else {
			failureCount++
		}
		results = append(results, r)
	}

	return MultiResult{
		Results:       results,
		TotalDuration: time.Since(start).Seconds(),
		SuccessCount:  successCount,
		FailureCount:  failureCount,
		AllSuccess:    failureCount == 0,
	}
}

// execute wraps one request in a stopwatch and a catch-all recover,
// mapping any panic to an Internal-tagged failure — no exception ever
// crosses the dispatch boundary.
func (o *Orchestrator) execute(req Request) (res Result) {
	start := time.Now()
	res = Result{Agent: req.Agent, Action: req.Action}

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Error = fmt.Sprintf("dispatch: panic in %s:%s: %v", req.Agent, req.Action, r)
		}
		res.DurationSeconds = time.Since(start).Seconds()
	}()

	var data any
	var err error

	if IsReservedAgent(req.Agent) {
		o.coordMu.Lock()
		data, err = Route(o.facade, req.Agent, req.Action, req.Kwargs)
		o.coordMu.Unlock()
	} else {
		agent, ok := o.registry.Lookup(req.Agent)
		if !ok {
			err = qerr.New(qerr.InvalidArgument, "dispatch: unknown agent %q", req.Agent)
		} else {
			data, err = agent.Dispatch(req.Action, req.Kwargs)
		}
	}

	if err != nil {
		res.Success = false
		res.Error = err.Error()
		return res
	}
	res.Success = true
	res.Data = data
	return res
}
