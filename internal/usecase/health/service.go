package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentVectorStore = "vector_store"
	ComponentSearchAPI   = "search_api"
)

// defaultCheckTimeout bounds each component check.
const defaultCheckTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	searchAPI SearchAPIChecker
	timeout   time.Duration
}

// New creates a Service. Either checker can be nil, in which case the
// component is left out of the report.
func New(store StorePinger, searchAPI SearchAPIChecker) *Service {
	return &Service{store: store, searchAPI: searchAPI, timeout: defaultCheckTimeout}
}

// Check runs the component checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	run := func(name string, check func(context.Context) error) {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		res := CheckOK
		if err := check(cctx); err != nil {
			res = CheckError
		}
		mu.Lock()
		checks[name] = res
		mu.Unlock()
	}

	if s.store != nil {
		wg.Add(1)
		go run(ComponentVectorStore, s.store.Ping)
	}
	if s.searchAPI != nil {
		wg.Add(1)
		go run(ComponentSearchAPI, s.searchAPI.HealthCheck)
	}
	wg.Wait()

	return Report{Status: aggregate(checks), Checks: checks}
}

func aggregate(checks map[string]CheckResult) Status {
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
		return Healthy
	case failed == len(checks):
		return Unhealthy
	default:
		return Degraded
	}
}
