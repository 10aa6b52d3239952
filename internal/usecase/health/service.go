package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the dictionary is loaded and non-empty.
	Healthy Status = "ok"
	// Degraded indicates the service runs but cannot answer lookups meaningfully.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckEmpty indicates the dictionary holds no words.
	CheckEmpty CheckResult = "empty"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Words  int
	Checks map[string]CheckResult
}

// Service reports on the dictionary snapshot.
type Service struct {
	dict DictionaryStat
}

// New creates a Service.
func New(dict DictionaryStat) *Service {
	return &Service{dict: dict}
}

// Check inspects the dictionary snapshot.
func (s *Service) Check(_ context.Context) Report {
	n := s.dict.Len()

	checks := map[string]CheckResult{"dictionary": CheckOK}
	status := Healthy
	if n == 0 {
		checks["dictionary"] = CheckEmpty
		status = Degraded
	}

	return Report{Status: status, Words: n, Checks: checks}
}
