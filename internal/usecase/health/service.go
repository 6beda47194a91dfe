package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing; search still works.
	Degraded Status = "degraded"
	// Unhealthy indicates posts cannot be read.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckDisabled indicates a component that is not configured.
	CheckDisabled CheckResult = "disabled"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         Pinger
	cache      Pinger
	completion CompletionChecker
	directory  DirectoryReader
}

// New creates a Service. cache and completion can be nil.
func New(db Pinger, cache Pinger, completion CompletionChecker, directory DirectoryReader) *Service {
	return &Service{db: db, cache: cache, completion: completion, directory: directory}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 4)

	checks["database"] = result(s.db.Ping(ctx))

	if s.directory != nil {
		_, err := s.directory.Directory(ctx)
		checks["bank_directory"] = result(err)
	}

	checks["cache"] = CheckDisabled
	if s.cache != nil {
		checks["cache"] = result(s.cache.Ping(ctx))
	}

	checks["completion"] = CheckDisabled
	if s.completion != nil {
		checks["completion"] = result(s.completion.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["database"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
