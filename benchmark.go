package bordertax

import "time"

// Report is the outcome of BenchmarkIndirect and BenchmarkDirect.
type Report struct {
	TotalAge    int64
	ActiveCount int64
	// Errors counts failed active lookups; only the indirect path counts them.
	Errors        int64
	CountsErrors  bool
	ElapsedMicros float64
}

// AsMap returns the report keyed total_age, active_count, errors (indirect
// only) and elapsed_us.
func (r Report) AsMap() map[string]any {
	m := map[string]any{
		"total_age":    r.TotalAge,
		"active_count": r.ActiveCount,
		"elapsed_us":   r.ElapsedMicros,
	}
	if r.CountsErrors {
		m["errors"] = r.Errors
	}
	return m
}

// BenchmarkIndirect times the indirect path. Unlike ProcessIndirect, a failed
// active lookup is counted in Errors and the loop moves on.
func BenchmarkIndirect(entities []any) Report {
	var totalAge, activeCount, errs int64

	start := time.Now()
	for i, e := range entities {
		age, ok, err := activeAge(i, e)
		switch {
		case err != nil:
			errs++
		case ok:
			totalAge += int64(age)
			activeCount++
		}
	}
	elapsed := elapsedMicros(start)

	return Report{
		TotalAge:      totalAge,
		ActiveCount:   activeCount,
		Errors:        errs,
		CountsErrors:  true,
		ElapsedMicros: elapsed,
	}
}

// BenchmarkDirect times the direct path. Entities are expected to be Users;
// the first one that is not aborts the call.
func BenchmarkDirect(entities []any) (Report, error) {
	var totalAge, activeCount int64

	start := time.Now()
	for i, e := range entities {
		u, err := viewUser(i, e)
		if err != nil {
			return Report{}, err
		}
		if u.Active {
			totalAge += int64(u.Age)
			activeCount++
		}
	}
	elapsed := elapsedMicros(start)

	return Report{TotalAge: totalAge, ActiveCount: activeCount, ElapsedMicros: elapsed}, nil
}
