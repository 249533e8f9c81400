package bordertax

import (
	"fmt"
	"time"
)

// Totals is the outcome of ProcessIndirect and ProcessDirect.
type Totals struct {
	TotalAge      int64
	ActiveCount   int64
	ElapsedMicros float64
}

// AsEntities boxes a typed slice for the processing functions.
func AsEntities[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// activeAge reads active and, when true, age from entity by name.
// ok=false with a nil error means the entity is skipped (inactive, or a member
// had the wrong type, or age is missing). A non-nil error is returned only when
// the active member itself cannot be looked up.
func activeAge(index int, entity any) (age int32, ok bool, err error) {
	av, detail, found := member(entity, "active")
	if !found {
		return 0, false, missingMember(Root().Index(index).Field("active"), "active", detail)
	}
	active, isBool := av.(bool)
	if !isBool || !active {
		return 0, false, nil
	}
	gv, _, found := member(entity, "age")
	if !found {
		return 0, false, nil
	}
	age, ok = AsInt32(gv)
	return age, ok, nil
}

// ProcessIndirect sums age and counts entities whose active member is true,
// resolving both members by name. A failed active lookup aborts the whole call;
// wrong-typed members and a missing age only exclude that entity.
func ProcessIndirect(entities []any) (Totals, error) {
	var totalAge, activeCount int64

	start := time.Now()
	for i, e := range entities {
		age, ok, err := activeAge(i, e)
		if err != nil {
			return Totals{}, err
		}
		if ok {
			totalAge += int64(age)
			activeCount++
		}
	}
	elapsed := elapsedMicros(start)

	return Totals{TotalAge: totalAge, ActiveCount: activeCount, ElapsedMicros: elapsed}, nil
}

// viewUser returns the User behind entity without any member lookup.
func viewUser(index int, entity any) (User, error) {
	switch u := entity.(type) {
	case User:
		return u, nil
	case *User:
		if u != nil {
			return *u, nil
		}
	}
	return User{}, singleIssue(Root().Index(index), CodeNotUser, fmt.Sprintf("got %T", entity), nil, "got", fmt.Sprintf("%T", entity))
}

// ProcessDirect is ProcessIndirect over User values read through their fields.
// Any entity that is not a User or non-nil *User aborts the call.
func ProcessDirect(entities []any) (Totals, error) {
	var totalAge, activeCount int64

	start := time.Now()
	for i, e := range entities {
		u, err := viewUser(i, e)
		if err != nil {
			return Totals{}, err
		}
		if u.Active {
			totalAge += int64(u.Age)
			activeCount++
		}
	}
	elapsed := elapsedMicros(start)

	return Totals{TotalAge: totalAge, ActiveCount: activeCount, ElapsedMicros: elapsed}, nil
}

func elapsedMicros(start time.Time) float64 {
	return float64(time.Since(start).Microseconds())
}
