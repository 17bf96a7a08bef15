package repository

import "fmt"

// JobSearchFilters defines the optional filters recognized by JobRepo.FindAll.
// Nil pointer fields mean "not supplied". HasEquity only narrows the result
// when explicitly true; false and absent behave identically.
type JobSearchFilters struct {
	Title     *string
	MinSalary *int64
	HasEquity bool
}

// compileJobSearch turns the filter set into WHERE predicates plus the
// positional argument list. Predicates appear in declaration order (title,
// minSalary, hasEquity) and are meant to be ANDed together. The equity
// predicate carries a literal comparison rather than a parameter, so only
// the first two filters contribute arguments. An empty filter set yields an
// empty predicate list.
func compileJobSearch(f JobSearchFilters) ([]string, []any) {
	where := []string{}
	args := []any{}

	if f.Title != nil && *f.Title != "" {
		args = append(args, "%"+*f.Title+"%")
		where = append(where, fmt.Sprintf("j.title ILIKE $%d", len(args)))
	}
	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		where = append(where, fmt.Sprintf("j.salary >= $%d", len(args)))
	}
	if f.HasEquity {
		where = append(where, "j.equity > 0")
	}
	return where, args
}
