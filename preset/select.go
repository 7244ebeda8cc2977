package preset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Select resolves a selection string against a table of n sets and
// returns the chosen indices, sorted and deduplicated. An empty
// string or "all" selects every set. Otherwise the string is a
// comma-separated list of clauses, each one of
//
//	7                a single zero-based index
//	0-5              an inclusive range
//	every:2 in 0-10  every 2nd index of an inclusive range
//	from:5           index 5 through the last set
//	up_to:4          index 0 through 4
//
// Any index outside 0 to n-1 is an error.
func Select(sel string, n int) ([]int, error) {
	if s := strings.TrimSpace(sel); s == "" || s == "all" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	picked := make(map[int]bool)
	for _, clause := range strings.Split(sel, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if err := selectClause(clause, n, picked); err != nil {
			return nil, err
		}
	}
	out := make([]int, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func selectClause(clause string, n int, picked map[int]bool) error {
	switch {
	case strings.HasPrefix(clause, "every:"):
		stepStr, rangeStr, ok := strings.Cut(strings.TrimPrefix(clause, "every:"), " in ")
		if !ok {
			return fmt.Errorf("invalid step selection %q", clause)
		}
		step, err := strconv.Atoi(strings.TrimSpace(stepStr))
		if err != nil || step < 1 {
			return fmt.Errorf("invalid step selection %q", clause)
		}
		start, end, err := parseRange(strings.TrimSpace(rangeStr))
		if err != nil {
			return fmt.Errorf("invalid step selection %q: %v", clause, err)
		}
		for i := start; i <= end; i += step {
			if err := pick(i, n, picked); err != nil {
				return fmt.Errorf("invalid step selection %q: %v", clause, err)
			}
		}
	case strings.HasPrefix(clause, "from:"):
		start, err := strconv.Atoi(strings.TrimPrefix(clause, "from:"))
		if err != nil {
			return fmt.Errorf("invalid from selection %q", clause)
		}
		if start < 0 || start >= n {
			return fmt.Errorf("invalid from selection %q: start index %d out of range (0-%d)", clause, start, n-1)
		}
		for i := start; i < n; i++ {
			picked[i] = true
		}
	case strings.HasPrefix(clause, "up_to:"):
		end, err := strconv.Atoi(strings.TrimPrefix(clause, "up_to:"))
		if err != nil {
			return fmt.Errorf("invalid up_to selection %q", clause)
		}
		if end < 0 || end >= n {
			return fmt.Errorf("invalid up_to selection %q: end index %d out of range (0-%d)", clause, end, n-1)
		}
		for i := 0; i <= end; i++ {
			picked[i] = true
		}
	case strings.Contains(clause, "-"):
		start, end, err := parseRange(clause)
		if err != nil {
			return fmt.Errorf("invalid range %q: %v", clause, err)
		}
		for i := start; i <= end; i++ {
			if err := pick(i, n, picked); err != nil {
				return fmt.Errorf("invalid range %q: %v", clause, err)
			}
		}
	default:
		i, err := strconv.Atoi(clause)
		if err != nil {
			return fmt.Errorf("invalid index %q", clause)
		}
		if err := pick(i, n, picked); err != nil {
			return fmt.Errorf("invalid index %q: %v", clause, err)
		}
	}
	return nil
}

func parseRange(s string) (start, end int, err error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("not a range")
	}
	start, err = strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	end, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf("start > end")
	}
	return start, end, nil
}

func pick(i, n int, picked map[int]bool) error {
	if i < 0 || i >= n {
		return fmt.Errorf("index %d out of range (0-%d)", i, n-1)
	}
	picked[i] = true
	return nil
}
