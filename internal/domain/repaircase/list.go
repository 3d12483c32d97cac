package repaircase

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/repairdesk/internal/domain/record"
)

var caseDatePattern = regexp.MustCompile(`^\s*(\d{4})[./-](\d{1,2})[./-](\d{1,2})`)

// ParseCaseDate reads a leading YYYY.M.D, YYYY/M/D or YYYY-M-D date.
func ParseCaseDate(s string) (time.Time, bool) {
	m := caseDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// List filters, orders and pages the grouped cases. An absent store lists as
// empty.
func (s *Service) List(ctx context.Context, opts record.ListOptions) (record.CasePage, error) {
	opts = opts.Normalized()

	cases, err := s.groupedCases(ctx)
	if err != nil && !errors.Is(err, ErrStoreNotFound) {
		return record.CasePage{}, err
	}

	cases = filterCases(cases, opts.Query)
	sortCases(cases, opts.Sort)

	total := len(cases)
	page := record.CasePage{
		Items:      []record.Case{},
		Total:      total,
		TotalPages: (total + opts.Limit - 1) / opts.Limit,
		Page:       opts.Page,
		Limit:      opts.Limit,
	}
	offset := (opts.Page - 1) * opts.Limit
	if offset < total {
		end := min(offset+opts.Limit, total)
		page.Items = cases[offset:end]
	}
	return page, nil
}

func filterCases(cases []record.Case, query string) []record.Case {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cases
	}
	out := cases[:0:0]
	for _, c := range cases {
		if strings.Contains(strings.ToLower(c.CustomerName), q) ||
			strings.Contains(strings.ToLower(c.Model), q) ||
			strings.Contains(strings.ToLower(c.Symptoms), q) ||
			strings.Contains(c.Date, q) ||
			strings.Contains(strings.ToLower(c.SerialNumber), q) {
			out = append(out, c)
		}
	}
	return out
}

// sortCases orders by date; cases without a readable date go last in both
// orders and keep their relative order.
func sortCases(cases []record.Case, order record.SortOrder) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make([]keyed, len(cases))
	idx := make([]int, len(cases))
	for i, c := range cases {
		t, ok := ParseCaseDate(c.Date)
		keys[i] = keyed{t: t, ok: ok}
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		switch {
		case !ka.ok || !kb.ok:
			return ka.ok && !kb.ok
		case order == record.SortAsc:
			return ka.t.Before(kb.t)
		default:
			return ka.t.After(kb.t)
		}
	})
	sorted := make([]record.Case, len(cases))
	for i, j := range idx {
		sorted[i] = cases[j]
	}
	copy(cases, sorted)
}
