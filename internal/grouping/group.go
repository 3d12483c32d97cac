// Package grouping folds flat work-item rows into repair cases.
package grouping

import (
	"slices"
	"strconv"

	"github.com/rpggio/repairdesk/internal/domain/record"
	"github.com/rpggio/repairdesk/internal/textextract"
)

// signaturePrefixLen is the number of leading raw-text characters in a signature.
const signaturePrefixLen = 50

// Signature returns the legacy grouping key of a raw text block: its length
// in characters, an underscore, and its first 50 characters.
func Signature(rawText string) string {
	runes := []rune(rawText)
	prefix := runes
	if len(prefix) > signaturePrefixLen {
		prefix = prefix[:signaturePrefixLen]
	}
	return strconv.Itoa(len(runes)) + "_" + string(prefix)
}

// Group folds rows into cases. Rows sharing an id or a raw-text signature
// belong to the same case. Cases are returned in the order their first row
// appears in rows.
func Group(rows []record.WorkItemRecord) []record.Case {
	roots := link(rows)

	index := make(map[int]int)
	var accs []*accumulator
	for i, row := range rows {
		root := roots.find(i)
		pos, ok := index[root]
		if !ok {
			pos = len(accs)
			index[root] = pos
			accs = append(accs, newAccumulator(row))
		}
		accs[pos].add(row)
	}

	cases := make([]record.Case, 0, len(accs))
	for _, acc := range accs {
		cases = append(cases, acc.finalize())
	}
	return cases
}

// link unions row indices that share an id or a signature.
func link(rows []record.WorkItemRecord) *disjointSet {
	set := newDisjointSet(len(rows))
	byID := make(map[string]int)
	bySignature := make(map[string]int)
	for i, row := range rows {
		if row.ID != "" {
			if first, ok := byID[row.ID]; ok {
				set.union(first, i)
			} else {
				byID[row.ID] = i
			}
		}
		sig := Signature(row.RawText)
		if first, ok := bySignature[sig]; ok {
			set.union(first, i)
		} else {
			bySignature[sig] = i
		}
	}
	return set
}

type accumulator struct {
	c             record.Case
	seen          map[string]struct{}
	explicitTotal int64
}

func newAccumulator(first record.WorkItemRecord) *accumulator {
	customer := first.CustomerName
	if customer == "" {
		if name, ok := textextract.CustomerName(first.RawText); ok {
			customer = name
		} else {
			customer = record.UnknownValue
		}
	}
	date := first.Date
	if date == "" {
		if d, ok := textextract.Date(first.RawText); ok {
			date = d
		} else {
			date = record.UnknownValue
		}
	}
	serial := first.SerialNumber
	if serial == "" {
		serial, _ = textextract.SerialNumber(first.RawText)
	}

	return &accumulator{
		c: record.Case{
			ID:              first.ID,
			Date:            date,
			CustomerName:    customer,
			Model:           first.Model,
			Symptoms:        first.Symptoms,
			WorkItems:       []record.WorkItem{},
			RawText:         first.RawText,
			IsNewEntry:      first.Date != "",
			SerialNumber:    serial,
			Categories:      []string{},
			Brand:           first.Brand,
			RequestDetails:  first.RequestDetails,
			ProposalContent: first.ProposalContent,
		},
		seen: make(map[string]struct{}),
	}
}

func (a *accumulator) add(row record.WorkItemRecord) {
	a.c.WorkItems = append(a.c.WorkItems, record.WorkItem{Name: row.DetailedWork, Price: row.Price})
	for _, category := range row.Categories {
		if _, ok := a.seen[category]; ok {
			continue
		}
		a.seen[category] = struct{}{}
		a.c.Categories = append(a.c.Categories, category)
	}
	// Legacy rows of one case carry the same override; the last positive one wins.
	if row.CaseTotalPrice > 0 {
		a.explicitTotal = row.CaseTotalPrice
	}
}

// finalize prefers an override seen anywhere in the group over the item sum.
func (a *accumulator) finalize() record.Case {
	c := a.c
	c.WorkItems = slices.Clip(c.WorkItems)
	c.TotalPrice = a.explicitTotal
	if c.TotalPrice == 0 {
		c.TotalPrice = record.SumPrices(c.WorkItems)
	}
	return c
}

type disjointSet struct {
	parent []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent}
}

func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

// union keeps the smaller index as root so roots stay stable across calls.
func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
}
