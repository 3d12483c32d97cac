// Package pricing derives price references from repair history and from the
// shop's static market-rate menu.
package pricing

import (
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rpggio/repairdesk/internal/domain/record"
)

const minNameLength = 2

var (
	leadingMarks = regexp.MustCompile(`^[●・\s]+`)
	trailingNote = regexp.MustCompile(`(?s)(＞＞＞|>>>).*$`)
)

// WorkStat summarizes past prices for one work item name.
type WorkStat struct {
	Name        string   `json:"name"`
	Count       int      `json:"count"`
	PricedCount int      `json:"pricedCount"`
	Min         int64    `json:"min"`
	Max         int64    `json:"max"`
	Avg         int64    `json:"avg"`
	Categories  []string `json:"categories"`
}

// StatsOptions filters WorkStats. Empty fields match everything.
type StatsOptions struct {
	Query    string
	Category string
}

// StatsReport is the filtered stat list plus every category seen.
type StatsReport struct {
	Items      []WorkStat `json:"items"`
	Categories []string   `json:"categories"`
}

// NormalizeName strips list markers and trailing annotations from a work
// item name.
func NormalizeName(name string) string {
	name = leadingMarks.ReplaceAllString(name, "")
	name = trailingNote.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

type statAccumulator struct {
	stat       WorkStat
	sum        int64
	categories map[string]struct{}
}

// WorkStats aggregates work item prices across cases.
func WorkStats(cases []record.Case, opts StatsOptions) StatsReport {
	byName := make(map[string]*statAccumulator)
	var order []string
	allCategories := make(map[string]struct{})

	for _, c := range cases {
		for _, cat := range c.Categories {
			allCategories[cat] = struct{}{}
		}
		for _, item := range c.WorkItems {
			name := NormalizeName(item.Name)
			if utf8.RuneCountInString(name) < minNameLength {
				continue
			}
			acc, ok := byName[name]
			if !ok {
				acc = &statAccumulator{
					stat:       WorkStat{Name: name},
					categories: make(map[string]struct{}),
				}
				byName[name] = acc
				order = append(order, name)
			}
			acc.add(item.Price, c.Categories)
		}
	}

	query := strings.ToLower(strings.TrimSpace(opts.Query))
	items := make([]WorkStat, 0, len(order))
	for _, name := range order {
		acc := byName[name]
		stat := acc.finish()
		if query != "" && !strings.Contains(strings.ToLower(stat.Name), query) {
			continue
		}
		if opts.Category != "" && !slices.Contains(stat.Categories, opts.Category) {
			continue
		}
		items = append(items, stat)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})

	return StatsReport{Items: items, Categories: sortedKeys(allCategories)}
}

func (a *statAccumulator) add(price int64, categories []string) {
	a.stat.Count++
	for _, cat := range categories {
		if _, ok := a.categories[cat]; !ok {
			a.categories[cat] = struct{}{}
			a.stat.Categories = append(a.stat.Categories, cat)
		}
	}
	if price <= 0 {
		return
	}
	if a.stat.PricedCount == 0 || price < a.stat.Min {
		a.stat.Min = price
	}
	if price > a.stat.Max {
		a.stat.Max = price
	}
	a.sum += price
	a.stat.PricedCount++
}

func (a *statAccumulator) finish() WorkStat {
	stat := a.stat
	if stat.PricedCount > 0 {
		n := int64(stat.PricedCount)
		stat.Avg = (a.sum*2 + n) / (2 * n)
	}
	if stat.Categories == nil {
		stat.Categories = []string{}
	}
	return stat
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
