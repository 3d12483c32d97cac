package search

import (
	"sort"
	"strings"

	"github.com/rpggio/repairdesk/internal/domain/record"
)

// Scoring weights. They are tuned against the shop's history and are
// load-bearing for ranking order.
const (
	baseMatchScore    = 10
	symptomBonus      = 5
	detailedWorkBonus = 5
)

// keyPrefixLen is the number of raw-text characters keying cases without an id.
const keyPrefixLen = 50

// MaxSimilarCases is the number of ranked cases kept for estimation.
const MaxSimilarCases = 5

// ScoredCase is a case assembled from the rows that matched a query.
type ScoredCase struct {
	Key     string
	Score   int
	Rows    []record.WorkItemRecord
	Reasons []string
}

// ScoreRow returns the score of one row against lowercased-at-match tokens
// and the tokens that matched.
func ScoreRow(row record.WorkItemRecord, tokens []string) (int, []string) {
	symptoms := strings.ToLower(row.Symptoms)
	work := strings.ToLower(row.DetailedWork)
	searchable := strings.ToLower(strings.Join([]string{
		row.Symptoms, row.DetailedWork, row.Category, row.Model, row.RawText,
	}, " "))

	score := 0
	var reasons []string
	for _, token := range tokens {
		lower := strings.ToLower(token)
		if !strings.Contains(searchable, lower) {
			continue
		}
		score += baseMatchScore
		if strings.Contains(symptoms, lower) {
			score += symptomBonus
		}
		if strings.Contains(work, lower) {
			score += detailedWorkBonus
		}
		reasons = append(reasons, token)
	}
	return score, reasons
}

// caseKey identifies the case of a row for merging: its id, or the first 50
// characters of its raw text when the row has none.
func caseKey(row record.WorkItemRecord) string {
	if row.ID != "" {
		return row.ID
	}
	runes := []rune(row.RawText)
	if len(runes) > keyPrefixLen {
		runes = runes[:keyPrefixLen]
	}
	return string(runes)
}

// Rank scores every row, merges matching rows into cases by summing their
// scores, and returns up to limit cases ordered by descending score. Cases
// with equal scores keep the order in which they were first matched.
func Rank(rows []record.WorkItemRecord, tokens []string, limit int) []ScoredCase {
	index := make(map[string]int)
	var cases []ScoredCase
	seen := make(map[string]map[string]struct{})

	for _, row := range rows {
		score, reasons := ScoreRow(row, tokens)
		if score == 0 {
			continue
		}
		key := caseKey(row)
		pos, ok := index[key]
		if !ok {
			pos = len(cases)
			index[key] = pos
			cases = append(cases, ScoredCase{Key: key})
			seen[key] = make(map[string]struct{})
		}
		sc := &cases[pos]
		sc.Rows = append(sc.Rows, row)
		sc.Score += score
		for _, reason := range reasons {
			if _, dup := seen[key][reason]; dup {
				continue
			}
			seen[key][reason] = struct{}{}
			sc.Reasons = append(sc.Reasons, reason)
		}
	}

	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].Score > cases[j].Score
	})
	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}
	return cases
}

// Total returns the price of a matched case: the sum of its matching rows, or
// the first row's case total when that sum is zero.
func (c ScoredCase) Total() int64 {
	var total int64
	for _, row := range c.Rows {
		total += row.Price
	}
	if total == 0 && len(c.Rows) > 0 {
		total = c.Rows[0].CaseTotalPrice
	}
	return total
}
