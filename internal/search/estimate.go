package search

import "github.com/rpggio/repairdesk/internal/domain/record"

// Placeholders for missing fields in similar-case output.
const (
	unknownID       = "unknown"
	unknownModel    = "Unknown Model"
	missingSymptoms = "詳細なし"
)

// PriceRange summarizes the totals of the similar cases.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
	Avg int64 `json:"avg"`
}

// SimilarCase is one ranked historical case in an estimate.
type SimilarCase struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Model        string            `json:"model"`
	Symptoms     string            `json:"symptoms"`
	TotalPrice   int64             `json:"totalPrice"`
	Categories   []string          `json:"categories"`
	WorkItems    []record.WorkItem `json:"workItems"`
	MatchScore   int               `json:"matchScore"`
	MatchReasons []string          `json:"matchReasons"`
}

// Result is the outcome of a history search. Estimate is nil when nothing
// matched.
type Result struct {
	Estimate     *PriceRange   `json:"estimate"`
	SimilarCases []SimilarCase `json:"similarCases"`
}

// EmptyResult is returned for queries without tokens or without matches.
func EmptyResult() Result {
	return Result{SimilarCases: []SimilarCase{}}
}

// Aggregate computes the range over strictly positive totals. The average is
// truncated toward zero. No positive totals yields a zero range.
func Aggregate(totals []int64) PriceRange {
	var (
		r     PriceRange
		sum   int64
		count int64
	)
	for _, t := range totals {
		if t <= 0 {
			continue
		}
		if count == 0 || t < r.Min {
			r.Min = t
		}
		if t > r.Max {
			r.Max = t
		}
		sum += t
		count++
	}
	if count > 0 {
		r.Avg = sum / count
	}
	return r
}

// Estimate ranks rows against the query tokens and builds the result.
func Estimate(rows []record.WorkItemRecord, tokens []string) Result {
	if len(tokens) == 0 {
		return EmptyResult()
	}
	ranked := Rank(rows, tokens, MaxSimilarCases)
	if len(ranked) == 0 {
		return EmptyResult()
	}

	totals := make([]int64, len(ranked))
	similar := make([]SimilarCase, len(ranked))
	for i, sc := range ranked {
		totals[i] = sc.Total()
		similar[i] = toSimilarCase(sc, totals[i])
	}
	estimate := Aggregate(totals)
	return Result{Estimate: &estimate, SimilarCases: similar}
}

func toSimilarCase(sc ScoredCase, total int64) SimilarCase {
	first := sc.Rows[0]
	items := make([]record.WorkItem, len(sc.Rows))
	for i, row := range sc.Rows {
		items[i] = record.WorkItem{Name: row.DetailedWork, Price: row.Price}
	}
	categories := first.Categories
	if categories == nil {
		categories = []string{}
	}
	return SimilarCase{
		ID:           orDefault(first.ID, unknownID),
		Date:         orDefault(first.Date, record.UnknownValue),
		Model:        orDefault(first.Model, unknownModel),
		Symptoms:     orDefault(first.Symptoms, missingSymptoms),
		TotalPrice:   total,
		Categories:   categories,
		WorkItems:    items,
		MatchScore:   sc.Score,
		MatchReasons: sc.Reasons,
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
