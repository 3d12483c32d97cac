package record

import (
	"fmt"
	"strings"
)

// BuildRawText renders the canonical text block stored with every row of a
// manually entered case. Absent optional fields leave an empty line so the
// layout matches historical entries.
func BuildRawText(in CaseInput) string {
	lines := []string{
		"Date: " + in.Date,
		"Customer: " + in.CustomerName + " 様",
		optionalLine("Brand", in.Brand),
		"Model: " + in.Model,
		optionalLine("Serial", in.SerialNumber),
		"Symptoms: " + in.Symptoms,
		optionalLine("Request", in.RequestDetails),
		optionalLine("Proposal", in.ProposalContent),
		"Work Items:",
	}
	for _, item := range in.WorkItems {
		lines = append(lines, fmt.Sprintf("- %s: %d", item.Name, item.Price))
	}
	lines = append(lines, fmt.Sprintf("Total: %d", SumPrices(in.WorkItems)))
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func optionalLine(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// BuildRows expands a case into one row per work item, all sharing id and raw text.
func BuildRows(id string, in CaseInput) []WorkItemRecord {
	rawText := BuildRawText(in)
	rows := make([]WorkItemRecord, 0, len(in.WorkItems))
	for _, item := range in.WorkItems {
		rows = append(rows, WorkItemRecord{
			ID:              id,
			Category:        DefaultCategory,
			Categories:      []string{DefaultCategory},
			Symptoms:        in.Symptoms,
			DetailedWork:    item.Name,
			Price:           item.Price,
			Model:           in.Model,
			RawText:         rawText,
			Date:            in.Date,
			CustomerName:    in.CustomerName,
			Brand:           in.Brand,
			SerialNumber:    in.SerialNumber,
			RequestDetails:  in.RequestDetails,
			ProposalContent: in.ProposalContent,
		})
	}
	return rows
}
