package record

// UnknownValue is shown for customer names and dates that could not be determined.
const UnknownValue = "不明"

// DefaultCategory tags rows created through the save and update operations.
const DefaultCategory = "新規登録"

// WorkItemRecord is one stored row: a single work item within a repair case.
// Rows of one case share ID (new data) or RawText (legacy data).
type WorkItemRecord struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Categories      []string `json:"categories"`
	Symptoms        string   `json:"symptoms"`
	DetailedWork    string   `json:"detailed_work"`
	Price           int64    `json:"price"`
	CaseTotalPrice  int64    `json:"case_total_price,omitempty"`
	Model           string   `json:"model"`
	Brand           string   `json:"brand,omitempty"`
	SerialNumber    string   `json:"serial_number,omitempty"`
	RawText         string   `json:"raw_text"`
	Date            string   `json:"date,omitempty"`
	CustomerName    string   `json:"customer_name,omitempty"`
	RequestDetails  string   `json:"request_details,omitempty"`
	ProposalContent string   `json:"proposal_content,omitempty"`
}

// WorkItem is a named, priced piece of work inside a case.
type WorkItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Case is the grouped view of all rows belonging to one repair job.
type Case struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	CustomerName    string     `json:"customerName"`
	Model           string     `json:"model"`
	Symptoms        string     `json:"symptoms"`
	TotalPrice      int64      `json:"totalPrice"`
	WorkItems       []WorkItem `json:"workItems"`
	RawText         string     `json:"rawText"`
	IsNewEntry      bool       `json:"isNewEntry"`
	SerialNumber    string     `json:"serialNumber"`
	Categories      []string   `json:"categories"`
	Brand           string     `json:"brand,omitempty"`
	RequestDetails  string     `json:"requestDetails,omitempty"`
	ProposalContent string     `json:"proposalContent,omitempty"`
}

// SumPrices returns the sum of the work item prices.
func SumPrices(items []WorkItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}
