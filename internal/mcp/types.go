package mcp

type ListCasesParams struct {
	Query string `json:"query,omitempty" jsonschema:"substring matched against customer, model, symptoms, serial number and date"`
	Sort  string `json:"sort,omitempty" jsonschema:"date order: desc (default) or asc"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based page number"`
	Limit int    `json:"limit,omitempty" jsonschema:"page size, default 50"`
}

type GetCaseParams struct {
	ID string `json:"id" jsonschema:"case id"`
}

type SearchSimilarCasesParams struct {
	Query string `json:"query" jsonschema:"free text describing the symptom or requested work"`
}

type ListWorkCatalogParams struct{}

type PricingStatsParams struct {
	Query    string `json:"query,omitempty" jsonschema:"substring of the work item name"`
	Category string `json:"category,omitempty" jsonschema:"restrict to cases with this category"`
}

type MarketRatesParams struct {
	Query string `json:"query,omitempty" jsonschema:"keywords; empty returns the full menu"`
}

type RecentActivityParams struct {
	CaseID string `json:"case_id,omitempty" jsonschema:"only entries for this case"`
	Type   string `json:"type,omitempty" jsonschema:"case_created, case_updated or case_deleted"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum entries, default 20"`
}
