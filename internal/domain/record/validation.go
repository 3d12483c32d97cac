package record

import (
	"fmt"
	"strings"
)

// CaseInput carries the structured fields of a case as entered by staff.
type CaseInput struct {
	Date            string     `json:"date"`
	CustomerName    string     `json:"customer_name"`
	Model           string     `json:"model"`
	Symptoms        string     `json:"symptoms"`
	Brand           string     `json:"brand,omitempty"`
	SerialNumber    string     `json:"serial_number,omitempty"`
	RequestDetails  string     `json:"request_details,omitempty"`
	ProposalContent string     `json:"proposal_content,omitempty"`
	WorkItems       []WorkItem `json:"work_items"`
}

// ValidateCaseInput validates fields required to save or update a case.
func ValidateCaseInput(in CaseInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"date", in.Date},
		{"customer_name", in.CustomerName},
		{"model", in.Model},
		{"symptoms", in.Symptoms},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field.name)
		}
	}
	if len(in.WorkItems) == 0 {
		return fmt.Errorf("%w: at least one work item is required", ErrInvalidInput)
	}
	for i, item := range in.WorkItems {
		if item.Price < 0 {
			return fmt.Errorf("%w: work item %d has a negative price", ErrInvalidInput, i+1)
		}
	}
	return nil
}
