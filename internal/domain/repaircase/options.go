package repaircase

import "fmt"

// DeleteMode selects which rows Delete removes.
type DeleteMode string

const (
	// DeleteByID removes the rows carrying the id.
	DeleteByID DeleteMode = "id"
	// DeleteByRawText also removes every row sharing raw text with those rows,
	// which covers legacy rows of the same case that lack the id.
	DeleteByRawText DeleteMode = "raw_text"
)

// ParseDeleteMode maps a wire value to a DeleteMode. Empty selects
// DeleteByRawText.
func ParseDeleteMode(s string) (DeleteMode, error) {
	switch DeleteMode(s) {
	case "":
		return DeleteByRawText, nil
	case DeleteByID, DeleteByRawText:
		return DeleteMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDeleteMode, s)
}

// MutationResult reports the case a write touched and how many rows it wrote
// or removed.
type MutationResult struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}
