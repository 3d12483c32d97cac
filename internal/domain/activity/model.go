package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeCaseCreated ActivityType = "case_created"
	TypeCaseUpdated ActivityType = "case_updated"
	TypeCaseDeleted ActivityType = "case_deleted"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeCaseCreated, TypeCaseUpdated, TypeCaseDeleted:
		return true
	}
	return false
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	CaseID       string       `json:"case_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
