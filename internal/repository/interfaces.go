package repository

import (
	"github.com/rpggio/repairdesk/internal/domain/activity"
	"github.com/rpggio/repairdesk/internal/domain/record"
)

// RecordStore persists the flat work item rows. Implemented by the JSON file
// store and the SQLite store.
type RecordStore interface {
	record.Store
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	activity.Repository
}
