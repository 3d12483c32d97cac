package activity

// DefaultLimit caps GetRecentActivity when no limit is given.
const DefaultLimit = 20

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	CaseID       string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
