package model

import "time"

// Query is a validated availability lookup.
type Query struct {
	ServiceTerm     string
	ServiceID       *int64
	StaffID         *int64
	DesiredStart    *time.Time
	VisibleOnly     bool
	SearchDays      int
	SuggestionCount int
	IncludePrice    bool
}

// ServiceFilter narrows the catalog listing. Empty fields do not filter.
type ServiceFilter struct {
	Name        string
	Category    string
	VisibleOnly *bool
}
