package domain

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

// ResourceKind discriminates schedulable resources.
type ResourceKind string

const (
	ResourceBus       ResourceKind = "bus"
	ResourceDriver    ResourceKind = "driver"
	ResourceConductor ResourceKind = "conductor"
)

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
