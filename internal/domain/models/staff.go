package models

// Driver is depot crew bound by the daily duty-hour limit.
type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	DepotID       int64  `json:"depotId"`
	Active        bool   `json:"active"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Conductor is depot crew bound by the no-overlap rule.
type Conductor struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	EmployeeID string `json:"employeeId"`
	DepotID    int64  `json:"depotId"`
	Active     bool   `json:"active"`
	CreatedAt  string `json:"createdAt,omitempty"`
}
