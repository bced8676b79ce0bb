package models

import (
	"testing"
	"time"
)

func TestBusCompliance(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(0, 0, -1)

	fit := Bus{InsuranceExpiry: &future, FitnessExpiry: &future}
	if !fit.IsCompliant(now) {
		t.Fatalf("compliant bus flagged: %v", fit.ComplianceIssues(now))
	}

	// nil expiry dates mean nothing on record, treated as compliant
	bare := Bus{}
	if !bare.IsCompliant(now) {
		t.Fatalf("bus without certificates flagged: %v", bare.ComplianceIssues(now))
	}

	lapsed := Bus{InsuranceExpiry: &past, FitnessExpiry: &past, MaintenanceDue: true}
	issues := lapsed.ComplianceIssues(now)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}

	// expiry on the boundary instant counts as expired
	edge := Bus{InsuranceExpiry: &now}
	if edge.IsCompliant(now) {
		t.Fatal("expiry at the check instant should count as expired")
	}
}
