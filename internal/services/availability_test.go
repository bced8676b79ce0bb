package services

import (
	"testing"
	"time"

	"backend/internal/domain/models"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(start, end)
	if err != nil {
		t.Fatalf("window %s-%s: %v", start, end, err)
	}
	return w
}

func committedTrip(id int64, start, end string) models.Trip {
	return models.Trip{ID: id, StartTime: start, EndTime: end, Status: models.TripScheduled}
}

func TestParseWindowRejectsOvernight(t *testing.T) {
	if _, err := ParseWindow("22:00", "06:00"); err == nil {
		t.Fatal("overnight window accepted")
	}
	if _, err := ParseWindow("10:00", "10:00"); err == nil {
		t.Fatal("zero-length window accepted")
	}
}

func TestWindowOverlapsHalfOpen(t *testing.T) {
	a := Window{StartMin: 8 * 60, EndMin: 12 * 60}

	cases := []struct {
		name string
		b    Window
		want bool
	}{
		{"identical", Window{8 * 60, 12 * 60}, true},
		{"contained", Window{9 * 60, 10 * 60}, true},
		{"partial", Window{11 * 60, 14 * 60}, true},
		{"back to back after", Window{12 * 60, 14 * 60}, false},
		{"back to back before", Window{6 * 60, 8 * 60}, false},
		{"disjoint", Window{14 * 60, 16 * 60}, false},
	}
	for _, tc := range cases {
		if got := a.Overlaps(tc.b); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestBusAvailableComplianceAndStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(0, 0, -1)
	w := mustWindow(t, "08:00", "12:00")

	healthy := models.Bus{ID: 1, Status: models.BusIdle, InsuranceExpiry: &future, FitnessExpiry: &future}
	if ok, reason := BusAvailable(healthy, nil, w, now); !ok {
		t.Fatalf("healthy bus rejected: %s", reason)
	}

	expired := healthy
	expired.InsuranceExpiry = &past
	if ok, _ := BusAvailable(expired, nil, w, now); ok {
		t.Fatal("bus with expired insurance accepted")
	}

	unfit := healthy
	unfit.FitnessExpiry = &past
	if ok, _ := BusAvailable(unfit, nil, w, now); ok {
		t.Fatal("bus with expired fitness accepted")
	}

	due := healthy
	due.MaintenanceDue = true
	if ok, _ := BusAvailable(due, nil, w, now); ok {
		t.Fatal("bus with maintenance due accepted")
	}

	retired := healthy
	retired.Status = models.BusRetired
	if ok, _ := BusAvailable(retired, nil, w, now); ok {
		t.Fatal("retired bus accepted")
	}
}

func TestBusAvailableOverlapAndCompletedTrips(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	w := mustWindow(t, "08:00", "12:00")
	bus := models.Bus{ID: 1, Status: models.BusAssigned}

	overlapping := []models.Trip{committedTrip(7, "10:00", "14:00")}
	if ok, _ := BusAvailable(bus, overlapping, w, now); ok {
		t.Fatal("overlapping committed trip not detected")
	}

	// completed trips release the window
	done := committedTrip(7, "10:00", "14:00")
	done.Status = models.TripCompleted
	if ok, reason := BusAvailable(bus, []models.Trip{done}, w, now); !ok {
		t.Fatalf("completed trip should not block: %s", reason)
	}

	adjacent := []models.Trip{committedTrip(8, "12:00", "16:00")}
	if ok, reason := BusAvailable(bus, adjacent, w, now); !ok {
		t.Fatalf("back-to-back trip should not block: %s", reason)
	}
}

func TestDriverAvailableDutyHourLimit(t *testing.T) {
	driver := models.Driver{ID: 1, Active: true}

	// 4h committed, asking 4h more: exactly 8h, allowed
	committed := []models.Trip{committedTrip(1, "06:00", "10:00")}
	w := mustWindow(t, "12:00", "16:00")
	if ok, reason := DriverAvailable(driver, committed, w); !ok {
		t.Fatalf("exactly 8h rejected: %s", reason)
	}

	// one minute over the limit
	over := mustWindow(t, "12:00", "16:01")
	if ok, _ := DriverAvailable(driver, committed, over); ok {
		t.Fatal("8h01m accepted")
	}

	inactive := driver
	inactive.Active = false
	if ok, _ := DriverAvailable(inactive, nil, w); ok {
		t.Fatal("inactive driver accepted")
	}
}

func TestConductorAvailableOverlap(t *testing.T) {
	conductor := models.Conductor{ID: 1, Active: true}
	w := mustWindow(t, "08:00", "12:00")

	if ok, _ := ConductorAvailable(conductor, []models.Trip{committedTrip(3, "11:00", "13:00")}, w); ok {
		t.Fatal("overlapping trip not detected")
	}
	if ok, reason := ConductorAvailable(conductor, []models.Trip{committedTrip(3, "12:00", "13:00")}, w); !ok {
		t.Fatalf("adjacent trip should not block: %s", reason)
	}

	// unlike drivers, conductors have no duty-hour cap
	long := []models.Trip{
		committedTrip(1, "00:00", "06:00"),
		committedTrip(2, "06:00", "08:00"),
	}
	if ok, reason := ConductorAvailable(conductor, long, w); !ok {
		t.Fatalf("non-overlapping long day rejected: %s", reason)
	}
}
