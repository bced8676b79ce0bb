package services

import (
	"testing"

	"backend/internal/domain/models"
)

func seaterBus(rows, perRow int) models.Bus {
	return models.Bus{
		ID:     1,
		Layout: models.SeatLayout{Family: models.LayoutSeater, Rows: rows, SeatsPerRow: perRow},
	}
}

func TestLayoutForSeater(t *testing.T) {
	seats := LayoutFor(seaterBus(15, 3))
	if len(seats) != 45 {
		t.Fatalf("seat count: got %d want 45", len(seats))
	}
	if seats[0] != "1A" || seats[1] != "1B" || seats[2] != "1C" {
		t.Fatalf("first row addressing wrong: %v", seats[:3])
	}
	if seats[44] != "15C" {
		t.Fatalf("last seat: got %s want 15C", seats[44])
	}
}

func TestLayoutForSleeper(t *testing.T) {
	bus := models.Bus{
		Layout: models.SeatLayout{Family: models.LayoutSleeper, Rows: 6},
	}
	seats := LayoutFor(bus)

	// 6 rows x (L, U) plus side berths for the first 3 rows
	if len(seats) != 18 {
		t.Fatalf("seat count: got %d want 18", len(seats))
	}
	want := map[string]bool{"1L": true, "1U": true, "1SL": true, "1SU": true, "6L": true, "6U": true}
	got := map[string]bool{}
	for _, s := range seats {
		got[s] = true
	}
	for s := range want {
		if !got[s] {
			t.Fatalf("missing seat %s in %v", s, seats)
		}
	}
	if got["4SL"] || got["6SU"] {
		t.Fatalf("side berth generated beyond first half: %v", seats)
	}
}

func TestLayoutForDegenerate(t *testing.T) {
	if seats := LayoutFor(models.Bus{}); len(seats) != 0 {
		t.Fatalf("zero layout should enumerate nothing, got %v", seats)
	}
	if seats := LayoutFor(seaterBus(10, 30)); len(seats) != 0 {
		t.Fatalf("seatsPerRow beyond letters should enumerate nothing, got %v", seats)
	}
}

func TestAvailableSeatsExcludesHeld(t *testing.T) {
	svc := SeatService{
		LoadTrip: func(id int64) (models.Trip, error) {
			return models.Trip{ID: id, BusID: 9, ServiceDate: "2025-06-20"}, nil
		},
		LoadBus: func(id int64) (models.Bus, error) {
			return seaterBus(15, 3), nil
		},
		TakenSeats: func(tripID int64, serviceDate string) ([]string, error) {
			return []string{"1A", "1B"}, nil
		},
	}

	seats, err := svc.AvailableSeats(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seats) != 43 {
		t.Fatalf("available count: got %d want 43", len(seats))
	}
	for _, s := range seats {
		if s == "1A" || s == "1B" {
			t.Fatalf("held seat %s still listed", s)
		}
	}
	if seats[0] != "1C" {
		t.Fatalf("expected 1C first, got %s", seats[0])
	}
}
