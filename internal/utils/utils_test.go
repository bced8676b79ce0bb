package utils

import "testing"

func TestRounding(t *testing.T) {
	if got := RoundRupee(1002.5); got != 1003 {
		t.Fatalf("RoundRupee(1002.5) = %v", got)
	}
	if got := RoundRupee(1002.4); got != 1002 {
		t.Fatalf("RoundRupee(1002.4) = %v", got)
	}
	if got := RoundPaise(1.006); got != 1.01 {
		t.Fatalf("RoundPaise(1.006) = %v", got)
	}
	if got := RoundPaise(179.999); got != 180 {
		t.Fatalf("RoundPaise(179.999) = %v", got)
	}
}

func TestFormatINRGrouping(t *testing.T) {
	cases := map[float64]string{
		0:        "Rs 0",
		999:      "Rs 999",
		1000:     "Rs 1,000",
		100000:   "Rs 1,00,000",
		12345678: "Rs 1,23,45,678",
		-1003:    "-Rs 1,003",
	}
	for amount, want := range cases {
		if got := FormatINR(amount); got != want {
			t.Fatalf("FormatINR(%v) = %q want %q", amount, got, want)
		}
	}
}

func TestNormalizeSeatList(t *testing.T) {
	got := NormalizeSeatList([]string{" 1a ", "1A", "2b", "", "  "})
	if len(got) != 2 || got[0] != "1A" || got[1] != "2B" {
		t.Fatalf("NormalizeSeatList = %v", got)
	}
	if got := NormalizeSeatList(nil); len(got) != 0 {
		t.Fatalf("nil input: %v", got)
	}
}

func TestParseClock(t *testing.T) {
	if m, err := ParseClock("08:30"); err != nil || m != 510 {
		t.Fatalf("ParseClock(08:30) = %d, %v", m, err)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatal("ParseClock(25:00) accepted")
	}
	if _, err := ParseClock("8.30"); err == nil {
		t.Fatal("ParseClock(8.30) accepted")
	}
}

func TestTimeOfDayBucket(t *testing.T) {
	cases := map[string]string{
		"05:00": "morning",
		"11:59": "morning",
		"12:00": "afternoon",
		"16:59": "afternoon",
		"17:00": "evening",
		"20:59": "evening",
		"21:00": "night",
		"04:59": "night",
	}
	for clock, want := range cases {
		if got := TimeOfDayBucket(clock); got != want {
			t.Fatalf("TimeOfDayBucket(%s) = %s want %s", clock, got, want)
		}
	}
}

func TestCombineDateClock(t *testing.T) {
	at, err := CombineDateClock("2025-06-20", "18:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.Hour() != 18 || at.Day() != 20 {
		t.Fatalf("combined instant wrong: %v", at)
	}
	if _, err := CombineDateClock("20/06/2025", "18:00"); err == nil {
		t.Fatal("malformed date accepted")
	}
}
