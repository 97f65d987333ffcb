package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Kolkata",
			timezone: "Asia/Kolkata",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestYesterday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid month", time.Date(2026, time.February, 10, 15, 0, 0, 0, time.UTC), "2026-02-09"},
		{"first of month", time.Date(2026, time.March, 1, 0, 30, 0, 0, time.UTC), "2026-02-28"},
		{"new year", time.Date(2027, time.January, 1, 23, 59, 0, 0, time.UTC), "2026-12-31"},
		{"leap day", time.Date(2028, time.March, 1, 8, 0, 0, 0, time.UTC), "2028-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Yesterday(tt.now); got != tt.want {
				t.Errorf("Yesterday() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYesterdayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 2026-03-08 is a 23 hour day in New York
	now := time.Date(2026, time.March, 9, 0, 30, 0, 0, loc)
	if got := Yesterday(now); got != "2026-03-08" {
		t.Errorf("Yesterday() = %q, want 2026-03-08", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"iso date", "2026-02-14", "2026-02-14", false},
		{"iso with spaces", "  2026-02-07 ", "2026-02-07", false},
		{"legacy toDateString", "Sat Feb 07 2026", "2026-02-07", false},
		{"empty", "", "", true},
		{"garbage", "tomorrow", "", true},
		{"invalid day", "2026-02-30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate() = %s, want %s", FormatDate(got), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseDate() = %v, want midnight", got)
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	got, err := ParseDate("2026-02-11", loc)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Location() != loc {
		t.Errorf("ParseDate() location = %v, want %v", got.Location(), loc)
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("Fri Feb 13 2026")
	if err != nil || got != "2026-02-13" {
		t.Errorf("NormalizeDate() = %q, %v; want 2026-02-13", got, err)
	}
	got, err = NormalizeDate("")
	if err != nil || got != "" {
		t.Errorf("NormalizeDate(\"\") = %q, %v; want empty", got, err)
	}
	if _, err := NormalizeDate("someday"); err == nil {
		t.Error("NormalizeDate() error = nil for invalid input")
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Europe/Paris", true},
		{"Not/AZone", false},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
