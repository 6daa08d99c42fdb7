package git

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewTimestamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}

	tests := []struct {
		name       string
		when       time.Time
		wantOffset int
		wantFixed  bool
	}{
		{name: "UTC", when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), wantOffset: 0, wantFixed: true},
		{name: "Plus two", when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("", 2*3600)), wantOffset: 7200, wantFixed: true},
		{name: "Minus five thirty", when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("", -(5*3600 + 30*60))), wantOffset: -19800, wantFixed: true},
		{name: "Daylight saving zone", when: time.Date(2024, 7, 1, 12, 0, 0, 0, berlin), wantOffset: 7200, wantFixed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTimestamp(tt.when)
			if ts.Unix != tt.when.Unix() {
				t.Errorf("Unix = %d, expected %d", ts.Unix, tt.when.Unix())
			}
			if ts.OffsetSeconds != tt.wantOffset {
				t.Errorf("OffsetSeconds = %d, expected %d", ts.OffsetSeconds, tt.wantOffset)
			}
			if ts.Fixed != tt.wantFixed {
				t.Errorf("Fixed = %v, expected %v", ts.Fixed, tt.wantFixed)
			}
		})
	}
}

func TestReferenceNotFoundError(t *testing.T) {
	var err error = &ReferenceNotFoundError{Name: "refs/heads/master"}

	var nf *ReferenceNotFoundError
	if !errors.As(fmt.Errorf("walk: %w", err), &nf) || nf.Name != "refs/heads/master" {
		t.Errorf("errors.As through wrapping failed: %v", nf)
	}
	if got, want := err.Error(), `reference at "refs/heads/master" does not exist`; got != want {
		t.Errorf("Error() = %q, expected %q", got, want)
	}
}
