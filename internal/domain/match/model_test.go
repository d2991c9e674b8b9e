package match

import (
	"testing"
	"time"
)

func TestMatch_AcceptsPredictionsAt(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 6, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status string
		now    time.Time
		want   bool
	}{
		{"scheduled well before kickoff", StatusScheduled, kickoff.Add(-2 * time.Hour), true},
		{"scheduled just outside cutoff", StatusScheduled, kickoff.Add(-31 * time.Minute), true},
		{"scheduled exactly at cutoff", StatusScheduled, kickoff.Add(-30 * time.Minute), false},
		{"scheduled inside cutoff", StatusScheduled, kickoff.Add(-10 * time.Minute), false},
		{"live", StatusLive, kickoff.Add(-2 * time.Hour), false},
		{"finished", StatusFinished, kickoff.Add(-2 * time.Hour), false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := Match{Status: tc.status, KickoffAt: kickoff}
			if got := m.AcceptsPredictionsAt(tc.now); got != tc.want {
				t.Fatalf("AcceptsPredictionsAt = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	if got := NormalizeStatus(" live "); got != StatusLive {
		t.Fatalf("got %s, want %s", got, StatusLive)
	}
	if got := NormalizeStatus("finished"); got != StatusFinished {
		t.Fatalf("got %s, want %s", got, StatusFinished)
	}
	if got := NormalizeStatus("bogus"); got != StatusScheduled {
		t.Fatalf("got %s, want %s", got, StatusScheduled)
	}
}
