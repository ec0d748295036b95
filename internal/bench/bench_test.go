package bench

import (
	"context"
	"testing"
	"time"

	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/internal/logging"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		swap      bool
		wantMoves float64
	}{
		{"in order", false, 0},
		{"swapped", true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Run(context.Background(), Config{
				Profile:   Profile{Name: "test", Components: 10, Rounds: 3},
				Swap:      tt.swap,
				DrainWarn: 4,
				Debug:     true,
				Logger:    logging.Nop(),
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !report.Consistent {
				t.Error("rows should show their label and final count")
			}
			// b, label, span and count are all reused from the server.
			if report.Reused != 40 || report.Created != 0 {
				t.Errorf("claims reused=%v created=%v, want 40 and 0", report.Reused, report.Created)
			}
			if report.Moves != tt.wantMoves {
				t.Errorf("Moves = %v, want %v", report.Moves, tt.wantMoves)
			}
			if report.Flushes != 3 {
				t.Errorf("Flushes = %v, want one per round", report.Flushes)
			}
			if report.Patches != 30 {
				t.Errorf("Patches = %v, want 30", report.Patches)
			}
			if report.Live != 0 {
				t.Errorf("Live = %v, want 0 after teardown", report.Live)
			}
			if report.RoundMax < report.RoundP50 {
				t.Errorf("RoundMax %v < RoundP50 %v", report.RoundMax, report.RoundP50)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{
		Profile: Profile{Components: 2, Rounds: 5},
		Logger:  logging.Nop(),
	})
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunRejectsEmpty(t *testing.T) {
	_, err := Run(context.Background(), Config{Profile: Profile{Components: 0, Rounds: 1}})
	if !errors.HasCode(err, "H300") {
		t.Errorf("Run() error = %v, want H300", err)
	}
}

func TestLookupProfile(t *testing.T) {
	p, err := LookupProfile(" Fast ")
	if err != nil || p.Components != 50 {
		t.Errorf("LookupProfile(fast) = %+v, %v", p, err)
	}
	p, err = LookupProfile("")
	if err != nil || p.Name != "standard" {
		t.Errorf("LookupProfile(\"\") = %+v, %v", p, err)
	}
	if _, err := LookupProfile("huge"); !errors.HasCode(err, "H300") {
		t.Errorf("LookupProfile(huge) error = %v, want H300", err)
	}
}

func TestPercentile(t *testing.T) {
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("percentile(nil) = %v", got)
	}
	s := []time.Duration{1, 2, 3, 4}
	if got := percentile(s, 0.5); got != 2 {
		t.Errorf("p50 = %v, want 2", got)
	}
	if got := percentile(s, 1); got != 4 {
		t.Errorf("max = %v, want 4", got)
	}
}
