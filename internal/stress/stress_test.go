package stress

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/giantswarm/stdthread"
)

// roundsFromEnv returns STDTHREAD_STRESS_ROUNDS if set, else def. Panics if
// the variable is set but not a positive integer.
func roundsFromEnv(def int) int {
	v := os.Getenv("STDTHREAD_STRESS_ROUNDS")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		panic("invalid STDTHREAD_STRESS_ROUNDS=" + strconv.Quote(v) + ": must be a positive integer")
	}
	return n
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		params       Params
		wantContains []string
	}{
		"valid": {
			params: Params{Platform: stdthread.PlatformPinned, Workers: 1, Iterations: 1, Rounds: 1},
		},
		"all zero": {
			params: Params{},
			wantContains: []string{
				"workers must be greater than 0, got 0",
				"iterations must be greater than 0, got 0",
				"rounds must be greater than 0, got 0",
			},
		},
		"bad platform and parallelism": {
			params: Params{Platform: stdthread.Platform(3), Workers: 1, Iterations: 1, Rounds: 1, Parallelism: -1},
			wantContains: []string{
				"invalid platform: Kind(3)",
				"parallelism must not be negative, got -1",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.params.Validate()
			if len(tc.wantContains) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q should contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	if _, err := Run(context.Background(), Params{}); err == nil {
		t.Fatal("Run with zero params succeeded")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	rounds := roundsFromEnv(3)

	for _, p := range []stdthread.Platform{stdthread.PlatformPinned, stdthread.PlatformScheduled} {
		t.Run(p.String(), func(t *testing.T) {
			t.Parallel()

			res, err := Run(context.Background(), Params{
				Platform:    p,
				Workers:     DefaultWorkers,
				Iterations:  DefaultIterations,
				Rounds:      rounds,
				Parallelism: 2,
			})
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}

			if _, err := uuid.Parse(res.ID); err != nil {
				t.Errorf("result ID %q is not a UUID: %v", res.ID, err)
			}
			if res.Platform != p {
				t.Errorf("Platform = %v, want %v", res.Platform, p)
			}
			if len(res.Rounds) != rounds {
				t.Fatalf("got %d rounds, want %d", len(res.Rounds), rounds)
			}
			for i, r := range res.Rounds {
				if r.Index != i {
					t.Errorf("round %d has Index %d", i, r.Index)
				}
				if r.Expected != DefaultWorkers*DefaultIterations {
					t.Errorf("round %d Expected = %d, want %d", i, r.Expected, DefaultWorkers*DefaultIterations)
				}
				if !r.Passed() {
					t.Errorf("round %d failed: counter=%d blocked=%v", i, r.Counter, r.Blocked)
				}
			}
			if !res.Passed() || res.Failures() != 0 {
				t.Errorf("Passed() = %v, Failures() = %d", res.Passed(), res.Failures())
			}
		})
	}
}

func TestRunCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Params{Platform: stdthread.PlatformScheduled, Workers: 1, Iterations: 1, Rounds: 4})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestResultFailures(t *testing.T) {
	t.Parallel()

	res := Result{Rounds: []Round{
		{Counter: 10, Expected: 10, Blocked: true},
		{Counter: 9, Expected: 10, Blocked: true},
		{Counter: 10, Expected: 10, Blocked: false},
	}}
	if got := res.Failures(); got != 2 {
		t.Errorf("Failures() = %d, want 2", got)
	}
	if res.Passed() {
		t.Error("Passed() = true with failing rounds")
	}
}
