package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/cardpile/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: round trip %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i := range v {
		if i%2 == 0 {
			v[i] = -1
		} else {
			v[i] = 100
		}
	}

	clamped := pv.Clamp(v)
	for i, spec := range pv.Specs {
		want := spec.Min
		if i%2 == 1 {
			want = spec.Max
		}
		if clamped[i] != want {
			t.Errorf("%s: clamped to %v, want %v", spec.Name, clamped[i], want)
		}
	}
}

func TestApplyAndExtract(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()

	if got := pv.ExtractFromConfig(cfg); got[0] != cfg.Cards.BaseRate {
		t.Errorf("extracted base_rate %v, want %v", got[0], cfg.Cards.BaseRate)
	}

	want := []float64{0.3, 0.25, 0.4, 0.5}
	pv.ApplyToConfig(cfg, want)
	got := pv.ExtractFromConfig(cfg)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Path, got[i], want[i])
		}
	}
	if cfg.Cards.ReleaseRate != 0.4 {
		t.Errorf("ReleaseRate = %v, want 0.4", cfg.Cards.ReleaseRate)
	}
}

func TestRunTrialArrives(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := runTrial(cfg, Trial{DX: 50, DY: 50})
	if r.released == 0 {
		t.Fatal("no cards released")
	}
	if r.stats.Arrivals != r.released {
		t.Errorf("arrivals = %d, released = %d", r.stats.Arrivals, r.released)
	}
	if r.stats.ArrivalMean <= 0 {
		t.Errorf("ArrivalMean = %v, want > 0", r.stats.ArrivalMean)
	}
}

func TestEvaluatePenalizesSlowRelease(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, DefaultTrials, 20, cfg)

	good := fe.Evaluate(pv.ExtractFromConfig(cfg))
	slow := fe.Evaluate([]float64{0.02, 0.02, 0.02, 0.02})
	if slow <= good {
		t.Errorf("slow rates scored %v, defaults %v; want slow worse", slow, good)
	}

	// Base config is untouched
	if cfg.Cards.ReleaseRate != 0.15 {
		t.Errorf("base ReleaseRate mutated to %v", cfg.Cards.ReleaseRate)
	}
}
