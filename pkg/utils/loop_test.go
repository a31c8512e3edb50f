package utils

import (
	"math"
	"testing"
)

func TestWrapUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.3, 0.3},
		{-0.1, 0.9},
		{-2.25, 0.75},
	}
	for _, tt := range tests {
		if got := WrapUnit(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapDistance(t *testing.T) {
	tests := []struct {
		name            string
		target, current float64
		want            float64
	}{
		{"forward across zero", 0.05, 0.97, 0.08},
		{"backward across zero", 0.97, 0.05, -0.08},
		{"plain forward", 0.5, 0.4, 0.1},
		{"plain backward", 0.4, 0.5, -0.1},
		{"already there", 0.3, 0.3, 0},
		{"start approaches A", 0, 0.85, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDistance(tt.target, tt.current)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WrapDistance(%v, %v) = %v, want %v", tt.target, tt.current, got, tt.want)
			}
			if got < -0.5 || got > 0.5 {
				t.Errorf("WrapDistance out of range: %v", got)
			}
		})
	}
}

func TestSign(t *testing.T) {
	if Sign(2) != 1 || Sign(-0.1) != -1 || Sign(0) != 0 {
		t.Error("Sign returned unexpected values")
	}
}
