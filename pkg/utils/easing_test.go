package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EaseOutCubic(tt.input); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.0625}, // 4 * 0.25^3
		{"中点", 0.5, 0.5},
		{"四分之三", 0.75, 0.9375},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EaseInOutCubic(tt.input); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp(2, 6, 0.25) = %v, 期望 3", got)
	}
	if got := Lerp(-1, 1, 1); got != 1 {
		t.Errorf("Lerp(-1, 1, 1) = %v, 期望 1", got)
	}
}
