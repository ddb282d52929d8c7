package model_test

import (
	"testing"

	"doctor-booking-client/internal/model"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder rounds up", 25, 10, 3},
		{"single page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"zero limit", 25, 0, 0},
		{"limit one", 7, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.PageCount(tt.total, tt.limit); got != tt.want {
				t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
