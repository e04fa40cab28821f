package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBubblePosition(t *testing.T) {
	tests := []struct {
		name         string
		screenW      int
		screenH      int
		scale        float64
		wantX, wantY int
	}{
		{
			name:    "1080p at 1x",
			screenW: 1920, screenH: 1080, scale: 1.0,
			// 1920-220-20, 1080-220-50
			wantX: 1680, wantY: 810,
		},
		{
			name:    "1080p at 1.5x",
			screenW: 1920, screenH: 1080, scale: 1.5,
			// 1920-330-30, 1080-330-75
			wantX: 1560, wantY: 675,
		},
		{
			name:    "4k at 2x",
			screenW: 3840, screenH: 2160, scale: 2.0,
			wantX: 3360, wantY: 1620,
		},
		{
			name:    "tiny screen clamps to origin",
			screenW: 200, screenH: 200, scale: 1.0,
			wantX: 0, wantY: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := BubblePosition(tt.screenW, tt.screenH, tt.scale)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}
