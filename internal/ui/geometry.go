package ui

// Bubble placement constants, in logical pixels before scaling.
const (
	BubbleSize     = 220
	BubbleMargin   = 20
	TaskbarReserve = 50
)

// BubblePosition returns the physical top-left corner that places the
// bubble in the bottom-right corner of a screen. The margin applies on
// the right edge only; on the bottom the taskbar reserve is the gap.
// screenW and screenH are the screen's physical dimensions and scale is
// the display scale factor.
func BubblePosition(screenW, screenH int, scale float64) (x, y int) {
	size := int(float64(BubbleSize) * scale)
	margin := int(float64(BubbleMargin) * scale)
	taskbar := int(float64(TaskbarReserve) * scale)

	x = screenW - size - margin
	y = screenH - size - taskbar
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
