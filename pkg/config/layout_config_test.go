package config

import (
	"testing"
)

// TestLayoutRectsInsideScreen 所有界面区域都应完整落在逻辑屏幕内
func TestLayoutRectsInsideScreen(t *testing.T) {
	tests := []struct {
		name string
		rect func() (x, y, w, h float64)
	}{
		{"header", HeaderRect},
		{"footer", FooterRect},
		{"center panel", CenterPanelRect},
		{"fact bubble", BubbleRect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := tt.rect()
			if w <= 0 || h <= 0 {
				t.Fatalf("size = %vx%v, want positive", w, h)
			}
			if x < 0 || y < 0 || x+w > GameWindowWidth || y+h > GameWindowHeight {
				t.Errorf("rect (%v,%v %vx%v) leaves the %dx%d screen", x, y, w, h, GameWindowWidth, GameWindowHeight)
			}
		})
	}
}

// TestLayoutHorizontallyCentered 中央面板、气泡和底栏水平居中
func TestLayoutHorizontallyCentered(t *testing.T) {
	for name, rect := range map[string]func() (x, y, w, h float64){
		"footer":      FooterRect,
		"panel":       CenterPanelRect,
		"fact bubble": BubbleRect,
	} {
		x, _, w, _ := rect()
		if center := x + w/2; center != GameWindowWidth/2 {
			t.Errorf("%s center x = %v, want %v", name, center, GameWindowWidth/2)
		}
	}
}

// TestBubbleLeavesRoomForButtons 气泡下方要能放下一行按钮且不压住底栏
func TestBubbleLeavesRoomForButtons(t *testing.T) {
	_, by, _, bh := BubbleRect()
	_, fy, _, _ := FooterRect()

	buttonsBottom := by + bh + ButtonGap*2 + ButtonHeight
	if buttonsBottom > fy {
		t.Errorf("button row ends at %v, overlapping footer at %v", buttonsBottom, fy)
	}
}
