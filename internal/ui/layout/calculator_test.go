package layout

import "testing"

func TestMainSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, bar    int
		wantW, wantH int
	}{
		{"regular", 100, 30, 3, 100, 25},
		{"too short", 100, 4, 3, 100, 0},
		{"zero", 0, 0, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := MainSize(tt.w, tt.h, tt.bar)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("MainSize(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.bar, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestOverlaySize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{40, MinOverlayWidth},
		{70, 35},
		{200, MaxOverlayWidth},
	}
	for _, tt := range tests {
		w, h := OverlaySize(tt.width)
		if w != tt.want {
			t.Errorf("OverlaySize(%d) width = %d, want %d", tt.width, w, tt.want)
		}
		if h != OverlayHeight {
			t.Errorf("OverlaySize(%d) height = %d, want %d", tt.width, h, OverlayHeight)
		}
	}
}

func TestOverlayFits(t *testing.T) {
	if OverlayFits(MinOverlayWidth - 1) {
		t.Error("narrow window must not fit the overlay")
	}
	if !OverlayFits(MinOverlayWidth) {
		t.Error("minimum width must fit the overlay")
	}
}
