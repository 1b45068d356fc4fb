package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{MinWidth, MinHeight, false},
		{MinWidth - 1, 30, true},
		{100, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(24); got != 18 {
		t.Errorf("ContentHeight(24) = %d, want 18", got)
	}
	if got := ContentHeight(2); got != 0 {
		t.Errorf("ContentHeight(2) = %d, want 0", got)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Today", HeaderInfo{Language: "French", Streak: 1}, 80)
	for _, want := range []string{"LingoCalm", "Today", "French", "1 day"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	h = RenderHeader("Welcome", HeaderInfo{}, 80)
	if strings.Contains(h, "day") {
		t.Error("header without a language should not show a streak")
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Practiced"}}, 80)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Practiced") {
		t.Errorf("footer missing hint: %q", f)
	}
}
