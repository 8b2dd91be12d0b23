package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name         string
		width        int
		height       int
		contentWidth int
		emailHeight  int
	}{
		{name: "narrow", width: 80, height: 24, contentWidth: 76, emailHeight: 3},
		{name: "wide", width: 200, height: 40, contentWidth: 196, emailHeight: 10},
		{name: "tall", width: 120, height: 80, contentWidth: 116, emailHeight: 16},
		{name: "tiny", width: 20, height: 10, contentWidth: 40, emailHeight: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.contentWidth != tc.contentWidth {
				t.Fatalf("content width mismatch: got %d want %d", layout.contentWidth, tc.contentWidth)
			}
			if layout.emailHeight != tc.emailHeight {
				t.Fatalf("email height mismatch: got %d want %d", layout.emailHeight, tc.emailHeight)
			}
		})
	}
}
