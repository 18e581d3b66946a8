package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{"on", uiModeOn, false},
		{" On ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"tui", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShouldUseTUIExplicitModes(t *testing.T) {
	if !shouldUseTUI(uiModeOn) {
		t.Error("uiModeOn should force the TUI")
	}
	if shouldUseTUI(uiModeOff) {
		t.Error("uiModeOff should disable the TUI")
	}
}
