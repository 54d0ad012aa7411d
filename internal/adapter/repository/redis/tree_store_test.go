package redis

import "testing"

func TestSplitPath(t *testing.T) {
	cases := []struct {
		in           string
		parent, leaf string
		wantErr      bool
	}{
		{"logs/entries/-NxA1", "logs/entries", "-NxA1", false},
		{"/logs/entries/-NxA1/", "logs/entries", "-NxA1", false},
		{"logs/index/spd/Mega/S/Linux/2024-09-25", "logs/index/spd/Mega/S/Linux", "2024-09-25", false},
		{"logs", "", "", true},
		{"", "", "", true},
	}
	for _, tc := range cases {
		parent, leaf, err := splitPath(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("splitPath(%q): expected error, got %q/%q", tc.in, parent, leaf)
			}
			continue
		}
		if err != nil {
			t.Errorf("splitPath(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if parent != tc.parent || leaf != tc.leaf {
			t.Errorf("splitPath(%q) = %q, %q; want %q, %q", tc.in, parent, leaf, tc.parent, tc.leaf)
		}
	}
}
