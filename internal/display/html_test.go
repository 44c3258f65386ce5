package display

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bold and link", `A <b>quick</b> salad from <a href="https://x">here</a>.`, "A quick salad from here."},
		{"line break", "first<br>second", "first\nsecond"},
		{"paragraphs", "<p>one</p><p>two   words</p>", "one\ntwo words"},
		{"entity", "salt &amp; pepper", "salt & pepper"},
		{"plain", "no markup at all", "no markup at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
