package quiz

import "testing"

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"03_cardiology.json", "cardiology"},
		{"anatomy_basics.json", "anatomy basics"},
		{"7-pharm.json", "pharm"},
		{"12 - renal_physiology.json", "renal physiology"},
		{"2024.json", ""},
		{"microbiology", "microbiology"},
		{"notes.json.bak", "notes.json.bak"},
		{"v2_endocrine.json", "v2 endocrine"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatTitle(tt.in); got != tt.want {
			t.Errorf("FormatTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestManifestEntry_DisplayTitle(t *testing.T) {
	e := ManifestEntry{Filename: "05_neuro_exam.json"}
	if got := e.DisplayTitle(); got != "neuro exam" {
		t.Errorf("derived title = %q", got)
	}
	e.Title = "Neurology: Exam"
	if got := e.DisplayTitle(); got != "Neurology: Exam" {
		t.Errorf("manifest title = %q", got)
	}
}

func TestOptionLabel(t *testing.T) {
	for i, want := range map[int]string{0: "A", 1: "B", 25: "Z", 26: "27"} {
		if got := OptionLabel(i); got != want {
			t.Errorf("OptionLabel(%d) = %q, want %q", i, got, want)
		}
	}
}
