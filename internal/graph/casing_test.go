package graph

import (
	"math"
	"testing"
)

func TestDashCase(t *testing.T) {
	cases := map[string]string{
		"GuestTutorial": "guest-tutorial",
		"Lesson":        "lesson",
		"Challenge":     "challenge",
		"lesson":        "lesson",
		"ABC":           "a-b-c",
		"Video2Clip":    "video2clip",
		"":              "",
	}
	for input, want := range cases {
		if got := DashCase(input); got != want {
			t.Fatalf("DashCase(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestCategoryKeyPrefix(t *testing.T) {
	if got := CategoryGuestTutorial.KeyPrefix(); got != "guest-tutorials" {
		t.Fatalf("expected guest-tutorials, got %q", got)
	}
	if got := CategoryChallenge.KeyPrefix(); got != "challenges" {
		t.Fatalf("expected challenges, got %q", got)
	}
}

func TestTimestampSeconds(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"01:02:03", 3723},
		{"02:00", 120},
		{"45", 45},
		{"0:00", 0},
		{"1:00:00:00", 216000}, // fourth segment counts 60^3
		{" 1:05", 65},
		{"1a:30", 90}, // trailing garbage after the digits is ignored
		{"-1:00", -60},
	}
	for _, tc := range cases {
		if got := TimestampSeconds(tc.input); got != tc.want {
			t.Fatalf("TimestampSeconds(%q): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestTimestampSecondsNotANumber(t *testing.T) {
	for _, input := range []string{"aa:10", "1:xx", "", "1::2", "intro"} {
		if got := TimestampSeconds(input); !math.IsNaN(got) {
			t.Fatalf("TimestampSeconds(%q): expected NaN, got %v", input, got)
		}
	}
}

func TestOmitKeysLeavesInputUntouched(t *testing.T) {
	input := map[string]any{"id": 1, "title": "x", "internal": true}
	out := stripReserved(input)
	if _, ok := out["id"]; ok {
		t.Fatal("expected id to be stripped")
	}
	if _, ok := out["internal"]; ok {
		t.Fatal("expected internal to be stripped")
	}
	if len(input) != 3 {
		t.Fatalf("expected input to keep all keys, got %v", input)
	}
}
