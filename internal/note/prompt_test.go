package note

import (
	"strings"
	"testing"
)

func TestBuildPrompt_ContainsAllSixFieldNames(t *testing.T) {
	prompt := BuildPrompt("some context")

	for _, field := range noteFields {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("prompt missing field name %q", field)
		}
	}
}

func TestBuildPrompt_InterpolatesContextOnce(t *testing.T) {
	const marker = "UNIQUE-CONTEXT-MARKER"
	prompt := BuildPrompt(marker)

	if strings.Count(prompt, marker) != 1 {
		t.Errorf("context interpolated %d times, want exactly once", strings.Count(prompt, marker))
	}
}

func TestBuildPrompt_Instructions(t *testing.T) {
	prompt := BuildPrompt("ctx")

	checks := map[string]string{
		"terminology":   "standard clinical terminology",
		"no fabricated": "Do not fabricate",
		"JSON only":     "single JSON object",
		"no fences":     "no code fences",
	}
	for name, fragment := range checks {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %s instruction (%q)", name, fragment)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	if BuildPrompt("ctx") != BuildPrompt("ctx") {
		t.Error("prompt builder must be deterministic")
	}
}
