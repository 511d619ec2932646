package ai

import (
	"reflect"
	"testing"
)

func TestNewSkillMatchKeepsRequiredOrder(t *testing.T) {
	required := []string{"python", "javascript", "react", "aws", "git"}
	matched := []string{"git", "PYTHON ", "aws"}

	match, dropped := NewSkillMatch(required, matched)

	if len(dropped) != 0 {
		t.Fatalf("expected no dropped skills, got %v", dropped)
	}

	wantMatched := []string{"python", "aws", "git"}
	if !reflect.DeepEqual(match.Matched, wantMatched) {
		t.Fatalf("unexpected matched set: %v", match.Matched)
	}

	wantMissing := []string{"javascript", "react"}
	if !reflect.DeepEqual(match.Missing, wantMissing) {
		t.Fatalf("unexpected missing set: %v", match.Missing)
	}
}

func TestNewSkillMatchDropsUnknownLabels(t *testing.T) {
	required := []string{"python", "sql"}

	match, dropped := NewSkillMatch(required, []string{"python", "golang", "kubernetes"})

	if !reflect.DeepEqual(dropped, []string{"golang", "kubernetes"}) {
		t.Fatalf("unexpected dropped labels: %v", dropped)
	}

	if !reflect.DeepEqual(match.Matched, []string{"python"}) {
		t.Fatalf("unexpected matched set: %v", match.Matched)
	}

	if !reflect.DeepEqual(match.Missing, []string{"sql"}) {
		t.Fatalf("unexpected missing set: %v", match.Missing)
	}
}

func TestSkillMatchSetsAreComplementary(t *testing.T) {
	required := []string{"python", "javascript", "react", "aws", "docker", "git", "sql", "nodejs", "rest apis"}

	match, _ := NewSkillMatch(required, []string{"python", "javascript", "aws", "git", "sql"})

	if len(match.Matched)+len(match.Missing) != len(required) {
		t.Fatalf("matched (%d) + missing (%d) must cover required (%d)",
			len(match.Matched), len(match.Missing), len(required))
	}

	seen := make(map[string]struct{})
	for _, skill := range match.Matched {
		seen[skill] = struct{}{}
	}
	for _, skill := range match.Missing {
		if _, ok := seen[skill]; ok {
			t.Fatalf("skill %q appears in both matched and missing", skill)
		}
	}
}

func TestExactSkillMatch(t *testing.T) {
	match := ExactSkillMatch([]string{"Python", "  SQL ", "Terraform"}, []string{"python", "sql", "aws"})

	if !reflect.DeepEqual(match.Matched, []string{"python", "sql"}) {
		t.Fatalf("unexpected matched set: %v", match.Matched)
	}

	if !reflect.DeepEqual(match.Missing, []string{"aws"}) {
		t.Fatalf("unexpected missing set: %v", match.Missing)
	}

	if match.Reasoning == "" {
		t.Fatal("expected fallback reasoning to be populated")
	}
}
