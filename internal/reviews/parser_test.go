package reviews

import (
	"strings"
	"testing"
)

func TestParseAnalysisEmptyResponseUsesDefaults(t *testing.T) {
	result := ParseAnalysis("", "line1\nline2\nline3")

	if result.Summary != defaultSummary {
		t.Fatalf("summary = %q, want %q", result.Summary, defaultSummary)
	}
	if result.OverallScore != defaultScore {
		t.Fatalf("score = %d, want %d", result.OverallScore, defaultScore)
	}
	if result.EffortPoints != defaultEffort {
		t.Fatalf("effort = %d, want %d", result.EffortPoints, defaultEffort)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("findings = %d, want 1 synthesized finding", len(result.Findings))
	}
	f := result.Findings[0]
	if f.Title != "Code reviewed" || f.Category != "style" || f.Severity != "info" {
		t.Fatalf("unexpected synthesized finding: %+v", f)
	}
	if f.Description != "Analyzed 3 lines of code." {
		t.Fatalf("description = %q", f.Description)
	}
}

func TestParseAnalysisGarbageNeverEmpty(t *testing.T) {
	result := ParseAnalysis("complete nonsense\nwith no markers at all", "x = 1")
	if len(result.Findings) == 0 {
		t.Fatal("findings must never be empty")
	}
	if result.OverallScore != defaultScore || result.EffortPoints != defaultEffort {
		t.Fatalf("expected defaults, got score=%d effort=%d", result.OverallScore, result.EffortPoints)
	}
}

func TestParseAnalysisWellFormedFinding(t *testing.T) {
	code := strings.Join([]string{
		"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8", "l9", "l10",
	}, "\n")
	response := `SUMMARY: Solid overall, one credential issue.
SCORE: 82
EFFORT: 4

FINDINGS:
---
CATEGORY: Security
SEVERITY: ASAP
TITLE: Hardcoded credentials
DESCRIPTION: Password is stored in plain text
LINE: 5
FIX: Load it from the environment
CODE: const password = process.env.DB_PASSWORD
---`

	result := ParseAnalysis(response, code)

	if result.Summary != "Solid overall, one credential issue." {
		t.Fatalf("summary = %q", result.Summary)
	}
	if result.OverallScore != 82 || result.EffortPoints != 4 {
		t.Fatalf("score=%d effort=%d", result.OverallScore, result.EffortPoints)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(result.Findings))
	}
	f := result.Findings[0]
	if f.Category != "security" {
		t.Fatalf("category = %q, want lowercased security", f.Category)
	}
	if f.Severity != "asap" {
		t.Fatalf("severity = %q, want lowercased asap", f.Severity)
	}
	if f.Title != "Hardcoded credentials" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.Description != "Password is stored in plain text" {
		t.Fatalf("description = %q", f.Description)
	}
	if f.Suggestion != "Load it from the environment" {
		t.Fatalf("suggestion = %q", f.Suggestion)
	}
	if f.AutoFixCode != "const password = process.env.DB_PASSWORD" {
		t.Fatalf("autoFixCode = %q", f.AutoFixCode)
	}
	if f.LineNumber == nil || *f.LineNumber != 5 {
		t.Fatalf("lineNumber = %v, want 5", f.LineNumber)
	}
	want := "l3\nl4\nl5\nl6"
	if f.CodeSnippet != want {
		t.Fatalf("codeSnippet = %q, want %q", f.CodeSnippet, want)
	}
}

func TestParseAnalysisEmptySummaryMarkerKept(t *testing.T) {
	result := ParseAnalysis("SUMMARY:\nSCORE: 50", "code")
	if result.Summary != "" {
		t.Fatalf("summary = %q, want empty when the marker has no text", result.Summary)
	}
}

func TestParseAnalysisMarkersAreCaseSensitive(t *testing.T) {
	result := ParseAnalysis("summary: lowercase marker\nscore: 10", "code")
	if result.Summary != defaultSummary {
		t.Fatalf("summary = %q, lowercase marker must not match", result.Summary)
	}
	if result.OverallScore != defaultScore {
		t.Fatalf("score = %d, lowercase marker must not match", result.OverallScore)
	}
}

func TestParseAnalysisScoreAndEffortNormalization(t *testing.T) {
	cases := []struct {
		name       string
		response   string
		wantScore  int
		wantEffort int
	}{
		{"above range", "SCORE: 150\nEFFORT: 4", 100, 4},
		{"zero effort raised", "SCORE: 40\nEFFORT: 0", 40, 1},
		{"digits inside prose", "SCORE: roughly 85 out of 100\nEFFORT: about 2 days", 85, 2},
		{"no digits", "SCORE: excellent\nEFFORT: unknown", defaultScore, defaultEffort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseAnalysis(tc.response, "code")
			if result.OverallScore != tc.wantScore {
				t.Fatalf("score = %d, want %d", result.OverallScore, tc.wantScore)
			}
			if result.EffortPoints != tc.wantEffort {
				t.Fatalf("effort = %d, want %d", result.EffortPoints, tc.wantEffort)
			}
		})
	}
}

func TestParseAnalysisGeneralLineOmitsSnippet(t *testing.T) {
	response := `---
CATEGORY: performance
SEVERITY: medium
TITLE: Loop allocates per iteration
LINE: general
---`
	result := ParseAnalysis(response, "a\nb\nc")
	if len(result.Findings) != 1 {
		t.Fatalf("findings = %d", len(result.Findings))
	}
	f := result.Findings[0]
	if f.LineNumber != nil {
		t.Fatalf("lineNumber = %v, want nil for general", f.LineNumber)
	}
	if f.CodeSnippet != "" {
		t.Fatalf("codeSnippet = %q, want empty", f.CodeSnippet)
	}
}

func TestParseAnalysisSnippetClampedAtBounds(t *testing.T) {
	code := "a\nb\nc"

	result := ParseAnalysis("---\nCATEGORY: bugs\nLINE: 1\n---", code)
	if got := result.Findings[0].CodeSnippet; got != "a\nb" {
		t.Fatalf("snippet at top = %q, want %q", got, "a\nb")
	}

	result = ParseAnalysis("---\nCATEGORY: bugs\nLINE: 3\n---", code)
	if got := result.Findings[0].CodeSnippet; got != "a\nb\nc" {
		t.Fatalf("snippet at bottom = %q, want %q", got, "a\nb\nc")
	}
}

func TestParseAnalysisUnknownVocabFallsBack(t *testing.T) {
	response := `---
CATEGORY: architecture
SEVERITY: catastrophic
TITLE: Something
---`
	result := ParseAnalysis(response, "code")
	f := result.Findings[0]
	if f.Category != defaultCategory {
		t.Fatalf("category = %q, want %q", f.Category, defaultCategory)
	}
	if f.Severity != defaultSeverity {
		t.Fatalf("severity = %q, want %q", f.Severity, defaultSeverity)
	}
}

func TestParseAnalysisMissingFieldsGetDefaults(t *testing.T) {
	result := ParseAnalysis("---\nCATEGORY: bugs\n---", "code")
	f := result.Findings[0]
	if f.Title != defaultTitle {
		t.Fatalf("title = %q, want %q", f.Title, defaultTitle)
	}
	if f.Description != defaultDescription {
		t.Fatalf("description = %q, want %q", f.Description, defaultDescription)
	}
	if f.Suggestion != defaultSuggestion {
		t.Fatalf("suggestion = %q, want %q", f.Suggestion, defaultSuggestion)
	}
}

func TestParseAnalysisSectionsWithoutCategorySkipped(t *testing.T) {
	response := `---
just some prose the model emitted
---
CATEGORY: style
TITLE: Real finding
---`
	result := ParseAnalysis(response, "code")
	if len(result.Findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(result.Findings))
	}
	if result.Findings[0].Title != "Real finding" {
		t.Fatalf("title = %q", result.Findings[0].Title)
	}
}

func TestParseAnalysisMultipleFindings(t *testing.T) {
	response := `FINDINGS:
---
CATEGORY: security
SEVERITY: high
TITLE: First
---
CATEGORY: performance
SEVERITY: low
TITLE: Second
---`
	result := ParseAnalysis(response, "code")
	if len(result.Findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(result.Findings))
	}
	if result.Findings[0].Title != "First" || result.Findings[1].Title != "Second" {
		t.Fatalf("order not preserved: %+v", result.Findings)
	}
}
