package reviews

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default substitutions applied when the model output omits or mangles a
// field. Tests key off these values; change them only together with the
// prompt template.
const (
	defaultSummary     = "Code analysis completed."
	defaultScore       = 75
	defaultEffort      = 5
	defaultCategory    = "style"
	defaultSeverity    = "low"
	defaultTitle       = "Code improvement needed"
	defaultDescription = "Please review this section"
	defaultSuggestion  = "Cannot suggest for the specific code."
)

const findingSeparator = "---"

var (
	digitsRe      = regexp.MustCompile(`\d+`)
	categoryRe    = regexp.MustCompile(`(?i)CATEGORY:\s*(.+)`)
	severityRe    = regexp.MustCompile(`(?i)SEVERITY:\s*(.+)`)
	titleRe       = regexp.MustCompile(`(?i)TITLE:\s*(.+)`)
	descriptionRe = regexp.MustCompile(`(?i)DESCRIPTION:\s*(.+)`)
	lineRe        = regexp.MustCompile(`(?i)LINE:\s*(.+)`)
	fixRe         = regexp.MustCompile(`(?i)FIX:\s*(.+)`)
	codeRe        = regexp.MustCompile(`(?is)CODE:\s*(.+)`)
)

// ParseAnalysis converts raw model output into an AnalysisResult. It is
// total over its input: any text, including the empty string, yields a
// valid result via the documented defaults, and the findings list is
// never empty.
func ParseAnalysis(response, code string) AnalysisResult {
	lines := strings.Split(response, "\n")

	summary := defaultSummary
	if line, ok := findMarkerLine(lines, "SUMMARY:"); ok {
		summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
	}

	score := extractMarkerInt(lines, "SCORE:", defaultScore)
	effort := extractMarkerInt(lines, "EFFORT:", defaultEffort)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if effort < 1 {
		effort = 1
	}

	return AnalysisResult{
		Summary:      summary,
		OverallScore: score,
		EffortPoints: effort,
		Findings:     extractFindings(response, code),
	}
}

func findMarkerLine(lines []string, marker string) (string, bool) {
	for _, line := range lines {
		if strings.HasPrefix(line, marker) {
			return line, true
		}
	}
	return "", false
}

// extractMarkerInt returns the first run of decimal digits after the
// marker, ignoring any surrounding words.
func extractMarkerInt(lines []string, marker string, def int) int {
	line, ok := findMarkerLine(lines, marker)
	if !ok {
		return def
	}
	match := digitsRe.FindString(strings.TrimPrefix(line, marker))
	if match == "" {
		return def
	}
	val, err := strconv.Atoi(match)
	if err != nil {
		return def
	}
	return val
}

func extractFindings(response, code string) []ResultFinding {
	var findings []ResultFinding

	for _, section := range strings.Split(response, findingSeparator) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		if !strings.Contains(section, "CATEGORY:") {
			continue
		}

		finding := ResultFinding{
			Category:    normalizeVocab(firstGroup(categoryRe, section), validCategories, defaultCategory),
			Severity:    normalizeVocab(firstGroup(severityRe, section), validSeverities, defaultSeverity),
			Title:       orDefault(firstGroup(titleRe, section), defaultTitle),
			Description: orDefault(firstGroup(descriptionRe, section), defaultDescription),
			Suggestion:  orDefault(firstGroup(fixRe, section), defaultSuggestion),
			AutoFixCode: firstGroup(codeRe, section),
		}

		lineStr := firstGroup(lineRe, section)
		if lineStr != "" && lineStr != "general" {
			if lineNum, err := strconv.Atoi(lineStr); err == nil {
				finding.LineNumber = &lineNum
				finding.CodeSnippet = codeSnippet(code, lineNum)
			}
		}

		findings = append(findings, finding)
	}

	if len(findings) == 0 {
		lineCount := len(strings.Split(code, "\n"))
		findings = append(findings, ResultFinding{
			Category:    defaultCategory,
			Severity:    "info",
			Title:       "Code reviewed",
			Description: fmt.Sprintf("Analyzed %d lines of code.", lineCount),
			Suggestion:  "Follow language-specific best practices.",
		})
	}

	return findings
}

func firstGroup(re *regexp.Regexp, section string) string {
	match := re.FindStringSubmatch(section)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func normalizeVocab(value string, valid map[string]struct{}, def string) string {
	value = strings.ToLower(value)
	if _, ok := valid[value]; ok {
		return value
	}
	return def
}

// codeSnippet returns the excerpt from two lines before through one line
// after the given 1-based line number, clamped to the code's bounds.
func codeSnippet(code string, lineNumber int) string {
	lines := strings.Split(code, "\n")
	start := lineNumber - 3
	if start < 0 {
		start = 0
	}
	end := lineNumber + 1
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}
