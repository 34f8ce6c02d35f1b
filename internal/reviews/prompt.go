package reviews

import (
	"fmt"
	"strings"
)

// BuildReviewPrompt assembles the model input for one code submission.
// The code is embedded verbatim inside a fenced block; custom guidelines,
// when supplied, are delimited ahead of the fixed review checklist. The
// tail of the prompt pins the response format the parser expects.
func BuildReviewPrompt(code, language, fileName, customGuidelines string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert code reviewer. Analyze this %s code and provide a full and detailed review.\n\n", language)
	if fileName != "" {
		fmt.Fprintf(&b, "File: %s\n\n", fileName)
	}

	b.WriteString("CODE:\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", language, code)

	if strings.TrimSpace(customGuidelines) != "" {
		b.WriteString("\nCUSTOM CODING GUIDELINES TO ENFORCE:\n")
		b.WriteString(customGuidelines)
		b.WriteString("\n\nPay special attention to these guidelines when reviewing the code.\n")
	}

	b.WriteString(`
Consider:
1. Code quality and adherence to best practices
2. Potential bugs or edge cases
3. Performance optimizations
4. Readability and maintainability
5. Any security concerns

Also, take a deeper look at:

1. SECURITY issues (vulnerabilities, injection risks, data exposure, etc.)
2. PERFORMANCE problems (inefficient algorithms, memory leaks, bottlenecks, etc.)
3. BUGS (logic errors, edge cases, null pointer issues, etc.)
4. CODE STYLE (naming conventions, readability, best practices, etc.)
5. DOCUMENTATION (missing comments, unclear function purposes, etc.)

For each issue found, provide:
- Category (security/performance/bugs/style/documentation)
- Severity (ASAP/high/medium/low/info)
- Clear description, short and concise
- Specific line number if applicable
- How to fix it (if it's easy enough; if not give guides/general lines)
- Better code example if possible

Please suggest optimizations to improve its performance (if it's the case).

For each suggestion, explain the expected improvement and any trade-offs.

This is an example. Format your response as:
SUMMARY: [Overall assessment in 2-3 sentences but not limited if there are important things to say]
SCORE: [0-100, where 100 is perfect code]
EFFORT: [Estimated hours/days to fix all issues]

FINDINGS:
---
CATEGORY: security
SEVERITY: ASAP
TITLE: Hardcoded credentials
DESCRIPTION: Password is hardcoded in plain text. Not safe at all
LINE: 5
FIX: Use environment variables and hash passwords
CODE: const password = process.env.DB_PASSWORD
---
[Repeat for each finding]`)

	return b.String()
}
