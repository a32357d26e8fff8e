package pipeline

import "strings"

type DetectResult struct {
	IsScorecard bool
	Score       float64
	Reason      string
}

var detectKeywords = []string{"scorecard", "batting", "innings", "match summary", "t20", "odi", "runs", "wicket"}

// DetectScorecardExport scores an inbound feed message on whether it
// carries scorecard data worth processing. Providers mix these mails
// with schedule notices and invoices on the same address.
func DetectScorecardExport(subject, text, html string, attachmentNames []string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)
	html = strings.ToLower(html)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subject, kw) {
			score += 0.2
		}
		if strings.Contains(text, kw) || strings.Contains(html, kw) {
			score += 0.1
		}
	}

	labelHits := strings.Count(text, " vs ") + strings.Count(subject, " vs ")
	if labelHits >= 2 {
		score += 0.4
	} else if labelHits == 1 {
		score += 0.2
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".xlsx") || strings.HasSuffix(ln, ".xls") || strings.HasSuffix(ln, ".csv") || strings.HasSuffix(ln, ".pdf") {
			score += 0.25
			break
		}
	}

	if strings.Contains(html, "<table") {
		score += 0.25
	}
	if score > 1 {
		score = 1
	}

	isScorecard := score >= 0.45
	reason := "rules_negative"
	if isScorecard {
		reason = "rules_positive"
	}

	return DetectResult{IsScorecard: isScorecard, Score: score, Reason: reason}
}
