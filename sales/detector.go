package sales

import (
	"strings"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
)

// DetectionResult is what Detect returns for one piece of text.
type DetectionResult struct {
	Found    bool     `json:"found"`
	Keywords []string `json:"keywords"`
	Strong   bool     `json:"strong"`
}

// Detector scans free text for purchase-intent phrases. It is pure: fixed
// vocabulary in, matches out, no side effects.
//
// Phrases come in two tiers. Strong phrases ("payment sent", "i'll take it")
// flag on their own; weak single words ("buy", "deal") only flag when enough
// of them pile up, so casual conversation doesn't trip the pipeline.
type Detector struct {
	strong    []string
	weak      []string
	threshold int
}

func NewDetector(cfg config.SalesConfiguration) *Detector {
	return &Detector{
		strong:    lowerAll(cfg.StrongKeywords),
		weak:      lowerAll(cfg.WeakKeywords),
		threshold: cfg.KeywordThreshold,
	}
}

// Detect runs a case-insensitive substring match of the whole vocabulary
// against text. Matched keywords are returned deduplicated, strong tier
// first, in vocabulary order.
func (d *Detector) Detect(text string) DetectionResult {
	res := DetectionResult{Keywords: []string{}}

	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return res
	}

	seen := map[string]bool{}
	for _, kw := range d.strong {
		if strings.Contains(t, kw) && !seen[kw] {
			seen[kw] = true
			res.Keywords = append(res.Keywords, kw)
			res.Strong = true
		}
	}
	for _, kw := range d.weak {
		if strings.Contains(t, kw) && !seen[kw] {
			seen[kw] = true
			res.Keywords = append(res.Keywords, kw)
		}
	}

	res.Found = len(res.Keywords) > 0
	return res
}

// ShouldFlag applies the minimum-confidence policy: one strong phrase is
// enough, weak matches need to reach the threshold.
func (d *Detector) ShouldFlag(res DetectionResult) bool {
	if !res.Found {
		return false
	}
	if res.Strong {
		return true
	}
	return len(res.Keywords) >= d.threshold
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
