package scan

import "github.com/storelift/croscan/internal/rules"

// defaultImpactMid substitutes for rules with no impact estimate. Keeps
// instruction-only rules rankable without inventing a metric for them.
const defaultImpactMid = 0.02

// ImpactMid returns the midpoint of the rule's impact estimate, or
// defaultImpactMid when the rule carries none.
func ImpactMid(r rules.Rule) float64 {
	if r.ImpactEstimate == nil {
		return defaultImpactMid
	}
	return (r.ImpactEstimate.Low + r.ImpactEstimate.High) / 2
}

// Priority computes the dimensionless ranking value for a matched rule.
//
//	effortMult  = low:1.0  medium:0.7 high:0.4
//	riskPenalty = low:0.0  medium:0.2 high:0.5
//	confidence  = severity high:0.9 medium:0.7 low:0.5
//	score = confidence * impactMid * effortMult * (1 - riskPenalty)
//
// A zero or absent impactMid falls back to defaultImpactMid. The result
// ranks matches; it is not a probability. Ties are broken by the stable
// sort in the scanner, never here.
func Priority(r rules.Rule, impactMid float64) float64 {
	effortMult := 1.0
	switch r.Effort {
	case rules.EffortMedium:
		effortMult = 0.7
	case rules.EffortHigh:
		effortMult = 0.4
	}

	riskPenalty := 0.0
	switch r.Risk {
	case rules.RiskMedium:
		riskPenalty = 0.2
	case rules.RiskHigh:
		riskPenalty = 0.5
	}

	confidence := 0.5
	switch r.Severity {
	case rules.SeverityHigh:
		confidence = 0.9
	case rules.SeverityMedium:
		confidence = 0.7
	}

	if impactMid == 0 {
		impactMid = defaultImpactMid
	}

	return confidence * impactMid * effortMult * (1 - riskPenalty)
}
