package analyzer

import (
	"math"

	"github.com/gzhole/veritas/internal/catalog"
)

const (
	baseConfidence = 0.6
	lengthWeight   = 0.35
	maxConfidence  = 0.95
	maxRiskScore   = 1.0
	criticalFloor  = 0.8
	highFloor      = 0.6
	mediumFloor    = 0.3
)

// severityWeights maps a rule severity to its contribution to the risk score.
var severityWeights = map[catalog.Severity]float64{
	catalog.Low:      0.1,
	catalog.Medium:   0.3,
	catalog.High:     0.7,
	catalog.Critical: 1.0,
}

// Confidence scores a match of matchLen characters in an input of inputLen
// characters. Any match starts at 0.6; matches that dominate the input score
// higher, capped at 0.95.
func Confidence(matchLen, inputLen int) float64 {
	if inputLen < 1 {
		inputLen = 1
	}
	c := baseConfidence + (float64(matchLen)/float64(inputLen))*lengthWeight
	return math.Min(maxConfidence, c)
}

// Weight returns the scoring weight of a severity.
func Weight(s catalog.Severity) float64 {
	return severityWeights[s]
}

// RiskScore averages the weighted confidence of every piece of evidence. The
// average, not the sum, keeps pattern-dense benign text from saturating.
func RiskScore(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var total float64
	for _, e := range evidence {
		total += Weight(e.Severity) * e.Confidence
	}
	return math.Min(maxRiskScore, total/float64(len(evidence)))
}

// LevelFor classifies a risk score. Bounds are inclusive lower bounds.
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= criticalFloor:
		return catalog.Critical
	case score >= highFloor:
		return catalog.High
	case score >= mediumFloor:
		return catalog.Medium
	default:
		return catalog.Low
	}
}
