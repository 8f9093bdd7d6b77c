package types

import "fmt"

// RiskLevel classifies how close an open case is to breaching its SLA
type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskRed    RiskLevel = "red"
)

// AllRiskLevels returns all valid risk levels, least severe first
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskGreen, RiskYellow, RiskRed}
}

// IsValid checks if the risk level is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskGreen, RiskYellow, RiskRed:
		return true
	default:
		return false
	}
}

// Rank returns a numeric severity for ordering: green(0) < yellow(1) < red(2)
func (r RiskLevel) Rank() int {
	switch r {
	case RiskYellow:
		return 1
	case RiskRed:
		return 2
	default:
		return 0
	}
}

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return r, nil
}
