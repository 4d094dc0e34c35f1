package tier

import (
	"fmt"
	"strings"
)

// Tier is the coarse performance classification of a device
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// Tiers lists every tier, weakest first
var Tiers = []Tier{Low, Medium, High}

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// ParseTier parses "low", "medium" or "high"
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Medium, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Downgrade returns the tier one step lower, flooring at Low
func (t Tier) Downgrade() Tier {
	if t <= Low {
		return Low
	}
	return t - 1
}
