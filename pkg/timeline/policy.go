package timeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvertedInterval is returned under PolicyReject for an end before start.
var ErrInvertedInterval = errors.New("timeline: end year before start year")

// Policy decides what happens to an interval whose end precedes its start.
type Policy string

const (
	// PolicyClamp accepts the interval and draws it at MinBlockHeight.
	PolicyClamp Policy = "clamp"
	// PolicyFlag accepts the interval and marks its block Malformed.
	PolicyFlag Policy = "flag"
	// PolicyReject refuses to store the interval. Layout still clamps.
	PolicyReject Policy = "reject"
)

// AllPolicies lists the supported policies.
func AllPolicies() []Policy {
	return []Policy{PolicyClamp, PolicyFlag, PolicyReject}
}

// ParsePolicy converts s to a Policy. Empty input means PolicyClamp.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PolicyClamp, nil
	}
	for _, candidate := range AllPolicies() {
		if candidate == p {
			return p, nil
		}
	}
	return PolicyClamp, fmt.Errorf("timeline: unknown interval policy %q", s)
}

// Inverted reports whether end comes before start.
func Inverted(start, end int) bool {
	return end < start
}

// Check validates an interval about to be stored.
func (p Policy) Check(start, end int) error {
	if p == PolicyReject && Inverted(start, end) {
		return fmt.Errorf("%w: %d..%d", ErrInvertedInterval, start, end)
	}
	return nil
}

// Flags reports whether a layout block for the interval should be marked.
func (p Policy) Flags(start, end int) bool {
	return p == PolicyFlag && Inverted(start, end)
}
