package governance

import "strings"

// VoteTipping controls whether a vote can end before the voting time elapses.
type VoteTipping uint8

const (
	// VoteTippingStrict ends the vote once a side has more than half of the
	// max vote weight.
	VoteTippingStrict VoteTipping = iota
	// VoteTippingEarly ends the vote once the threshold is reached and yes
	// outweighs no.
	VoteTippingEarly
	VoteTippingDisabled
)

func (v VoteTipping) String() string {
	switch v {
	case VoteTippingStrict:
		return "Strict"
	case VoteTippingEarly:
		return "Early"
	case VoteTippingDisabled:
		return "Disabled"
	}
	return "Unknown"
}

// ParseVoteTipping is the inverse of VoteTipping.String, ignoring case.
func ParseVoteTipping(value string) (VoteTipping, bool) {
	for _, v := range []VoteTipping{VoteTippingStrict, VoteTippingEarly, VoteTippingDisabled} {
		if strings.EqualFold(v.String(), value) {
			return v, true
		}
	}
	return VoteTippingDisabled, false
}
