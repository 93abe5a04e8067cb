package governance

import (
	"fmt"

	"github.com/pkg/errors"
)

type VoteThresholdType uint8

const (
	VoteThresholdYesVotePercentage VoteThresholdType = iota
	VoteThresholdQuorumPercentage
	VoteThresholdDisabled
)

// VoteThreshold is the share of the max vote weight required for a proposal
// to pass, or Disabled when the track cannot vote at all.
type VoteThreshold struct {
	Type  VoteThresholdType
	Value uint8
}

func NewYesVoteThreshold(percent uint8) VoteThreshold {
	return VoteThreshold{Type: VoteThresholdYesVotePercentage, Value: percent}
}

func NewDisabledVoteThreshold() VoteThreshold {
	return VoteThreshold{Type: VoteThresholdDisabled}
}

func (v VoteThreshold) IsDisabled() bool {
	return v.Type == VoteThresholdDisabled
}

func (v VoteThreshold) Size() int {
	if v.IsDisabled() {
		return 1
	}
	return 2
}

func (v VoteThreshold) String() string {
	switch v.Type {
	case VoteThresholdYesVotePercentage:
		return fmt.Sprintf("YesVotePercentage(%d)", v.Value)
	case VoteThresholdQuorumPercentage:
		return fmt.Sprintf("QuorumPercentage(%d)", v.Value)
	case VoteThresholdDisabled:
		return "Disabled"
	}
	return fmt.Sprintf("VoteThreshold(%d)", v.Type)
}

func putVoteThreshold(dst []byte, v VoteThreshold, offset *int) {
	putUint8(dst, uint8(v.Type), offset)
	if !v.IsDisabled() {
		putUint8(dst, v.Value, offset)
	}
}

func getVoteThreshold(src []byte, dst *VoteThreshold, offset *int) error {
	if err := checkRemaining(src, *offset, 1); err != nil {
		return err
	}

	var kind uint8
	getUint8(src, &kind, offset)
	dst.Type = VoteThresholdType(kind)
	dst.Value = 0

	switch dst.Type {
	case VoteThresholdYesVotePercentage, VoteThresholdQuorumPercentage:
		if err := checkRemaining(src, *offset, 1); err != nil {
			return err
		}
		getUint8(src, &dst.Value, offset)
		return nil
	case VoteThresholdDisabled:
		return nil
	}
	return errors.Wrapf(ErrInvalidAccountData, "invalid vote threshold type %d", kind)
}
