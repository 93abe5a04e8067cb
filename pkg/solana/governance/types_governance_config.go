package governance

import (
	"fmt"
)

// GovernanceConfig holds the voting rules of a governance account.
//
// VotingBaseTime is the time in seconds during which every vote type may be
// cast. VotingCoolOffTime follows it and only accepts withdrawals and vetoes,
// so the max voting time is their sum.
type GovernanceConfig struct {
	CommunityVoteThreshold             VoteThreshold
	MinCommunityWeightToCreateProposal uint64
	MinTransactionHoldUpTime           uint32
	VotingBaseTime                     uint32
	CommunityVoteTipping               VoteTipping
	CouncilVoteThreshold               VoteThreshold
	CouncilVetoVoteThreshold           VoteThreshold
	MinCouncilWeightToCreateProposal   uint64
	CouncilVoteTipping                 VoteTipping
	CommunityVetoVoteThreshold         VoteThreshold
	VotingCoolOffTime                  uint32
	DepositExemptProposalCount         uint8
}

func (c *GovernanceConfig) Size() int {
	return c.CommunityVoteThreshold.Size() +
		8 + // min_community_weight_to_create_proposal
		4 + // min_transaction_hold_up_time
		4 + // voting_base_time
		1 + // community_vote_tipping
		c.CouncilVoteThreshold.Size() +
		c.CouncilVetoVoteThreshold.Size() +
		8 + // min_council_weight_to_create_proposal
		1 + // council_vote_tipping
		c.CommunityVetoVoteThreshold.Size() +
		4 + // voting_cool_off_time
		1 // deposit_exempt_proposal_count
}

func (c *GovernanceConfig) Marshal() []byte {
	data := make([]byte, c.Size())

	var offset int
	putGovernanceConfig(data, c, &offset)
	return data
}

func (c *GovernanceConfig) Unmarshal(data []byte) error {
	var offset int
	if err := getGovernanceConfig(data, c, &offset); err != nil {
		return err
	}
	if offset != len(data) {
		return ErrInvalidAccountData
	}
	return nil
}

func (c *GovernanceConfig) String() string {
	return fmt.Sprintf(
		"GovernanceConfig{community_vote_threshold=%s,min_community_weight_to_create_proposal=%d,min_transaction_hold_up_time=%d,voting_base_time=%d,community_vote_tipping=%s,council_vote_threshold=%s,council_veto_vote_threshold=%s,min_council_weight_to_create_proposal=%d,council_vote_tipping=%s,community_veto_vote_threshold=%s,voting_cool_off_time=%d,deposit_exempt_proposal_count=%d}",
		c.CommunityVoteThreshold,
		c.MinCommunityWeightToCreateProposal,
		c.MinTransactionHoldUpTime,
		c.VotingBaseTime,
		c.CommunityVoteTipping,
		c.CouncilVoteThreshold,
		c.CouncilVetoVoteThreshold,
		c.MinCouncilWeightToCreateProposal,
		c.CouncilVoteTipping,
		c.CommunityVetoVoteThreshold,
		c.VotingCoolOffTime,
		c.DepositExemptProposalCount,
	)
}

func putGovernanceConfig(dst []byte, c *GovernanceConfig, offset *int) {
	putVoteThreshold(dst, c.CommunityVoteThreshold, offset)
	putUint64(dst, c.MinCommunityWeightToCreateProposal, offset)
	putUint32(dst, c.MinTransactionHoldUpTime, offset)
	putUint32(dst, c.VotingBaseTime, offset)
	putUint8(dst, uint8(c.CommunityVoteTipping), offset)
	putVoteThreshold(dst, c.CouncilVoteThreshold, offset)
	putVoteThreshold(dst, c.CouncilVetoVoteThreshold, offset)
	putUint64(dst, c.MinCouncilWeightToCreateProposal, offset)
	putUint8(dst, uint8(c.CouncilVoteTipping), offset)
	putVoteThreshold(dst, c.CommunityVetoVoteThreshold, offset)
	putUint32(dst, c.VotingCoolOffTime, offset)
	putUint8(dst, c.DepositExemptProposalCount, offset)
}

func getGovernanceConfig(src []byte, c *GovernanceConfig, offset *int) error {
	var tipping uint8

	if err := getVoteThreshold(src, &c.CommunityVoteThreshold, offset); err != nil {
		return err
	}
	if err := checkRemaining(src, *offset, 8+4+4+1); err != nil {
		return err
	}
	getUint64(src, &c.MinCommunityWeightToCreateProposal, offset)
	getUint32(src, &c.MinTransactionHoldUpTime, offset)
	getUint32(src, &c.VotingBaseTime, offset)
	getUint8(src, &tipping, offset)
	c.CommunityVoteTipping = VoteTipping(tipping)

	if err := getVoteThreshold(src, &c.CouncilVoteThreshold, offset); err != nil {
		return err
	}
	if err := getVoteThreshold(src, &c.CouncilVetoVoteThreshold, offset); err != nil {
		return err
	}
	if err := checkRemaining(src, *offset, 8+1); err != nil {
		return err
	}
	getUint64(src, &c.MinCouncilWeightToCreateProposal, offset)
	getUint8(src, &tipping, offset)
	c.CouncilVoteTipping = VoteTipping(tipping)

	if err := getVoteThreshold(src, &c.CommunityVetoVoteThreshold, offset); err != nil {
		return err
	}
	if err := checkRemaining(src, *offset, 4+1); err != nil {
		return err
	}
	getUint32(src, &c.VotingCoolOffTime, offset)
	getUint8(src, &c.DepositExemptProposalCount, offset)

	return nil
}
