package governance

type VoteKind uint8

const (
	VoteKindSingleChoice VoteKind = iota
	VoteKindMultiChoice
)

type MultiChoiceType uint8

const (
	MultiChoiceTypeFullWeight MultiChoiceType = iota
	MultiChoiceTypeWeighted
)

// VoteType describes how voters choose among proposal options. The multi
// choice fields are ignored for single choice votes.
type VoteType struct {
	Kind              VoteKind
	ChoiceType        MultiChoiceType
	MinVoterOptions   uint8
	MaxVoterOptions   uint8
	MaxWinningOptions uint8
}

func SingleChoiceVoteType() VoteType {
	return VoteType{Kind: VoteKindSingleChoice}
}

func (v VoteType) Size() int {
	if v.Kind == VoteKindMultiChoice {
		return 1 + 4
	}
	return 1
}

func putVoteType(dst []byte, v VoteType, offset *int) {
	putUint8(dst, uint8(v.Kind), offset)
	if v.Kind == VoteKindMultiChoice {
		putUint8(dst, uint8(v.ChoiceType), offset)
		putUint8(dst, v.MinVoterOptions, offset)
		putUint8(dst, v.MaxVoterOptions, offset)
		putUint8(dst, v.MaxWinningOptions, offset)
	}
}
