package governance

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

var (
	GovernancePrefix      = []byte("governance")
	NativeTreasuryPrefix  = []byte("native-treasury")
	RealmConfigPrefix     = []byte("realm-config")
	ProposalDepositPrefix = []byte("proposal-deposit")
	MetadataPrefix        = []byte("metadata")
)

type GetNativeTreasuryAddressArgs struct {
	Governance ed25519.PublicKey
}

// GetNativeTreasuryAddress returns the SOL wallet owned by a governance.
func GetNativeTreasuryAddress(program ed25519.PublicKey, args *GetNativeTreasuryAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		NativeTreasuryPrefix,
		args.Governance,
	)
}

type GetTokenOwnerRecordAddressArgs struct {
	Realm               ed25519.PublicKey
	GoverningTokenMint  ed25519.PublicKey
	GoverningTokenOwner ed25519.PublicKey
}

func GetTokenOwnerRecordAddress(program ed25519.PublicKey, args *GetTokenOwnerRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		GovernancePrefix,
		args.Realm,
		args.GoverningTokenMint,
		args.GoverningTokenOwner,
	)
}

type GetRealmConfigAddressArgs struct {
	Realm ed25519.PublicKey
}

func GetRealmConfigAddress(program ed25519.PublicKey, args *GetRealmConfigAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		RealmConfigPrefix,
		args.Realm,
	)
}

type GetProposalAddressArgs struct {
	Governance         ed25519.PublicKey
	GoverningTokenMint ed25519.PublicKey
	// ProposalSeed is any unique key, usually a random one.
	ProposalSeed ed25519.PublicKey
}

func GetProposalAddress(program ed25519.PublicKey, args *GetProposalAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		GovernancePrefix,
		args.Governance,
		args.GoverningTokenMint,
		args.ProposalSeed,
	)
}

type GetProposalTransactionAddressArgs struct {
	Proposal    ed25519.PublicKey
	OptionIndex uint8
	Index       uint16
}

func GetProposalTransactionAddress(program ed25519.PublicKey, args *GetProposalTransactionAddressArgs) (ed25519.PublicKey, uint8, error) {
	index := make([]byte, 2)
	binary.LittleEndian.PutUint16(index, args.Index)

	return solana.FindProgramAddressAndBump(
		program,
		GovernancePrefix,
		args.Proposal,
		[]byte{args.OptionIndex},
		index,
	)
}

type GetProposalDepositAddressArgs struct {
	Proposal             ed25519.PublicKey
	ProposalDepositPayer ed25519.PublicKey
}

func GetProposalDepositAddress(program ed25519.PublicKey, args *GetProposalDepositAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		ProposalDepositPrefix,
		args.Proposal,
		args.ProposalDepositPayer,
	)
}

func GetProgramMetadataAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		MetadataPrefix,
	)
}
