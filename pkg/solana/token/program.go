package token

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

var (
	// ProgramKey is the SPL token program.
	ProgramKey = mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	// BPFUpgradeLoaderKey owns upgradeable programs, governance deployments
	// included.
	BPFUpgradeLoaderKey = mustBase58Decode("BPFLoaderUpgradeab1e11111111111111111111111")
)

// Instruction discriminators of the token program that this package builds.
const (
	instructionApprove byte = 4
	instructionRevoke  byte = 5
)

// Approve lets delegate move up to amount tokens out of source. The owner
// must sign.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L93-L106
func Approve(source, delegate, owner ed25519.PublicKey, amount uint64) solana.Instruction {
	data := make([]byte, 9)
	data[0] = instructionApprove
	binary.LittleEndian.PutUint64(data[1:], amount)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(source, false),
		solana.NewReadonlyAccountMeta(delegate, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

// Revoke clears the delegate of source.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L107-L117
func Revoke(source, owner ed25519.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		ProgramKey,
		[]byte{instructionRevoke},
		solana.NewAccountMeta(source, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

// ApproveTokenTransfer appends an Approve instruction for amount from account
// to instructions. The delegate defaults to transferAuthority, which is
// generated when nil. When autoRevoke is set, a Revoke is appended to
// cleanup. The authority that was used is returned so callers can sign with it.
func ApproveTokenTransfer(
	instructions *[]solana.Instruction,
	cleanup *[]solana.Instruction,
	account ed25519.PublicKey,
	owner ed25519.PublicKey,
	amount uint64,
	autoRevoke bool,
	delegate ed25519.PublicKey,
	transferAuthority ed25519.PrivateKey,
) (ed25519.PrivateKey, error) {
	if transferAuthority == nil {
		var err error
		if _, transferAuthority, err = ed25519.GenerateKey(nil); err != nil {
			return nil, errors.Wrap(err, "failed to generate transfer authority")
		}
	}
	if delegate == nil {
		delegate = transferAuthority.Public().(ed25519.PublicKey)
	}

	*instructions = append(*instructions, Approve(account, delegate, owner, amount))
	if autoRevoke {
		*cleanup = append(*cleanup, Revoke(account, owner))
	}
	return transferAuthority, nil
}

func mustBase58Decode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
