package governance

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

// AccountMetaData is the serialized form of an instruction account stored in
// a proposal transaction.
type AccountMetaData struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

// InstructionData is an instruction stored in a proposal transaction, to be
// executed by the governance once the proposal passes.
type InstructionData struct {
	ProgramID ed25519.PublicKey
	Accounts  []AccountMetaData
	Data      []byte
}

// NewInstructionData captures ixn for storage in a proposal transaction.
func NewInstructionData(ixn solana.Instruction) InstructionData {
	accounts := make([]AccountMetaData, len(ixn.Accounts))
	for i, account := range ixn.Accounts {
		accounts[i] = AccountMetaData{
			PublicKey:  account.PublicKey,
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}

	return InstructionData{
		ProgramID: ixn.Program,
		Accounts:  accounts,
		Data:      ixn.Data,
	}
}

// ToInstruction is the inverse of NewInstructionData.
func (d InstructionData) ToInstruction() solana.Instruction {
	accounts := make([]solana.AccountMeta, len(d.Accounts))
	for i, account := range d.Accounts {
		accounts[i] = solana.AccountMeta{
			PublicKey:  account.PublicKey,
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		}
	}

	return solana.Instruction{
		Program:  d.ProgramID,
		Accounts: accounts,
		Data:     d.Data,
	}
}

func (d InstructionData) Size() int {
	return 32 + // program_id
		4 + len(d.Accounts)*(32+1+1) + // accounts
		4 + len(d.Data) // data
}

func (d InstructionData) Marshal() []byte {
	data := make([]byte, d.Size())

	var offset int
	putInstructionData(data, d, &offset)
	return data
}

func putInstructionData(dst []byte, d InstructionData, offset *int) {
	putKey(dst, d.ProgramID, offset)
	putUint32(dst, uint32(len(d.Accounts)), offset)
	for _, account := range d.Accounts {
		putKey(dst, account.PublicKey, offset)
		putBool(dst, account.IsSigner, offset)
		putBool(dst, account.IsWritable, offset)
	}
	putBytes(dst, d.Data, offset)
}
