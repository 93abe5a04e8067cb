package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message. Versioned messages and address
// lookup tables are not supported.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy transaction paid for
// by payer. Signatures are left empty until Sign is called.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{{PublicKey: payer, IsSigner: true, IsWritable: true, isPayer: true}}
	for _, ix := range instructions {
		accounts = append(accounts, AccountMeta{PublicKey: ix.Program, isProgram: true})
		accounts = append(accounts, ix.Accounts...)
	}
	accounts = mergeAccountMetas(accounts)
	sortAccountMetas(accounts)

	var m Message
	m.Accounts = make([]ed25519.PublicKey, len(accounts))
	for i, account := range accounts {
		m.Accounts[i] = account.PublicKey
		if len(account.PublicKey) == 0 {
			m.Accounts[i] = make(ed25519.PublicKey, ed25519.PublicKeySize)
		}

		switch {
		case account.IsSigner && account.IsWritable:
			m.Header.NumSignatures++
		case account.IsSigner:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case !account.IsWritable:
			m.Header.NumReadOnly++
		}
	}

	m.Instructions = make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(accountIndex(accounts, ix.Program)),
			Accounts:     make([]byte, len(ix.Accounts)),
			Data:         ix.Data,
		}
		for j, account := range ix.Accounts {
			compiled.Accounts[j] = byte(accountIndex(accounts, account.PublicKey))
		}
		m.Instructions[i] = compiled
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Signature returns the fee payer signature, which identifies the transaction.
func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) String() string {
	var sb strings.Builder
	h := t.Message.Header
	fmt.Fprintf(&sb, "Transaction{signatures=%d, readonly_signed=%d, readonly=%d, blockhash=%s}\n",
		h.NumSignatures, h.NumReadonlySigned, h.NumReadOnly, base58.Encode(t.Message.RecentBlockhash[:]))
	for i, sig := range t.Signatures {
		fmt.Fprintf(&sb, "  signature[%d] %s\n", i, base58.Encode(sig[:]))
	}
	for i, account := range t.Message.Accounts {
		fmt.Fprintf(&sb, "  account[%d] %s\n", i, base58.Encode(account))
	}
	for i, ix := range t.Message.Instructions {
		fmt.Fprintf(&sb, "  instruction[%d] program=%d accounts=%v data=%x\n", i, ix.ProgramIndex, ix.Accounts, ix.Data)
	}
	return sb.String()
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with every signer, each of which must be one of the
// signing accounts.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	message := t.Message.Marshal()

	for _, signer := range signers {
		pub := signer.Public().(ed25519.PublicKey)

		index := -1
		for i, account := range t.Message.Accounts {
			if bytes.Equal(account, pub) {
				index = i
				break
			}
		}
		switch {
		case index < 0:
			return errors.Errorf("signer %s is not a transaction account", base58.Encode(pub))
		case index >= len(t.Signatures):
			return errors.Errorf("account %s is not a signer", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(signer, message))
	}

	return nil
}

// mergeAccountMetas collapses repeated keys into their first occurrence,
// keeping the strongest permissions requested for each.
func mergeAccountMetas(accounts []AccountMeta) []AccountMeta {
	merged := make([]AccountMeta, 0, len(accounts))
	positions := make(map[string]int, len(accounts))

	for _, account := range accounts {
		pos, ok := positions[string(account.PublicKey)]
		if !ok {
			positions[string(account.PublicKey)] = len(merged)
			merged = append(merged, account)
			continue
		}

		existing := &merged[pos]
		existing.IsSigner = existing.IsSigner || account.IsSigner
		existing.IsWritable = existing.IsWritable || account.IsWritable
		existing.isPayer = existing.isPayer || account.isPayer
	}

	return merged
}

// accountIndex returns the position of key in accounts. Empty keys match
// the empty meta, which compiles to the zero key.
func accountIndex(accounts []AccountMeta, key ed25519.PublicKey) int {
	for i, account := range accounts {
		if bytes.Equal(account.PublicKey, key) {
			return i
		}
	}
	return -1
}
