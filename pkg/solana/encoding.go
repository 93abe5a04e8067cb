package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/shortvec"
)

// Wire format of a legacy transaction:
//
//	signatures:   shortvec len, 64 bytes each
//	header:       3 bytes
//	accounts:     shortvec len, 32 bytes each
//	blockhash:    32 bytes
//	instructions: shortvec len, each a program index, shortvec prefixed
//	              account indexes and shortvec prefixed data

func (t Transaction) Marshal() []byte {
	var buf bytes.Buffer
	_ = shortvec.EncodeLen(&buf, len(t.Signatures))
	for _, sig := range t.Signatures {
		buf.Write(sig[:])
	}
	buf.Write(t.Message.Marshal())
	return buf.Bytes()
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := bytes.NewReader(b)

	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "invalid signature count")
	}

	t.Signatures = make([]Signature, n)
	for i := range t.Signatures {
		if _, err := io.ReadFull(r, t.Signatures[i][:]); err != nil {
			return errors.Wrapf(err, "invalid signature %d", i)
		}
	}

	return t.Message.Unmarshal(b[len(b)-r.Len():])
}

func (m Message) Marshal() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly})

	_ = shortvec.EncodeLen(&buf, len(m.Accounts))
	for _, account := range m.Accounts {
		buf.Write(account)
	}
	buf.Write(m.RecentBlockhash[:])

	_ = shortvec.EncodeLen(&buf, len(m.Instructions))
	for _, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIndex)
		writePrefixed(&buf, ix.Accounts)
		writePrefixed(&buf, ix.Data)
	}
	return buf.Bytes()
}

func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	// Versioned messages set the high bit of the first byte.
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	r := bytes.NewReader(b)

	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return errors.Wrap(err, "invalid header")
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "invalid account count")
	}
	m.Accounts = make([]ed25519.PublicKey, n)
	for i := range m.Accounts {
		m.Accounts[i] = make(ed25519.PublicKey, ed25519.PublicKeySize)
		if _, err := io.ReadFull(r, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "invalid account %d", i)
		}
	}

	if _, err := io.ReadFull(r, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "invalid recent blockhash")
	}

	if n, err = shortvec.DecodeLen(r); err != nil {
		return errors.Wrap(err, "invalid instruction count")
	}
	m.Instructions = make([]CompiledInstruction, n)
	for i := range m.Instructions {
		if err := m.readInstruction(r, &m.Instructions[i]); err != nil {
			return errors.Wrapf(err, "invalid instruction %d", i)
		}
	}

	return nil
}

func (m *Message) readInstruction(r *bytes.Reader, ix *CompiledInstruction) (err error) {
	if ix.ProgramIndex, err = r.ReadByte(); err != nil {
		return err
	}
	if int(ix.ProgramIndex) >= len(m.Accounts) {
		return errors.Errorf("program index %d out of range", ix.ProgramIndex)
	}

	if ix.Accounts, err = readPrefixed(r); err != nil {
		return errors.Wrap(err, "invalid accounts")
	}
	for _, index := range ix.Accounts {
		if int(index) >= len(m.Accounts) {
			return errors.Errorf("account index %d out of range", index)
		}
	}

	if ix.Data, err = readPrefixed(r); err != nil {
		return errors.Wrap(err, "invalid data")
	}
	return nil
}

func writePrefixed(buf *bytes.Buffer, b []byte) {
	_ = shortvec.EncodeLen(buf, len(b))
	buf.Write(b)
}

func readPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
