package solana

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
	"golang.org/x/time/rate"

	"github.com/bhagyamudgal/governance-ui/pkg/retry"
)

const (
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is the rate at which signature statuses should be polled at.
	PollRate = (time.Second / slotsPerSec) / 2

	// Poll rate is ~2x the slot rate, and we want to wait ~32 slots
	sigStatusPollLimit = 2 * 32

	// MaxMultipleAccountsPerRequest is the number of keys sent in a single
	// getMultipleAccounts call. The RPC node rejects anything over 100.
	MaxMultipleAccountsPerRequest = 99

	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

// CommitmentFromString maps a commitment level name to a Commitment, defaulting
// to confirmed for unknown values.
func CommitmentFromString(value string) Commitment {
	switch value {
	case confirmationStatusProcessed:
		return CommitmentProcessed
	case confirmationStatusFinalized:
		return CommitmentFinalized
	default:
		return CommitmentConfirmed
	}
}

var (
	ErrNoAccountInfo     = errors.New("no account info")
	ErrSignatureNotFound = errors.New("signature not found")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// KeyedAccountInfo is an AccountInfo along with the address it was read from.
type KeyedAccountInfo struct {
	PublicKey ed25519.PublicKey
	Account   AccountInfo
}

type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations will be nil if the transaction has been rooted.
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() {
		return true
	}

	if s.ConfirmationStatus == confirmationStatusConfirmed {
		return true
	}

	return *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.Confirmations == nil || s.ConfirmationStatus == confirmationStatusFinalized
}

// ProgramAccountsFilter narrows a getProgramAccounts query. A zero DataSize
// is not sent, and Memcmp is only sent when Bytes is non-empty.
type ProgramAccountsFilter struct {
	DataSize     uint64
	MemcmpOffset uint
	MemcmpBytes  []byte
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	Endpoint() string
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetMultipleAccounts([]ed25519.PublicKey, Commitment) ([]*AccountInfo, error)
	GetProgramAccounts(program ed25519.PublicKey, filters ...ProgramAccountsFilter) ([]KeyedAccountInfo, error)
	GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]KeyedAccountInfo, error)
	GetLatestBlockhash() (Blockhash, error)
	GetSignatureStatus(Signature, Commitment) (*SignatureStatus, error)
	GetSignatureStatuses([]Signature) ([]*SignatureStatus, error)
	GetSlot(Commitment) (uint64, error)
	SubmitTransaction(Transaction, Commitment) (Signature, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type rawAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

func (r *rawAccount) toAccountInfo() (info AccountInfo, err error) {
	info.Owner, err = base58.Decode(r.Owner)
	if err != nil {
		return info, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(r.Data) == 0 {
		return info, errors.New("account data missing from response")
	}
	info.Data, err = base64.StdEncoding.DecodeString(r.Data[0])
	if err != nil {
		return info, errors.Wrap(err, "invalid base64 encoded data")
	}

	info.Lamports = r.Lamports
	info.Executable = r.Executable
	return info, nil
}

type rawKeyedAccount struct {
	PubKey  string     `json:"pubkey"`
	Account rawAccount `json:"account"`
}

func (r *rawKeyedAccount) toKeyedAccountInfo() (KeyedAccountInfo, error) {
	key, err := base58.Decode(r.PubKey)
	if err != nil {
		return KeyedAccountInfo{}, errors.Wrap(err, "invalid base58 encoded account address")
	}

	info, err := r.Account.toAccountInfo()
	if err != nil {
		return KeyedAccountInfo{}, errors.Wrapf(err, "invalid account %s", r.PubKey)
	}

	return KeyedAccountInfo{PublicKey: key, Account: info}, nil
}

type client struct {
	log      *logrus.Entry
	endpoint string
	client   jsonrpc.RPCClient
	retrier  *retry.Retrier
	limiter  *rate.Limiter
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:      logrus.StandardLogger().WithField("type", "solana/client"),
		endpoint: endpoint,
		client:   jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.WithJitter(retry.Exponential(time.Second, 10*time.Second), 0.1),
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
		),
	}
}

// NewRateLimited returns a client that sends at most perSecond requests per
// second, retries included. A non-positive rate disables the limit.
func NewRateLimited(endpoint string, perSecond float64) Client {
	c := NewWithRPCOptions(endpoint, nil).(*client)
	if perSecond > 0 {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return c
}

func (c *client) Endpoint() string {
	return c.endpoint
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(context.Background()); err != nil {
				return err
			}
		}

		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Error("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}

	return err
}

func (c *client) GetSlot(commitment Commitment) (slot uint64, err error) {
	// note: we have to wrap the commitment in an []interface{} otherwise the
	//       solana RPC node complains.
	if err := c.call(&slot, "getSlot", []interface{}{commitment}); err != nil {
		return 0, errors.Wrapf(err, "getSlot() failed to send request")
	}

	return slot, nil
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	type response struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}

	var resp response
	if err := c.call(&resp, "getLatestBlockhash"); err != nil {
		return hash, errors.Wrapf(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}

	copy(hash[:], hashBytes)
	return hash, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	var resp struct {
		Value *rawAccount `json:"value"`
	}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), newAccountsConfig(commitment)); err != nil {
		return accountInfo, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return accountInfo, ErrNoAccountInfo
	}

	return resp.Value.toAccountInfo()
}

// GetMultipleAccounts fetches the accounts in chunks of
// MaxMultipleAccountsPerRequest. The result is in request order, with nil
// entries for accounts that don't exist.
func (c *client) GetMultipleAccounts(accounts []ed25519.PublicKey, commitment Commitment) ([]*AccountInfo, error) {
	config := newAccountsConfig(commitment)

	result := make([]*AccountInfo, 0, len(accounts))
	for _, chunk := range chunkKeys(accounts, MaxMultipleAccountsPerRequest) {
		encoded := make([]string, len(chunk))
		for i, key := range chunk {
			encoded[i] = base58.Encode(key)
		}

		var resp struct {
			Value []*rawAccount `json:"value"`
		}
		if err := c.call(&resp, "getMultipleAccounts", encoded, config); err != nil {
			return nil, errors.Wrap(err, "getMultipleAccounts() failed to send request")
		}

		if len(resp.Value) != len(chunk) {
			return nil, errors.Errorf("expected %d accounts, got %d", len(chunk), len(resp.Value))
		}

		for i, raw := range resp.Value {
			if raw == nil {
				result = append(result, nil)
				continue
			}

			info, err := raw.toAccountInfo()
			if err != nil {
				return nil, errors.Wrapf(err, "invalid account %s", encoded[i])
			}
			result = append(result, &info)
		}
	}

	return result, nil
}

func (c *client) GetProgramAccounts(program ed25519.PublicKey, filters ...ProgramAccountsFilter) ([]KeyedAccountInfo, error) {
	config := newAccountsConfig(CommitmentConfirmed)
	for _, f := range filters {
		if f.DataSize > 0 {
			size := f.DataSize
			config.Filters = append(config.Filters, rpcFilter{DataSize: &size})
		}
		if len(f.MemcmpBytes) > 0 {
			config.Filters = append(config.Filters, rpcFilter{
				Memcmp: &rpcMemcmp{Offset: f.MemcmpOffset, Bytes: base58.Encode(f.MemcmpBytes)},
			})
		}
	}

	var resp []rawKeyedAccount
	if err := c.call(&resp, "getProgramAccounts", base58.Encode(program), config); err != nil {
		return nil, errors.Wrap(err, "getProgramAccounts() failed to send request")
	}
	return toKeyedAccounts(resp)
}

func (c *client) GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]KeyedAccountInfo, error) {
	programFilter := struct {
		ProgramID string `json:"programId"`
	}{
		ProgramID: base58.Encode(tokenProgram),
	}

	var resp struct {
		Value []rawKeyedAccount `json:"value"`
	}
	if err := c.call(&resp, "getTokenAccountsByOwner", base58.Encode(owner), programFilter, newAccountsConfig(CommitmentConfirmed)); err != nil {
		return nil, errors.Wrap(err, "getTokenAccountsByOwner() failed to send request")
	}
	return toKeyedAccounts(resp.Value)
}

func (c *client) SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error) {
	sig := txn.Signatures[0]
	txnBytes := txn.Marshal()

	config := struct {
		Encoding            string `json:"encoding"`
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment"`
	}{
		Encoding:            "base64",
		SkipPreflight:       false,
		PreflightCommitment: commitment.Commitment,
	}

	var sigStr string
	err := c.call(&sigStr, "sendTransaction", base64.StdEncoding.EncodeToString(txnBytes), config)
	if err == nil {
		return sig, nil
	}

	jsonRPCErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return sig, errors.Wrapf(err, "sendTransaction() failed to send request")
	}

	txResult, parseErr := ParseRPCError(jsonRPCErr)
	if parseErr != nil || txResult == nil {
		return sig, err
	}

	c.log.WithField("signature", base58.Encode(sig[:])).WithError(txResult).Debug("transaction rejected")
	return sig, txResult
}

func (c *client) GetSignatureStatus(sig Signature, commitment Commitment) (*SignatureStatus, error) {
	var s *SignatureStatus
	errConfirmationsNotReached := errors.New("confirmations not reached")
	_, err := retry.Retry(
		func() error {
			statuses, err := c.GetSignatureStatuses([]Signature{sig})
			if err != nil {
				return err
			}

			s = statuses[0]
			if s == nil {
				return ErrSignatureNotFound
			}

			if s.ErrorResult != nil {
				return nil
			}

			switch commitment {
			case CommitmentProcessed:
				return nil
			case CommitmentConfirmed:
				if s.Confirmed() {
					return nil
				}
			case CommitmentFinalized:
				if s.Finalized() {
					return nil
				}
			}

			return errConfirmationsNotReached
		},
		retry.Constant(PollRate),
		retry.RetriableErrors(ErrSignatureNotFound, errConfirmationsNotReached),
		retry.Limit(sigStatusPollLimit),
	)

	return s, err
}

func (c *client) GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error) {
	b58Sigs := make([]string, len(sigs))
	for i := range sigs {
		b58Sigs[i] = base58.Encode(sigs[i][:])
	}

	req := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	type signatureStatus struct {
		Slot               uint64          `json:"slot"`
		Confirmations      *int            `json:"confirmations"`
		ConfirmationStatus string          `json:"confirmationStatus"`
		Err                json.RawMessage `json:"err"`
	}

	type rpcResp struct {
		Value []*signatureStatus `json:"value"`
	}

	var resp rpcResp
	if err := c.call(&resp, "getSignatureStatuses", b58Sigs, req); err != nil {
		return nil, err
	}

	statuses := make([]*SignatureStatus, len(sigs))
	for i, v := range resp.Value {
		if v == nil || i >= len(statuses) {
			continue
		}

		statuses[i] = &SignatureStatus{
			Confirmations:      v.Confirmations,
			ConfirmationStatus: v.ConfirmationStatus,
			Slot:               v.Slot,
		}

		if len(v.Err) > 0 && !bytes.Equal(v.Err, []byte("null")) {
			var txError interface{}
			err := json.NewDecoder(bytes.NewBuffer(v.Err)).Decode(&txError)
			if err != nil {
				return nil, errors.Wrap(err, "failed to parse transaction result")
			}

			statuses[i].ErrorResult, err = ParseTransactionError(txError)
			if err != nil {
				return nil, errors.Wrap(err, "failed to parse transaction result")
			}
		}
	}

	return statuses, nil
}

// accountsConfig is the config object of the account reading methods.
// Account data is always requested as base64.
type accountsConfig struct {
	Commitment string      `json:"commitment"`
	Encoding   string      `json:"encoding"`
	Filters    []rpcFilter `json:"filters,omitempty"`
}

type rpcFilter struct {
	DataSize *uint64    `json:"dataSize,omitempty"`
	Memcmp   *rpcMemcmp `json:"memcmp,omitempty"`
}

type rpcMemcmp struct {
	Offset uint   `json:"offset"`
	Bytes  string `json:"bytes"`
}

func newAccountsConfig(commitment Commitment) accountsConfig {
	return accountsConfig{Commitment: commitment.Commitment, Encoding: "base64"}
}

func toKeyedAccounts(raw []rawKeyedAccount) ([]KeyedAccountInfo, error) {
	accounts := make([]KeyedAccountInfo, len(raw))
	for i := range raw {
		account, err := raw[i].toKeyedAccountInfo()
		if err != nil {
			return nil, err
		}
		accounts[i] = account
	}
	return accounts, nil
}

func chunkKeys(keys []ed25519.PublicKey, size int) [][]ed25519.PublicKey {
	var chunks [][]ed25519.PublicKey
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
