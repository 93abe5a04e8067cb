package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

// Transaction and instruction error keys reported by the runtime. Only the
// keys callers branch on are named; any other key parses all the same.
//
// Reference: https://github.com/solana-labs/solana/blob/fc2bf2d3b669d1c6655ae48b0a05f470938f3676/sdk/src/transaction/mod.rs#L37
const (
	TransactionErrorAccountNotFound         = "AccountNotFound"
	TransactionErrorBlockhashNotFound       = "BlockhashNotFound"
	TransactionErrorDuplicateSignature      = "DuplicateSignature"
	TransactionErrorInsufficientFundsForFee = "InsufficientFundsForFee"
	TransactionErrorInstructionError        = "InstructionError"

	InstructionErrorCustom                   = "Custom"
	InstructionErrorInvalidArgument          = "InvalidArgument"
	InstructionErrorMissingRequiredSignature = "MissingRequiredSignature"
)

// CustomError is a program specific error code.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", uint32(c))
}

// TransactionError is the "err" value of a failed transaction, either a bare
// key such as "BlockhashNotFound" or {"InstructionError":[2,{"Custom":3}]}.
type TransactionError struct {
	Key         string
	Instruction *InstructionError
}

func (e *TransactionError) Error() string {
	if e.Instruction != nil {
		return e.Instruction.Error()
	}
	return e.Key
}

// CustomError returns the program error code of a failed instruction.
func (e *TransactionError) CustomError() (CustomError, bool) {
	if e.Instruction == nil || e.Instruction.Code == nil {
		return 0, false
	}
	return *e.Instruction.Code, true
}

// InstructionError is the failure of one instruction in a transaction.
type InstructionError struct {
	Index int
	Key   string
	// Code is only set when Key is InstructionErrorCustom.
	Code *CustomError
}

func (e *InstructionError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("error processing instruction %d: %v", e.Index, *e.Code)
	}
	return fmt.Sprintf("error processing instruction %d: %s", e.Index, e.Key)
}

// ParseRPCError extracts the transaction error from a failed RPC call, such
// as a sendTransaction preflight. It returns nil when there is none.
func ParseRPCError(err *jsonrpc.RPCError) (*TransactionError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected rpc error data %T", err.Data)
	}
	return ParseTransactionError(data["err"])
}

// ParseTransactionError parses a decoded JSON transaction error. It returns
// nil for a nil value.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &TransactionError{Key: v}, nil
	case map[string]interface{}:
		key, value, err := singleEntry(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid transaction error")
		}

		txErr := &TransactionError{Key: key}
		if key == TransactionErrorInstructionError {
			if txErr.Instruction, err = parseInstructionError(value); err != nil {
				return nil, errors.Wrap(err, "invalid instruction error")
			}
		}
		return txErr, nil
	default:
		return nil, errors.Errorf("unexpected transaction error %T", raw)
	}
}

// parseInstructionError parses the [index, error] tuple of an
// InstructionError, where error is a key or {"Custom": code}.
func parseInstructionError(raw interface{}) (*InstructionError, error) {
	tuple, ok := raw.([]interface{})
	if !ok || len(tuple) != 2 {
		return nil, errors.Errorf("expected an [index, error] tuple, got %v", raw)
	}

	index, err := parseJSONNumber(tuple[0])
	if err != nil {
		return nil, err
	}

	switch v := tuple[1].(type) {
	case string:
		return &InstructionError{Index: index, Key: v}, nil
	case map[string]interface{}:
		key, value, err := singleEntry(v)
		if err != nil {
			return nil, err
		}

		ie := &InstructionError{Index: index, Key: key}
		if key == InstructionErrorCustom {
			code, err := parseJSONNumber(value)
			if err != nil {
				return nil, err
			}
			custom := CustomError(code)
			ie.Code = &custom
		}
		return ie, nil
	default:
		return nil, errors.Errorf("unexpected instruction error %T", tuple[1])
	}
}

func singleEntry(m map[string]interface{}) (string, interface{}, error) {
	if len(m) != 1 {
		return "", nil, errors.Errorf("expected a single entry, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

func parseJSONNumber(v interface{}) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), errors.Wrapf(err, "non integer value %v", v)
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return int(i), errors.Wrapf(err, "non integer value %v", v)
	default:
		return 0, errors.Errorf("non numeric value %v", v)
	}
}
