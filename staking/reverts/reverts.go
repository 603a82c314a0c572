// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies a rejected staking operation.
type Kind uint8

const (
	Unknown Kind = iota
	InvalidAmount
	InvalidLockDuration
	NoYieldToClaim
	NothingStaked
	TransferFailed
	ReservedAccount
)

var kindNames = [...]string{
	Unknown:             "unknown",
	InvalidAmount:       "invalid amount",
	InvalidLockDuration: "invalid lock duration",
	NoYieldToClaim:      "no yield to claim",
	NothingStaked:       "nothing staked",
	TransferFailed:      "transfer failed",
	ReservedAccount:     "reserved account",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[Unknown]
}

// ErrRevert is a local validation failure. The operation that returned it
// left no trace in state.
type ErrRevert struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Wrap creates a revert of the given kind caused by err.
func Wrap(kind Kind, err error) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: err.Error(),
		cause:   err,
	}
}

func (e *ErrRevert) Error() string {
	if e.message == "" {
		return e.kind.String()
	}
	return e.kind.String() + ": " + e.message
}

func (e *ErrRevert) Kind() Kind { return e.kind }

// Cause returns the error wrapped by the revert, used by errors.Cause.
func (e *ErrRevert) Cause() error { return e.cause }

func (e *ErrRevert) Unwrap() error { return e.cause }

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the revert kind carried by err, Unknown if none.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return Unknown
}
