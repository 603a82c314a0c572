// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the credit ledger: balances, minting under a supply cap,
// and plain transfers.
package token

import (
	"math/bits"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/kv"
	"github.com/degenscore/stakepool/state"
)

var (
	configKey     = degen.Blake2b([]byte("token-config")).Bytes()
	balanceBucket = kv.Bucket("token.balance.")
)

var (
	ErrNotInitialized      = errors.New("token not initialized")
	ErrAlreadyInitialized  = errors.New("token already initialized")
	ErrPaused              = errors.New("program is paused")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrExceedsMaxSupply    = errors.New("exceeds maximum supply")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Config is the token wide record.
type Config struct {
	Authority degen.Address
	Decimals  uint8
	MaxSupply uint64
	Supply    uint64 // circulating, grows by minting only
	Paused    bool
}

// Ledger reads and writes balances in a state.
type Ledger struct {
	st *state.State
}

func New(st *state.State) *Ledger {
	return &Ledger{st: st}
}

// Config returns the token config.
func (l *Ledger) Config() (*Config, error) {
	var cfg Config
	ok, err := l.st.DecodeValue(configKey, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token config")
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return &cfg, nil
}

// Initialize sets the token up once.
func (l *Ledger) Initialize(authority degen.Address, decimals uint8, maxSupply uint64) error {
	ok, err := l.st.Has(configKey)
	if err != nil {
		return errors.Wrap(err, "failed to get token config")
	}
	if ok {
		return ErrAlreadyInitialized
	}
	return l.setConfig(&Config{
		Authority: authority,
		Decimals:  decimals,
		MaxSupply: maxSupply,
	})
}

// Mint issues amount to the given account. Only the authority may mint.
func (l *Ledger) Mint(authority, to degen.Address, amount uint64) error {
	cfg, err := l.Config()
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrPaused
	}
	if authority != cfg.Authority {
		return ErrUnauthorized
	}
	supply, carry := bits.Add64(cfg.Supply, amount, 0)
	if carry != 0 || supply > cfg.MaxSupply {
		return ErrExceedsMaxSupply
	}

	bal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	cfg.Supply = supply
	if err := l.setConfig(cfg); err != nil {
		return err
	}
	// supply bounds every balance, no overflow here
	return l.setBalance(to, bal+amount)
}

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(from, to degen.Address, amount uint64) error {
	cfg, err := l.Config()
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrPaused
	}

	fromBal, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.WithMessagef(ErrInsufficientBalance, "%v has %d, needs %d", from, fromBal, amount)
	}
	if amount == 0 || from == to {
		return nil
	}

	toBal, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := l.setBalance(from, fromBal-amount); err != nil {
		return err
	}
	return l.setBalance(to, toBal+amount)
}

// BalanceOf returns the balance of addr.
func (l *Ledger) BalanceOf(addr degen.Address) (uint64, error) {
	var bal uint64
	if _, err := l.st.DecodeValue(balanceBucket.Key(addr.Bytes()), &bal); err != nil {
		return 0, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

// Supply returns the circulating supply.
func (l *Ledger) Supply() (uint64, error) {
	cfg, err := l.Config()
	if err != nil {
		return 0, err
	}
	return cfg.Supply, nil
}

// SetPaused halts or resumes minting and transfers.
func (l *Ledger) SetPaused(authority degen.Address, paused bool) error {
	cfg, err := l.Config()
	if err != nil {
		return err
	}
	if authority != cfg.Authority {
		return ErrUnauthorized
	}
	cfg.Paused = paused
	return l.setConfig(cfg)
}

// Holders calls fn for every account with a non-zero balance.
func (l *Ledger) Holders(fn func(addr degen.Address, balance uint64) bool) error {
	var decodeErr error
	err := l.st.Iterate(balanceBucket.Range(), func(key, val []byte) bool {
		var bal uint64
		if decodeErr = rlp.DecodeBytes(val, &bal); decodeErr != nil {
			return false
		}
		return fn(degen.BytesToAddress(key[len(balanceBucket):]), bal)
	})
	if err == nil {
		err = decodeErr
	}
	return errors.Wrap(err, "failed to iterate balances")
}

func (l *Ledger) setConfig(cfg *Config) error {
	return errors.Wrap(l.st.EncodeValue(configKey, cfg), "failed to set token config")
}

func (l *Ledger) setBalance(addr degen.Address, bal uint64) error {
	key := balanceBucket.Key(addr.Bytes())
	if bal == 0 {
		l.st.Delete(key)
		return nil
	}
	return errors.Wrap(l.st.EncodeValue(key, bal), "failed to set balance")
}
