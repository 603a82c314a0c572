// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/kv"
	"github.com/degenscore/stakepool/state"
)

// Bucket holds one entry per owner, keyed by the owner address.
const Bucket = kv.Bucket("stake.")

// Service reads and writes stake entries in a state.
type Service struct {
	st *state.State
}

func New(st *state.State) *Service {
	return &Service{st: st}
}

// Get returns the entry of owner. An owner that never deposited gets a
// zero entry, never nil.
func (s *Service) Get(owner degen.Address) (*Entry, error) {
	var b body
	ok, err := s.st.DecodeValue(Bucket.Key(owner.Bytes()), &b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake entry")
	}
	if !ok {
		return &Entry{Owner: owner}, nil
	}
	return b.entry(owner), nil
}

// Set stores the entry under its owner.
func (s *Service) Set(e *Entry) error {
	if err := s.st.EncodeValue(Bucket.Key(e.Owner.Bytes()), toBody(e)); err != nil {
		return errors.Wrap(err, "failed to set stake entry")
	}
	return nil
}

// Iterate calls fn for every stored entry in owner order until fn returns false.
func (s *Service) Iterate(fn func(e *Entry) bool) error {
	var decodeErr error
	err := s.st.Iterate(Bucket.Range(), func(key, val []byte) bool {
		var b body
		if err := rlp.DecodeBytes(val, &b); err != nil {
			decodeErr = err
			return false
		}
		return fn(b.entry(degen.BytesToAddress(key[len(Bucket):])))
	})
	if err == nil {
		err = decodeErr
	}
	return errors.Wrap(err, "failed to iterate stake entries")
}

// Owners returns owners of every entry ever created.
func (s *Service) Owners() ([]degen.Address, error) {
	var owners []degen.Address
	err := s.Iterate(func(e *Entry) bool {
		owners = append(owners, e.Owner)
		return true
	})
	return owners, err
}
