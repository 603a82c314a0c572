// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
	"github.com/degenscore/stakepool/state"
)

var keyAggregate = []byte("pool.aggregate")

var (
	ErrNotInitialized     = errors.New("pool not initialized")
	ErrAlreadyInitialized = errors.New("pool already initialized")
)

// Aggregate is the pool wide record.
type Aggregate struct {
	Authority         degen.Address
	RewardReserve     degen.Address // pays out yield
	Custody           degen.Address // holds staked principal
	TotalStaked       uint64
	TotalParticipants uint64
	PenaltyReserve    uint64 // only grows
}

// Service manages the pool aggregate.
type Service struct {
	st *state.State
}

func New(st *state.State) *Service {
	return &Service{st: st}
}

// Get returns the aggregate, ErrNotInitialized if the pool was never set up.
func (s *Service) Get() (*Aggregate, error) {
	var agg Aggregate
	ok, err := s.st.DecodeValue(keyAggregate, &agg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool aggregate")
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return &agg, nil
}

// Initialized returns whether Initialize has been done.
func (s *Service) Initialized() (bool, error) {
	return s.st.Has(keyAggregate)
}

// Initialize creates the aggregate once.
func (s *Service) Initialize(authority, rewardReserve, custody degen.Address) error {
	ok, err := s.Initialized()
	if err != nil {
		return errors.Wrap(err, "failed to get pool aggregate")
	}
	if ok {
		return ErrAlreadyInitialized
	}
	return s.set(&Aggregate{
		Authority:     authority,
		RewardReserve: rewardReserve,
		Custody:       custody,
	})
}

// ApplyDeposit adds amount to the total stake, counting a new participant if asked.
func (s *Service) ApplyDeposit(amount uint64, newParticipant bool) (*Aggregate, error) {
	agg, err := s.Get()
	if err != nil {
		return nil, err
	}
	staked, carry := bits.Add64(agg.TotalStaked, amount, 0)
	if carry != 0 {
		return nil, errors.New("total staked overflow")
	}
	agg.TotalStaked = staked
	if newParticipant {
		agg.TotalParticipants++
	}
	return agg, s.set(agg)
}

// ApplyWithdraw removes a participant holding amount and books penalty.
func (s *Service) ApplyWithdraw(amount, penalty uint64) (*Aggregate, error) {
	agg, err := s.Get()
	if err != nil {
		return nil, err
	}
	staked, borrow := bits.Sub64(agg.TotalStaked, amount, 0)
	if borrow != 0 {
		return nil, errors.New("total staked underflow")
	}
	if agg.TotalParticipants == 0 {
		return nil, errors.New("participant count underflow")
	}
	reserve, carry := bits.Add64(agg.PenaltyReserve, penalty, 0)
	if carry != 0 {
		return nil, errors.New("penalty reserve overflow")
	}
	agg.TotalStaked = staked
	agg.TotalParticipants--
	agg.PenaltyReserve = reserve
	return agg, s.set(agg)
}

func (s *Service) set(agg *Aggregate) error {
	if err := s.st.EncodeValue(keyAggregate, agg); err != nil {
		return errors.Wrap(err, "failed to set pool aggregate")
	}
	return nil
}
