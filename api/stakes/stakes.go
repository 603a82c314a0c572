// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/api/utils"
	"github.com/degenscore/stakepool/staking"
)

type Stakes struct {
	staker *staking.Staker
}

func New(staker *staking.Staker) *Stakes {
	return &Stakes{staker}
}

func (s *Stakes) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.staker.Deposit(owner, uint64(body.Amount), body.LockSeconds); err != nil {
		return err
	}
	entry, err := s.staker.Stake(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStake(entry))
}

func (s *Stakes) handleClaim(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	payout, err := s.staker.Claim(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ClaimResult{Payout: math.HexOrDecimal64(payout)})
}

func (s *Stakes) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	payout, penalty, err := s.staker.Withdraw(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &WithdrawResult{
		Payout:  math.HexOrDecimal64(payout),
		Penalty: math.HexOrDecimal64(penalty),
	})
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	entry, err := s.staker.Stake(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStake(entry))
}

func (s *Stakes) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	pending, err := s.staker.PendingReward(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Pending{Owner: &owner, Pending: math.HexOrDecimal64(pending)})
}

func (s *Stakes) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	agg, err := s.staker.Pool()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(agg))
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/pool").
		Methods(http.MethodGet).
		Name("staking_get_pool").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("staking_get_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/{owner}/pending").
		Methods(http.MethodGet).
		Name("staking_get_pending").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPending))
	sub.Path("/{owner}/deposit").
		Methods(http.MethodPost).
		Name("staking_post_deposit").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/{owner}/claim").
		Methods(http.MethodPost).
		Name("staking_post_claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
	sub.Path("/{owner}/withdraw").
		Methods(http.MethodPost).
		Name("staking_post_withdraw").
		HandlerFunc(utils.WrapHandlerFunc(s.handleWithdraw))
}
