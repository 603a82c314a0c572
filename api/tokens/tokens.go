// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/api/utils"
	"github.com/degenscore/stakepool/state"
	"github.com/degenscore/stakepool/token"
)

type Tokens struct {
	store *state.Store
}

func New(store *state.Store) *Tokens {
	return &Tokens{store}
}

func (t *Tokens) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	var cfg *token.Config
	err := t.store.View(func(st *state.State) (err error) {
		cfg, err = token.New(st).Config()
		return
	})
	if err != nil {
		if errors.Is(err, token.ErrNotInitialized) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Supply{
		Supply:    math.HexOrDecimal64(cfg.Supply),
		MaxSupply: math.HexOrDecimal64(cfg.MaxSupply),
		Decimals:  cfg.Decimals,
		Paused:    cfg.Paused,
	})
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	var bal uint64
	err = t.store.View(func(st *state.State) (err error) {
		bal, err = token.New(st).BalanceOf(addr)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Address: &addr, Balance: math.HexOrDecimal64(bal)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/supply").
		Methods(http.MethodGet).
		Name("tokens_get_supply").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetSupply))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("tokens_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
}
