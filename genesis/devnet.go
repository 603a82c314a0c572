// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/degenscore/stakepool/degen"
)

// DevAccount account for development.
type DevAccount struct {
	Address    degen.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for the devnet.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{degen.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet returns the genesis of the development network. The first
// three dev accounts act as authority, reward reserve and custody, the rest
// get 1,000,000 tokens each.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	gen := &Genesis{
		Authority:     accs[0].Address,
		RewardReserve: accs[1].Address,
		Custody:       accs[2].Address,
		Decimals:      degen.Decimals,
		MaxSupply:     degen.Tokens(1_000_000_000),
		RewardFunding: degen.Tokens(100_000_000),
	}
	for _, acc := range accs[3:] {
		gen.Allocations = append(gen.Allocations, Allocation{
			Address: acc.Address,
			Amount:  degen.Tokens(1_000_000),
		})
	}
	return gen
}
