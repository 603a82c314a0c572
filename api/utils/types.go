// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/degenscore/stakepool/degen"
)

// ParseAddress parses an address taken from a request.
func ParseAddress(s string) (degen.Address, error) {
	addr, err := degen.ParseAddress(s)
	if err != nil {
		return degen.Address{}, BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

// ParseUint64Query parses an optional uint64 query value, returning def if absent.
func ParseUint64Query(s, name string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

// ParseInt64Query parses an optional int64 query value, returning def if absent.
func ParseInt64Query(s, name string, def int64) (int64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}
