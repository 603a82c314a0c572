// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenscore/stakepool/staking/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"wrapped bad request", pkgerrors.WithMessage(BadRequest(errors.New("bad")), "ctx"), http.StatusBadRequest},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound},
		{"revert", reverts.New(reverts.NothingStaked, ""), http.StatusBadRequest},
		{"wrapped revert", pkgerrors.WithMessage(reverts.New(reverts.InvalidAmount, ""), "deposit"), http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		LockSeconds int64 `json:"lockSeconds"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"lockSeconds":2592000}`), &v))
	assert.Equal(t, int64(2592000), v.LockSeconds)

	assert.Error(t, ParseJSON(strings.NewReader(`{"lockSeconds":1,"extra":1}`), &v))
	assert.Error(t, ParseJSON(strings.NewReader(``), &v))

	// oversized bodies are cut and fail to decode
	big := `{"lockSeconds":1` + strings.Repeat(" ", maxBodySize) + `}`
	assert.Error(t, ParseJSON(strings.NewReader(big), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, map[string]uint64{"payout": 800}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"payout":800}`, rec.Body.String())
}

func TestParseQuery(t *testing.T) {
	v, err := ParseUint64Query("", "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v)

	_, err = ParseUint64Query("x", "limit", 10)
	var he *httpError
	assert.True(t, errors.As(err, &he))

	i, err := ParseInt64Query("-5", "from", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), i)

	_, err = ParseAddress("0x12")
	assert.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.status)
}
