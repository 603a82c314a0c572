// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/degenscore/stakepool/staking/reverts"
)

// maxBodySize bounds request bodies, every request type here is a few fields.
const maxBodySize = 4 << 10

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// BadRequest marks cause as the client's fault.
func BadRequest(cause error) error {
	return &httpError{cause, http.StatusBadRequest}
}

// NotFound marks cause as a missing resource.
func NotFound(cause error) error {
	return &httpError{cause, http.StatusNotFound}
}

// StatusOf returns the response status for a handler error. A rejected
// staking operation is a bad request, anything unclassified is internal.
func StatusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	if reverts.IsRevertErr(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HandlerFunc is an http.HandlerFunc that returns an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts f, responding errors as plain text with StatusOf.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			http.Error(w, err.Error(), StatusOf(err))
		}
	}
}

const JSONContentType = "application/json; charset=utf-8"

// ParseJSON decodes a request body in strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r, maxBodySize))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}
