package novaposhta

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureFrom_LogicalError(t *testing.T) {
	raw := json.RawMessage(`{"success":false,"errors":["Recipient is not specified"]}`)
	res := failureFrom(&APIError{
		StatusCode: http.StatusOK,
		Message:    "Recipient is not specified",
		Logical:    true,
		Raw:        raw,
	})

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Recipient is not specified", res.Error)
	assert.Equal(t, raw, res.Raw)
}

func TestFailureFrom_InvalidKeyBecomesUnauthorized(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		code int
	}{
		{"exact wording", "API key 123abc is invalid", http.StatusUnauthorized},
		{"uppercase invalid", "API key expired: INVALID", http.StatusUnauthorized},
		{"invalid without key mention", "invalid recipient ref", http.StatusBadRequest},
		{"key mention without invalid", "API key quota exceeded", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := failureFrom(&APIError{Message: tc.msg, Logical: true})
			assert.Equal(t, tc.code, res.StatusCode)
		})
	}
}

func TestFailureFrom_TransportError(t *testing.T) {
	res := failureFrom(&APIError{
		StatusCode: http.StatusBadGateway,
		Message:    "Address/getCities: Bad Gateway",
	})

	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, "Address/getCities: Bad Gateway", res.Error)
	assert.Empty(t, res.Raw)
}

func TestFailureFrom_ZeroStatusDefaultsTo400(t *testing.T) {
	res := failureFrom(&APIError{Message: "no response"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestFailureFrom_PlainError(t *testing.T) {
	res := failureFrom(errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "dial tcp: connection refused", res.Error)
}

func TestCheckList(t *testing.T) {
	res, ok := checkList(nil, 3, "nothing found")
	require.True(t, ok)
	assert.True(t, res.Status)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, ok = checkList(nil, 0, "nothing found")
	require.False(t, ok)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "nothing found", res.Error)

	res, ok = checkList(&APIError{StatusCode: http.StatusBadGateway, Message: "boom"}, 0, "nothing found")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestCeilPages(t *testing.T) {
	assert.Equal(t, 0, ceilPages(0, 50))
	assert.Equal(t, 1, ceilPages(1, 50))
	assert.Equal(t, 1, ceilPages(50, 50))
	assert.Equal(t, 2, ceilPages(51, 50))
	assert.Equal(t, 3, ceilPages(120, 50))
	// A non-positive page size is clamped to one.
	assert.Equal(t, 7, ceilPages(7, 0))
}

func TestJoinMessages(t *testing.T) {
	assert.Equal(t, "a; b", joinMessages([]string{"a", "b"}, []string{"code"}))
	assert.Equal(t, "code", joinMessages(nil, []string{"code"}))
	assert.Equal(t, "API error", joinMessages(nil, nil))
}

func TestParseTotalCount(t *testing.T) {
	assert.Equal(t, 12, parseTotalCount(json.RawMessage(`{"totalCount": 12}`)))
	assert.Equal(t, 12, parseTotalCount(json.RawMessage(`{"totalCount": "12"}`)))
	assert.Zero(t, parseTotalCount(nil))
	assert.Zero(t, parseTotalCount(json.RawMessage(`[]`)))
	assert.Zero(t, parseTotalCount(json.RawMessage(`{"totalCount": "many"}`)))
}

func TestDeliveryPaymentMethodIsFixed(t *testing.T) {
	d := Delivery{Payer: PayerRecipient}
	assert.Equal(t, PaymentNonCash, d.PaymentMethod())
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "oops", (&APIError{Message: "oops", Logical: true}).Error())
	assert.Equal(t, "HTTP 502: bad", (&APIError{StatusCode: 502, Message: "bad"}).Error())
	assert.Equal(t, "no reply", (&APIError{Message: "no reply"}).Error())
}
