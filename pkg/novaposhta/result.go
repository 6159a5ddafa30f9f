package novaposhta

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Result is the uniform envelope every operation returns. Failures are
// values, never Go errors: transport failures, upstream-reported failures
// and local precondition failures all land here with the same status-code
// vocabulary so callers can branch uniformly. A failed envelope carries
// no resource payload beyond Raw.
type Result struct {
	Status     bool            `json:"status"`
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Status
}

// PageInfo is the pagination metadata attached to mapped list results.
type PageInfo struct {
	Total       int `json:"total,omitempty"`
	TotalPages  int `json:"total_pages,omitempty"`
	TotalInPage int `json:"total_in_page,omitempty"`
	CurrentPage int `json:"current_page,omitempty"`
}

// CityResult is the envelope returned by FindCityByName.
type CityResult struct {
	Result
	PageInfo
	Cities []City `json:"cities,omitempty"`
}

// WarehouseResult is the envelope returned by FindWarehouseInCity.
// Exactly one of Warehouse and Warehouses is populated on success: the
// upstream collapses to a single object when it reports at most one
// match, and to a list otherwise. Callers branch on which field is set.
type WarehouseResult struct {
	Result
	PageInfo
	Warehouse  *Warehouse  `json:"warehouse,omitempty"`
	Warehouses []Warehouse `json:"warehouses,omitempty"`
}

// AgentsResult is the envelope returned by FindAgentsByProperty.
type AgentsResult struct {
	Result
	Agents []CounterpartyRecord `json:"agents,omitempty"`
	Total  int                  `json:"total,omitempty"`
}

// SendersResult is the envelope returned by GetSenderData.
type SendersResult struct {
	Result
	Senders []SenderRecord `json:"senders,omitempty"`
	Total   int            `json:"total,omitempty"`
}

// CallResult is the envelope for operations that forward the upstream
// reply unchanged: contact and counterparty writes, waybill save, update
// and delete.
type CallResult struct {
	Result
	Data json.RawMessage `json:"data,omitempty"`
	Info json.RawMessage `json:"info,omitempty"`
}

// TrackingResult is the envelope returned by WaybillStatus.
type TrackingResult struct {
	Result
	Document *TrackingDocument `json:"document,omitempty"`
}

// DocumentResult is the envelope returned by PrintWaybillDoc. Note the
// keys: this one reply is keyed on success with the raw HTTP status,
// diverging from every other operation's envelope. The divergence is part
// of the established contract and is kept as a distinct type instead of
// being folded into Result.
type DocumentResult struct {
	Success    bool      `json:"success"`
	HTTPStatus int       `json:"status"`
	Error      string    `json:"error,omitempty"`
	Document   *Document `json:"document,omitempty"`
}

// ============================================================================
// Normalization policy
// ============================================================================

// okResult is the success envelope shared by every operation.
func okResult() Result {
	return Result{Status: true, StatusCode: http.StatusOK}
}

// notFound synthesizes the domain not-found failure for empty list
// replies.
func notFound(msg string) Result {
	return Result{StatusCode: http.StatusNotFound, Error: msg}
}

// badRequest synthesizes a local precondition failure. It shares the 400
// vocabulary with transport-derived failures on purpose.
func badRequest(msg string) Result {
	return Result{StatusCode: http.StatusBadRequest, Error: msg}
}

// failureFrom converts a wire-layer error into a failure envelope.
// Upstream logical failures are sniffed for the invalid-key wording to
// distinguish authentication failures; this is textual best-effort, the
// upstream exposes no structured code for it.
func failureFrom(err error) Result {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Logical {
			code := http.StatusBadRequest
			if strings.Contains(apiErr.Message, "API key") &&
				strings.Contains(strings.ToLower(apiErr.Message), "invalid") {
				code = http.StatusUnauthorized
			}
			return Result{StatusCode: code, Error: apiErr.Message, Raw: apiErr.Raw}
		}
		code := apiErr.StatusCode
		if code == 0 {
			code = http.StatusBadRequest
		}
		return Result{StatusCode: code, Error: apiErr.Message}
	}
	return Result{StatusCode: http.StatusBadRequest, Error: err.Error()}
}

// checkList is the shared decision point behind every list-producing
// operation: wire failures pass through classified, an empty list becomes
// the caller's not-found failure, anything else succeeds.
func checkList(err error, count int, notFoundMsg string) (Result, bool) {
	if err != nil {
		return failureFrom(err), false
	}
	if count == 0 {
		return notFound(notFoundMsg), false
	}
	return okResult(), true
}

// ceilPages derives the page count with a page-size floor of one.
func ceilPages(total, size int) int {
	if size < 1 {
		size = 1
	}
	return (total + size - 1) / size
}
