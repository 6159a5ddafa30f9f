package novaposhta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the fixed JSON API endpoint.
	DefaultBaseURL = "https://api.novaposhta.ua/v2.0/json/"

	// DefaultDocumentBaseURL is the host serving printable documents.
	DefaultDocumentBaseURL = "https://my.novaposhta.ua"

	// DefaultTimeout is applied uniformly to every request.
	DefaultTimeout = 20 * time.Second
)

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	baseURL         string
	documentBaseURL string
	apiKey          string
	httpClient      *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL         string
	DocumentBaseURL string
	APIKey          string
	Timeout         time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	documentBaseURL := cfg.DocumentBaseURL
	if documentBaseURL == "" {
		documentBaseURL = DefaultDocumentBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &HTTPAPIClient{
		baseURL:         baseURL,
		documentBaseURL: documentBaseURL,
		apiKey:          cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ============================================================================
// Wire envelope
// ============================================================================

// envelope is the request body every JSON call posts to the endpoint.
type envelope struct {
	APIKey           string `json:"apiKey"`
	ModelName        string `json:"modelName"`
	CalledMethod     string `json:"calledMethod"`
	MethodProperties any    `json:"methodProperties"`
}

// apiResponse is the upstream reply shape shared by every JSON call.
type apiResponse struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Info         json.RawMessage `json:"info"`
	Errors       []string        `json:"errors"`
	MessageCodes []string        `json:"messageCodes"`
}

// call posts one envelope and classifies the reply. A non-2xx status or a
// body-level success=false both surface as *APIError; the latter keeps
// the unparsed body for the caller.
func (c *HTTPAPIClient) call(ctx context.Context, model, method string, props any) (*apiResponse, error) {
	if props == nil {
		props = struct{}{}
	}

	body, err := json.Marshal(envelope{
		APIKey:           c.apiKey,
		ModelName:        model,
		CalledMethod:     method,
		MethodProperties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s/%s: %s", model, method, http.StatusText(resp.StatusCode)),
		}
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !parsed.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    joinMessages(parsed.Errors, parsed.MessageCodes),
			Logical:    true,
			Raw:        raw,
		}
	}

	return &parsed, nil
}

// joinMessages flattens upstream error and message codes into one line,
// preferring human-readable errors over codes.
func joinMessages(errors, codes []string) string {
	if msg := strings.Join(errors, "; "); msg != "" {
		return msg
	}
	if msg := strings.Join(codes, "; "); msg != "" {
		return msg
	}
	return "API error"
}

// listInfo is the paging block attached to list replies.
type listInfo struct {
	TotalCount json.Number `json:"totalCount"`
}

// parseTotalCount extracts totalCount from the info block, tolerating an
// absent or non-object info payload.
func parseTotalCount(info json.RawMessage) int {
	var li listInfo
	if len(info) == 0 || json.Unmarshal(info, &li) != nil {
		return 0
	}
	n, err := li.TotalCount.Int64()
	if err != nil {
		return 0
	}
	return int(n)
}

// ============================================================================
// API Implementation
// ============================================================================

// SearchCities queries cities by substring.
func (c *HTTPAPIClient) SearchCities(ctx context.Context, req *SearchCitiesRequest) (*SearchCitiesResponse, error) {
	resp, err := c.call(ctx, "Address", "getCities", req)
	if err != nil {
		return nil, err
	}

	var cities []CityRecord
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &cities); err != nil {
			return nil, fmt.Errorf("failed to decode cities: %w", err)
		}
	}

	return &SearchCitiesResponse{
		Cities:     cities,
		TotalCount: parseTotalCount(resp.Info),
	}, nil
}

// SearchWarehouses queries warehouses with optional filters.
func (c *HTTPAPIClient) SearchWarehouses(ctx context.Context, req *SearchWarehousesRequest) (*SearchWarehousesResponse, error) {
	resp, err := c.call(ctx, "AddressGeneral", "getWarehouses", req)
	if err != nil {
		return nil, err
	}

	var warehouses []WarehouseRecord
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &warehouses); err != nil {
			return nil, fmt.Errorf("failed to decode warehouses: %w", err)
		}
	}

	return &SearchWarehousesResponse{
		Warehouses: warehouses,
		TotalCount: parseTotalCount(resp.Info),
	}, nil
}

// ListCounterparties lists counterparties by property.
func (c *HTTPAPIClient) ListCounterparties(ctx context.Context, req *ListCounterpartiesRequest) (*ListCounterpartiesResponse, error) {
	resp, err := c.call(ctx, "Counterparty", "getCounterparties", req)
	if err != nil {
		return nil, err
	}

	var counterparties []CounterpartyRecord
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &counterparties); err != nil {
			return nil, fmt.Errorf("failed to decode counterparties: %w", err)
		}
	}

	return &ListCounterpartiesResponse{
		Counterparties: counterparties,
		TotalCount:     parseTotalCount(resp.Info),
	}, nil
}

// ListContactPersons lists the contact persons of one counterparty.
func (c *HTTPAPIClient) ListContactPersons(ctx context.Context, counterpartyRef string) (*ListContactPersonsResponse, error) {
	props := struct {
		Ref string `json:"Ref"`
	}{Ref: counterpartyRef}

	resp, err := c.call(ctx, "Counterparty", "getCounterpartyContactPersons", props)
	if err != nil {
		return nil, err
	}

	var contacts []ContactPersonRecord
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &contacts); err != nil {
			return nil, fmt.Errorf("failed to decode contact persons: %w", err)
		}
	}

	return &ListContactPersonsResponse{Contacts: contacts}, nil
}

// SaveCounterparty registers a counterparty with its contact.
func (c *HTTPAPIClient) SaveCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error) {
	return c.rawCall(ctx, "Counterparty", "save", req)
}

// UpdateCounterparty updates an existing counterparty.
func (c *HTTPAPIClient) UpdateCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error) {
	return c.rawCall(ctx, "Counterparty", "update", req)
}

// UpdateContactPerson updates a counterparty's contact person.
func (c *HTTPAPIClient) UpdateContactPerson(ctx context.Context, req *ContactPersonProps) (*RawResponse, error) {
	return c.rawCall(ctx, "ContactPerson", "update", req)
}

// DeleteContactPerson removes a contact person.
func (c *HTTPAPIClient) DeleteContactPerson(ctx context.Context, contactRef string) (*RawResponse, error) {
	props := struct {
		Ref string `json:"Ref"`
	}{Ref: contactRef}
	return c.rawCall(ctx, "ContactPerson", "delete", props)
}

// ListScanSheets lists registry sheets.
func (c *HTTPAPIClient) ListScanSheets(ctx context.Context) (*RawResponse, error) {
	return c.rawCall(ctx, "ScanSheet", "getScanSheetList", nil)
}

// SaveDocument creates a waybill.
func (c *HTTPAPIClient) SaveDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error) {
	return c.rawCall(ctx, "InternetDocument", "save", req)
}

// UpdateDocument updates a waybill.
func (c *HTTPAPIClient) UpdateDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error) {
	return c.rawCall(ctx, "InternetDocument", "update", req)
}

// DeleteDocument deletes a waybill.
func (c *HTTPAPIClient) DeleteDocument(ctx context.Context, documentRef string) (*RawResponse, error) {
	props := struct {
		DocumentRefs string `json:"DocumentRefs"`
	}{DocumentRefs: documentRef}
	return c.rawCall(ctx, "InternetDocument", "delete", props)
}

// TrackDocuments fetches tracking records for waybill numbers.
func (c *HTTPAPIClient) TrackDocuments(ctx context.Context, numbers []string) (*TrackDocumentsResponse, error) {
	type docRef struct {
		DocumentNumber string `json:"DocumentNumber"`
	}
	refs := make([]docRef, len(numbers))
	for i, n := range numbers {
		refs[i] = docRef{DocumentNumber: n}
	}
	props := struct {
		Documents []docRef `json:"Documents"`
	}{Documents: refs}

	resp, err := c.call(ctx, "TrackingDocument", "getStatusDocuments", props)
	if err != nil {
		return nil, err
	}

	var docs []TrackingRecord
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode tracking records: %w", err)
		}
	}

	return &TrackDocumentsResponse{Documents: docs}, nil
}

// rawCall issues one JSON call and forwards the data payload unchanged.
func (c *HTTPAPIClient) rawCall(ctx context.Context, model, method string, props any) (*RawResponse, error) {
	resp, err := c.call(ctx, model, method, props)
	if err != nil {
		return nil, err
	}
	return &RawResponse{Data: resp.Data, Info: resp.Info}, nil
}

// PrintDocument downloads the printable waybill document. The API key
// travels in the URL path, as the document host requires.
func (c *HTTPAPIClient) PrintDocument(ctx context.Context, documentRef string) (*PrintDocumentResponse, error) {
	url := fmt.Sprintf("%s/orders/printDocument/orders[]/%s/type/pdf/apiKey/%s",
		c.documentBaseURL, documentRef, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("printDocument: %s", http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &PrintDocumentResponse{
		StatusCode:         resp.StatusCode,
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		ContentType:        resp.Header.Get("Content-Type"),
		Body:               body,
	}, nil
}

var _ APIClient = (*HTTPAPIClient)(nil)
