package novaposhta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing and
// for running the client without carrier credentials.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnSearchCities        func(ctx context.Context, req *SearchCitiesRequest) (*SearchCitiesResponse, error)
	OnSearchWarehouses    func(ctx context.Context, req *SearchWarehousesRequest) (*SearchWarehousesResponse, error)
	OnListCounterparties  func(ctx context.Context, req *ListCounterpartiesRequest) (*ListCounterpartiesResponse, error)
	OnListContactPersons  func(ctx context.Context, counterpartyRef string) (*ListContactPersonsResponse, error)
	OnSaveCounterparty    func(ctx context.Context, req *CounterpartyProps) (*RawResponse, error)
	OnUpdateCounterparty  func(ctx context.Context, req *CounterpartyProps) (*RawResponse, error)
	OnUpdateContactPerson func(ctx context.Context, req *ContactPersonProps) (*RawResponse, error)
	OnDeleteContactPerson func(ctx context.Context, contactRef string) (*RawResponse, error)
	OnListScanSheets      func(ctx context.Context) (*RawResponse, error)
	OnSaveDocument        func(ctx context.Context, req *DocumentProps) (*RawResponse, error)
	OnUpdateDocument      func(ctx context.Context, req *DocumentProps) (*RawResponse, error)
	OnDeleteDocument      func(ctx context.Context, documentRef string) (*RawResponse, error)
	OnTrackDocuments      func(ctx context.Context, numbers []string) (*TrackDocumentsResponse, error)
	OnPrintDocument       func(ctx context.Context, documentRef string) (*PrintDocumentResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func (m *MockAPIClient) simulate() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return &APIError{
			StatusCode: http.StatusOK,
			Message:    "Simulated API error",
			Logical:    true,
			Raw:        json.RawMessage(`{"success":false,"errors":["Simulated API error"]}`),
		}
	}
	return nil
}

// SearchCities returns mock city records.
func (m *MockAPIClient) SearchCities(ctx context.Context, req *SearchCitiesRequest) (*SearchCitiesResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnSearchCities != nil {
		return m.OnSearchCities(ctx, req)
	}

	return &SearchCitiesResponse{
		Cities: []CityRecord{
			{
				Ref:                       "8d5a980d-391c-11dd-90d9-001a92567626",
				Description:               "Київ",
				AreaDescription:           "Київська",
				SettlementTypeDescription: "місто",
			},
			{
				Ref:                       "db5c88f5-391c-11dd-90d9-001a92567626",
				Description:               "Київець",
				AreaDescription:           "Львівська",
				SettlementTypeDescription: "село",
			},
		},
		TotalCount: 2,
	}, nil
}

// SearchWarehouses returns mock warehouse records.
func (m *MockAPIClient) SearchWarehouses(ctx context.Context, req *SearchWarehousesRequest) (*SearchWarehousesResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnSearchWarehouses != nil {
		return m.OnSearchWarehouses(ctx, req)
	}

	return &SearchWarehousesResponse{
		Warehouses: []WarehouseRecord{{
			Number:                "1",
			Ref:                   "1ec09d88-e1c2-11e3-8c4a-0050568002cf",
			Description:           "Відділення №1: вул. Пирогівський шлях, 135",
			WarehouseIndex:        "11/1",
			CityRef:               "8d5a980d-391c-11dd-90d9-001a92567626",
			CityDescription:       "Київ",
			PlaceMaxWeightAllowed: "1100",
			TotalMaxWeightAllowed: "0",
		}},
		TotalCount: 1,
	}, nil
}

// ListCounterparties returns mock counterparty records.
func (m *MockAPIClient) ListCounterparties(ctx context.Context, req *ListCounterpartiesRequest) (*ListCounterpartiesResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnListCounterparties != nil {
		return m.OnListCounterparties(ctx, req)
	}

	return &ListCounterpartiesResponse{
		Counterparties: []CounterpartyRecord{{
			Ref:              "np-agent-" + uuid.New().String()[:8],
			Description:      "Тестовий Відправник",
			CounterpartyType: string(CounterpartyPrivate),
			City:             "8d5a980d-391c-11dd-90d9-001a92567626",
			CityDescription:  "Київ",
		}},
		TotalCount: 1,
	}, nil
}

// ListContactPersons returns mock contact persons.
func (m *MockAPIClient) ListContactPersons(ctx context.Context, counterpartyRef string) (*ListContactPersonsResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnListContactPersons != nil {
		return m.OnListContactPersons(ctx, counterpartyRef)
	}

	return &ListContactPersonsResponse{
		Contacts: []ContactPersonRecord{{
			Ref:        "np-contact-" + uuid.New().String()[:8],
			FirstName:  "Тарас",
			LastName:   "Шевченко",
			MiddleName: "Григорович",
			Phones:     "380501234567",
		}},
	}, nil
}

// SaveCounterparty returns a mock saved counterparty payload.
func (m *MockAPIClient) SaveCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnSaveCounterparty != nil {
		return m.OnSaveCounterparty(ctx, req)
	}
	return rawRef("np-agent-" + uuid.New().String()[:8]), nil
}

// UpdateCounterparty returns a mock updated counterparty payload.
func (m *MockAPIClient) UpdateCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnUpdateCounterparty != nil {
		return m.OnUpdateCounterparty(ctx, req)
	}
	return rawRef(req.Ref), nil
}

// UpdateContactPerson returns a mock updated contact payload.
func (m *MockAPIClient) UpdateContactPerson(ctx context.Context, req *ContactPersonProps) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnUpdateContactPerson != nil {
		return m.OnUpdateContactPerson(ctx, req)
	}
	return rawRef(req.Ref), nil
}

// DeleteContactPerson returns a mock deletion payload.
func (m *MockAPIClient) DeleteContactPerson(ctx context.Context, contactRef string) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnDeleteContactPerson != nil {
		return m.OnDeleteContactPerson(ctx, contactRef)
	}
	return rawRef(contactRef), nil
}

// ListScanSheets succeeds by default, making the mock key valid.
func (m *MockAPIClient) ListScanSheets(ctx context.Context) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnListScanSheets != nil {
		return m.OnListScanSheets(ctx)
	}
	return &RawResponse{Data: json.RawMessage(`[]`)}, nil
}

// SaveDocument returns a mock created waybill payload.
func (m *MockAPIClient) SaveDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnSaveDocument != nil {
		return m.OnSaveDocument(ctx, req)
	}

	ref := "np-doc-" + uuid.New().String()[:8]
	ttn := fmt.Sprintf("%d", 59000000000000+time.Now().UnixNano()%1000000000)
	data, _ := json.Marshal([]map[string]string{{
		"Ref":                   ref,
		"IntDocNumber":          ttn,
		"CostOnSite":            "70",
		"EstimatedDeliveryDate": time.Now().AddDate(0, 0, 2).Format("02.01.2006"),
	}})
	return &RawResponse{Data: data}, nil
}

// UpdateDocument returns a mock updated waybill payload.
func (m *MockAPIClient) UpdateDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnUpdateDocument != nil {
		return m.OnUpdateDocument(ctx, req)
	}
	return rawRef(req.Ref), nil
}

// DeleteDocument returns a mock deletion payload.
func (m *MockAPIClient) DeleteDocument(ctx context.Context, documentRef string) (*RawResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnDeleteDocument != nil {
		return m.OnDeleteDocument(ctx, documentRef)
	}
	return rawRef(documentRef), nil
}

// TrackDocuments returns mock tracking records.
func (m *MockAPIClient) TrackDocuments(ctx context.Context, numbers []string) (*TrackDocumentsResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnTrackDocuments != nil {
		return m.OnTrackDocuments(ctx, numbers)
	}

	docs := make([]TrackingRecord, len(numbers))
	now := time.Now()
	for i, n := range numbers {
		docs[i] = TrackingRecord{
			RefEW:              "np-doc-" + uuid.New().String()[:8],
			Number:             n,
			StatusCode:         "4",
			Status:             "Відправлення у місті одержувача",
			DateScan:           now.Add(-6 * time.Hour).Format("02.01.2006 15:04:05"),
			TrackingUpdateDate: now.Format("2006-01-02 15:04:05"),
		}
	}
	return &TrackDocumentsResponse{Documents: docs}, nil
}

// PrintDocument returns a mock PDF document.
func (m *MockAPIClient) PrintDocument(ctx context.Context, documentRef string) (*PrintDocumentResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    "printDocument: Not Found",
		}
	}
	if m.OnPrintDocument != nil {
		return m.OnPrintDocument(ctx, documentRef)
	}

	return &PrintDocumentResponse{
		StatusCode:         http.StatusOK,
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s.pdf"`, documentRef),
		ContentType:        "application/pdf",
		Body:               []byte("%PDF-1.4 mock waybill document"),
	}, nil
}

func rawRef(ref string) *RawResponse {
	data, _ := json.Marshal([]map[string]string{{"Ref": ref}})
	return &RawResponse{Data: data}
}

var _ APIClient = (*MockAPIClient)(nil)
