package novaposhta

import (
	"context"
	"encoding/json"
	"fmt"
)

// APIClient defines the wire-level operations against the Nova Poshta
// remote API. This abstraction allows for mock implementations during
// testing and real implementations in production.
type APIClient interface {
	// SearchCities queries cities by substring (Address/getCities).
	SearchCities(ctx context.Context, req *SearchCitiesRequest) (*SearchCitiesResponse, error)

	// SearchWarehouses queries warehouses with optional filters
	// (AddressGeneral/getWarehouses).
	SearchWarehouses(ctx context.Context, req *SearchWarehousesRequest) (*SearchWarehousesResponse, error)

	// ListCounterparties lists counterparties by property
	// (Counterparty/getCounterparties).
	ListCounterparties(ctx context.Context, req *ListCounterpartiesRequest) (*ListCounterpartiesResponse, error)

	// ListContactPersons lists the contact persons of one counterparty
	// (Counterparty/getCounterpartyContactPersons).
	ListContactPersons(ctx context.Context, counterpartyRef string) (*ListContactPersonsResponse, error)

	// SaveCounterparty registers a counterparty with its contact
	// (Counterparty/save).
	SaveCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error)

	// UpdateCounterparty updates an existing counterparty
	// (Counterparty/update).
	UpdateCounterparty(ctx context.Context, req *CounterpartyProps) (*RawResponse, error)

	// UpdateContactPerson updates a counterparty's contact person
	// (ContactPerson/update).
	UpdateContactPerson(ctx context.Context, req *ContactPersonProps) (*RawResponse, error)

	// DeleteContactPerson removes a contact person (ContactPerson/delete).
	DeleteContactPerson(ctx context.Context, contactRef string) (*RawResponse, error)

	// ListScanSheets lists registry sheets (ScanSheet/getScanSheetList).
	// Used as a low-cost probe for API key validity.
	ListScanSheets(ctx context.Context) (*RawResponse, error)

	// SaveDocument creates a waybill (InternetDocument/save).
	SaveDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error)

	// UpdateDocument updates a waybill (InternetDocument/update).
	UpdateDocument(ctx context.Context, req *DocumentProps) (*RawResponse, error)

	// DeleteDocument deletes a waybill (InternetDocument/delete).
	DeleteDocument(ctx context.Context, documentRef string) (*RawResponse, error)

	// TrackDocuments fetches tracking records for waybill numbers
	// (TrackingDocument/getStatusDocuments).
	TrackDocuments(ctx context.Context, numbers []string) (*TrackDocumentsResponse, error)

	// PrintDocument downloads the printable waybill document from the
	// secondary host. This is a plain authenticated GET, not a JSON call.
	PrintDocument(ctx context.Context, documentRef string) (*PrintDocumentResponse, error)
}

// ============================================================================
// API Request/Response Types (match the Nova Poshta JSON API structure)
// ============================================================================

// SearchCitiesRequest is the methodProperties payload for getCities.
type SearchCitiesRequest struct {
	FindByString string `json:"FindByString"`
	Limit        int    `json:"Limit"`
	Page         int    `json:"Page"`
}

// SearchCitiesResponse carries the raw city records and paging info.
type SearchCitiesResponse struct {
	Cities     []CityRecord
	TotalCount int
}

// CityRecord is the upstream city shape.
type CityRecord struct {
	Ref                       string `json:"Ref"`
	Description               string `json:"Description"`
	AreaDescription           string `json:"AreaDescription"`
	SettlementTypeDescription string `json:"SettlementTypeDescription"`
}

// SearchWarehousesRequest is the methodProperties payload for
// getWarehouses. All filters are optional; absent filters are omitted
// from the wire payload.
type SearchWarehousesRequest struct {
	CityRef      string `json:"CityRef,omitempty"`
	WarehouseID  *int   `json:"WarehouseId,omitempty"`
	FindByString string `json:"FindByString,omitempty"`
	Limit        int    `json:"Limit"`
	Page         int    `json:"Page"`
}

// SearchWarehousesResponse carries the raw warehouse records and paging
// info.
type SearchWarehousesResponse struct {
	Warehouses []WarehouseRecord
	TotalCount int
}

// WarehouseRecord is the upstream warehouse shape. Numeric fields arrive
// as strings on the wire.
type WarehouseRecord struct {
	Number                string `json:"Number"`
	Ref                   string `json:"Ref"`
	Description           string `json:"Description"`
	WarehouseIndex        string `json:"WarehouseIndex"`
	CityRef               string `json:"CityRef"`
	CityDescription       string `json:"CityDescription"`
	PlaceMaxWeightAllowed string `json:"PlaceMaxWeightAllowed"`
	TotalMaxWeightAllowed string `json:"TotalMaxWeightAllowed"`
}

// ListCounterpartiesRequest is the methodProperties payload for
// getCounterparties.
type ListCounterpartiesRequest struct {
	CounterpartyProperty PayerType `json:"CounterpartyProperty"`
	Page                 int       `json:"Page"`
}

// ListCounterpartiesResponse carries the raw counterparty records and
// paging info.
type ListCounterpartiesResponse struct {
	Counterparties []CounterpartyRecord
	TotalCount     int
}

// CounterpartyRecord is the upstream counterparty shape.
type CounterpartyRecord struct {
	Ref              string `json:"Ref"`
	Description      string `json:"Description"`
	CounterpartyType string `json:"CounterpartyType"`
	EDRPOU           string `json:"EDRPOU"`
	City             string `json:"City"`
	CityDescription  string `json:"CityDescription"`
}

// ListContactPersonsResponse carries the contact persons of one
// counterparty.
type ListContactPersonsResponse struct {
	Contacts []ContactPersonRecord
}

// ContactPersonRecord is the upstream contact person shape.
type ContactPersonRecord struct {
	Ref        string `json:"Ref"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	MiddleName string `json:"MiddleName"`
	Phones     string `json:"Phones"`
	Email      string `json:"Email"`
}

// CounterpartyProps is the methodProperties payload for Counterparty
// save/update. The upstream expects every field present, empty strings
// included, so no field is omitted from the wire payload.
type CounterpartyProps struct {
	Ref                  string           `json:"Ref,omitempty"`
	FirstName            string           `json:"FirstName"`
	MiddleName           string           `json:"MiddleName"`
	LastName             string           `json:"LastName"`
	Phone                string           `json:"Phone"`
	Email                string           `json:"Email"`
	CounterpartyType     CounterpartyType `json:"CounterpartyType"`
	CounterpartyProperty PayerType        `json:"CounterpartyProperty"`
	CityRef              string           `json:"CityRef"`
	EDRPOU               string           `json:"EDRPOU,omitempty"`
}

// ContactPersonProps is the methodProperties payload for
// ContactPerson/update.
type ContactPersonProps struct {
	Ref             string `json:"Ref"`
	CounterpartyRef string `json:"CounterpartyRef"`
	FirstName       string `json:"FirstName"`
	MiddleName      string `json:"MiddleName"`
	LastName        string `json:"LastName"`
	Phone           string `json:"Phone"`
	Email           string `json:"Email"`
}

// SeatOption is one volumetric seat descriptor attached to locker-bound
// shipments. All values are strings on the wire.
type SeatOption struct {
	VolumetricVolume string `json:"volumetricVolume"`
	VolumetricWidth  string `json:"volumetricWidth"`
	VolumetricLength string `json:"volumetricLength"`
	VolumetricHeight string `json:"volumetricHeight"`
	Weight           string `json:"weight"`
}

// BackwardDeliveryRow is one backward-delivery descriptor.
type BackwardDeliveryRow struct {
	PayerType        PayerType `json:"PayerType"`
	CargoType        CargoType `json:"CargoType"`
	RedeliveryString string    `json:"RedeliveryString"`
}

// DocumentProps is the methodProperties payload for InternetDocument
// save/update. BackwardDeliveryData and AfterpaymentOnGoodsCost are
// mutually exclusive: cash payment carries the former, everything else
// the latter.
type DocumentProps struct {
	Ref                     string                `json:"Ref,omitempty"`
	PayerType               PayerType             `json:"PayerType"`
	PaymentMethod           PaymentMethod         `json:"PaymentMethod"`
	DateTime                string                `json:"DateTime"`
	CargoType               CargoType             `json:"CargoType"`
	Weight                  string                `json:"Weight"`
	ServiceType             ServiceType           `json:"ServiceType"`
	SeatsAmount             int                   `json:"SeatsAmount"`
	Description             string                `json:"Description"`
	Cost                    string                `json:"Cost"`
	CitySender              string                `json:"CitySender"`
	Sender                  string                `json:"Sender"`
	SenderAddress           string                `json:"SenderAddress"`
	ContactSender           string                `json:"ContactSender"`
	SendersPhone            string                `json:"SendersPhone"`
	RecipientsPhone         string                `json:"RecipientsPhone"`
	CityRecipient           string                `json:"CityRecipient"`
	Recipient               string                `json:"Recipient"`
	RecipientAddress        string                `json:"RecipientAddress"`
	ContactRecipient        string                `json:"ContactRecipient"`
	OptionsSeat             []SeatOption          `json:"OptionsSeat"`
	BackwardDeliveryData    []BackwardDeliveryRow `json:"BackwardDeliveryData,omitempty"`
	AfterpaymentOnGoodsCost string                `json:"AfterpaymentOnGoodsCost,omitempty"`
}

// TrackDocumentsResponse carries raw tracking records.
type TrackDocumentsResponse struct {
	Documents []TrackingRecord
}

// TrackingRecord is the upstream tracking shape. StatusCode arrives as a
// string on the wire.
type TrackingRecord struct {
	RefEW              string `json:"RefEW"`
	Number             string `json:"Number"`
	StatusCode         string `json:"StatusCode"`
	Status             string `json:"Status"`
	DateScan           string `json:"DateScan"`
	TrackingUpdateDate string `json:"TrackingUpdateDate"`
}

// RawResponse carries the upstream data payload of an operation whose
// result is forwarded to the caller unchanged.
type RawResponse struct {
	Data json.RawMessage
	Info json.RawMessage
}

// PrintDocumentResponse is the downloaded waybill document with the
// transport metadata needed to name and classify it.
type PrintDocumentResponse struct {
	StatusCode         int
	ContentDisposition string
	ContentType        string
	Body               []byte
}

// APIError represents a failed call against the Nova Poshta API.
// Logical errors are 2xx replies whose body reported success=false; for
// those, Raw keeps the unparsed upstream body. Transport errors carry the
// HTTP status code, or 0 when no response was received at all.
type APIError struct {
	StatusCode int
	Message    string
	Logical    bool
	Raw        json.RawMessage
}

func (e *APIError) Error() string {
	if e.Logical {
		return e.Message
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}
