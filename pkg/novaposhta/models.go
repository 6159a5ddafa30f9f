package novaposhta

import (
	"time"
)

// PayerType identifies which party pays for a service.
type PayerType string

const (
	PayerSender    PayerType = "Sender"
	PayerRecipient PayerType = "Recipient"
)

// CounterpartyType represents the legal form of a counterparty.
type CounterpartyType string

const (
	CounterpartyPrivate CounterpartyType = "PrivatePerson"
	CounterpartyCompany CounterpartyType = "Organization"
)

// CargoType represents the declared cargo category.
type CargoType string

const (
	CargoCargo  CargoType = "Cargo"
	CargoParcel CargoType = "Parcel"
	CargoMoney  CargoType = "Money"
)

// ServiceType represents the delivery service scheme.
type ServiceType string

const (
	ServiceWarehouseWarehouse ServiceType = "WarehouseWarehouse"
)

// PaymentMethod represents how the delivery is paid for.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentNonCash PaymentMethod = "NonCash"
)

// PostMachineMarker is the substring the carrier embeds in addresses of
// self-service parcel lockers. Shipments touching a locker are forced to
// the Parcel cargo type with fixed seat dimensions.
const PostMachineMarker = "Postomat"

// defaultDescription is the fallback waybill description when the caller
// supplies no comment. The upstream API expects the localized string.
const defaultDescription = "Доставка у відділення"

// Sender is the sending party profile used to assemble waybill requests.
// All identifiers are carrier-assigned refs obtained from the address and
// counterparty lookups. The client never persists these.
type Sender struct {
	CityRef          string
	AgentRef         string
	AddressRef       string
	ContactRef       string
	Phone            string
	Address          string
	DepartmentNumber int
	MaxWeightAllowed float64
}

// Receiver is the receiving party profile used to assemble waybill
// requests. Phone is the recipient's contact phone printed on the waybill.
type Receiver struct {
	CityRef          string
	AgentRef         string
	AddressRef       string
	ContactRef       string
	Phone            string
	Address          string
	DepartmentNumber int
	MaxWeightAllowed float64
}

// Delivery describes an existing delivery: its tracking number (TTN),
// estimated price, paying party and an optional free-text comment.
type Delivery struct {
	TrackingNumber string
	EstimatedPrice float64
	Payer          PayerType
	Comment        string
}

// PaymentMethod returns the payment method label used when rebuilding
// waybill properties. It always resolves to NonCash regardless of the
// stored payer; the integration depends on this exact behavior, so it is
// kept as-is even though the stored fields are ignored (see DESIGN.md).
func (d Delivery) PaymentMethod() PaymentMethod {
	return PaymentNonCash
}

// Shipment groups everything needed to update or track an existing
// waybill: both party profiles, the declared weight, backward-delivery and
// postpaid amounts, the carrier-assigned document ref and delivery date.
type Shipment struct {
	Sender           Sender
	Receiver         Receiver
	Weight           float64
	BackwardDelivery bool
	BackwardAmount   float64
	PostpaidAmount   float64
	DocumentRef      string
	DeliveryDate     time.Time
	Delivery         Delivery
}

// SenderRecord is one flattened sender produced by GetSenderData: the
// counterparty fields combined with its first contact person.
type SenderRecord struct {
	AgentRef         string `json:"agent_ref"`
	AgentDescription string `json:"agent_description"`
	AgentType        string `json:"agent_type"`
	AgentEDRPOU      string `json:"agent_edrpou"`
	AgentCityRef     string `json:"agent_city_ref"`
	AgentCity        string `json:"agent_city"`
	ContactRef       string `json:"contact_ref"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MiddleName       string `json:"middle_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
}

// City is a normalized city lookup entry.
type City struct {
	Ref            string `json:"city_ref"`
	Name           string `json:"city"`
	Area           string `json:"area"`
	SettlementType string `json:"settlement_type"`
}

// Warehouse is a normalized warehouse lookup entry. MaxWeightAllowed is
// the total maximum when the carrier reports one, otherwise the per-place
// maximum; both raw values stay available.
type Warehouse struct {
	Number                int    `json:"number"`
	AddressRef            string `json:"address_ref"`
	Address               string `json:"address"`
	Index                 string `json:"index"`
	CityRef               string `json:"city_ref"`
	City                  string `json:"city"`
	MaxWeightAllowed      int    `json:"max_weight_allowed"`
	MaxWeightAllowedPlace int    `json:"max_weight_allowed_place"`
	MaxWeightAllowedTotal int    `json:"max_weight_allowed_total"`
}

// TrackingDocument is the reshaped tracking record for one waybill.
type TrackingDocument struct {
	Ref               string `json:"ref"`
	TTN               string `json:"ttn"`
	StatusCode        int    `json:"status_code"`
	StatusDescription string `json:"status_description"`
	LastScanDate      string `json:"last_scan_date"`
	LastTrackingDate  string `json:"last_tracking_date"`
}

// Document is a downloaded waybill document: raw bytes re-encoded as
// base64 plus the filename and content type reported by the carrier.
type Document struct {
	Filename    string `json:"filename"`
	Base64      string `json:"base64"`
	ContentType string `json:"type"`
}
