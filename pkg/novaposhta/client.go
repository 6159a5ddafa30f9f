// Package novaposhta provides a client for the Nova Poshta carrier API:
// address and warehouse lookup, counterparty and contact management,
// waybill lifecycle, tracking and printable document retrieval.
//
// Every operation returns a value envelope instead of a Go error; see
// Result for the normalization policy.
package novaposhta

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds Nova Poshta client configuration.
type Config struct {
	APIKey          string
	BaseURL         string
	DocumentBaseURL string
	Timeout         time.Duration
	UseMock         bool
}

// Recorder observes completed operations. *telemetry.Metrics satisfies
// it; a nil recorder disables observation.
type Recorder interface {
	ObserveCall(operation, status string, elapsed time.Duration)
}

// Client is the Nova Poshta carrier client. It delegates wire calls to
// the underlying APIClient (mock or HTTP) and owns the envelope
// normalization policy.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
	metrics   Recorder
}

// New creates a new Nova Poshta client. If cfg.UseMock is true, it uses
// a mock API client; otherwise it talks to the real endpoints.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:         cfg.BaseURL,
			DocumentBaseURL: cfg.DocumentBaseURL,
			APIKey:          cfg.APIKey,
			Timeout:         cfg.Timeout,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Nova Poshta client with a custom API
// client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// WithRecorder attaches a metrics recorder and returns the client.
func (c *Client) WithRecorder(rec Recorder) *Client {
	c.metrics = rec
	return c
}

// observe reports one finished operation to the recorder and logs
// failures.
func (c *Client) observe(op string, start time.Time, res Result) {
	if c.metrics != nil {
		status := "ok"
		if !res.Status {
			status = strconv.Itoa(res.StatusCode)
		}
		c.metrics.ObserveCall(op, status, time.Since(start))
	}
	if !res.Status {
		c.logger.Warn("Nova Poshta operation failed",
			zap.String("operation", op),
			zap.Int("status_code", res.StatusCode),
			zap.String("error", res.Error),
		)
	}
}

// forward wraps an operation whose upstream reply is passed through
// unchanged.
func (c *Client) forward(op string, start time.Time, resp *RawResponse, err error) *CallResult {
	if err != nil {
		res := failureFrom(err)
		c.observe(op, start, res)
		return &CallResult{Result: res}
	}
	res := okResult()
	c.observe(op, start, res)
	return &CallResult{Result: res, Data: resp.Data, Info: resp.Info}
}

// ============================================================================
// Address resolution
// ============================================================================

// FindCityByName queries cities by substring. When an item's description
// equals the query case-insensitively, that single match is authoritative
// and all other matches are discarded.
func (c *Client) FindCityByName(ctx context.Context, city string, limit, page int) *CityResult {
	start := time.Now()
	c.logger.Info("Searching cities",
		zap.String("query", city),
		zap.Int("limit", limit),
		zap.Int("page", page),
	)

	resp, err := c.apiClient.SearchCities(ctx, &SearchCitiesRequest{
		FindByString: city,
		Limit:        limit,
		Page:         page,
	})

	var count int
	if resp != nil {
		count = len(resp.Cities)
	}
	res, ok := checkList(err, count, fmt.Sprintf("City named %q is not found", city))
	if !ok {
		c.observe("find_city_by_name", start, res)
		return &CityResult{Result: res}
	}

	var exact *CityRecord
	for i := range resp.Cities {
		if strings.EqualFold(resp.Cities[i].Description, city) {
			exact = &resp.Cities[i]
			break
		}
	}

	var cities []City
	var total int
	if exact != nil {
		cities = []City{mapCity(*exact)}
		total = 1
	} else {
		cities = make([]City, len(resp.Cities))
		for i, rec := range resp.Cities {
			cities[i] = mapCity(rec)
		}
		total = resp.TotalCount
		if total == 0 {
			total = len(cities)
		}
	}

	c.observe("find_city_by_name", start, res)
	return &CityResult{
		Result: res,
		Cities: cities,
		PageInfo: PageInfo{
			Total:       total,
			TotalPages:  ceilPages(total, limit),
			TotalInPage: len(cities),
			CurrentPage: page,
		},
	}
}

// WarehouseQuery holds the optional filters for FindWarehouseInCity. Any
// of the city reference, numeric warehouse id and free-text search may be
// set. CityLabel is only interpolated into the not-found diagnostic.
type WarehouseQuery struct {
	CityRef         string
	WarehouseNumber *int
	Search          string
	CityLabel       string
	Limit           int
	Page            int
}

// FindWarehouseInCity queries warehouses with optional filters. When the
// upstream reports at most one match, the result collapses to the single
// Warehouse field instead of the Warehouses list.
func (c *Client) FindWarehouseInCity(ctx context.Context, q WarehouseQuery) *WarehouseResult {
	start := time.Now()
	c.logger.Info("Searching warehouses",
		zap.String("city_ref", q.CityRef),
		zap.String("search", q.Search),
		zap.Int("page", q.Page),
	)

	resp, err := c.apiClient.SearchWarehouses(ctx, &SearchWarehousesRequest{
		CityRef:      q.CityRef,
		WarehouseID:  q.WarehouseNumber,
		FindByString: q.Search,
		Limit:        q.Limit,
		Page:         q.Page,
	})

	labelWh := ""
	if q.WarehouseNumber != nil {
		labelWh = fmt.Sprintf("#%d", *q.WarehouseNumber)
	}
	labelCity := ""
	if q.CityLabel != "" {
		labelCity = fmt.Sprintf(" in %q", q.CityLabel)
	}

	var count int
	if resp != nil {
		count = len(resp.Warehouses)
	}
	res, ok := checkList(err, count, fmt.Sprintf("Warehouse %s is not found%s", labelWh, labelCity))
	if !ok {
		c.observe("find_warehouse_in_city", start, res)
		return &WarehouseResult{Result: res}
	}

	total := resp.TotalCount
	if total == 0 {
		total = len(resp.Warehouses)
	}

	c.observe("find_warehouse_in_city", start, res)

	if total <= 1 {
		wh := mapWarehouse(resp.Warehouses[0])
		return &WarehouseResult{
			Result:    res,
			Warehouse: &wh,
			PageInfo: PageInfo{
				Total:       total,
				TotalPages:  1,
				TotalInPage: 1,
				CurrentPage: 1,
			},
		}
	}

	warehouses := make([]Warehouse, len(resp.Warehouses))
	for i, rec := range resp.Warehouses {
		warehouses[i] = mapWarehouse(rec)
	}
	return &WarehouseResult{
		Result:     res,
		Warehouses: warehouses,
		PageInfo: PageInfo{
			Total:       total,
			TotalPages:  ceilPages(total, q.Limit),
			TotalInPage: len(warehouses),
			CurrentPage: q.Page,
		},
	}
}

// ============================================================================
// Counterparties and contacts
// ============================================================================

// FindAgentsByProperty lists counterparties registered under the given
// role.
func (c *Client) FindAgentsByProperty(ctx context.Context, role PayerType, page int) *AgentsResult {
	start := time.Now()
	c.logger.Info("Listing counterparties",
		zap.String("role", string(role)),
		zap.Int("page", page),
	)

	resp, err := c.apiClient.ListCounterparties(ctx, &ListCounterpartiesRequest{
		CounterpartyProperty: role,
		Page:                 page,
	})

	var count int
	if resp != nil {
		count = len(resp.Counterparties)
	}
	res, ok := checkList(err, count, fmt.Sprintf("Agents by %q property is not found", string(role)))
	if !ok {
		c.observe("find_agents_by_property", start, res)
		return &AgentsResult{Result: res}
	}

	total := resp.TotalCount
	if total == 0 {
		total = len(resp.Counterparties)
	}

	c.observe("find_agents_by_property", start, res)
	return &AgentsResult{Result: res, Agents: resp.Counterparties, Total: total}
}

// ContactInput holds the fields for registering a counterparty contact.
// Zero-valued CounterpartyType and CounterpartyProperty default to
// PrivatePerson and Recipient.
type ContactInput struct {
	FirstName            string
	LastName             string
	Phone                string
	CityRef              string
	MiddleName           string
	Email                string
	EDRPOU               string
	CounterpartyType     CounterpartyType
	CounterpartyProperty PayerType
}

// CreateContact registers a counterparty contact. The upstream reply is
// forwarded unchanged.
func (c *Client) CreateContact(ctx context.Context, in ContactInput) *CallResult {
	start := time.Now()
	resp, err := c.apiClient.SaveCounterparty(ctx, &CounterpartyProps{
		FirstName:            in.FirstName,
		MiddleName:           in.MiddleName,
		LastName:             in.LastName,
		Phone:                in.Phone,
		Email:                in.Email,
		CounterpartyType:     defaultType(in.CounterpartyType),
		CounterpartyProperty: defaultRole(in.CounterpartyProperty),
		CityRef:              in.CityRef,
		EDRPOU:               in.EDRPOU,
	})
	return c.forward("create_contact", start, resp, err)
}

// ContactUpdate holds the fields for updating a contact person.
type ContactUpdate struct {
	AgentRef   string
	ContactRef string
	FirstName  string
	LastName   string
	MiddleName string
	Phone      string
	Email      string
}

// UpdateContact updates a counterparty's contact person.
func (c *Client) UpdateContact(ctx context.Context, in ContactUpdate) *CallResult {
	start := time.Now()
	resp, err := c.apiClient.UpdateContactPerson(ctx, &ContactPersonProps{
		Ref:             in.ContactRef,
		CounterpartyRef: in.AgentRef,
		FirstName:       in.FirstName,
		MiddleName:      in.MiddleName,
		LastName:        in.LastName,
		Phone:           in.Phone,
		Email:           in.Email,
	})
	return c.forward("update_contact", start, resp, err)
}

// DeleteContact removes a contact person.
func (c *Client) DeleteContact(ctx context.Context, contactRef string) *CallResult {
	start := time.Now()
	resp, err := c.apiClient.DeleteContactPerson(ctx, contactRef)
	return c.forward("delete_contact", start, resp, err)
}

// AgentUpdate holds the fields for updating a counterparty.
type AgentUpdate struct {
	AgentRef             string
	CityRef              string
	FirstName            string
	LastName             string
	MiddleName           string
	Phone                string
	Email                string
	CounterpartyType     CounterpartyType
	CounterpartyProperty PayerType
}

// UpdateAgent updates a counterparty.
func (c *Client) UpdateAgent(ctx context.Context, in AgentUpdate) *CallResult {
	start := time.Now()
	resp, err := c.apiClient.UpdateCounterparty(ctx, &CounterpartyProps{
		Ref:                  in.AgentRef,
		FirstName:            in.FirstName,
		MiddleName:           in.MiddleName,
		LastName:             in.LastName,
		Phone:                in.Phone,
		Email:                in.Email,
		CounterpartyType:     defaultType(in.CounterpartyType),
		CounterpartyProperty: defaultRole(in.CounterpartyProperty),
		CityRef:              in.CityRef,
	})
	return c.forward("update_agent", start, resp, err)
}

// GetSenderData lists all sender counterparties and joins each with its
// first contact person. The per-counterparty lookups run concurrently,
// but the aggregation fails fast: the first failed lookup aborts the
// whole operation and no partial result is surfaced.
func (c *Client) GetSenderData(ctx context.Context) *SendersResult {
	start := time.Now()
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "novaposhta.GetSenderData")
		defer span.End()
	}

	agents := c.FindAgentsByProperty(ctx, PayerSender, 1)
	if !agents.OK() {
		return &SendersResult{Result: agents.Result}
	}

	senders := make([]SenderRecord, len(agents.Agents))
	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range agents.Agents {
		g.Go(func() error {
			contacts, err := c.apiClient.ListContactPersons(gctx, agent.Ref)
			if err != nil {
				return err
			}
			var first ContactPersonRecord
			if len(contacts.Contacts) > 0 {
				first = contacts.Contacts[0]
			}
			senders[i] = SenderRecord{
				AgentRef:         agent.Ref,
				AgentDescription: agent.Description,
				AgentType:        agent.CounterpartyType,
				AgentEDRPOU:      agent.EDRPOU,
				AgentCityRef:     agent.City,
				AgentCity:        agent.CityDescription,
				ContactRef:       first.Ref,
				FirstName:        first.FirstName,
				LastName:         first.LastName,
				MiddleName:       first.MiddleName,
				Phone:            first.Phones,
				Email:            first.Email,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res := failureFrom(err)
		c.observe("get_sender_data", start, res)
		return &SendersResult{Result: res}
	}

	res := okResult()
	c.observe("get_sender_data", start, res)
	return &SendersResult{Result: res, Senders: senders, Total: agents.Total}
}

// FindSenderByFullName looks a sender up in a previously fetched list by
// its three name parts, ignoring case and surrounding whitespace. The
// lookup index collapses duplicate name keys to the last-seen entry.
func FindSenderByFullName(firstName, lastName, middleName string, senders []SenderRecord) (SenderRecord, bool) {
	type nameKey struct {
		first, last, middle string
	}
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}

	index := make(map[nameKey]SenderRecord, len(senders))
	for _, s := range senders {
		index[nameKey{norm(s.FirstName), norm(s.LastName), norm(s.MiddleName)}] = s
	}

	rec, ok := index[nameKey{norm(firstName), norm(lastName), norm(middleName)}]
	return rec, ok
}

// IsValidKey probes a low-cost read-only endpoint to check whether the
// configured API key is accepted.
func (c *Client) IsValidKey(ctx context.Context) bool {
	_, err := c.apiClient.ListScanSheets(ctx)
	return err == nil
}

// ============================================================================
// Waybill lifecycle
// ============================================================================

// ShipmentParams are the derived waybill parameters shared by create and
// update.
type ShipmentParams struct {
	CargoType            CargoType
	OptionsSeat          []SeatOption
	BackwardDeliveryData []BackwardDeliveryRow
}

// DeriveShipmentParams derives the cargo type, seat options and
// backward-delivery descriptor for a shipment. A parcel-locker address on
// either side forces the Parcel cargo type with the carrier's fixed
// 40x40x30 single-seat volumetric descriptor.
func DeriveShipmentParams(sender Sender, receiver Receiver, weight float64, cargo CargoType, backwardDelivery bool, backwardAmount string, payer PayerType) ShipmentParams {
	params := ShipmentParams{CargoType: cargo}

	if strings.Contains(sender.Address, PostMachineMarker) ||
		strings.Contains(receiver.Address, PostMachineMarker) {
		params.CargoType = CargoParcel
		params.OptionsSeat = []SeatOption{{
			VolumetricVolume: "1",
			VolumetricWidth:  "40",
			VolumetricLength: "40",
			VolumetricHeight: "30",
			Weight:           formatFloat(weight),
		}}
	}

	if backwardDelivery {
		params.BackwardDeliveryData = []BackwardDeliveryRow{{
			PayerType:        payer,
			CargoType:        CargoMoney,
			RedeliveryString: backwardAmount,
		}}
	}

	return params
}

// CreateWaybillRequest holds the inputs for CreateWaybill. Zero-valued
// PaymentMethod, PayerType, CargoType and SeatsAmount default to NonCash,
// Sender, Cargo and 1.
type CreateWaybillRequest struct {
	Sender           Sender
	Receiver         Receiver
	DeclaredPrice    string
	DeliveryDate     time.Time
	Weight           float64
	PaymentMethod    PaymentMethod
	PayerType        PayerType
	CargoType        CargoType
	Comment          string
	SeatsAmount      int
	BackwardDelivery bool
	BackwardAmount   float64
	PostpaidAmount   float64
}

// CreateWaybill creates a waybill. Weight preconditions are checked
// locally and fail with 400 envelopes before any network call.
func (c *Client) CreateWaybill(ctx context.Context, req CreateWaybillRequest) *CallResult {
	start := time.Now()
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "novaposhta.CreateWaybill")
		defer span.End()
	}

	if req.Sender.MaxWeightAllowed <= 0 || req.Receiver.MaxWeightAllowed <= 0 {
		res := badRequest("Invalid max weight")
		c.observe("create_waybill", start, res)
		return &CallResult{Result: res}
	}
	if req.Weight > req.Sender.MaxWeightAllowed {
		res := badRequest("Too much specified weight (sender)")
		c.observe("create_waybill", start, res)
		return &CallResult{Result: res}
	}
	if req.Weight > req.Receiver.MaxWeightAllowed {
		res := badRequest("Too much specified weight (receiver)")
		c.observe("create_waybill", start, res)
		return &CallResult{Result: res}
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = PaymentNonCash
	}
	payer := req.PayerType
	if payer == "" {
		payer = PayerSender
	}
	cargo := req.CargoType
	if cargo == "" {
		cargo = CargoCargo
	}
	seats := req.SeatsAmount
	if seats == 0 {
		seats = 1
	}

	params := DeriveShipmentParams(req.Sender, req.Receiver, req.Weight,
		cargo, req.BackwardDelivery, formatFloat(req.BackwardAmount), payer)

	props := &DocumentProps{
		PayerType:        payer,
		PaymentMethod:    payment,
		DateTime:         req.DeliveryDate.Format("02.01.2006"),
		CargoType:        params.CargoType,
		Weight:           formatFloat(req.Weight),
		ServiceType:      ServiceWarehouseWarehouse,
		SeatsAmount:      seats,
		Description:      orDefault(req.Comment),
		Cost:             req.DeclaredPrice,
		CitySender:       req.Sender.CityRef,
		Sender:           req.Sender.AgentRef,
		SenderAddress:    req.Sender.AddressRef,
		ContactSender:    req.Sender.ContactRef,
		SendersPhone:     req.Sender.Phone,
		RecipientsPhone:  req.Receiver.Phone,
		CityRecipient:    req.Receiver.CityRef,
		Recipient:        req.Receiver.AgentRef,
		RecipientAddress: req.Receiver.AddressRef,
		ContactRecipient: req.Receiver.ContactRef,
		OptionsSeat:      params.OptionsSeat,
	}
	applyPaymentFields(props, payment, params, formatFloat(req.PostpaidAmount))

	c.logger.Info("Creating waybill",
		zap.String("payer", string(payer)),
		zap.String("payment_method", string(payment)),
		zap.String("cargo_type", string(params.CargoType)),
		zap.String("weight", props.Weight),
	)

	resp, err := c.apiClient.SaveDocument(ctx, props)
	return c.forward("create_waybill", start, resp, err)
}

// UpdateWaybill rebuilds the waybill property set from an existing
// shipment aggregate. A zero seatsAmount defaults to 1. The payment
// method is always resolved through the delivery descriptor's accessor
// (see Delivery.PaymentMethod).
func (c *Client) UpdateWaybill(ctx context.Context, shipment Shipment, seatsAmount int) *CallResult {
	start := time.Now()

	if seatsAmount == 0 {
		seatsAmount = 1
	}

	params := DeriveShipmentParams(shipment.Sender, shipment.Receiver,
		shipment.Weight, CargoCargo, shipment.BackwardDelivery,
		formatFloat(shipment.BackwardAmount), shipment.Delivery.Payer)

	payment := shipment.Delivery.PaymentMethod()

	props := &DocumentProps{
		Ref:              shipment.DocumentRef,
		PayerType:        shipment.Delivery.Payer,
		PaymentMethod:    payment,
		DateTime:         shipment.DeliveryDate.Format("02.01.2006"),
		CargoType:        params.CargoType,
		Weight:           formatFloat(shipment.Weight),
		ServiceType:      ServiceWarehouseWarehouse,
		SeatsAmount:      seatsAmount,
		Description:      orDefault(shipment.Delivery.Comment),
		Cost:             formatFloat(shipment.Delivery.EstimatedPrice),
		CitySender:       shipment.Sender.CityRef,
		Sender:           shipment.Sender.AgentRef,
		SenderAddress:    shipment.Sender.AddressRef,
		ContactSender:    shipment.Sender.ContactRef,
		SendersPhone:     shipment.Sender.Phone,
		RecipientsPhone:  shipment.Receiver.Phone,
		CityRecipient:    shipment.Receiver.CityRef,
		Recipient:        shipment.Receiver.AgentRef,
		RecipientAddress: shipment.Receiver.AddressRef,
		ContactRecipient: shipment.Receiver.ContactRef,
		OptionsSeat:      params.OptionsSeat,
	}
	applyPaymentFields(props, payment, params, formatFloat(shipment.PostpaidAmount))

	c.logger.Info("Updating waybill", zap.String("ref", shipment.DocumentRef))

	resp, err := c.apiClient.UpdateDocument(ctx, props)
	return c.forward("update_waybill", start, resp, err)
}

// DeleteWaybill deletes a waybill by its document ref.
func (c *Client) DeleteWaybill(ctx context.Context, documentRef string) *CallResult {
	start := time.Now()
	c.logger.Info("Deleting waybill", zap.String("ref", documentRef))

	resp, err := c.apiClient.DeleteDocument(ctx, documentRef)
	return c.forward("delete_waybill", start, resp, err)
}

// WaybillStatus fetches the tracking record for a shipment's waybill and
// reshapes it.
func (c *Client) WaybillStatus(ctx context.Context, shipment Shipment) *TrackingResult {
	start := time.Now()
	ttn := shipment.Delivery.TrackingNumber
	c.logger.Info("Tracking waybill", zap.String("ttn", ttn))

	resp, err := c.apiClient.TrackDocuments(ctx, []string{ttn})
	if err != nil {
		res := failureFrom(err)
		c.observe("waybill_status", start, res)
		return &TrackingResult{Result: res}
	}

	var rec TrackingRecord
	if len(resp.Documents) > 0 {
		rec = resp.Documents[0]
	}

	res := okResult()
	c.observe("waybill_status", start, res)
	return &TrackingResult{
		Result: res,
		Document: &TrackingDocument{
			Ref:               rec.RefEW,
			TTN:               rec.Number,
			StatusCode:        atoi(rec.StatusCode),
			StatusDescription: rec.Status,
			LastScanDate:      rec.DateScan,
			LastTrackingDate:  rec.TrackingUpdateDate,
		},
	}
}

// ============================================================================
// Document retrieval
// ============================================================================

var filenamePattern = regexp.MustCompile(`filename="?([^"]+)"?`)

// PrintWaybillDoc downloads the printable waybill document from the
// document host and returns it base64-encoded. Its envelope deliberately
// differs from every other operation; see DocumentResult.
func (c *Client) PrintWaybillDoc(ctx context.Context, documentRef string) *DocumentResult {
	start := time.Now()
	c.logger.Info("Downloading waybill document", zap.String("ref", documentRef))

	resp, err := c.apiClient.PrintDocument(ctx, documentRef)
	if err != nil {
		status := http.StatusBadRequest
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
			status = apiErr.StatusCode
		}
		c.observe("print_waybill_doc", start, Result{StatusCode: status, Error: err.Error()})
		return &DocumentResult{HTTPStatus: status, Error: err.Error()}
	}

	filename := documentRef + ".pdf"
	if m := filenamePattern.FindStringSubmatch(resp.ContentDisposition); m != nil {
		filename = m[1]
	}

	c.observe("print_waybill_doc", start, okResult())
	return &DocumentResult{
		Success:    true,
		HTTPStatus: resp.StatusCode,
		Document: &Document{
			Filename:    filename,
			Base64:      base64.StdEncoding.EncodeToString(resp.Body),
			ContentType: resp.ContentType,
		},
	}
}

// ============================================================================
// Conversion helpers
// ============================================================================

func mapCity(rec CityRecord) City {
	return City{
		Ref:            rec.Ref,
		Name:           rec.Description,
		Area:           rec.AreaDescription,
		SettlementType: rec.SettlementTypeDescription,
	}
}

func mapWarehouse(rec WarehouseRecord) Warehouse {
	place := atoi(rec.PlaceMaxWeightAllowed)
	total := atoi(rec.TotalMaxWeightAllowed)
	maxAllowed := total
	if maxAllowed == 0 {
		maxAllowed = place
	}
	return Warehouse{
		Number:                atoi(rec.Number),
		AddressRef:            rec.Ref,
		Address:               rec.Description,
		Index:                 rec.WarehouseIndex,
		CityRef:               rec.CityRef,
		City:                  rec.CityDescription,
		MaxWeightAllowed:      maxAllowed,
		MaxWeightAllowedPlace: place,
		MaxWeightAllowedTotal: total,
	}
}

// applyPaymentFields enforces the payload exclusivity: cash payment
// carries BackwardDeliveryData, anything else AfterpaymentOnGoodsCost,
// never both.
func applyPaymentFields(props *DocumentProps, payment PaymentMethod, params ShipmentParams, postpaid string) {
	if payment == PaymentCash {
		props.BackwardDeliveryData = params.BackwardDeliveryData
		return
	}
	props.AfterpaymentOnGoodsCost = postpaid
}

func defaultType(t CounterpartyType) CounterpartyType {
	if t == "" {
		return CounterpartyPrivate
	}
	return t
}

func defaultRole(r PayerType) PayerType {
	if r == "" {
		return PayerRecipient
	}
	return r
}

func orDefault(comment string) string {
	if comment == "" {
		return defaultDescription
	}
	return comment
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// atoi parses upstream numeric strings, treating anything unparsable as
// zero the way the rest of the envelope normalization treats absent
// fields.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
