package novaposhta_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/avivitomchishen/nova-poshta-api/pkg/novaposhta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *novaposhta.MockAPIClient) *novaposhta.Client {
	logger := otelzap.New(zap.NewNop())
	return novaposhta.NewWithAPIClient(
		novaposhta.Config{APIKey: "test-key"},
		mockClient,
		logger,
		nil,
	)
}

func TestClient_FindCityByName_ExactMatchCollapses(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchCities = func(ctx context.Context, req *novaposhta.SearchCitiesRequest) (*novaposhta.SearchCitiesResponse, error) {
		return &novaposhta.SearchCitiesResponse{
			Cities: []novaposhta.CityRecord{
				{Ref: "ref-partial", Description: "Kyivets"},
				{Ref: "ref-exact", Description: "KYIV"},
				{Ref: "ref-other", Description: "Kyiv Oblast"},
			},
			TotalCount: 3,
		}, nil
	}
	client := newTestClient(mockAPI)

	res := client.FindCityByName(context.Background(), "Kyiv", 50, 1)

	require.True(t, res.Status)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, res.Cities, 1)
	assert.Equal(t, "ref-exact", res.Cities[0].Ref)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.TotalInPage)
}

func TestClient_FindCityByName_AllMatches(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchCities = func(ctx context.Context, req *novaposhta.SearchCitiesRequest) (*novaposhta.SearchCitiesResponse, error) {
		return &novaposhta.SearchCitiesResponse{
			Cities: []novaposhta.CityRecord{
				{Ref: "ref-1", Description: "Kyivets", AreaDescription: "Lvivska"},
				{Ref: "ref-2", Description: "Kyiv Oblast"},
			},
			TotalCount: 120,
		}, nil
	}
	client := newTestClient(mockAPI)

	res := client.FindCityByName(context.Background(), "Kyi", 50, 2)

	require.True(t, res.Status)
	assert.Len(t, res.Cities, 2)
	assert.Equal(t, "Lvivska", res.Cities[0].Area)
	assert.Equal(t, 120, res.Total)
	assert.Equal(t, 3, res.TotalPages) // ceil(120/50)
	assert.Equal(t, 2, res.TotalInPage)
	assert.Equal(t, 2, res.CurrentPage)
}

func TestClient_FindCityByName_Empty(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchCities = func(ctx context.Context, req *novaposhta.SearchCitiesRequest) (*novaposhta.SearchCitiesResponse, error) {
		return &novaposhta.SearchCitiesResponse{}, nil
	}
	client := newTestClient(mockAPI)

	res := client.FindCityByName(context.Background(), "Atlantis", 50, 1)

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Error, "Atlantis")
	assert.Empty(t, res.Cities)
}

func TestClient_FindCityByName_APIError(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	res := client.FindCityByName(context.Background(), "Kyiv", 50, 1)

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Simulated API error", res.Error)
	assert.NotEmpty(t, res.Raw)
}

func TestClient_FindCityByName_InvalidKey(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchCities = func(ctx context.Context, req *novaposhta.SearchCitiesRequest) (*novaposhta.SearchCitiesResponse, error) {
		return nil, &novaposhta.APIError{
			StatusCode: http.StatusOK,
			Message:    "API key abc123 is invalid",
			Logical:    true,
		}
	}
	client := newTestClient(mockAPI)

	res := client.FindCityByName(context.Background(), "Kyiv", 50, 1)

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestClient_FindWarehouseInCity_SingleCollapses(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	client := newTestClient(mockAPI) // default mock returns one warehouse

	res := client.FindWarehouseInCity(context.Background(), novaposhta.WarehouseQuery{
		CityRef: "8d5a980d-391c-11dd-90d9-001a92567626",
		Limit:   50,
		Page:    1,
	})

	require.True(t, res.Status)
	require.NotNil(t, res.Warehouse)
	assert.Nil(t, res.Warehouses)
	assert.Equal(t, 1, res.Warehouse.Number)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	// Total max weight is zero upstream, so the per-place maximum wins.
	assert.Equal(t, 1100, res.Warehouse.MaxWeightAllowed)
	assert.Equal(t, 1100, res.Warehouse.MaxWeightAllowedPlace)
	assert.Equal(t, 0, res.Warehouse.MaxWeightAllowedTotal)
}

func TestClient_FindWarehouseInCity_List(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchWarehouses = func(ctx context.Context, req *novaposhta.SearchWarehousesRequest) (*novaposhta.SearchWarehousesResponse, error) {
		return &novaposhta.SearchWarehousesResponse{
			Warehouses: []novaposhta.WarehouseRecord{
				{Number: "1", TotalMaxWeightAllowed: "30", PlaceMaxWeightAllowed: "30"},
				{Number: "2", TotalMaxWeightAllowed: "1100", PlaceMaxWeightAllowed: "100"},
			},
			TotalCount: 75,
		}, nil
	}
	client := newTestClient(mockAPI)

	res := client.FindWarehouseInCity(context.Background(), novaposhta.WarehouseQuery{Limit: 50, Page: 1})

	require.True(t, res.Status)
	assert.Nil(t, res.Warehouse)
	require.Len(t, res.Warehouses, 2)
	assert.Equal(t, 1100, res.Warehouses[1].MaxWeightAllowed)
	assert.Equal(t, 75, res.Total)
	assert.Equal(t, 2, res.TotalPages)
}

func TestClient_FindWarehouseInCity_NotFoundMessage(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnSearchWarehouses = func(ctx context.Context, req *novaposhta.SearchWarehousesRequest) (*novaposhta.SearchWarehousesResponse, error) {
		return &novaposhta.SearchWarehousesResponse{}, nil
	}
	client := newTestClient(mockAPI)

	number := 105
	res := client.FindWarehouseInCity(context.Background(), novaposhta.WarehouseQuery{
		WarehouseNumber: &number,
		CityLabel:       "Kyiv",
		Limit:           50,
		Page:            1,
	})

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Error, "#105")
	assert.Contains(t, res.Error, "Kyiv")
}

func TestClient_FindAgentsByProperty_Success(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	client := newTestClient(mockAPI)

	res := client.FindAgentsByProperty(context.Background(), novaposhta.PayerSender, 1)

	require.True(t, res.Status)
	require.Len(t, res.Agents, 1)
	assert.Equal(t, 1, res.Total)
}

func TestClient_FindAgentsByProperty_Empty(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnListCounterparties = func(ctx context.Context, req *novaposhta.ListCounterpartiesRequest) (*novaposhta.ListCounterpartiesResponse, error) {
		return &novaposhta.ListCounterpartiesResponse{}, nil
	}
	client := newTestClient(mockAPI)

	res := client.FindAgentsByProperty(context.Background(), novaposhta.PayerRecipient, 1)

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Error, "Recipient")
}

func TestClient_CreateContact_ForwardsData(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	var captured *novaposhta.CounterpartyProps
	mockAPI.OnSaveCounterparty = func(ctx context.Context, req *novaposhta.CounterpartyProps) (*novaposhta.RawResponse, error) {
		captured = req
		return &novaposhta.RawResponse{Data: json.RawMessage(`[{"Ref":"new-agent"}]`)}, nil
	}
	client := newTestClient(mockAPI)

	res := client.CreateContact(context.Background(), novaposhta.ContactInput{
		FirstName: "Lesia",
		LastName:  "Ukrainka",
		Phone:     "380501112233",
	})

	require.True(t, res.Status)
	assert.JSONEq(t, `[{"Ref":"new-agent"}]`, string(res.Data))
	require.NotNil(t, captured)
	// Unset type and property default to a private recipient.
	assert.Equal(t, novaposhta.CounterpartyPrivate, captured.CounterpartyType)
	assert.Equal(t, novaposhta.PayerRecipient, captured.CounterpartyProperty)
	assert.Empty(t, captured.MiddleName)
}

func TestClient_UpdateContact_APIError(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	res := client.UpdateContact(context.Background(), novaposhta.ContactUpdate{
		AgentRef:   "agent-1",
		ContactRef: "contact-1",
	})

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, res.Data)
}

func TestClient_DeleteContact_Success(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	client := newTestClient(mockAPI)

	res := client.DeleteContact(context.Background(), "contact-1")

	require.True(t, res.Status)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestClient_UpdateAgent_Success(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	var captured *novaposhta.CounterpartyProps
	mockAPI.OnUpdateCounterparty = func(ctx context.Context, req *novaposhta.CounterpartyProps) (*novaposhta.RawResponse, error) {
		captured = req
		return &novaposhta.RawResponse{Data: json.RawMessage(`[{"Ref":"agent-1"}]`)}, nil
	}
	client := newTestClient(mockAPI)

	res := client.UpdateAgent(context.Background(), novaposhta.AgentUpdate{
		AgentRef:  "agent-1",
		CityRef:   "city-1",
		FirstName: "Ivan",
		LastName:  "Franko",
	})

	require.True(t, res.Status)
	require.NotNil(t, captured)
	assert.Equal(t, "agent-1", captured.Ref)
	assert.Equal(t, "city-1", captured.CityRef)
}

func TestClient_GetSenderData_Success(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnListCounterparties = func(ctx context.Context, req *novaposhta.ListCounterpartiesRequest) (*novaposhta.ListCounterpartiesResponse, error) {
		assert.Equal(t, novaposhta.PayerSender, req.CounterpartyProperty)
		return &novaposhta.ListCounterpartiesResponse{
			Counterparties: []novaposhta.CounterpartyRecord{
				{Ref: "agent-1", Description: "First Sender", City: "city-1"},
				{Ref: "agent-2", Description: "Second Sender", City: "city-2"},
			},
			TotalCount: 2,
		}, nil
	}
	mockAPI.OnListContactPersons = func(ctx context.Context, ref string) (*novaposhta.ListContactPersonsResponse, error) {
		return &novaposhta.ListContactPersonsResponse{
			Contacts: []novaposhta.ContactPersonRecord{
				{Ref: "contact-" + ref, FirstName: "Oksana", LastName: "Zabuzhko", Phones: "380670000000"},
				{Ref: "ignored-second-contact"},
			},
		}, nil
	}
	client := newTestClient(mockAPI)

	res := client.GetSenderData(context.Background())

	require.True(t, res.Status)
	require.Len(t, res.Senders, 2)
	assert.Equal(t, 2, res.Total)
	// Order follows the counterparty list, and only the first contact is kept.
	assert.Equal(t, "agent-1", res.Senders[0].AgentRef)
	assert.Equal(t, "contact-agent-1", res.Senders[0].ContactRef)
	assert.Equal(t, "agent-2", res.Senders[1].AgentRef)
	assert.Equal(t, "Oksana", res.Senders[1].FirstName)
}

func TestClient_GetSenderData_FailsFastOnContactLookup(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnListCounterparties = func(ctx context.Context, req *novaposhta.ListCounterpartiesRequest) (*novaposhta.ListCounterpartiesResponse, error) {
		return &novaposhta.ListCounterpartiesResponse{
			Counterparties: []novaposhta.CounterpartyRecord{
				{Ref: "agent-ok"},
				{Ref: "agent-broken"},
			},
			TotalCount: 2,
		}, nil
	}
	mockAPI.OnListContactPersons = func(ctx context.Context, ref string) (*novaposhta.ListContactPersonsResponse, error) {
		if ref == "agent-broken" {
			return nil, &novaposhta.APIError{StatusCode: http.StatusServiceUnavailable, Message: "upstream down"}
		}
		return &novaposhta.ListContactPersonsResponse{}, nil
	}
	client := newTestClient(mockAPI)

	res := client.GetSenderData(context.Background())

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Empty(t, res.Senders)
}

func TestClient_GetSenderData_ListFailurePassesThrough(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnListCounterparties = func(ctx context.Context, req *novaposhta.ListCounterpartiesRequest) (*novaposhta.ListCounterpartiesResponse, error) {
		return &novaposhta.ListCounterpartiesResponse{}, nil
	}
	client := newTestClient(mockAPI)

	res := client.GetSenderData(context.Background())

	assert.False(t, res.Status)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestClient_GetSenderData_MissingContactLeavesBlankFields(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	mockAPI.OnListContactPersons = func(ctx context.Context, ref string) (*novaposhta.ListContactPersonsResponse, error) {
		return &novaposhta.ListContactPersonsResponse{}, nil
	}
	client := newTestClient(mockAPI)

	res := client.GetSenderData(context.Background())

	require.True(t, res.Status)
	require.Len(t, res.Senders, 1)
	assert.NotEmpty(t, res.Senders[0].AgentRef)
	assert.Empty(t, res.Senders[0].ContactRef)
	assert.Empty(t, res.Senders[0].FirstName)
}

func TestFindSenderByFullName_IgnoresCaseAndWhitespace(t *testing.T) {
	senders := []novaposhta.SenderRecord{
		{AgentRef: "a-1", FirstName: "Taras", LastName: "Shevchenko", MiddleName: "Hryhorovych"},
		{AgentRef: "a-2", FirstName: "Lesia", LastName: "Ukrainka", MiddleName: ""},
	}

	rec, ok := novaposhta.FindSenderByFullName("  taras ", "SHEVCHENKO", "hryhorovych ", senders)

	require.True(t, ok)
	assert.Equal(t, "a-1", rec.AgentRef)
}

func TestFindSenderByFullName_NotFound(t *testing.T) {
	senders := []novaposhta.SenderRecord{
		{AgentRef: "a-1", FirstName: "Taras", LastName: "Shevchenko"},
	}

	_, ok := novaposhta.FindSenderByFullName("Ivan", "Franko", "", senders)

	assert.False(t, ok)
}

func TestFindSenderByFullName_DuplicatesCollapseToLast(t *testing.T) {
	senders := []novaposhta.SenderRecord{
		{AgentRef: "first", FirstName: "Taras", LastName: "Shevchenko", MiddleName: "H"},
		{AgentRef: "last", FirstName: " taras", LastName: "shevchenko ", MiddleName: "h"},
	}

	rec, ok := novaposhta.FindSenderByFullName("Taras", "Shevchenko", "H", senders)

	require.True(t, ok)
	assert.Equal(t, "last", rec.AgentRef)
}

func TestClient_IsValidKey(t *testing.T) {
	mockAPI := novaposhta.NewMockAPIClient()
	client := newTestClient(mockAPI)

	assert.True(t, client.IsValidKey(context.Background()))

	mockAPI.SimulateErrors = true
	assert.False(t, client.IsValidKey(context.Background()))
}

func TestClient_New_WithMock(t *testing.T) {
	logger := otelzap.New(zap.NewNop())
	client := novaposhta.New(novaposhta.Config{UseMock: true}, logger, nil)

	res := client.FindCityByName(context.Background(), "Київ", 50, 1)

	require.True(t, res.Status)
	require.Len(t, res.Cities, 1) // exact match against the mock data
	assert.Equal(t, 1, res.Total)
}
