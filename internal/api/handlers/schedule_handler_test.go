package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/adapters/store"
	"github.com/vakilyar/marketplace-backend/internal/api/handlers"
	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

func newScheduleTestServer() *httptest.Server {
	kvStore := kv.NewMemoryAdapter()
	svc := services.NewScheduleService(store.NewTemplateAdapter(kvStore), store.NewSlotAdapter(kvStore))
	handler := handlers.NewScheduleHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/lawyers/{id}/template", handler.GetTemplate)
	mux.HandleFunc("PUT /api/lawyers/{id}/template", handler.SaveTemplate)
	mux.HandleFunc("POST /api/lawyers/{id}/template/apply", handler.ApplyTemplate)
	mux.HandleFunc("GET /api/lawyers/{id}/slots", handler.ListSlots)
	mux.HandleFunc("POST /api/lawyers/{id}/slots", handler.AddCustomSlot)
	mux.HandleFunc("POST /api/lawyers/{id}/slots/toggle", handler.ToggleHour)
	mux.HandleFunc("DELETE /api/lawyers/{id}/slots/{slotId}", handler.DeleteSlot)
	mux.HandleFunc("GET /api/lawyers/{id}/holiday", handler.GetHolidayStatus)

	return httptest.NewServer(mux)
}

func TestGetTemplateSeedsDefault(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/lawyers/lawyer-1/template")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var template entities.WeeklyTemplate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&template))
	assert.Equal(t, "lawyer-1", template.LawyerID)
	assert.True(t, template.Day(entities.Friday).IsHoliday)
	assert.Equal(t, entities.DefaultWorkingHours, template.Day(entities.Saturday).Hours)
}

func TestApplyTemplateAndListSlots(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	body := strings.NewReader(`{"start_date":"2024-03-02","end_date":"2024-03-08"}`)
	resp, err := http.Post(server.URL+"/api/lawyers/lawyer-1/template/apply", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/lawyers/lawyer-1/slots?from=2024-03-02&to=2024-03-02")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Slots []entities.TimeSlot `json:"slots"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, len(entities.DefaultWorkingHours), payload.Count)
}

func TestApplyTemplateRejectsBadDate(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	body := strings.NewReader(`{"start_date":"bad","end_date":"2024-03-08"}`)
	resp, err := http.Post(server.URL+"/api/lawyers/lawyer-1/template/apply", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddCustomSlotConflict(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	payload := `{"date":"2024-03-02","start_time":"11:30","end_time":"12:15"}`
	resp, err := http.Post(server.URL+"/api/lawyers/lawyer-1/slots", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/lawyers/lawyer-1/slots", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errPayload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errPayload))
	assert.NotEmpty(t, errPayload["error"])
}

func TestDeleteMissingSlot(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/lawyers/lawyer-1/slots/2024-03-02-09:00", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetHolidayStatus(t *testing.T) {
	server := newScheduleTestServer()
	defer server.Close()

	// 2024-03-08 is a Friday, a holiday on the default template
	resp, err := http.Get(server.URL + "/api/lawyers/lawyer-1/holiday?date=2024-03-08")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Date      string `json:"date"`
		IsHoliday bool   `json:"is_holiday"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.IsHoliday)

	resp, err = http.Get(server.URL + "/api/lawyers/lawyer-1/holiday")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
