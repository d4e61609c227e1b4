package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oraculo/models"
)

func getSlots(t *testing.T, svc *stubBookingService, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewSlotHandler(svc)
	router := gin.New()
	// Route naming mirrors production: /available serves dates and
	// /available-dates serves the full slot list.
	router.GET("/api/slots/available", handler.GetAvailableDatesHandler)
	router.GET("/api/slots/available-dates", handler.GetAvailableSlotsHandler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetAvailableSlotsHandler(t *testing.T) {
	svc := &stubBookingService{
		slots: []models.Slot{
			{ID: "slot-1", Date: "2025-07-21", Time: "13:00"},
			{ID: "slot-2", Date: "2025-07-21", Time: "14:30"},
		},
	}

	rec := getSlots(t, svc, "/api/slots/available-dates")
	require.Equal(t, http.StatusOK, rec.Code)

	var slots []models.Slot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	require.Len(t, slots, 2)
	assert.Equal(t, "13:00", slots[0].Time)
}

func TestGetAvailableDatesHandler(t *testing.T) {
	svc := &stubBookingService{dates: []string{"2025-07-21", "2025-07-22"}}

	rec := getSlots(t, svc, "/api/slots/available")
	require.Equal(t, http.StatusOK, rec.Code)

	var dates []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dates))
	assert.Equal(t, []string{"2025-07-21", "2025-07-22"}, dates)
}

func TestAvailabilityHandlersStoreFailure(t *testing.T) {
	svc := &stubBookingService{queryErr: errors.New("mongo: connection refused")}

	assert.Equal(t, http.StatusInternalServerError, getSlots(t, svc, "/api/slots/available").Code)
	assert.Equal(t, http.StatusInternalServerError, getSlots(t, svc, "/api/slots/available-dates").Code)
}
