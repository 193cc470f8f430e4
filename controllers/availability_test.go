package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/serenispa/booking-api/db"
	"github.com/serenispa/booking-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityFreeFilter(t *testing.T) {
	app := setupTestApp(t)
	fx := seedBooking(t, time.Now().UTC().Add(48*time.Hour))

	booked := models.AvailabilitySlot{
		TherapistID: fx.Therapist.ID,
		StartTime:   time.Now().UTC().Add(72 * time.Hour),
		EndTime:     time.Now().UTC().Add(73 * time.Hour),
		IsBooked:    true,
	}
	require.NoError(t, db.DB.Create(&booked).Error)

	resp := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/availability?therapist_id=%d&free=true", fx.Therapist.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var slots []models.AvailabilitySlot
	decodeBody(t, resp, &slots)
	require.Len(t, slots, 1)
	assert.Equal(t, fx.Slot.ID, slots[0].ID)
	assert.False(t, slots[0].IsBooked)
}

func TestDeleteBookedSlotRejected(t *testing.T) {
	app := setupTestApp(t)
	fx := seedBooking(t, time.Now().UTC().Add(48*time.Hour))

	resp := doRequest(t, app, http.MethodPost, "/appointments", "", fx.createInput())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/availability/%d", fx.Slot.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateAvailabilitySlotValidatesTimes(t *testing.T) {
	app := setupTestApp(t)
	fx := seedBooking(t, time.Now().UTC().Add(48*time.Hour))

	start := time.Now().UTC().Add(24 * time.Hour)
	resp := doRequest(t, app, http.MethodPost, "/availability", "", map[string]interface{}{
		"therapist_id": fx.Therapist.ID,
		"start_time":   start,
		"end_time":     start.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/availability", "", map[string]interface{}{
		"therapist_id": fx.Therapist.ID,
		"start_time":   start,
		"end_time":     start.Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var slot models.AvailabilitySlot
	decodeBody(t, resp, &slot)
	assert.False(t, slot.IsBooked)
}
