package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentJSON(t *testing.T) {
	notes := "premier rendez-vous"
	a := Appointment{
		ID:              5,
		ClientID:        2,
		AppointmentDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       540,
		EndTime:         570,
		Status:          AppointmentStatusPending,
		MeetingType:     MeetingTypeRemote,
		Notes:           &notes,
		CreatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "2025-03-03", body["appointment_date"])
	assert.Equal(t, "09:00", body["start_time"])
	assert.Equal(t, "09:30", body["end_time"])
	assert.Equal(t, "premier rendez-vous", body["notes"])
	assert.Equal(t, "2025-03-01T12:00:00Z", body["created_at"])
	assert.NotContains(t, body, "rescheduled_from")

	t.Run("pointer and nested values use the same shape", func(t *testing.T) {
		data, err := json.Marshal(RescheduleResult{Appointment: &a})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"appointment_date":"2025-03-03"`)
	})
}
