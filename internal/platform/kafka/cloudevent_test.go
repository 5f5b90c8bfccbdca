package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEvent_Envelope(t *testing.T) {
	type payload struct {
		ClinicID string `json:"clinic_id"`
	}

	ce, err := NewCloudEvent("service-welfare", "appointment.booked", payload{ClinicID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "appointment.booked", parsed.Type)

	var p payload
	require.NoError(t, parsed.ParseData(&p))
	assert.Equal(t, "2", p.ClinicID)
}

func TestParseCloudEvent_RejectsMissingType(t *testing.T) {
	_, err := ParseCloudEvent([]byte(`{"id":"x","data":{}}`))
	assert.Error(t, err)

	_, err = ParseCloudEvent([]byte(`not json`))
	assert.Error(t, err)
}
