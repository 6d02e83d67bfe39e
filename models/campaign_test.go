package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCampaignConfig(t *testing.T) {
	campaign, err := ParseCampaignConfig("2025-03-01", "2025-03-31", "Europe/Paris")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", campaign.Location.String())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, campaign.Location), campaign.Window.Start)
	// the end date is inclusive
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, campaign.Location), campaign.Window.End)

	_, err = ParseCampaignConfig("2025-03-31", "2025-03-01", "")
	assert.ErrorIs(t, err, BadParameterError)
	_, err = ParseCampaignConfig("01/03/2025", "2025-03-31", "")
	assert.ErrorIs(t, err, BadParameterError)
	_, err = ParseCampaignConfig("2025-03-01", "2025-03-31", "Mars/Olympus")
	assert.Error(t, err)
}

func TestParseCampaignTimezone(t *testing.T) {
	campaign, err := ParseCampaignTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, campaign.Location)
	assert.True(t, campaign.Window.Start.IsZero())

	_, err = ParseCampaignTimezone("Mars/Olympus")
	assert.Error(t, err)
}
