package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSamplingRates(t *testing.T) {
	rates, err := parseSamplingRates("GET /leaderboard=0.1, POST /imports=1")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"GET /leaderboard": 0.1, "POST /imports": 1}, rates)

	rates, err = parseSamplingRates("")
	require.NoError(t, err)
	assert.Empty(t, rates)

	_, err = parseSamplingRates("GET /leaderboard")
	assert.Error(t, err)
	_, err = parseSamplingRates("GET /leaderboard=2")
	assert.Error(t, err)
}

func TestReadCampaignConfig(t *testing.T) {
	t.Setenv("CAMPAIGN_START", "")
	t.Setenv("CAMPAIGN_END", "")
	t.Setenv("CAMPAIGN_TIMEZONE", "Europe/Paris")

	campaign, err := readCampaignConfig(false)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", campaign.Location.String())

	_, err = readCampaignConfig(true)
	assert.Error(t, err)

	t.Setenv("CAMPAIGN_START", "2025-03-01")
	t.Setenv("CAMPAIGN_END", "2025-03-31")
	campaign, err = readCampaignConfig(true)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", campaign.Window.End.Format("2006-01-02"))
}
