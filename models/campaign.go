package models

import (
	"time"

	"github.com/cockroachdb/errors"
)

// CampaignWindow is the fixed date range of the challenge.
type CampaignWindow struct {
	Start time.Time
	End   time.Time
}

func (w CampaignWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errors.Wrap(BadParameterError, "campaign start and end are required")
	}
	if !w.End.After(w.Start) {
		return errors.Wrapf(BadParameterError, "campaign end %s must be after campaign start %s",
			w.End.Format(DateFormat), w.Start.Format(DateFormat))
	}
	return nil
}

type CampaignConfig struct {
	Window   CampaignWindow
	Location *time.Location
}

// ParseCampaignTimezone builds a configuration without campaign window, used by the processes that
// only import snapshots.
func ParseCampaignTimezone(timezone string) (CampaignConfig, error) {
	location, err := loadCampaignLocation(timezone)
	if err != nil {
		return CampaignConfig{}, err
	}
	return CampaignConfig{Location: location}, nil
}

func loadCampaignLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid campaign timezone %s", timezone)
	}
	return location, nil
}

// ParseCampaignConfig reads the campaign window from ISO dates. The end date is inclusive: the
// campaign ends at midnight after it.
func ParseCampaignConfig(start, end, timezone string) (CampaignConfig, error) {
	location, err := loadCampaignLocation(timezone)
	if err != nil {
		return CampaignConfig{}, err
	}

	startDate, err := time.ParseInLocation(DateFormat, start, location)
	if err != nil {
		return CampaignConfig{}, errors.Wrapf(BadParameterError, "invalid campaign start date '%s'", start)
	}
	endDate, err := time.ParseInLocation(DateFormat, end, location)
	if err != nil {
		return CampaignConfig{}, errors.Wrapf(BadParameterError, "invalid campaign end date '%s'", end)
	}

	window := CampaignWindow{Start: startDate, End: endDate.AddDate(0, 0, 1)}
	if err := window.Validate(); err != nil {
		return CampaignConfig{}, err
	}
	return CampaignConfig{Window: window, Location: location}, nil
}

type GoalProjection struct {
	ElapsedFraction float64
	LeaderScore     float64
	ProjectedGoal   float64
	// EarlyCampaign is set when the projection used the flat early-campaign multiplier
	EarlyCampaign bool
}
