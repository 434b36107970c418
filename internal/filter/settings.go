package filter

import (
	"time"

	"github.com/tcdirect/direct/config"
)

// DateLayout accepts MM/dd/yyyy, with or without leading zeros.
const DateLayout = "1/2/2006"

// Settings is the read-only table the compiler and validator work from.
// Build it once at start-up and share it between requests.
type Settings struct {
	// OrderByFields maps lower-cased sort names to the column aliases of the listing query.
	OrderByFields    map[string]string
	DefaultSortField string
	IDSortField      string
	TieBreakColumn   string
	MinDate          time.Time
	MaxDate          time.Time
	DateLayout       string
}

// DefaultSettings returns the stock sort whitelist and sentinel dates.
func DefaultSettings() Settings {
	return Settings{
		OrderByFields: map[string]string{
			"id":                 "challenge_id",
			"challengename":      "challenge_name",
			"challengetype":      "challenge_type",
			"clientname":         "client_name",
			"clientid":           "client_id",
			"billingname":        "billing_name",
			"billingid":          "billing_id",
			"directprojectname":  "direct_project_name",
			"directprojectid":    "direct_project_id",
			"challengestartdate": "challenge_start_date",
			"challengeenddate":   "challenge_end_date",
			"drpoints":           "dr_points",
			"challengestatus":    "challenge_status",
			"challengecreator":   "challenge_creator",
		},
		DefaultSortField: "challengeEndDate",
		IDSortField:      "id",
		TieBreakColumn:   "challenge_id",
		MinDate:          time.Unix(0, 0).UTC(),
		MaxDate:          time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC),
		DateLayout:       DateLayout,
	}
}

// SettingsFromConfig overlays the configured sentinel upper date on the defaults.
func SettingsFromConfig(cnf *config.Configuration) (Settings, error) {
	s := DefaultSettings()
	if cnf == nil || cnf.Query.MaxDate == "" {
		return s, nil
	}
	maxDate, err := time.Parse(time.RFC3339, cnf.Query.MaxDate)
	if err != nil {
		return Settings{}, err
	}
	s.MaxDate = maxDate.UTC()
	return s, nil
}
