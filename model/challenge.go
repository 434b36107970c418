package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Challenge is the read-only projection returned by the "my challenges" listing.
// Prizes, CheckPointPrizes and TotalPrize are derived and only written by the prize enricher.
type Challenge struct {
	ID                 int64      `json:"id" db:"challenge_id"`
	ChallengeName      string     `json:"challengeName" db:"challenge_name"`
	ChallengeType      string     `json:"challengeType" db:"challenge_type"`
	ClientName         *string    `json:"clientName" db:"client_name"`
	ClientID           *int64     `json:"clientId" db:"client_id"`
	BillingName        *string    `json:"billingName" db:"billing_name"`
	BillingID          *int64     `json:"billingId" db:"billing_id"`
	DirectProjectName  *string    `json:"directProjectName" db:"direct_project_name"`
	DirectProjectID    *int64     `json:"directProjectId" db:"direct_project_id"`
	ChallengeStartDate *time.Time `json:"challengeStartDate" db:"challenge_start_date"`
	ChallengeEndDate   *time.Time `json:"challengeEndDate" db:"challenge_end_date"`
	DrPoints           *float64   `json:"drPoints" db:"dr_points"`
	ChallengeStatus    string     `json:"challengeStatus" db:"challenge_status"`
	ChallengeCreator   *string    `json:"challengeCreator" db:"challenge_creator"`

	Prizes           []Prize         `json:"prizes" db:"-"`
	CheckPointPrizes []Prize         `json:"checkPointPrizes" db:"-"`
	TotalPrize       decimal.Decimal `json:"totalPrize" db:"-"`
}

// ChallengeIDs returns the ids of the given challenges in order.
func ChallengeIDs(challenges []*Challenge) []int64 {
	ids := make([]int64, 0, len(challenges))
	for _, c := range challenges {
		ids = append(ids, c.ID)
	}
	return ids
}
