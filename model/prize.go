package model

import "github.com/shopspring/decimal"

// Prize type ids as stored in prize_type_lu.
const (
	CheckpointPrizeTypeID = 14
	ChallengePrizeTypeID  = 15
)

type PrizeCategory string

const (
	PrizeCategoryChallenge  PrizeCategory = "challenge"
	PrizeCategoryCheckpoint PrizeCategory = "checkpoint"
	PrizeCategoryOther      PrizeCategory = "other"
)

type PrizeType int

// Category folds the open set of prize type ids into the three categories the listing knows about.
func (t PrizeType) Category() PrizeCategory {
	switch t {
	case ChallengePrizeTypeID:
		return PrizeCategoryChallenge
	case CheckpointPrizeTypeID:
		return PrizeCategoryCheckpoint
	default:
		return PrizeCategoryOther
	}
}

type Prize struct {
	ChallengeID   int64           `json:"-" db:"challenge_id"`
	PrizeType     PrizeType       `json:"prizeType" db:"prize_type_id"`
	Amount        decimal.Decimal `json:"prizeAmount" db:"prize_amount"`
	NumberOfPrize *int            `json:"numberOfPrize,omitempty" db:"number_of_submissions"`
	Placement     *int            `json:"placement,omitempty" db:"place"`
}

// Value is amount times quantity. A missing quantity counts as one prize.
func (p Prize) Value() decimal.Decimal {
	qty := int64(1)
	if p.NumberOfPrize != nil {
		qty = int64(*p.NumberOfPrize)
	}
	return p.Amount.Mul(decimal.NewFromInt(qty))
}
