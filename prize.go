package direct

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tcdirect/direct/model"
)

// mergePrizesToChallenges loads the prizes of every challenge in one call and sets the
// derived prize fields. Nothing is written unless the fetch succeeds.
func (d *Direct) mergePrizesToChallenges(ctx context.Context, challenges []*model.Challenge) error {
	if len(challenges) == 0 {
		return nil
	}

	prizes, err := d.datasource.FetchPrizes(ctx, model.ChallengeIDs(challenges))
	if err != nil {
		return err
	}

	EnrichChallenges(challenges, prizes)
	return nil
}

// EnrichChallenges groups prizes by challenge and fills Prizes, CheckPointPrizes and TotalPrize.
// Only challenge and checkpoint prizes count towards the total.
func EnrichChallenges(challenges []*model.Challenge, prizes []model.Prize) {
	byChallenge := make(map[int64][]model.Prize, len(challenges))
	for _, p := range prizes {
		byChallenge[p.ChallengeID] = append(byChallenge[p.ChallengeID], p)
	}

	for _, c := range challenges {
		challengePrizes := []model.Prize{}
		checkPointPrizes := []model.Prize{}
		total := decimal.Zero

		for _, p := range byChallenge[c.ID] {
			value := p.Value()
			total = total.Add(value)
			switch p.PrizeType.Category() {
			case model.PrizeCategoryChallenge:
				p.NumberOfPrize = nil
				challengePrizes = append(challengePrizes, p)
			case model.PrizeCategoryCheckpoint:
				p.Placement = nil
				checkPointPrizes = append(checkPointPrizes, p)
			default:
				total = total.Sub(value)
			}
		}

		c.Prizes = challengePrizes
		c.CheckPointPrizes = checkPointPrizes
		c.TotalPrize = total
	}
}
