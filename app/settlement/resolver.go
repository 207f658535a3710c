package settlement

import (
	"github.com/matchday/oddsbook/models"
)

// ResolveLeg grades one leg against the match it was struck on. A voided
// match voids the leg regardless of market; a completed match grades it
// through the same outcome classification the odds engine prices with.
func ResolveLeg(leg *models.BetLeg, match *models.Match) (models.LegStatus, error) {
	if match.ID != leg.MatchID {
		return "", models.ErrInvalidMatchID
	}
	if match.IsVoided() {
		return models.LegStatusVoid, nil
	}
	if !match.IsFinal() || match.HomeScore == nil || match.AwayScore == nil {
		return "", models.ErrMatchNotFinal
	}

	winning, err := models.OutcomeForScore(leg.Market, *match.HomeScore, *match.AwayScore)
	if err != nil {
		return "", err
	}
	if winning == leg.Outcome {
		return models.LegStatusWon, nil
	}
	return models.LegStatusLost, nil
}

// betStatusFor maps resolved legs to the bet's terminal status. All legs
// void means the stake comes back untouched.
func betStatusFor(legs []models.BetLeg, payoutPositive bool) models.BetStatus {
	allVoid := true
	for i := range legs {
		if legs[i].Status != models.LegStatusVoid {
			allVoid = false
			break
		}
	}
	if allVoid {
		return models.BetStatusVoid
	}
	if payoutPositive {
		return models.BetStatusWon
	}
	return models.BetStatusLost
}
