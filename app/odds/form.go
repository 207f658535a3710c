package odds

import (
	"github.com/google/uuid"
	"github.com/matchday/oddsbook/models"
)

const formStringLength = 5

// formAnalyzer implements the FormAnalyzer interface
type formAnalyzer struct {
	config *Config
}

// NewFormAnalyzer creates a new form analyzer
func NewFormAnalyzer(config *Config) FormAnalyzer {
	return &formAnalyzer{config: config}
}

// BuildSnapshot summarizes a team's recent completed matches. The history
// slice is expected newest-first, as the repository returns it; matches
// without a final result are skipped.
func (a *formAnalyzer) BuildSnapshot(teamID uuid.UUID, history []models.Match) *models.TeamFormSnapshot {
	snapshot := &models.TeamFormSnapshot{TeamID: teamID}

	var form []byte

	for i := range history {
		match := &history[i]
		if !match.IsFinal() || !match.InvolvedTeam(teamID) {
			continue
		}
		if snapshot.MatchesCounted >= a.config.LookbackWindow {
			break
		}

		home, away, err := match.Result()
		if err != nil {
			continue
		}

		scored, conceded := home, away
		if match.AwayTeamID == teamID {
			scored, conceded = away, home
			snapshot.Away.Add(scored, conceded)
		} else {
			snapshot.Home.Add(scored, conceded)
		}

		snapshot.GoalsFor += scored
		snapshot.GoalsAgainst += conceded
		snapshot.MatchesCounted++

		switch {
		case scored > conceded:
			snapshot.Wins++
			if len(form) < formStringLength {
				form = append(form, 'W')
			}
		case scored < conceded:
			snapshot.Losses++
			if len(form) < formStringLength {
				form = append(form, 'L')
			}
		default:
			snapshot.Draws++
			if len(form) < formStringLength {
				form = append(form, 'D')
			}
		}
	}

	if snapshot.MatchesCounted > 0 {
		n := float64(snapshot.MatchesCounted)
		snapshot.AvgGoalsFor = float64(snapshot.GoalsFor) / n
		snapshot.AvgGoalsAgainst = float64(snapshot.GoalsAgainst) / n
	}
	snapshot.FormString = string(form)
	snapshot.LowConfidence = snapshot.MatchesCounted < a.config.MinMatchesForForm

	return snapshot
}
