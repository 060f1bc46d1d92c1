package stats

import (
	"math"
	"sort"

	"FiveHundred/models/postgres"

	"gorm.io/gorm"
)

// SuitPreference is one bucket of the player's bid suit histogram.
type SuitPreference struct {
	BidSuit string `json:"bid_suit"`
	Count   int    `json:"count"`
}

// PartnershipStat aggregates results with one distinct teammate.
type PartnershipStat struct {
	PartnerID uint `json:"partner_id"`
	Games     int  `json:"games"`
	Wins      int  `json:"wins"`
}

// PlayerStats is everything the profile page shows for one player.
type PlayerStats struct {
	GamesPlayed     int               `json:"gamesPlayed"`
	GamesWon        int               `json:"gamesWon"`
	GamesLost       int               `json:"gamesLost"`
	WinPercentage   float64           `json:"winPercentage"`
	BidsTotal       int               `json:"bidsTotal"`
	BidsWon         int               `json:"bidsWon"`
	BidSuccessRate  float64           `json:"bidSuccessRate"`
	SuitPreferences []SuitPreference  `json:"suitPreferences"`
	CocktailsServed int               `json:"cocktailsServed"`
	Partnerships    []PartnershipStat `json:"partnershipStats"`
}

// LeaderboardEntry is one ranked row of the global leaderboard.
type LeaderboardEntry struct {
	Player        postgres.Player `json:"player"`
	GamesPlayed   int             `json:"gamesPlayed"`
	GamesWon      int             `json:"gamesWon"`
	WinPercentage float64         `json:"winPercentage"`
}

// ComputePlayerStats recomputes a player's statistics from the full history
// of completed games and all their bids. Nothing is cached; household-scale
// data makes read-time aggregation cheap.
func ComputePlayerStats(db *gorm.DB, playerID uint) (*PlayerStats, error) {
	s := &PlayerStats{
		SuitPreferences: []SuitPreference{},
		Partnerships:    []PartnershipStat{},
	}

	games, err := completedGamesForPlayer(db, playerID)
	if err != nil {
		return nil, err
	}

	partnerships := make(map[uint]*PartnershipStat)
	for _, game := range games {
		s.GamesPlayed++
		team := game.TeamOf(playerID)
		won := game.WinnerTeam != nil && *game.WinnerTeam == team
		if won {
			s.GamesWon++
		} else {
			s.GamesLost++
		}

		partnerID := partnerIn(&game, playerID)
		p, ok := partnerships[partnerID]
		if !ok {
			p = &PartnershipStat{PartnerID: partnerID}
			partnerships[partnerID] = p
		}
		p.Games++
		if won {
			p.Wins++
		}
	}
	s.WinPercentage = percentage(s.GamesWon, s.GamesPlayed)

	for _, p := range partnerships {
		s.Partnerships = append(s.Partnerships, *p)
	}
	sort.Slice(s.Partnerships, func(i, j int) bool {
		return s.Partnerships[i].PartnerID < s.Partnerships[j].PartnerID
	})

	var bidsTotal, bidsWon int64
	err = db.Model(&postgres.Hand{}).Where("bidder_id = ?", playerID).Count(&bidsTotal).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&postgres.Hand{}).Where("bidder_id = ? AND bid_won = ?", playerID, true).Count(&bidsWon).Error
	if err != nil {
		return nil, err
	}
	s.BidsTotal = int(bidsTotal)
	s.BidsWon = int(bidsWon)
	s.BidSuccessRate = percentage(s.BidsWon, s.BidsTotal)

	err = db.Model(&postgres.Hand{}).
		Select("bid_suit, COUNT(*) as count").
		Where("bidder_id = ?", playerID).
		Group("bid_suit").
		Order("count DESC").
		Scan(&s.SuitPreferences).Error
	if err != nil {
		return nil, err
	}

	var cocktails int64
	err = db.Model(&postgres.Cocktail{}).Where("served_by = ?", playerID).Count(&cocktails).Error
	if err != nil {
		return nil, err
	}
	s.CocktailsServed = int(cocktails)

	return s, nil
}

// ComputeLeaderboard ranks every player by win percentage, with games played
// breaking ties.
func ComputeLeaderboard(db *gorm.DB) ([]LeaderboardEntry, error) {
	var players []postgres.Player
	if err := db.Order("id").Find(&players).Error; err != nil {
		return nil, err
	}

	var games []postgres.Game
	if err := db.Where("completed = ?", true).Find(&games).Error; err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, 0, len(players))
	for _, player := range players {
		entry := LeaderboardEntry{Player: player}
		for i := range games {
			team := games[i].TeamOf(player.ID)
			if team == 0 {
				continue
			}
			entry.GamesPlayed++
			if games[i].WinnerTeam != nil && *games[i].WinnerTeam == team {
				entry.GamesWon++
			}
		}
		entry.WinPercentage = percentage(entry.GamesWon, entry.GamesPlayed)
		leaderboard = append(leaderboard, entry)
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		if leaderboard[i].WinPercentage != leaderboard[j].WinPercentage {
			return leaderboard[i].WinPercentage > leaderboard[j].WinPercentage
		}
		return leaderboard[i].GamesPlayed > leaderboard[j].GamesPlayed
	})

	return leaderboard, nil
}

func completedGamesForPlayer(db *gorm.DB, playerID uint) ([]postgres.Game, error) {
	var games []postgres.Game
	err := db.Where("completed = ?", true).
		Where("team1_player1 = ? OR team1_player2 = ? OR team2_player1 = ? OR team2_player2 = ?",
			playerID, playerID, playerID, playerID).
		Find(&games).Error
	return games, err
}

// partnerIn returns whichever of the other three seats shares the player's
// team in this game.
func partnerIn(game *postgres.Game, playerID uint) uint {
	switch playerID {
	case game.Team1Player1:
		return game.Team1Player2
	case game.Team1Player2:
		return game.Team1Player1
	case game.Team2Player1:
		return game.Team2Player2
	}
	return game.Team2Player1
}

// percentage rounds won/played to one decimal place, 0 when nothing played.
func percentage(won, played int) float64 {
	if played == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(played)*1000) / 10
}
