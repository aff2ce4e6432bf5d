package manager

import (
	"fmt"
	"time"
)

// ScoreText is the text pushed to the score sink.
func ScoreText(score uint) string {
	return fmt.Sprintf("Score: %d", score)
}

// GameRecord is one finished game.
type GameRecord struct {
	SessionID string
	Score     uint
	Length    int
	Ticks     int
	EndedAt   time.Time
}

// ScoreManager keeps in-process score statistics. Nothing is written to disk.
type ScoreManager struct {
	highScore    uint
	scoreHistory []GameRecord
	limit        int
	games        int
}

// NewScoreManager keeps at most limit records; limit <= 0 keeps everything.
func NewScoreManager(limit int) *ScoreManager {
	return &ScoreManager{
		scoreHistory: make([]GameRecord, 0),
		limit:        limit,
	}
}

func (sm *ScoreManager) UpdateScore(score uint) {
	if score > sm.highScore {
		sm.highScore = score
	}
}

func (sm *ScoreManager) AddToHistory(record GameRecord) {
	sm.UpdateScore(record.Score)
	sm.games++
	sm.scoreHistory = append(sm.scoreHistory, record)
	if sm.limit > 0 && len(sm.scoreHistory) > sm.limit {
		sm.scoreHistory = sm.scoreHistory[len(sm.scoreHistory)-sm.limit:]
	}
}

func (sm *ScoreManager) GetHighScore() uint {
	return sm.highScore
}

func (sm *ScoreManager) GetScoreHistory() []GameRecord {
	history := make([]GameRecord, len(sm.scoreHistory))
	copy(history, sm.scoreHistory)
	return history
}

// GetAverageScore averages the retained history.
func (sm *ScoreManager) GetAverageScore() float64 {
	if len(sm.scoreHistory) == 0 {
		return 0
	}
	var total uint
	for _, r := range sm.scoreHistory {
		total += r.Score
	}
	return float64(total) / float64(len(sm.scoreHistory))
}

func (sm *ScoreManager) GamesPlayed() int {
	return sm.games
}
