package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arkanoid/internal/logging"
	"github.com/vovakirdan/tui-arkanoid/internal/registry"
)

// HighScores adapts a Store to registry.HighScores for one game variant.
// Failures are logged and otherwise ignored: a game without a readable
// high score simply starts from zero.
type HighScores struct {
	store  *Store
	gameID string
	logger *log.Logger
}

var _ registry.HighScores = (*HighScores)(nil)

// HighScores returns the high-score adapter for gameID.
func (s *Store) HighScores(gameID string, logger *log.Logger) *HighScores {
	return &HighScores{store: s, gameID: gameID, logger: logging.OrDiscard(logger)}
}

// LoadHighScore returns the stored high score, or 0.
func (h *HighScores) LoadHighScore() int {
	if h == nil || h.store == nil {
		return 0
	}
	score, err := h.store.HighScore(h.gameID)
	if err != nil {
		h.logger.Warn("high score unavailable", "game", h.gameID, "err", err)
		return 0
	}
	return score
}

// SaveHighScore stores score if it beats the saved one.
func (h *HighScores) SaveHighScore(score int) {
	if h == nil || h.store == nil {
		return
	}
	if err := h.store.SetHighScore(h.gameID, score); err != nil {
		h.logger.Warn("high score not saved", "game", h.gameID, "score", score, "err", err)
		return
	}
	h.logger.Debug("high score saved", "game", h.gameID, "score", score)
}
