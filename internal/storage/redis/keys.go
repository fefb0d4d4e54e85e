package redis

import (
	"fmt"

	"github.com/gesturelabs/gestris/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "gestris"

// snapshotKey returns the Redis key for a session's GameSnapshot
func snapshotKey(id model.SessionID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}

// highScoreKey returns the Redis key for the global high score
func highScoreKey() string {
	return fmt.Sprintf("%s:highscore", keyPrefix)
}
