package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-character-chat/backend/shared/redis"
)

// Turn is one replayed exchange entry. Role is "user" or "assistant".
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryStore keeps per-continuity-key transcripts in redis. The external
// chat-completions APIs are stateless, so multi-turn coherence depends on
// replaying this transcript on every call; the durable message table is
// never read back into the prompt.
type HistoryStore struct {
	redis *redis.Client
	ttl   time.Duration
	limit int
}

// NewHistoryStore creates a store retaining transcripts for ttl and
// replaying at most limit turns per call.
func NewHistoryStore(redis *redis.Client, ttl time.Duration, limit int) *HistoryStore {
	return &HistoryStore{redis: redis, ttl: ttl, limit: limit}
}

func historyKey(continuityKey string) string {
	return "chat:history:" + continuityKey
}

// Append records one turn under the continuity key.
func (s *HistoryStore) Append(ctx context.Context, continuityKey string, turn Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}
	return s.redis.RPush(ctx, historyKey(continuityKey), s.ttl, payload)
}

// Load returns up to the configured limit of most recent turns.
func (s *HistoryStore) Load(ctx context.Context, continuityKey string) ([]Turn, error) {
	entries, err := s.redis.LRange(ctx, historyKey(continuityKey), int64(s.limit))
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(entries))
	for _, e := range entries {
		var t Turn
		if err := json.Unmarshal([]byte(e), &t); err != nil {
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}
