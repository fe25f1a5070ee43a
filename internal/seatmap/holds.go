package seatmap

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSeatConflict is returned when another session already holds one of the
// requested seats. The conflicting label travels in SeatConflictError.
var ErrSeatConflict = errors.New("seat already held")

type SeatConflictError struct {
	SeatLabel string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat already held: %s", e.SeatLabel)
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

// HoldStore manages exclusive seat holds in Redis. A hold key exists per
// showtime+seat while a session is live; the TTL matches the session
// timeout so an abandoned session's seats free themselves.
type HoldStore struct {
	redis *redis.Client
}

func NewHoldStore(redisClient *redis.Client) *HoldStore {
	return &HoldStore{
		redis: redisClient,
	}
}

const holdKeyPrefix = "cinebook:seat_hold:"
const sessionHoldsPrefix = "cinebook:session_holds:"

func holdKey(showtimeID, label string) string {
	return holdKeyPrefix + showtimeID + ":" + label
}

func sessionHoldsKey(sessionID string) string {
	return sessionHoldsPrefix + sessionID
}

// All-or-nothing hold: first pass checks availability, second pass writes.
// Running inside one Lua script makes the check-then-set race free.
const luaHoldSeats = `
-- KEYS[1] = session holds set key
-- ARGV[1] = session_id
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = seat hold keys

local session_key = KEYS[1]
local session_id = ARGV[1]
local ttl = tonumber(ARGV[2])

for i = 3, #ARGV do
    local holder = redis.call("GET", ARGV[i])
    if holder and holder ~= session_id then
        return {0, ARGV[i]}
    end
end

for i = 3, #ARGV do
    redis.call("SETEX", ARGV[i], ttl, session_id)
    redis.call("SADD", session_key, ARGV[i])
end
redis.call("EXPIRE", session_key, ttl)

return {1, #ARGV - 2}
`

// Release checks ownership per key so an expired-and-reacquired seat is
// never stolen from its new holder.
const luaReleaseSeats = `
-- KEYS[1] = session holds set key
-- ARGV[1] = session_id

local session_key = KEYS[1]
local session_id = ARGV[1]

local hold_keys = redis.call("SMEMBERS", session_key)
local released = 0

for i = 1, #hold_keys do
    local holder = redis.call("GET", hold_keys[i])
    if holder == session_id then
        redis.call("DEL", hold_keys[i])
        released = released + 1
    end
end

redis.call("DEL", session_key)
return released
`

// HoldSeats atomically acquires holds for every label, replacing whatever
// this session held before with the union. Returns SeatConflictError when
// any seat belongs to another live session.
func (h *HoldStore) HoldSeats(ctx context.Context, showtimeID, sessionID string, labels []string, ttl time.Duration) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	if len(labels) == 0 {
		return nil
	}

	keys := []string{sessionHoldsKey(sessionID)}
	args := []interface{}{sessionID, strconv.FormatInt(holdTTLSeconds(ttl), 10)}
	for _, label := range labels {
		args = append(args, holdKey(showtimeID, label))
	}

	result, err := h.redis.EvalSha(ctx, luaHoldSeats, keys, args...).Result()
	if err != nil {
		result, err = h.redis.Eval(ctx, luaHoldSeats, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return fmt.Errorf("unexpected result format from hold script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in hold script result")
	}

	if success == 0 {
		conflictKey, _ := resultArray[1].(string)
		return &SeatConflictError{SeatLabel: labelFromHoldKey(conflictKey, showtimeID)}
	}

	return nil
}

// ReleaseSeats drops every hold the session owns. Returns how many seats
// were actually released; releasing an unknown session is not an error.
func (h *HoldStore) ReleaseSeats(ctx context.Context, sessionID string) (int, error) {
	if h.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := h.redis.EvalSha(ctx, luaReleaseSeats, []string{sessionHoldsKey(sessionID)}, sessionID).Result()
	if err != nil {
		result, err = h.redis.Eval(ctx, luaReleaseSeats, []string{sessionHoldsKey(sessionID)}, sessionID).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute seat release: %w", err)
		}
	}

	released, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in release script result")
	}
	return int(released), nil
}

// Ownership-checked release of specific seats, used when a selection
// shrinks while the session stays live.
const luaReleaseSpecific = `
-- KEYS[1] = session holds set key
-- ARGV[1] = session_id
-- ARGV[2..N] = seat hold keys

local session_key = KEYS[1]
local session_id = ARGV[1]
local released = 0

for i = 2, #ARGV do
    local holder = redis.call("GET", ARGV[i])
    if holder == session_id then
        redis.call("DEL", ARGV[i])
        released = released + 1
    end
    redis.call("SREM", session_key, ARGV[i])
end

return released
`

// ReleaseLabels drops holds on the given seats only, leaving the rest of
// the session's holds intact.
func (h *HoldStore) ReleaseLabels(ctx context.Context, showtimeID, sessionID string, labels []string) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	if len(labels) == 0 {
		return nil
	}

	args := []interface{}{sessionID}
	for _, label := range labels {
		args = append(args, holdKey(showtimeID, label))
	}

	_, err := h.redis.EvalSha(ctx, luaReleaseSpecific, []string{sessionHoldsKey(sessionID)}, args...).Result()
	if err != nil {
		_, err = h.redis.Eval(ctx, luaReleaseSpecific, []string{sessionHoldsKey(sessionID)}, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to release seats: %w", err)
		}
	}
	return nil
}

// HeldLabels scans the hold keyspace for one showtime and returns the seat
// labels currently held. Holds owned by excludeSessionID are skipped so a
// customer sees their own held seats as selectable.
func (h *HoldStore) HeldLabels(ctx context.Context, showtimeID, excludeSessionID string) (map[string]bool, error) {
	if h.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	held := make(map[string]bool)
	prefix := holdKeyPrefix + showtimeID + ":"

	var cursor uint64
	for {
		keys, next, err := h.redis.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan seat holds: %w", err)
		}

		if len(keys) > 0 {
			holders, err := h.redis.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("failed to read seat holds: %w", err)
			}
			for i, key := range keys {
				holder, ok := holders[i].(string)
				if !ok {
					continue
				}
				if excludeSessionID != "" && holder == excludeSessionID {
					continue
				}
				held[labelFromHoldKey(key, showtimeID)] = true
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return held, nil
}

// PreloadScripts warms the Lua scripts into the Redis script cache.
func (h *HoldStore) PreloadScripts(ctx context.Context) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := h.redis.ScriptLoad(ctx, luaHoldSeats).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}
	if _, err := h.redis.ScriptLoad(ctx, luaReleaseSeats).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}
	if _, err := h.redis.ScriptLoad(ctx, luaReleaseSpecific).Result(); err != nil {
		return fmt.Errorf("failed to load partial release script: %w", err)
	}
	return nil
}

// holdTTLSeconds converts the remaining session time to a whole-second TTL.
// SETEX rejects zero, so a sub-second remainder rounds up to one second and
// the hold outlives the session by at most that much.
func holdTTLSeconds(ttl time.Duration) int64 {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

func labelFromHoldKey(key, showtimeID string) string {
	prefix := holdKeyPrefix + showtimeID + ":"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
