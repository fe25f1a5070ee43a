package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the cinebook application.
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // movie catalog
	TTL_STATIC_MEDIUM = 12 * time.Hour // theater and auditorium layouts
)

// Semi-static data (changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // showtime details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // showtime listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // concession catalog
)

// Dynamic data (real-time sensitive)
const (
	TTL_SEATMAP_SNAPSHOT = 30 * time.Second // seat occupancy snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

const (
	CACHE_KEY_MOVIE          = CACHE_PREFIX + ":catalog:movie:"
	CACHE_KEY_MOVIES_LIST    = CACHE_PREFIX + ":catalog:movies:list"
	CACHE_KEY_SHOWTIME       = CACHE_PREFIX + ":catalog:showtime:"
	CACHE_KEY_SHOWTIMES_LIST = CACHE_PREFIX + ":catalog:showtimes:movie:"
	CACHE_KEY_THEATER        = CACHE_PREFIX + ":theaters:theater:"
	CACHE_KEY_AUDITORIUM     = CACHE_PREFIX + ":theaters:auditorium:"
	CACHE_KEY_SEATMAP        = CACHE_PREFIX + ":seatmap:showtime:"
	CACHE_KEY_CONCESSIONS    = CACHE_PREFIX + ":concessions:catalog"
)

// Invalidation patterns
const (
	PATTERN_INVALIDATE_CATALOG = CACHE_PREFIX + ":catalog:*"
	PATTERN_INVALIDATE_SEATMAP = CACHE_PREFIX + ":seatmap:*"
)

// ================== KEY BUILDERS ==================

func BuildMovieKey(movieID string) string {
	return CACHE_KEY_MOVIE + movieID
}

func BuildShowtimeKey(showtimeID string) string {
	return CACHE_KEY_SHOWTIME + showtimeID
}

func BuildShowtimesByMovieKey(movieID string) string {
	return CACHE_KEY_SHOWTIMES_LIST + movieID
}

func BuildSeatMapKey(showtimeID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_SEATMAP, showtimeID)
}

func BuildAuditoriumKey(auditoriumID string) string {
	return CACHE_KEY_AUDITORIUM + auditoriumID
}
