package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFlawless   BookmarkType = "flawless"
	BookmarkCloseCall  BookmarkType = "close_call"
	BookmarkQuickFeed  BookmarkType = "quick_feed"
	BookmarkStarvation BookmarkType = "starvation"
	BookmarkDryTable   BookmarkType = "dry_table"
)

// Bookmark marks a level worth a second look.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	SessionID   string       `json:"session_id"`
	Game        string       `json:"game"`
	Level       int          `json:"level"`
	Description string       `json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"session_id", b.SessionID,
		"game", b.Game,
		"level", b.Level,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable finished levels.
type BookmarkDetector struct {
	// Rolling history of completed feeding levels (circular buffer)
	history     []LevelStats
	historySize int
	historyIdx  int
	historyFull bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]LevelStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes a finished level and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(s LevelStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			SessionID:   s.SessionID,
			Game:        s.Game,
			Level:       s.Level,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if s.SpawnExhausted > 0 {
		add(BookmarkDryTable, "%d spawns found no water", s.SpawnExhausted)
	}

	switch {
	case s.Game == "survival" && s.Outcome == "complete":
		left := s.InitialPrey - s.PreyCaught
		if s.PreyCaught == 0 && s.ThreatsSpawned > 0 {
			add(BookmarkFlawless, "no fish lost to %d sharks", s.ThreatsSpawned)
		} else if left == 1 {
			add(BookmarkCloseCall, "one fish of %d survived", s.InitialPrey)
		}

	case s.Game == "feeding" && s.Outcome == "complete":
		if avg, ok := bd.averageDuration(s.Level); ok && s.DurationSec < avg/2 {
			add(BookmarkQuickFeed, "cleared in %.1fs, average %.1fs", s.DurationSec, avg)
		}
		bd.addToHistory(s)

	case s.Game == "feeding" && s.Outcome == "defeat":
		if s.FoodCollected == 0 && s.FoodExpired >= 3 {
			add(BookmarkStarvation, "%d items expired uneaten", s.FoodExpired)
		}
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(s LevelStats) {
	bd.history[bd.historyIdx] = s
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []LevelStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// averageDuration needs at least three earlier clears of the same level.
func (bd *BookmarkDetector) averageDuration(level int) (float64, bool) {
	var sum float64
	var n int
	for _, h := range bd.getHistory() {
		if h.Level == level {
			sum += h.DurationSec
			n++
		}
	}
	if n < 3 {
		return 0, false
	}
	return sum / float64(n), true
}
