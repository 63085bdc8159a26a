package telemetry

import (
	"log/slog"
	"time"
)

// Collector turns the event stream into LevelStats and SessionStats.
// Finished records are kept in memory and, when an OutputManager is set,
// appended to CSV.
type Collector struct {
	out       *OutputManager
	logLevels bool

	session   *SessionStats
	sessStart time.Duration

	level      *LevelStats
	levelStart time.Duration
	catchTimes []float64
	eatTimes   []float64

	levels    []LevelStats
	sessions  []SessionStats
	detector  *BookmarkDetector
	bookmarks []Bookmark

	// OnBookmark, when set, is called for each bookmark as levels finish.
	OnBookmark func(Bookmark)
}

// NewCollector creates a collector. out may be nil.
func NewCollector(out *OutputManager, logLevels bool) *Collector {
	return &Collector{out: out, logLevels: logLevels, detector: NewBookmarkDetector(10)}
}

// Record consumes one event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventSessionStart:
		c.session = &SessionStats{SessionID: e.SessionID, Game: e.Game}
		c.sessStart = e.At
		c.level = nil

	case EventLevelStart:
		c.level = &LevelStats{
			SessionID:   e.SessionID,
			Game:        e.Game,
			Level:       e.Level,
			InitialPrey: e.Count,
		}
		c.levelStart = e.At
		c.catchTimes = c.catchTimes[:0]
		c.eatTimes = c.eatTimes[:0]

	case EventPreyCaught:
		if c.level != nil {
			c.level.PreyCaught++
			c.catchTimes = append(c.catchTimes, (e.At - c.levelStart).Seconds())
		}
		if c.session != nil {
			c.session.PreyCaught++
		}

	case EventThreatSpawned:
		if c.level != nil {
			c.level.ThreatsSpawned++
		}

	case EventFoodSpawned:
		if c.level != nil {
			c.level.FoodSpawned++
		}

	case EventFoodCollected:
		if c.level != nil {
			c.level.FoodCollected++
			c.eatTimes = append(c.eatTimes, (e.At - c.levelStart).Seconds())
		}
		if c.session != nil {
			c.session.FoodCollected++
		}

	case EventFoodExpired:
		if c.level != nil {
			c.level.FoodExpired += e.Count
		}

	case EventSpawnExhausted:
		if c.level != nil {
			c.level.SpawnExhausted++
		}

	case EventLevelComplete:
		c.finishLevel("complete", e.At)
		if c.session != nil {
			c.session.LevelsCleared++
		}

	case EventDefeat:
		c.finishLevel("defeat", e.At)
		c.finishSession("defeat", e.At)

	case EventVictory:
		c.finishSession("victory", e.At)

	case EventAbort:
		c.finishLevel("abort", e.At)
		c.finishSession("abort", e.At)
	}
}

func (c *Collector) finishLevel(outcome string, at time.Duration) {
	if c.level == nil {
		return
	}
	s := *c.level
	c.level = nil

	s.Outcome = outcome
	s.DurationSec = (at - c.levelStart).Seconds()
	s.CatchTimeMean, _, s.CatchTimeP50 = Summarize(c.catchTimes)
	s.CollectTimeMean, s.CollectTimeStd, s.CollectTimeP50 = Summarize(c.eatTimes)

	c.levels = append(c.levels, s)
	if c.logLevels {
		s.LogStats()
	}
	if err := c.out.WriteLevel(s); err != nil {
		slog.Error("failed to write level stats", "error", err)
	}

	for _, b := range c.detector.Check(s) {
		b.LogBookmark()
		c.bookmarks = append(c.bookmarks, b)
		if c.OnBookmark != nil {
			c.OnBookmark(b)
		}
	}
}

func (c *Collector) finishSession(outcome string, at time.Duration) {
	if c.session == nil {
		return
	}
	s := *c.session
	c.session = nil

	s.Outcome = outcome
	s.DurationSec = (at - c.sessStart).Seconds()

	c.sessions = append(c.sessions, s)
	slog.Info("session_end", "session", s)
	if err := c.out.WriteSession(s); err != nil {
		slog.Error("failed to write session stats", "error", err)
	}
}

// Levels returns the finished levels so far.
func (c *Collector) Levels() []LevelStats {
	return c.levels
}

// Bookmarks returns the bookmarks raised so far.
func (c *Collector) Bookmarks() []Bookmark {
	return c.bookmarks
}

// Sessions returns the finished sessions so far.
func (c *Collector) Sessions() []SessionStats {
	return c.sessions
}
