package server

import "slices"

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the server for rendering.
type Snapshot struct {
	Players   int
	TopScores []TopScoreEntry // Top N scores for leaderboard display
}

// leaderboard keeps the best score per client, highest first.
// Guarded by Server.mu.
type leaderboard struct {
	max  int
	list []TopScoreEntry
}

func newLeaderboard(max int) *leaderboard {
	if max < 0 {
		max = 0
	}
	return &leaderboard{max: max, list: make([]TopScoreEntry, 0, max+1)}
}

// submit records score for clientID and returns its 1-based rank, or 0 if
// the score did not place. A client only ever holds its best entry.
func (l *leaderboard) submit(clientID int, username string, score int) int {
	if score <= 0 || l.max == 0 {
		return 0
	}
	if i := slices.IndexFunc(l.list, func(e TopScoreEntry) bool { return e.clientID == clientID }); i >= 0 {
		if l.list[i].Score >= score {
			return 0
		}
		l.list = slices.Delete(l.list, i, i+1)
	}

	l.list = append(l.list, TopScoreEntry{Username: username, Score: score, clientID: clientID})
	slices.SortStableFunc(l.list, func(a, b TopScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.clientID - b.clientID
	})
	if len(l.list) > l.max {
		l.list = l.list[:l.max]
	}

	for i, e := range l.list {
		if e.clientID == clientID {
			return i + 1
		}
	}
	return 0
}

func (l *leaderboard) entries() []TopScoreEntry {
	return slices.Clone(l.list)
}
