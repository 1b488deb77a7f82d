package entity

import "sort"

// BoardEntry is one row of a leaderboard.
type BoardEntry struct {
	Name  string
	Count int64
}

// BuildBoard aggregates per-user counts by resolved display name and returns
// the entries sorted by count descending. Two users mapped to the same name
// share one entry, matching how names are presented to the channel. Ties are
// ordered by name so the output is stable.
func BuildBoard(counts map[string]int64, resolve func(userID string) string) []BoardEntry {
	byName := make(map[string]int64, len(counts))
	for userID, count := range counts {
		name := resolve(userID)
		byName[name] += count
	}

	board := make([]BoardEntry, 0, len(byName))
	for name, count := range byName {
		board = append(board, BoardEntry{Name: name, Count: count})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Count != board[j].Count {
			return board[i].Count > board[j].Count
		}
		return board[i].Name < board[j].Name
	})
	return board
}

// Member is the service-level view of a guild member, decoupled from the
// chat platform's own member type.
type Member struct {
	ID          string
	DisplayName string
	IsBot       bool
}

// ResetSummary is the tallied outcome of one daily reset, handed to the
// messaging layer for rendering.
type ResetSummary struct {
	GuildID      string
	ChannelID    string
	Date         string
	Checked      []string
	Unchecked    []string
	CheckinBoard []BoardEntry
	MissedBoard  []BoardEntry
}
