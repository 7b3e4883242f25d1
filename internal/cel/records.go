package cel

import "github.com/oakwood-commons/lawlens/internal/law"

// HistoryRecord exposes a history entry as {query, rank}; rank 0 is the most recent.
func HistoryRecord(i int, query string) map[string]interface{} {
	return map[string]interface{}{"query": query, "rank": i}
}

// BookmarkRecord exposes a bookmark as {title, ipc, bns, rank}.
func BookmarkRecord(i int, b law.Bookmark) map[string]interface{} {
	return map[string]interface{}{"title": b.Title, "ipc": b.IPC, "bns": b.BNS, "rank": i}
}
