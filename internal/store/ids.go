package store

import "time"

// idGenerator issues millisecond-timestamp IDs that never repeat: when the
// clock has not advanced past the previous ID, the previous ID plus one is
// used instead.
type idGenerator struct {
	last int64
}

// observe raises the floor so IDs already in the collection are never reissued.
func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *idGenerator) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
