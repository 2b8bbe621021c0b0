package game

import "sort"

// Leaderboard ranks the room's cumulative scores, highest first. Equal scores
// keep join order.
func (r *Room) Leaderboard() []Standing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.standingsLocked()
}

func (r *Room) standingsLocked() []Standing {
	out := make([]Standing, 0, len(r.scores))
	for _, p := range r.players {
		score, ok := r.scores[p.ID]
		if !ok {
			continue
		}
		out = append(out, Standing{PlayerID: p.ID, Name: p.Name, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (rm *RoomManager) Leaderboard(roomID string) ([]Standing, error) {
	r, err := rm.Get(roomID)
	if err != nil {
		return nil, err
	}
	return r.Leaderboard(), nil
}
