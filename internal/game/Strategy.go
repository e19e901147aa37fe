package game

// Strategy chooses the heading for the next tick. Autopilots feed its answer
// to Controller.SetDirection just like a keyboard would.
type Strategy interface {
	NextDirection(state Snapshot, cfg Config) (Direction, error)
}

// GreedyStrategy heads for the closest reachable food and otherwise keeps to
// the roomiest part of the grid.
type GreedyStrategy struct{}

type moveScore struct {
	trapped  bool
	starving bool

	// cost is the path length to food, or the negated free room when no food
	// is reachable.
	cost    int
	turning bool
}

func (a moveScore) better(b moveScore) bool {
	if a.trapped != b.trapped {
		return !a.trapped
	}
	if a.starving != b.starving {
		return !a.starving
	}
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return !a.turning && b.turning
}

func (GreedyStrategy) NextDirection(state Snapshot, cfg Config) (Direction, error) {
	if len(state.Body) == 0 {
		return state.HeadDirection, ErrEmptyCreature
	}

	// The tail moves away during the tick, so it does not block.
	blocked := make(map[Point]bool, len(state.Body))
	for _, p := range state.Body[:len(state.Body)-1] {
		blocked[p] = true
	}
	food := make(map[Point]bool, len(state.Food))
	for _, p := range state.Food {
		food[p] = true
	}

	best := state.HeadDirection
	var bestScore moveScore
	found := false
	for _, d := range Directions {
		if d == state.HeadDirection.Opposite() {
			continue
		}
		next, ok := cfg.step(state.Head(), d)
		if !ok || blocked[next] {
			continue
		}

		dist, room := floodFrom(cfg, next, blocked, food)
		score := moveScore{
			trapped: room < len(state.Body),
			turning: d != state.HeadDirection,
		}
		if dist < 0 {
			score.starving = true
			score.cost = -room
		} else {
			score.cost = dist
		}

		if !found || score.better(bestScore) {
			best, bestScore, found = d, score, true
		}
	}
	return best, nil
}

// floodFrom walks every free cell reachable from start. It returns the
// distance to the nearest food (-1 when none is reachable) and the number of
// cells visited.
func floodFrom(cfg Config, start Point, blocked, food map[Point]bool) (int, int) {
	visited := map[Point]bool{start: true}
	distance := map[Point]int{start: 0}
	nearest := -1

	q := []Point{start}
	for len(q) > 0 {
		current := q[0]
		q = q[1:]

		dist := distance[current]
		if nearest < 0 && food[current] {
			nearest = dist
		}

		for _, d := range Directions {
			next, ok := cfg.step(current, d)
			if !ok || blocked[next] || visited[next] {
				continue
			}
			visited[next] = true
			distance[next] = dist + 1
			q = append(q, next)
		}
	}
	return nearest, len(visited)
}
