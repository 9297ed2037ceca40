// Package path implements A* over an abstract graph.
package path

import "container/heap"

// Graph describes how to step through a search space.
// Key decides which steps are the same node: two structurally equal steps
// reached from different neighbours collapse if their keys match.
type Graph[T any, K comparable] struct {
	Neighbors func(step T) []T
	Equal     func(a, b T) bool
	Cost      func(step T) float64
	Heuristic func(step, goal T) float64
	Key       func(step T) K
}

// Search returns the cheapest path from origin to goal, both included.
// It returns [origin] when origin equals goal and an empty slice when the
// goal cannot be reached; an empty result is not an error.
func Search[T any, K comparable](origin, goal T, g Graph[T, K]) []T {
	if g.Equal(origin, goal) {
		return []T{origin}
	}

	frontier := &queue[T]{}
	heap.Push(frontier, &item[T]{step: origin, priority: 0})
	cameFrom := map[K]T{g.Key(origin): origin}
	costSoFar := map[K]float64{g.Key(origin): 0}

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(*item[T]).step
		if g.Equal(current, goal) {
			break
		}
		currentCost := costSoFar[g.Key(current)]
		for _, next := range g.Neighbors(current) {
			k := g.Key(next)
			newCost := currentCost + g.Cost(next)
			if old, seen := costSoFar[k]; seen && newCost >= old {
				continue
			}
			costSoFar[k] = newCost
			heap.Push(frontier, &item[T]{step: next, priority: newCost + g.Heuristic(next, goal)})
			cameFrom[k] = current
		}
	}

	return reconstruct(cameFrom, origin, goal, g)
}

func reconstruct[T any, K comparable](cameFrom map[K]T, origin, goal T, g Graph[T, K]) []T {
	current := goal
	previous, ok := cameFrom[g.Key(current)]
	if !ok {
		return []T{}
	}
	path := []T{current}
	// the origin is its own predecessor
	for !g.Equal(previous, current) {
		current = previous
		path = append(path, current)
		previous, ok = cameFrom[g.Key(current)]
		if !ok {
			return []T{}
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// item is a frontier entry. seq keeps equal priorities first-in first-out.
type item[T any] struct {
	step     T
	priority float64
	seq      int
}

type queue[T any] struct {
	items []*item[T]
	seq   int
}

func (q *queue[T]) Len() int { return len(q.items) }

func (q *queue[T]) Less(i, j int) bool {
	if q.items[i].priority != q.items[j].priority {
		return q.items[i].priority < q.items[j].priority
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *queue[T]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *queue[T]) Push(x any) {
	it := x.(*item[T])
	it.seq = q.seq
	q.seq++
	q.items = append(q.items, it)
}

func (q *queue[T]) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return it
}
