package systems

import "gonum.org/v1/gonum/spatial/r2"

// PreyCaught returns the indices of prey touched by a threat, in ascending
// order. A prey is caught when its distance to a threat is below the mean
// of their sizes. Each prey is reported at most once.
func PreyCaught(prey, threats []Agent) []int {
	var caught []int
	for i, p := range prey {
		for _, t := range threats {
			if distance(p.Location(), t.Location()) < (p.Size()+t.Size())/2 {
				caught = append(caught, i)
				break
			}
		}
	}
	return caught
}

// Collection pairs a collected item with the prey that reached it first.
type Collection struct {
	Item int
	Prey int
}

// FoodCollected matches each item to the first prey, in insertion order,
// whose distance to it is below the prey size plus margin. Items nobody
// reached are omitted.
func FoodCollected(items []r2.Vec, prey []Agent, margin float64) []Collection {
	var out []Collection
	for i, item := range items {
		for j, p := range prey {
			if distance(p.Location(), item) < p.Size()+margin {
				out = append(out, Collection{Item: i, Prey: j})
				break
			}
		}
	}
	return out
}
