package ai

import (
	"math"

	"gridsnake/game/types"

	"golang.org/x/exp/rand"
)

// QTable maps a state key to one value per entry of Actions.
type QTable map[string][4]float64

type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	Updates      int

	rng *rand.Rand
}

func NewQLearning(seed uint64) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// GetAction picks an index into Actions. Reversing current is never chosen.
func (q *QLearning) GetAction(state State, current types.Heading) int {
	legal := make([]int, 0, len(Actions))
	for i, h := range Actions {
		if !h.Reverses(current) {
			legal = append(legal, i)
		}
	}

	// Exploration: random action
	if q.rng.Float64() < q.Epsilon {
		return legal[q.rng.Intn(len(legal))]
	}

	values := q.QTable[state.Key()]
	best := legal[0]
	bestValue := math.Inf(-1)
	for _, i := range legal {
		if values[i] > bestValue {
			bestValue = values[i]
			best = i
		}
	}
	return best
}

// Update applies one Q-learning step. A nil next marks a terminal transition.
func (q *QLearning) Update(state State, action int, reward float64, next *State) {
	key := state.Key()
	values := q.QTable[key]

	maxNextQ := 0.0
	if next != nil {
		nextValues := q.QTable[next.Key()]
		maxNextQ = nextValues[0]
		for _, v := range nextValues[1:] {
			maxNextQ = math.Max(maxNextQ, v)
		}
	}

	currentQ := values[action]
	values[action] = currentQ + q.LearningRate*(reward+q.Discount*maxNextQ-currentQ)
	q.QTable[key] = values

	q.TotalReward += reward
	q.Updates++
}
