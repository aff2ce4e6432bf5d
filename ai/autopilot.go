package ai

import (
	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/golang/glog"
)

// Rewards for one tick.
const (
	RewardFood    = 1.0
	RewardDeath   = -1.0
	RewardCloser  = 0.1
	RewardFurther = -0.15
)

// Autopilot is an input source that learns to steer from tick outcomes.
// It picks one heading per tick and holds that key until the next tick.
type Autopilot struct {
	q *QLearning

	state   State
	action  int
	decided bool
	deaths  int
}

func NewAutopilot(seed uint64) *Autopilot {
	return &Autopilot{q: NewQLearning(seed)}
}

// Keys returns the key state to feed into the next frame.
func (a *Autopilot) Keys(snap game.Snapshot) types.Keys {
	if !a.decided {
		a.state = NewState(snap)
		a.action = a.q.GetAction(a.state, snap.Heading)
		a.decided = true
	}
	return keysFor(Actions[a.action])
}

// Observe learns from a frame outcome. Frames that did not tick are ignored.
func (a *Autopilot) Observe(out game.Outcome, snap game.Snapshot) {
	if !out.Ticked || !a.decided {
		return
	}
	a.decided = false

	if out.GameOver {
		a.deaths++
		a.q.Update(a.state, a.action, RewardDeath, nil)
		glog.V(2).Infof("autopilot: death %d, table size %d", a.deaths, len(a.q.QTable))
		return
	}

	next := NewState(snap)
	var reward float64
	switch {
	case out.Ate:
		reward = RewardFood
	case next.FoodDistance < a.state.FoodDistance:
		reward = RewardCloser
	default:
		reward = RewardFurther
	}
	a.q.Update(a.state, a.action, reward, &next)
}

func (a *Autopilot) Deaths() int {
	return a.deaths
}

func (a *Autopilot) Learner() *QLearning {
	return a.q
}

func keysFor(h types.Heading) types.Keys {
	switch h {
	case types.Up:
		return types.Keys{Up: true}
	case types.Down:
		return types.Keys{Down: true}
	case types.Left:
		return types.Keys{Left: true}
	case types.Right:
		return types.Keys{Right: true}
	default:
		return types.Keys{}
	}
}
