package sim

import "github.com/sirupsen/logrus"

// tickNest advances the queen's nest timer and attempts production when it
// is due and she is healthy enough. The timer keeps running while she is too
// weak, so she builds as soon as she recovers.
func (p *Policy) tickNest(q *Agent, dt float64) bool {
	q.nestTimer += dt
	if q.nestTimer < p.Queen.NestInterval || q.Health <= p.Queen.MinHealthToNest {
		return false
	}
	q.nestTimer = 0
	return p.ProduceNest(q)
}

// ProduceNest spends a fraction of the queen's max health on one nest block.
// The nest goes into her own cell (she climbs on top of it) when that cell is
// empty or already a nest, otherwise into an empty cell beneath her. When
// neither is possible the cost is refunded.
func (p *Policy) ProduceNest(q *Agent) bool {
	cost := q.MaxHealth * p.Queen.NestCostFraction
	if !q.Alive || q.Health < cost {
		return false
	}
	q.setHealth(q.Health - cost)

	here := blockAt(p.Grid, q.Position)
	if here == BlockEmpty || here == BlockNest {
		setBlockAt(p.Grid, q.Position, BlockNest)
		q.Position.Y++
		q.NestsProduced++
		logrus.Debugf("queen %d placed nest #%d, now at %v", q.ID, q.NestsProduced, q.Position)
		return true
	}

	below := q.Position.Below()
	if blockAt(p.Grid, below) == BlockEmpty {
		setBlockAt(p.Grid, below, BlockNest)
		q.NestsProduced++
		logrus.Debugf("queen %d placed nest #%d below %v", q.ID, q.NestsProduced, q.Position)
		return true
	}

	q.setHealth(q.Health + cost)
	return false
}
