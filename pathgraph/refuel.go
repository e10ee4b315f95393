package pathgraph

// RefuelPlanner decides which intermediate nodes become refuel stops
// The probability climbs after every plain node and when hops get long, and
// drops back to the base after each refuel stop, so stops roughly track the
// fuel distance without a hard guarantee
type RefuelPlanner struct {
	cfg         RefuelConfig
	Probability float64
}

// NewRefuelPlanner starts a planner at the base probability
func NewRefuelPlanner(cfg RefuelConfig) *RefuelPlanner {
	return &RefuelPlanner{cfg: cfg, Probability: cfg.BaseProbability}
}

// Classify consumes the hop distance from the previous node and one uniform
// draw in [0, 1), returning the node's type and updating the probability
func (r *RefuelPlanner) Classify(hop, draw float64) NodeType {
	if r.cfg.FuelDistance > 0 && hop > r.cfg.FuelDistance/2 {
		blended := (1-r.cfg.BlendWeight)*r.Probability + r.cfg.BlendWeight*(hop/r.cfg.FuelDistance)
		r.Probability = min(1, blended)
	}

	if draw < r.Probability {
		r.Probability = r.cfg.BaseProbability
		return NodeRefuel
	}
	r.Probability = (1-r.cfg.RaiseWeight)*r.Probability + r.cfg.RaiseWeight
	return NodeEmpty
}
