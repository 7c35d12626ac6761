package reviewagents

import (
	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/model"
)

// tierForDepth maps a review depth (spec.md §3) to the agent loop's
// logical model tier (spec.md §4.E): deeper reviews get bigger models.
func tierForDepth(depth model.ReviewDepth) agent.Tier {
	switch depth {
	case model.ReviewDepthBasic:
		return agent.TierSmall
	case model.ReviewDepthComprehensive:
		return agent.TierLarge
	default:
		return agent.TierMid
	}
}
