package reviewagents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/model"
)

func TestTierForDepth(t *testing.T) {
	assert.Equal(t, agent.TierSmall, tierForDepth(model.ReviewDepthBasic))
	assert.Equal(t, agent.TierMid, tierForDepth(model.ReviewDepthStandard))
	assert.Equal(t, agent.TierLarge, tierForDepth(model.ReviewDepthComprehensive))
	assert.Equal(t, agent.TierMid, tierForDepth(model.ReviewDepth("")))
}
