package common_test

import (
	"testing"

	"github.com/dargueta/praq/codecs/common"
	"github.com/stretchr/testify/assert"
)

func TestNextContext(t *testing.T) {
	assert.EqualValues(t, 0x41, common.NextContext(0, 0x41))
	assert.EqualValues(t, (0x41<<5)+0x42, common.NextContext(0x41, 0x42))
	assert.Less(t, common.NextContext(common.ContextMask, 0xff), uint32(common.TableSize))
}

func TestPredictor__FirstByteMisses(t *testing.T) {
	p := common.NewPredictor()
	assert.EqualValues(t, 0, p.Predict())
	assert.EqualValues(t, 0, p.Context())

	p.Observe(0x41)
	assert.EqualValues(t, 0x41, p.Predict(), "Observe didn't update current slot")

	p.Advance(0x41)
	assert.EqualValues(t, 0x41, p.Context())
	assert.EqualValues(t, 0, p.Predict(), "new context should be unpopulated")
}

func TestPredictor__LearnsRepeatedContext(t *testing.T) {
	p := common.NewPredictor()
	hits := 0

	// After the context hash saturates to a fixed point (0x41 repeated), every
	// byte after the first observation should be predicted.
	for i := 0; i < 16; i++ {
		if p.Predict() == 0x41 {
			hits++
		}
		p.Observe(0x41)
		p.Advance(0x41)
	}

	assert.Greater(t, hits, 0)
	assert.Less(t, hits, 16)
}

func TestPredictor__IndependentInstances(t *testing.T) {
	a := common.NewPredictor()
	b := common.NewPredictor()

	a.Observe(0x99)
	assert.EqualValues(t, 0x99, a.Predict())
	assert.EqualValues(t, 0, b.Predict())
}
