package services

import (
	"bytes"
	"strings"
	"testing"

	"concierge/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFService_RenderItinerary(t *testing.T) {
	plan := makePlan(2, 1)
	plan.Days[0].Segments[0].CostUSD = floatPtr(420)
	plan.Days[0].Segments[0].Narrative = "Sunset over the Tagus"

	out, err := NewPDFService().RenderItinerary(plan, "http://localhost:5173/?plan=abc")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFService_NoPlan(t *testing.T) {
	_, err := NewPDFService().RenderItinerary(nil, "")
	assert.ErrorIs(t, err, utils.ErrNoPlan)
}

func TestPDFService_OversizedShareLinkStillRenders(t *testing.T) {
	long := "http://localhost:5173/?plan=" + strings.Repeat("x", 5000)

	out, err := NewPDFService().RenderItinerary(makePlan(1), long)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
