package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicker_SelectFromFilteredView(t *testing.T) {
	providers := sampleProviders()
	p := NewPicker(providers)

	p.SetQuery("apollo")
	require.Len(t, p.Visible(), 2)

	ok := p.Select(providers[0].UserID)
	require.True(t, ok)
	require.NotNil(t, p.Selected())
	assert.Equal(t, "Apollo Pharmacy", p.Selected().BusinessName)
	assert.True(t, p.CanSubmit())
}

func TestPicker_CannotSelectHiddenProvider(t *testing.T) {
	providers := sampleProviders()
	p := NewPicker(providers)

	p.SetQuery("apollo")
	ok := p.Select(providers[1].UserID) // MedPlus is filtered out
	assert.False(t, ok)
	assert.False(t, p.CanSubmit())
}

func TestPicker_ClearingQueryResetsSelection(t *testing.T) {
	providers := sampleProviders()
	p := NewPicker(providers)

	p.SetQuery("apollo")
	require.True(t, p.Select(providers[0].UserID))
	require.True(t, p.CanSubmit())

	p.SetQuery("")
	assert.Nil(t, p.Selected())
	assert.False(t, p.CanSubmit(), "send stays blocked until a new selection is made")
}

func TestPicker_QueryChangeDroppingSelectionResetsIt(t *testing.T) {
	providers := sampleProviders()
	p := NewPicker(providers)

	p.SetQuery("apollo")
	require.True(t, p.Select(providers[0].UserID))

	p.SetQuery("medplus")
	assert.Nil(t, p.Selected())
}

func TestPicker_QueryChangeKeepingSelectionPreservesIt(t *testing.T) {
	providers := sampleProviders()
	p := NewPicker(providers)

	p.SetQuery("apollo")
	require.True(t, p.Select(providers[0].UserID))

	p.SetQuery("apollo pharmacy")
	require.NotNil(t, p.Selected())
	assert.Equal(t, providers[0].UserID, p.Selected().UserID)
}

func TestPicker_SelectUnknownID(t *testing.T) {
	p := NewPicker(sampleProviders())
	assert.False(t, p.Select(uuid.New()))
}
