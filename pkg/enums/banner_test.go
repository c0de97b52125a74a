package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBannerGroup(t *testing.T) {
	g, err := ParseBannerGroup("Group 2")
	require.NoError(t, err)
	assert.Equal(t, BannerGroupTwo, g)
	assert.True(t, g.IsValid())

	_, err = ParseBannerGroup("Group 3")
	assert.Error(t, err)
	assert.False(t, BannerGroup("").IsValid())
}

func TestBannerGroupsReturnsCopy(t *testing.T) {
	groups := BannerGroups()
	require.Len(t, groups, 2)
	groups[0] = "mutated"
	assert.Equal(t, BannerGroupOne, BannerGroups()[0])
}

func TestParseBannerStatusDefaultsToActive(t *testing.T) {
	s, err := ParseBannerStatus("")
	require.NoError(t, err)
	assert.Equal(t, BannerStatusActive, s)

	s, err = ParseBannerStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, BannerStatusInactive, s)

	_, err = ParseBannerStatus("paused")
	assert.Error(t, err)
}
