package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

func TestProjectMapPoints(t *testing.T) {
	records := []permit.Permit{
		{ID: "1", TitleHolder: "A", Sector: "Industrial", WellStatus: permit.StatusActive,
			Latitude: 13.95859, Longitude: -89.863454, VolumeAuthorized: 22950},
		{ID: "2", TitleHolder: "B", Sector: "Agricultural", WellStatus: "Mantenimiento",
			Latitude: 13.3, Longitude: -87.8, VolumeAuthorized: 6315},
		{ID: "3", TitleHolder: "Unplaceable"}, // (0,0) excluded from the map
	}

	points := ProjectMapPoints(records)
	require.Len(t, points, 2)

	assert.Equal(t, PointClassOK, points[0].Status)
	assert.Equal(t, PointClassPending, points[1].Status)

	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.X, 0.0)
		assert.LessOrEqual(t, pt.X, MapCanvasWidth)
		assert.GreaterOrEqual(t, pt.Y, 0.0)
		assert.LessOrEqual(t, pt.Y, MapCanvasHeight)
	}
}

func TestProjectionOrientation(t *testing.T) {
	north := permit.Permit{ID: "n", Latitude: 14.4, Longitude: -89.0}
	south := permit.Permit{ID: "s", Latitude: 13.1, Longitude: -89.0}
	west := permit.Permit{ID: "w", Latitude: 13.7, Longitude: -90.1}
	east := permit.Permit{ID: "e", Latitude: 13.7, Longitude: -87.7}

	points := ProjectMapPoints([]permit.Permit{north, south, west, east})
	require.Len(t, points, 4)
	byID := map[string]MapPoint{}
	for _, pt := range points {
		byID[pt.ID] = pt
	}

	// Screen Y grows downward: north above south.
	assert.Less(t, byID["n"].Y, byID["s"].Y)
	// X grows eastward.
	assert.Less(t, byID["w"].X, byID["e"].X)
}

func TestProjectMapPointsEmpty(t *testing.T) {
	assert.Empty(t, ProjectMapPoints(nil))
}
