package dashboard

import (
	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

// Geographic bounds of the rendered region (El Salvador plus margin) and the
// fixed canvas the points project onto.
const (
	mapMinLon = -90.2
	mapMaxLon = -87.6
	mapMinLat = 13.0
	mapMaxLat = 14.5

	MapCanvasWidth  = 800.0
	MapCanvasHeight = 400.0
)

// Point status classes consumed by the map renderer.
const (
	PointClassOK      = "ok"
	PointClassPending = "pending"
)

// MapPoint is one renderable marker: the permit's identity plus its position
// projected onto the canvas. Y grows downward, matching screen coordinates.
type MapPoint struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sector string  `json:"sector"`
	Status string  `json:"status"`
	Volume float64 `json:"volume"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// ProjectMapPoints converts the filtered records into canvas positions using
// a simple equirectangular projection over the fixed bounds. Unplaceable
// records (normalized to 0,0) are excluded from the map but remain in every
// other aggregate.
func ProjectMapPoints(records []permit.Permit) []MapPoint {
	out := make([]MapPoint, 0, len(records))
	for i := range records {
		p := &records[i]
		if !p.Placeable() {
			continue
		}

		status := PointClassPending
		if p.Operational() {
			status = PointClassOK
		}

		out = append(out, MapPoint{
			ID:        p.ID,
			Name:      p.TitleHolder,
			Sector:    p.Sector,
			Status:    status,
			Volume:    p.VolumeAuthorized,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			X:         projectX(p.Longitude),
			Y:         projectY(p.Latitude),
		})
	}
	return out
}

func projectX(lon float64) float64 {
	return (lon - mapMinLon) / (mapMaxLon - mapMinLon) * MapCanvasWidth
}

// projectY inverts latitude because the canvas origin is top-left.
func projectY(lat float64) float64 {
	return MapCanvasHeight - (lat-mapMinLat)/(mapMaxLat-mapMinLat)*MapCanvasHeight
}
