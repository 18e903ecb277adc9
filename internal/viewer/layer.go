package viewer

import (
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/config"
	"github.com/gridsight/hexviz/internal/dataset"
	"github.com/gridsight/hexviz/internal/hexgrid"
	"github.com/gridsight/hexviz/internal/ramp"
)

// Camera is the initial camera handed to the map renderer.
type Camera struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
}

// LayerConfig is the declarative polygon-layer description consumed by the
// renderer: stroke, pickability and the triggers that key accessor updates.
type LayerConfig struct {
	ID                 string         `json:"id"`
	Type               string         `json:"type"`
	Stroked            bool           `json:"stroked"`
	Filled             bool           `json:"filled"`
	Pickable           bool           `json:"pickable"`
	LineWidthMinPixels float64        `json:"lineWidthMinPixels"`
	LineColor          [4]uint8       `json:"lineColor"`
	UpdateTriggers     map[string]any `json:"updateTriggers"`
}

// Layer is the full render payload: layer config, camera, colored features
// and the dataset summary.
type Layer struct {
	Config   LayerConfig                `json:"config"`
	Camera   Camera                     `json:"camera"`
	Features *geojson.FeatureCollection `json:"features"`
	Range    dataset.ValueRange         `json:"range"`
	Count    int                        `json:"count"`
}

// BuildLayer converts records into one filled-polygon layer. Each cell gets
// its hexagonal boundary from the H3 index and its fill color from the ramp
// over the normalized value. Records with an invalid index are skipped. The
// camera centers on the first renderable record's centroid.
func BuildLayer(records []dataset.CellRecord, rng dataset.ValueRange, cfg config.MapConfig) (*Layer, error) {
	if len(records) == 0 {
		return nil, eris.New("viewer: no records to render")
	}

	fc := geojson.NewFeatureCollection()
	camera := Camera{Zoom: cfg.Zoom, Pitch: cfg.Pitch, Bearing: cfg.Bearing}
	centered := false

	var skipped int
	for _, rec := range records {
		poly, err := hexgrid.Polygon(rec.CellID)
		if err != nil {
			skipped++
			zap.L().Warn("viewer: skipping cell with invalid index",
				zap.String("cell_id", rec.CellID),
				zap.Error(err),
			)
			continue
		}

		if !centered {
			center, err := hexgrid.Centroid(rec.CellID)
			if err == nil {
				camera.Longitude = center.Lon()
				camera.Latitude = center.Lat()
				centered = true
			}
		}

		tooltip, err := TooltipHTML(rec)
		if err != nil {
			return nil, eris.Wrap(err, "viewer: render tooltip")
		}

		color := ramp.Viridis(rng.Normalize(rec.Value))
		f := geojson.NewFeature(poly)
		f.Properties = geojson.Properties{
			"city":       rec.City,
			"locality":   rec.Locality,
			"cell_id":    rec.CellID,
			"poi_code":   rec.POICode,
			"value":      rec.Value,
			"fill_color": color.Slice(),
			"tooltip":    tooltip,
		}
		fc.Append(f)
	}

	if len(fc.Features) == 0 {
		return nil, eris.Errorf("viewer: no renderable cells (%d records, all invalid)", len(records))
	}
	if skipped > 0 {
		zap.L().Warn("viewer: layer built with skipped cells",
			zap.Int("rendered", len(fc.Features)),
			zap.Int("skipped", skipped),
		)
	}

	return &Layer{
		Config: LayerConfig{
			ID:                 "cell-values",
			Type:               "PolygonLayer",
			Stroked:            true,
			Filled:             true,
			Pickable:           true,
			LineWidthMinPixels: cfg.LineWidthMin,
			LineColor:          [4]uint8{255, 255, 255, 80},
			UpdateTriggers: map[string]any{
				"getFillColor": []float64{rng.Min, rng.Max},
			},
		},
		Camera:   camera,
		Features: fc,
		Range:    rng,
		Count:    len(fc.Features),
	}, nil
}
