package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/hexviz/internal/config"
	"github.com/gridsight/hexviz/internal/dataset"
	"github.com/gridsight/hexviz/internal/hexgrid"
)

func testMapConfig() config.MapConfig {
	return config.MapConfig{
		Zoom:           11,
		Pitch:          30,
		Bearing:        0,
		LineWidthMin:   1,
		EmptyMessage:   "No data to display.",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func testRecords() []dataset.CellRecord {
	return []dataset.CellRecord{
		{City: "Mumbai", Locality: "Andheri", CellID: "8928308280fffff", POICode: "A1", Value: 5},
		{City: "Mumbai", Locality: "Bandra", CellID: "8928308280bffff", POICode: "A2", Value: 15},
	}
}

func TestBuildLayer(t *testing.T) {
	recs := testRecords()
	layer, err := BuildLayer(recs, dataset.ComputeRange(recs), testMapConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, layer.Count)
	assert.Equal(t, dataset.ValueRange{Min: 5, Max: 15}, layer.Range)
	require.Len(t, layer.Features.Features, 2)

	// Range endpoints map to the ramp endpoints.
	first := layer.Features.Features[0]
	assert.Equal(t, [4]uint8{68, 1, 84, 200}, first.Properties["fill_color"])
	second := layer.Features.Features[1]
	assert.Equal(t, [4]uint8{253, 231, 37, 200}, second.Properties["fill_color"])

	assert.Equal(t, "Andheri", first.Properties["locality"])
	assert.Equal(t, "A1", first.Properties["poi_code"])
	assert.Equal(t, "8928308280fffff", first.Properties["cell_id"])
	assert.Contains(t, first.Properties["tooltip"], "Andheri")
}

func TestBuildLayer_Camera(t *testing.T) {
	recs := testRecords()
	layer, err := BuildLayer(recs, dataset.ComputeRange(recs), testMapConfig())
	require.NoError(t, err)

	center, err := hexgrid.Centroid(recs[0].CellID)
	require.NoError(t, err)

	assert.Equal(t, center.Lon(), layer.Camera.Longitude)
	assert.Equal(t, center.Lat(), layer.Camera.Latitude)
	assert.Equal(t, 11.0, layer.Camera.Zoom)
	assert.Equal(t, 30.0, layer.Camera.Pitch)
	assert.Equal(t, 0.0, layer.Camera.Bearing)
}

func TestBuildLayer_Config(t *testing.T) {
	recs := testRecords()
	layer, err := BuildLayer(recs, dataset.ComputeRange(recs), testMapConfig())
	require.NoError(t, err)

	cfg := layer.Config
	assert.Equal(t, "PolygonLayer", cfg.Type)
	assert.True(t, cfg.Stroked)
	assert.True(t, cfg.Filled)
	assert.True(t, cfg.Pickable)
	assert.Equal(t, 1.0, cfg.LineWidthMinPixels)
	assert.Equal(t, []float64{5, 15}, cfg.UpdateTriggers["getFillColor"])
}

func TestBuildLayer_SkipsInvalidCells(t *testing.T) {
	recs := []dataset.CellRecord{
		{City: "Mumbai", Locality: "Andheri", CellID: "not-a-cell", Value: 5},
		{City: "Mumbai", Locality: "Bandra", CellID: "8928308280bffff", Value: 15},
	}
	layer, err := BuildLayer(recs, dataset.ComputeRange(recs), testMapConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, layer.Count)
	// Camera falls through to the first renderable cell.
	center, err := hexgrid.Centroid("8928308280bffff")
	require.NoError(t, err)
	assert.Equal(t, center.Lon(), layer.Camera.Longitude)
}

func TestBuildLayer_Degenerate(t *testing.T) {
	_, err := BuildLayer(nil, dataset.ValueRange{}, testMapConfig())
	assert.Error(t, err)

	_, err = BuildLayer([]dataset.CellRecord{{CellID: "bogus", Value: 1}}, dataset.ValueRange{Min: 1, Max: 1}, testMapConfig())
	assert.Error(t, err)
}

func TestBuildLayer_SingleValuedDataset(t *testing.T) {
	// Min == Max renders every cell in the ramp's first color.
	recs := []dataset.CellRecord{
		{CellID: "8928308280fffff", Value: 7},
		{CellID: "8928308280bffff", Value: 7},
	}
	layer, err := BuildLayer(recs, dataset.ComputeRange(recs), testMapConfig())
	require.NoError(t, err)

	for _, f := range layer.Features.Features {
		assert.Equal(t, [4]uint8{68, 1, 84, 200}, f.Properties["fill_color"])
	}
}
