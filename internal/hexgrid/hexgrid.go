// Package hexgrid converts H3 string indexes into map geometry.
package hexgrid

import (
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"github.com/uber/h3-go/v4"
)

// ParseCell decodes and validates a string-encoded H3 index.
func ParseCell(id string) (h3.Cell, error) {
	cell := h3.Cell(h3.IndexFromString(id))
	if !cell.IsValid() {
		return 0, eris.Errorf("hexgrid: invalid H3 index %q", id)
	}
	return cell, nil
}

// Centroid returns the cell's center point in lng/lat order.
func Centroid(id string) (orb.Point, error) {
	cell, err := ParseCell(id)
	if err != nil {
		return orb.Point{}, err
	}
	ll := cell.LatLng()
	return orb.Point{ll.Lng, ll.Lat}, nil
}

// Boundary returns the cell's hexagonal outline as a closed ring in lng/lat
// order.
func Boundary(id string) (orb.Ring, error) {
	cell, err := ParseCell(id)
	if err != nil {
		return nil, err
	}

	verts := cell.Boundary()
	if len(verts) == 0 {
		return nil, eris.Errorf("hexgrid: empty boundary for %q", id)
	}

	ring := make(orb.Ring, 0, len(verts)+1)
	for _, v := range verts {
		ring = append(ring, orb.Point{v.Lng, v.Lat})
	}
	ring = append(ring, ring[0]) // close the ring
	return ring, nil
}

// Polygon returns the cell outline as a single-ring polygon.
func Polygon(id string) (orb.Polygon, error) {
	ring, err := Boundary(id)
	if err != nil {
		return nil, err
	}
	return orb.Polygon{ring}, nil
}
