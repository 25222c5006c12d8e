// Package geometry models the cylindrical shell occupied by a repository
// component. Geometries are owned by the component and handed to transport
// models as read-only references.
package geometry

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y, Z float64
}

type Geometry struct {
	innerRadius float64
	outerRadius float64
	centroid    Point
	length      float64
}

func New(innerRadius, outerRadius float64, centroid Point, length float64) (*Geometry, error) {
	if math.IsNaN(innerRadius) || math.IsNaN(outerRadius) || innerRadius < 0 {
		return nil, fmt.Errorf("geometry: invalid radii (%g, %g)", innerRadius, outerRadius)
	}
	if outerRadius < innerRadius {
		return nil, fmt.Errorf("geometry: outer radius %g smaller than inner radius %g", outerRadius, innerRadius)
	}
	if length < 0 || math.IsNaN(length) {
		return nil, fmt.Errorf("geometry: invalid length %g", length)
	}
	return &Geometry{
		innerRadius: innerRadius,
		outerRadius: outerRadius,
		centroid:    centroid,
		length:      length,
	}, nil
}

// Copy clones src with a new centroid, keeping radii and length.
func Copy(src *Geometry, newCentroid Point) *Geometry {
	return &Geometry{
		innerRadius: src.innerRadius,
		outerRadius: src.outerRadius,
		centroid:    newCentroid,
		length:      src.length,
	}
}

func (g *Geometry) InnerRadius() float64 { return g.innerRadius }
func (g *Geometry) OuterRadius() float64 { return g.outerRadius }
func (g *Geometry) Centroid() Point      { return g.centroid }
func (g *Geometry) Length() float64      { return g.length }

// RadialMidpoint returns the radius halfway through the shell wall.
func (g *Geometry) RadialMidpoint() float64 {
	return g.innerRadius + (g.outerRadius-g.innerRadius)/2
}

// Volume returns the shell volume pi*(ro^2 - ri^2)*length.
func (g *Geometry) Volume() float64 {
	return math.Pi * (g.outerRadius*g.outerRadius - g.innerRadius*g.innerRadius) * g.length
}
