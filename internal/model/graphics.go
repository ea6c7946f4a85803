package model

// Primitive is a renderable shape snapshot. The core only produces these;
// rendering belongs to external consumers.
type Primitive interface {
	Kind() string
}

// Sphere is a ball centered at a node position.
type Sphere struct {
	Center [3]float64
	Radius float64
	Color  [4]float64
}

func (Sphere) Kind() string { return "sphere" }

// Cylinder spans two node positions, used to draw connectors.
type Cylinder struct {
	Start  [3]float64
	End    [3]float64
	Radius float64
	Color  [4]float64
}

func (Cylinder) Kind() string { return "cylinder" }

// Visual carries per-object rendering hints.
type Visual struct {
	Radius float64
	Color  [4]float64
}

func defaultVisual(radius float64) Visual {
	return Visual{Radius: radius, Color: [4]float64{0.2, 0.6, 1.0, 1.0}}
}
