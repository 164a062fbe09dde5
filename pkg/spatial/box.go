package spatial

import "github.com/omniworld-xyz/builder/pkg/cmath"

// Box is an axis-aligned bounding box. All face tests are inclusive: a point
// exactly on a face is contained, and boxes touching at a face intersect.
type Box struct {
	Min cmath.Vec3 `json:"min_point"`
	Max cmath.Vec3 `json:"max_point"`
}

func NewBox(min, max cmath.Vec3) Box {
	return Box{Min: min, Max: max}
}

func (b Box) Center() cmath.Vec3 {
	return cmath.Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

func (b Box) Size() cmath.Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume is zero for degenerate boxes.
func (b Box) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

func (b Box) ContainsPoint(p cmath.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b Box) Intersects(other Box) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Expand grows the box by amount on every face.
func (b Box) Expand(amount float64) Box {
	d := cmath.Vec3{X: amount, Y: amount, Z: amount}
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}
