package cmath

import "math"

// Vec3 is a 3D vector. It is used for positions, Euler rotations (degrees),
// scales and gravity, depending on context.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// OneVec3 : unit scale
func OneVec3() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scaled(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Distance : Euclidean distance between two points
func Distance(p1, p2 Vec3) float64 {
	return math.Sqrt(DistanceSquared(p1, p2))
}

// DistanceSquared : squared Euclidean distance, no sqrt
func DistanceSquared(p1, p2 Vec3) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dz := p2.Z - p1.Z
	return dx*dx + dy*dy + dz*dz
}
