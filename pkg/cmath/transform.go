package cmath

// Transform is the spatial transformation of an entity or light.
// Rotation is Euler angles in degrees.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// DefaultTransform : zero position/rotation, unit scale
func DefaultTransform() Transform {
	return Transform{Scale: OneVec3()}
}
