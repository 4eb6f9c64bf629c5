package vmath

import "math"

// Normalize2D returns the unit vector and the original length, zero-safe
// A zero-length input yields (0, 0, 0); callers decide how to treat the degenerate case
func Normalize2D(x, y float64) (nx, ny, length float64) {
	length = Magnitude(x, y)
	if length == 0 {
		return 0, 0, 0
	}
	return x / length, y / length, length
}

// Magnitude returns the Euclidean length sqrt(x² + y²)
func Magnitude(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// MagnitudeSq returns squared magnitude without sqrt
func MagnitudeSq(x, y float64) float64 {
	return x*x + y*y
}

// DistanceSq returns squared distance between two points
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	return MagnitudeSq(x2-x1, y2-y1)
}

// Distance returns Euclidean distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return Magnitude(x2-x1, y2-y1)
}

// ScaleVector multiplies vector by scalar factor
func ScaleVector(x, y, factor float64) (sx, sy float64) {
	return x * factor, y * factor
}

// DotProduct returns x1*x2 + y1*y2
func DotProduct(x1, y1, x2, y2 float64) float64 {
	return x1*x2 + y1*y2
}

// ReflectAxisX returns velocity reflected off a vertical wall (X axis boundary)
func ReflectAxisX(velX, velY float64) (float64, float64) {
	return -velX, velY
}

// ReflectAxisY returns velocity reflected off a horizontal wall (Y axis boundary)
func ReflectAxisY(velX, velY float64) (float64, float64) {
	return velX, -velY
}
