package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Camera generates primary rays for a width x height image plane placed
// at position+look. All generated directions are unit length.
type Camera struct {
	origin     core.Vec3
	center     core.Vec3 // Image plane center
	right      core.Vec3
	up         core.Vec3 // Orthogonal to look
	halfWidth  float64
	halfHeight float64
	width      int
	height     int
}

// RightVector returns the unit screen-right direction of a camera
func RightVector(config scene.CameraConfig) core.Vec3 {
	return config.Up.Cross(config.Look).Normalize()
}

// NewCamera creates a camera for the given image size. The caller's up
// vector is re-orthogonalized against look.
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	right := RightVector(config)
	up := config.Look.Cross(right).Normalize()

	// The length of look is the focal distance
	distance := config.Look.Norm()
	halfWidth := distance * math.Tan(config.FOV*math.Pi/180/2)
	halfHeight := halfWidth * float64(height) / float64(width)

	return &Camera{
		origin:     config.Position,
		center:     config.Position.Add(config.Look),
		right:      right,
		up:         up,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		width:      width,
		height:     height,
	}
}

// GetRay returns the ray through continuous image coordinates (x, y), where
// pixel (i, j) covers [i, i+1) x [j, j+1) and y grows downward
func (c *Camera) GetRay(x, y float64) core.Ray {
	target := c.center.
		Add(c.right.Mul(c.halfWidth * (2*x/float64(c.width) - 1))).
		Sub(c.up.Mul(c.halfHeight * (2*y/float64(c.height) - 1)))

	return core.NewRay(c.origin, target.Sub(c.origin).Normalize())
}

// GetPixelRay returns the ray through the center of pixel (i, j)
func (c *Camera) GetPixelRay(i, j int) core.Ray {
	return c.GetRay(float64(i)+0.5, float64(j)+0.5)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 { return c.origin }

// Right returns the unit screen-right vector
func (c *Camera) Right() core.Vec3 { return c.right }

// Up returns the re-orthogonalized unit up vector
func (c *Camera) Up() core.Vec3 { return c.up }
