package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Object       int                    `json:"object"` // Shape index, -1 on a miss
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     *float64               `json:"distance,omitempty"` // Absent for background hits
	Color        string                 `json:"color"`              // Final pixel color
	Rays         int                    `json:"rays"`               // Rays traced for the pixel
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo classifies a material and lists its parameters
func extractMaterialInfo(m material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":        m.Color.ToHex(),
		"opacity":      m.Opacity(),
		"diffuse":      m.Diffuse,
		"specular":     m.Specular,
		"specularN":    m.SpecularN,
		"reflectivity": m.Reflectivity,
	}
	if m.Texture != nil {
		properties["texture"] = m.Texture.Name
	}

	switch {
	case m.IsTransparent():
		return "transparent", properties
	case m.Reflectivity > 0:
		return "mirror", properties
	default:
		return "opaque", properties
	}
}

// extractGeometryInfo extracts geometry information with type assertions
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch s := shape.(type) {
	case *geometry.Sphere:
		if s.IsBackground() {
			return "background", properties
		}
		properties["center"] = [3]float64{s.Center.X, s.Center.Y, s.Center.Z}
		properties["radius"] = s.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{
			{s.A.X, s.A.Y, s.A.Z},
			{s.B.X, s.B.Y, s.B.Z},
			{s.C.X, s.C.Y, s.C.Z},
		}
		return "triangle", properties

	case *geometry.Plane:
		n := s.Normal(s.Point)
		properties["point"] = [3]float64{s.Point.X, s.Point.Y, s.Point.Z}
		properties["normal"] = [3]float64{n.X, n.Y, n.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through the center of pixel (x, y)
// and reports what it hits along with the pixel's final color
func inspectPixel(sceneObj *scene.Scene, config renderer.Config, x, y int) InspectResponse {
	rt := renderer.NewRaytracer(sceneObj, config, nil)
	color, rays := rt.RenderPixel(x, y)
	response := InspectResponse{Object: int(geometry.NoObject), Color: color.ToHex(), Rays: rays}

	hit, isHit := renderer.FirstHit(sceneObj, rt.Camera().GetPixelRay(x, y))
	if !isHit {
		return response
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	geometryType, geometryProps := extractGeometryInfo(sceneObj.Shape(hit.Object))
	if hit.IsInfinite() {
		materialType = "background"
	} else {
		distance := hit.T
		response.Distance = &distance
	}

	response.Hit = true
	response.Object = int(hit.Object)
	response.MaterialType = materialType
	response.GeometryType = geometryType
	response.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
	response.Normal = [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
	response.Properties = map[string]interface{}{
		"material": materialProps,
		"geometry": geometryProps,
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	config := renderer.ConfigFromScene(sceneObj)
	config.Width, config.Height, config.MaxDepth = req.Width, req.Height, req.Depth
	config.Antialiasing = renderer.Off()
	if req.AA > 0 {
		config.Antialiasing = renderer.Grid(req.AA)
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, config, pixelX, pixelY))
}
