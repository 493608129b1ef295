package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned for scene names that are neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

var builtinScenes = map[string]func() *Scene{
	"default":    NewDefaultScene,
	"mirrors":    NewMirrorsScene,
	"glass":      NewGlassScene,
	"sentinel":   NewSentinelScene,
	"cornell":    NewCornellScene,
	"spheregrid": NewSphereGridScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a fresh copy of a built-in scene
func ByName(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return build(), nil
}
