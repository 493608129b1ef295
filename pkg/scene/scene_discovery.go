package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// ListBuiltinScenes describes the built-in scenes
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		sc, _ := ByName(name)
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        name,
			Description: sc.Description,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListFileScenes scans dir for *.json scene files. A missing directory is
// not an error.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, path := range files {
		info, err := ParseSceneMetadata(path)
		if err != nil {
			// Skip unreadable files but keep listing the rest
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", path, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads only the name and description from a scene file
func ParseSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       "file:" + base,
		Name:     base,
		Type:     "file",
		FilePath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("decode scene header: %w", err)
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description

	return info, nil
}

// Resolve returns a built-in scene by name, or loads name as a scene file
// when it ends in .json
func Resolve(name string) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		return Load(name)
	}
	return ByName(name)
}
