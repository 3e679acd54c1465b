package scene

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultSceneID is rendered when no scene is chosen
const DefaultSceneID = "final"

// Builder assembles a scene
type Builder func(opts Options) *Scene

// SceneInfo describes a catalog entry
type SceneInfo struct {
	ID          string // Unique identifier used on the command line
	DisplayName string // Human readable name
	Description string
	Group       string // Grouping category
	Build       Builder
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

// catalog lists the built-in scenes in presentation order
var catalog = []SceneInfo{
	{ID: "random-spheres", Description: "Field of small random spheres around three large ones", Group: "Spheres", Build: NewRandomSpheresScene},
	{ID: "two-spheres", Description: "Two checkered spheres", Group: "Textures", Build: NewTwoSpheresScene},
	{ID: "two-perlin-spheres", Description: "Marble sphere on marble ground", Group: "Textures", Build: NewTwoPerlinSpheresScene},
	{ID: "earth", Description: "Globe with the earth map image texture", Group: "Textures", Build: NewEarthScene},
	{ID: "empty", Description: "No objects, black background", Group: "Lights", Build: NewEmptyScene},
	{ID: "simple-light", Description: "Marble spheres lit by a rectangular lamp", Group: "Lights", Build: NewSimpleLightScene},
	{ID: "cornell", Description: "Cornell box with two rotated blocks", Group: "Cornell Box", Build: NewCornellScene},
	{ID: "cornell-smoke", Description: "Cornell box with blocks of smoke", Group: "Cornell Box", Build: NewCornellSmokeScene},
	{ID: "final", Description: "Showcase of every feature", Group: "Showcase", Build: NewFinalScene},
}

// Catalog returns all built-in scenes in presentation order
func Catalog() []SceneInfo {
	scenes := make([]SceneInfo, len(catalog))
	for i, info := range catalog {
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}
	return scenes
}

// Lookup finds a scene by ID
func Lookup(id string) (SceneInfo, error) {
	for _, info := range Catalog() {
		if info.ID == id {
			return info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(IDs(), ", "))
}

// Build looks up a scene by ID and assembles it
func Build(id string, opts Options) (*Scene, error) {
	info, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return info.Build(opts), nil
}

// IDs returns the IDs of all built-in scenes
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, info := range catalog {
		ids[i] = info.ID
	}
	return ids
}

// Groups returns the catalog grouped by category, groups sorted by name and
// scenes in presentation order within each group
func Groups() []SceneGroup {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range Catalog() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	groups := make([]SceneGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups
}

// titleCase converts an ID to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
