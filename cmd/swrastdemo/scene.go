package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// maxSceneSize bounds the scene file read from disk.
const maxSceneSize = 1024 * 1024

// Scene is the demo configuration. Zero fields take the defaults of
// DefaultScene.
type Scene struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Scale   int     `yaml:"scale"`   // integer upscale applied to saved frames
	Frames  int     `yaml:"frames"`  // frames per full turn
	Output  string  `yaml:"output"`  // directory for PNG frames
	FOV     float32 `yaml:"fov"`     // vertical field of view in degrees
	Filter  string  `yaml:"filter"`  // "point" or "bilinear"
	Address string  `yaml:"address"` // "clamp", "wrap" or "mirror"
	Tiles   int     `yaml:"tiles"`   // checker tiles per cube face edge
	Repeat  float32 `yaml:"repeat"`  // texture repeats per cube face
	Cull    string  `yaml:"cull"`    // "none", "front" or "back"

	Camera struct {
		Distance float32 `yaml:"distance"`
		Height   float32 `yaml:"height"`
	} `yaml:"camera"`

	Background [4]float64 `yaml:"background"`
}

// DefaultScene returns the built-in scene.
func DefaultScene() Scene {
	s := Scene{
		Width:      160,
		Height:     120,
		Scale:      4,
		Frames:     24,
		Output:     "frames",
		FOV:        60,
		Filter:     "bilinear",
		Address:    "wrap",
		Tiles:      8,
		Repeat:     2,
		Cull:       "back",
		Background: [4]float64{0.08, 0.09, 0.12, 1},
	}
	s.Camera.Distance = 3.5
	s.Camera.Height = 1.5
	return s
}

// LoadScene reads a YAML scene from path over the defaults.
func LoadScene(path string) (Scene, error) {
	s := DefaultScene()
	info, err := os.Stat(path)
	if err != nil {
		return s, err
	}
	if info.Size() > maxSceneSize {
		return s, fmt.Errorf("scene file %s too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate checks the scene for values the renderer cannot use.
func (s Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("invalid size %dx%d", s.Width, s.Height)
	case s.Scale <= 0:
		return fmt.Errorf("invalid scale %d", s.Scale)
	case s.Frames <= 0:
		return fmt.Errorf("invalid frame count %d", s.Frames)
	case s.FOV <= 0 || s.FOV >= 180:
		return fmt.Errorf("invalid field of view %v", s.FOV)
	case s.Tiles <= 0:
		return fmt.Errorf("invalid tile count %d", s.Tiles)
	case s.Camera.Distance <= 0:
		return fmt.Errorf("invalid camera distance %v", s.Camera.Distance)
	}
	if _, err := parseFilter(s.Filter); err != nil {
		return err
	}
	if _, err := parseAddress(s.Address); err != nil {
		return err
	}
	if _, err := parseCull(s.Cull); err != nil {
		return err
	}
	return nil
}
