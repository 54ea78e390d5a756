// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Driving  DrivingConfig  `yaml:"driving"`
	Cars     []CarConfig    `yaml:"cars"`
	Wheels   []WheelConfig  `yaml:"wheels"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	TargetFPS  float64 `yaml:"target_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AssetsConfig holds asset locations. Paths are resolved against Roots
// (later roots win) unless they are absolute or http(s) URLs.
type AssetsConfig struct {
	Roots        []string      `yaml:"roots"`
	Car          string        `yaml:"car"`
	Wheel        string        `yaml:"wheel"`
	TextureAtlas string        `yaml:"texture_atlas"`
	Timeout      time.Duration `yaml:"timeout"`
}

// CameraConfig holds the orbit camera's initial state. Angles are degrees.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	Azimuth         float32 `yaml:"azimuth"`
	Polar           float32 `yaml:"polar"`
	Extent          float32 `yaml:"extent"`
	Clip            float32 `yaml:"clip"`
	MinExtent       float32 `yaml:"min_extent"`
	MinClip         float32 `yaml:"min_clip"`
	ZoomStep        float32 `yaml:"zoom_step"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	Follow          bool    `yaml:"follow"`
}

// LightingConfig holds the single light and the shared car material.
type LightingConfig struct {
	Position          [4]float32 `yaml:"position"`
	Ambient           [4]float32 `yaml:"ambient"`
	Diffuse           [4]float32 `yaml:"diffuse"`
	Specular          [4]float32 `yaml:"specular"`
	MaterialAmbient   [4]float32 `yaml:"material_ambient"`
	MaterialDiffuse   [4]float32 `yaml:"material_diffuse"`
	MaterialSpecular  [4]float32 `yaml:"material_specular"`
	MaterialShininess float32    `yaml:"material_shininess"`
}

// DrivingConfig holds player car handling. Rates are per second.
type DrivingConfig struct {
	Player   int     `yaml:"player"`    // index into Cars
	Speed    float32 `yaml:"speed"`     // units/s
	TurnRate float32 `yaml:"turn_rate"` // degrees/s at full lock
	MaxSteer float32 `yaml:"max_steer"` // degrees
	SpinRate float32 `yaml:"spin_rate"` // degrees/s
}

// CarConfig describes one car instance.
type CarConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Heading  float32    `yaml:"heading"` // degrees
	Color    [4]float32 `yaml:"color"`
}

// WheelConfig is a wheel attachment shared by every car.
type WheelConfig struct {
	Offset [3]float32 `yaml:"offset"`
	Steers bool       `yaml:"steers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      false,
			TargetFPS:  20,

			ScreenshotDir: "screenshots",
		},
		Assets: AssetsConfig{
			Roots:        []string{"."},
			Car:          "assets/car.obj",
			Wheel:        "assets/wheel.obj",
			TextureAtlas: "assets/racing-texture-atlas.png",
			Timeout:      10 * time.Second,
		},
		Camera: CameraConfig{
			Distance:        10,
			Azimuth:         -90,
			Polar:           60,
			Extent:          8,
			Clip:            50,
			MinExtent:       1,
			MinClip:         5,
			ZoomStep:        0.1,
			DragSensitivity: 0.01,
			Follow:          true,
		},
		Lighting: LightingConfig{
			Position:          [4]float32{1, -1, 2, 0},
			Ambient:           [4]float32{0.3, 0.3, 0.3, 1},
			Diffuse:           [4]float32{1, 1, 1, 1},
			Specular:          [4]float32{1, 1, 1, 1},
			MaterialAmbient:   [4]float32{1, 1, 1, 1},
			MaterialDiffuse:   [4]float32{1, 1, 1, 1},
			MaterialSpecular:  [4]float32{0.4, 0.4, 0.4, 1},
			MaterialShininess: 32,
		},
		Driving: DrivingConfig{
			Player:   0,
			Speed:    4,
			TurnRate: 90,
			MaxSteer: 30,
			SpinRate: 360,
		},
		Cars: []CarConfig{
			{Name: "red", Position: [3]float32{-2, 0, 0}, Heading: 90, Color: [4]float32{1, 0.2, 0.2, 1}},
			{Name: "blue", Position: [3]float32{2, 0, 0}, Heading: 90, Color: [4]float32{0.2, 0.4, 1, 1}},
		},
		Wheels: []WheelConfig{
			{Offset: [3]float32{0.8, 1.2, 0.35}, Steers: true},
			{Offset: [3]float32{-0.8, 1.2, 0.35}, Steers: true},
			{Offset: [3]float32{0.8, -1.2, 0.35}},
			{Offset: [3]float32{-0.8, -1.2, 0.35}},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
