package world

import (
	"fmt"

	"github.com/Faultbox/racer/internal/config"
	"github.com/Faultbox/racer/internal/engine/camera"
	"github.com/Faultbox/racer/internal/engine/scene"
	"github.com/Faultbox/racer/pkg/math"
)

// FromConfig builds the session state for cfg with every car using prefab.
func FromConfig(cfg *config.Config, prefab *scene.Prefab) (*State, error) {
	cars, err := Cars(cfg.Cars, prefab)
	if err != nil {
		return nil, err
	}

	driving := Driving{
		Speed:    cfg.Driving.Speed,
		TurnRate: cfg.Driving.TurnRate,
		MaxSteer: cfg.Driving.MaxSteer,
		SpinRate: cfg.Driving.SpinRate,
	}

	s := New(cars, cfg.Driving.Player, Camera(cfg.Camera), driving, cfg.Graphics.TargetFPS)
	s.Width, s.Height = cfg.Graphics.Width, cfg.Graphics.Height
	return s, nil
}

// Cars creates one instance per configured car.
func Cars(cfgs []config.CarConfig, prefab *scene.Prefab) ([]*scene.Instance, error) {
	cars := make([]*scene.Instance, 0, len(cfgs))
	for i, c := range cfgs {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("car%d", i)
		}
		inst, err := scene.NewInstance(name, prefab, vec3(c.Position), c.Heading, scene.Color(c.Color))
		if err != nil {
			return nil, fmt.Errorf("cars[%d]: %w", i, err)
		}
		cars = append(cars, inst)
	}
	return cars, nil
}

// Prefab describes the car model: the body and wheel ranges in the packed
// vertex buffer and where the wheels attach.
func Prefab(name string, body, wheel scene.DrawRange, wheels []config.WheelConfig) *scene.Prefab {
	p := &scene.Prefab{Name: name, Body: body, Wheel: wheel}
	for _, w := range wheels {
		p.Attachments = append(p.Attachments, scene.Attachment{Offset: vec3(w.Offset), Steers: w.Steers})
	}
	return p
}

// Camera creates the orbit camera from its configuration.
func Camera(cfg config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.Distance = cfg.Distance
	cam.Azimuth = math.WrapRadians(math.Radians(cfg.Azimuth))
	cam.Polar = math.Clamp(math.Radians(cfg.Polar), camera.MinPolar, camera.MaxPolar)
	cam.Extent = cfg.Extent
	cam.Clip = cfg.Clip
	cam.MinExtent = cfg.MinExtent
	cam.MinClip = cfg.MinClip
	cam.ZoomStep = cfg.ZoomStep
	cam.DragSensitivity = cfg.DragSensitivity
	cam.Follow = cfg.Follow
	return cam
}

// Composer creates the scene composer from the lighting configuration.
func Composer(cfg config.LightingConfig) *scene.Composer {
	p := cfg.Position
	light := scene.Light{
		Position: math.Vec4{X: p[0], Y: p[1], Z: p[2], W: p[3]},
		Ambient:  scene.Color(cfg.Ambient),
		Diffuse:  scene.Color(cfg.Diffuse),
		Specular: scene.Color(cfg.Specular),
	}
	material := scene.Material{
		Ambient:   scene.Color(cfg.MaterialAmbient),
		Diffuse:   scene.Color(cfg.MaterialDiffuse),
		Specular:  scene.Color(cfg.MaterialSpecular),
		Shininess: cfg.MaterialShininess,
	}
	return scene.NewComposer(light, material)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
