// Package game implements the main game loop.
package game

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/racer/internal/assets"
	"github.com/Faultbox/racer/internal/config"
	"github.com/Faultbox/racer/internal/engine/input"
	"github.com/Faultbox/racer/internal/engine/renderer"
	"github.com/Faultbox/racer/internal/engine/scene"
	"github.com/Faultbox/racer/internal/engine/screenshot"
	"github.com/Faultbox/racer/internal/engine/window"
	"github.com/Faultbox/racer/internal/game/clock"
	"github.com/Faultbox/racer/internal/game/world"
	"github.com/Faultbox/racer/internal/logger"
)

const title = "Racer"

// Game is the main game instance.
type Game struct {
	config   *config.Config
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager
	composer *scene.Composer
	state    *world.State
	shots    *screenshot.Capturer

	// Atlas decode in flight; nil once it has been consumed.
	atlas  <-chan *image.RGBA
	cancel context.CancelFunc

	events []input.Event
	fps    float64
}

// New creates the window and GPU state, loads the meshes and builds the
// scene. A window or renderer error means no GPU context is available.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Float64("target_fps", cfg.Graphics.TargetFPS),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	g.renderer, err = renderer.New(renderer.DefaultConfig())
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.shots = screenshot.New(cfg.Graphics.ScreenshotDir, "racer")

	g.assets = assets.NewManager()
	for _, root := range cfg.Assets.Roots {
		if err := g.assets.AddRoot(root); err != nil {
			g.log.Warn("skipping asset root", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	if err := g.loadScene(ctx); err != nil {
		g.Close()
		return nil, err
	}

	// The placeholder stays bound until the atlas arrives
	g.atlas = g.assets.LoadImageAsync(ctx, cfg.Assets.TextureAtlas)

	width, height := g.window.DrawableSize()
	g.resize(width, height)

	g.log.Info("game initialized successfully", zap.Int("cars", len(g.state.Cars)))
	return g, nil
}

// loadScene loads the meshes, packs them into the vertex buffer and creates
// the cars.
func (g *Game) loadScene(ctx context.Context) error {
	cfg := g.config

	loadCtx := ctx
	if cfg.Assets.Timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.Assets.Timeout)
		defer cancel()
	}

	meshes := g.assets.LoadMeshes(loadCtx, map[string]string{
		"car":   cfg.Assets.Car,
		"wheel": cfg.Assets.Wheel,
	})

	vertices, ranges := scene.PackMeshes(meshes["car"], meshes["wheel"])
	g.renderer.Upload(vertices)

	prefab := world.Prefab("car", ranges[0], ranges[1], cfg.Wheels)
	state, err := world.FromConfig(cfg, prefab)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	g.state = state
	g.composer = world.Composer(cfg.Lighting)
	return nil
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	frame := clock.NewFrame(time.Now())

	g.log.Info("starting game loop")

	for !g.state.Quit {
		frame.Tick(time.Now())

		// 1. Process input
		g.events, _ = window.PollEvents(g.events[:0])
		for _, ev := range g.events {
			g.state.Handle(ev)
			if ev.Type == input.EventWindowResize {
				g.resize(g.window.DrawableSize())
			}
		}
		if g.state.Quit {
			break
		}

		// 2. Update game state
		g.swapAtlas()
		g.state.Update(frame.DeltaSeconds())

		// 3. Render
		g.render()
		if g.state.Screenshot {
			g.capture()
			g.state.Screenshot = false
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		if g.state.TargetFPS != g.fps {
			g.fps = g.state.TargetFPS
			g.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", title, g.fps))
			g.log.Debug("target fps changed", zap.Float64("fps", g.fps))
		}

		time.Sleep(clock.FrameWait(g.state.TargetFPS, frame.Elapsed(time.Now())))
	}

	g.log.Info("game loop stopped")
	return nil
}

// swapAtlas binds the texture atlas once its background decode finishes.
func (g *Game) swapAtlas() {
	if g.atlas == nil {
		return
	}
	select {
	case img, ok := <-g.atlas:
		if ok {
			g.renderer.SetTexture(img)
		}
		g.atlas = nil
	default:
	}
}

func (g *Game) render() {
	s := g.state
	g.renderer.Begin()
	g.renderer.Draw(g.composer.Frame(s.Camera.ViewMatrix(), s.Camera.Projection(s.Aspect()), s.Cars))
}

// capture saves the back buffer before it is presented.
func (g *Game) capture() {
	w, h := g.state.Width, g.state.Height
	img, err := screenshot.FlipRows(g.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := g.shots.Save(img)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) resize(width, height int) {
	g.state.Width, g.state.Height = width, height
	g.renderer.Resize(width, height)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.cancel != nil {
		g.cancel()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
