package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/engine/camera"
	"github.com/Faultbox/objscene/internal/engine/debug"
	"github.com/Faultbox/objscene/internal/engine/input"
	"github.com/Faultbox/objscene/internal/engine/lighting"
	"github.com/Faultbox/objscene/internal/engine/renderer"
	"github.com/Faultbox/objscene/internal/engine/scene"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/engine/window"
	"github.com/Faultbox/objscene/internal/logger"
)

const windowTitle = "OBJ Scene Viewer"

// Viewer owns the window, GL renderer and the loaded scene.
type Viewer struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	textures *texture.Cache
	scene    *scene.Scene
	shots    *debug.ScreenshotCapture
	log      *zap.Logger

	overrideDiffuse bool
}

// NewViewer opens the window and loads every configured model. The first
// model is the root; the rest are attached to it.
func NewViewer(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		scene:  scene.New(),
		log:    logger.Named("viewer"),
	}

	var err error
	v.shots, err = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "objscene", cfg.Graphics.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	v.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	sun := lighting.Sun{
		Longitude: cfg.Graphics.Light.Longitude,
		Latitude:  cfg.Graphics.Light.Latitude,
		Color:     cfg.Graphics.Light.Color,
	}
	v.renderer.LightDir = sun.Direction()
	v.renderer.LightColor = sun.Radiance()

	loader := renderer.NewTextureLoader(texture.DecodeOptions{
		FlipY:   cfg.Assets.FlipTextures,
		MaxSize: cfg.Assets.MaxTextureSize,
	}, cfg.Assets.GenerateMipmaps)
	v.textures = texture.NewCache(loader)

	if err := v.loadModels(); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

func (v *Viewer) loadModels() error {
	opts := scene.UniformScale(v.cfg.Assets.ModelScale)

	var root *scene.Node
	for _, path := range v.cfg.Assets.Models {
		n, err := scene.Load(path, v.textures, opts)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		if root == nil {
			root = n
			v.scene.Add(root)
			continue
		}
		root.Attach(n)
	}

	if b, ok := v.scene.Bounds(); ok {
		v.camera.FitToBounds(b, v.cfg.Graphics.FOV)
	}
	v.log.Info("scene ready",
		zap.Int("models", len(v.cfg.Assets.Models)),
		zap.Int("textures", v.textures.Len()),
	)
	return nil
}

// Run drives the frame loop until the window is closed or Esc is pressed.
func (v *Viewer) Run() {
	last := time.Now()
	frames := 0
	fpsTimer := last

	for {
		if v.input.Update() {
			return
		}
		if !v.handleEvents() {
			return
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		v.camera.Update(dt)
		v.renderFrame()
		v.window.SwapBuffers()

		frames++
		if now.Sub(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d FPS", windowTitle, frames))
			frames = 0
			fpsTimer = now
		}
	}
}

// handleEvents reacts to the last input batch. It returns false to quit.
func (v *Viewer) handleEvents() bool {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(e.Width, e.Height)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_T:
				v.overrideDiffuse = !v.overrideDiffuse
				v.scene.SetOverrideDiffuse(v.overrideDiffuse)
				v.log.Info("diffuse override", zap.Bool("enabled", v.overrideDiffuse))
			case sdl.SCANCODE_F12:
				v.screenshot()
			case sdl.SCANCODE_SPACE:
				if v.camera.AutoRotate == 0 {
					v.camera.AutoRotate = camera.NewOrbitCamera().AutoRotate
				} else {
					v.camera.AutoRotate = 0
				}
			}
		case input.EventMouseDrag:
			v.camera.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.DY)
		}
	}
	return true
}

func (v *Viewer) renderFrame() {
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.cfg.Graphics.FOV, v.renderer.Aspect())

	v.renderer.CameraPos = v.camera.Position()
	v.renderer.Begin()
	v.scene.Render(v.renderer, scene.NewTransforms(view, proj))
	v.renderer.End()
}

// screenshot saves the last rendered frame.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		if v.textures != nil {
			renderer.DeleteTextures(v.textures)
		}
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
