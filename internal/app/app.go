// Package app implements the viewer's main loop: it wires the window,
// renderer, audio and camera to the scene.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/config"
	"github.com/Faultbox/glscene/internal/engine/audio"
	"github.com/Faultbox/glscene/internal/engine/camera"
	"github.com/Faultbox/glscene/internal/engine/debug"
	"github.com/Faultbox/glscene/internal/engine/input"
	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/engine/renderer"
	"github.com/Faultbox/glscene/internal/engine/window"
	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/internal/scene"
	smath "github.com/Faultbox/glscene/pkg/math"
)

// Title is the window title.
const Title = "glscene"

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not fling
// every bubble through the floor in one step.
const maxFrameTime = 0.1

var (
	sunColor = [3]float32{0.9, 0.85, 0.75}
	ambient  = [3]float32{0.12, 0.12, 0.15}
)

// App is the running viewer.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	camera   *camera.WalkCamera
	scene    *scene.Scene

	meshes  map[string]*renderer.Mesh
	sunDir  smath.Vec3
	capture *debug.Capture
	shoot   bool
	popClip string
}

// New opens the window and builds the scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Uint64("seed", cfg.Seed),
	)

	// The shader wants the direction light travels, not the one toward the sun.
	sun := lighting.SunDirection(cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation)

	a := &App{
		cfg:     cfg,
		input:   input.New(),
		meshes:  make(map[string]*renderer.Mesh),
		sunDir:  sun.Scale(-1),
		capture: debug.NewCapture("screenshots", "glscene"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: [3]float32{0.45, 0.6, 0.8},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.initAudio()

	a.scene, err = scene.New(cfg, bubbleSounds{voices: a.audio, pop: a.popClip})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	a.uploadMeshes()

	a.camera = camera.NewWalkCamera(smath.V3(0, 0, 3))
	a.camera.Zoom = cfg.Camera.FOV
	a.camera.MaxZoom = cfg.Camera.FOV
	a.camera.EyeHeight = cfg.Camera.EyeHeight
	a.camera.MoveSpeed = cfg.Camera.MoveSpeed
	a.camera.Sensitivity = cfg.Camera.Sensitivity
	a.camera.Fly = cfg.Camera.Fly
	a.camera.Ground = a.scene.GroundHeight
	a.camera.SnapToGround()

	logger.Info("viewer initialized", zap.Int("meshes", len(a.meshes)))
	return a, nil
}

// initAudio opens the device and loads the bubble clips. Failures are logged
// and leave the viewer silent; bubbles then spawn without sound.
func (a *App) initAudio() {
	ac := a.cfg.Audio
	a.audio = audio.New()
	if ac.Muted {
		logger.Info("audio muted")
		return
	}
	if err := a.audio.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return
	}
	a.audio.SetMasterVolume(float64(ac.MasterVolume))
	a.audio.SetBGMVolume(float64(ac.MusicVolume))
	a.audio.SetSFXVolume(float64(ac.SFXVolume))

	if err := a.audio.LoadClipFile(config.BubbleClip, ac.BubbleFile); err != nil {
		logger.Warn("bubble sound unavailable", zap.String("path", ac.BubbleFile), zap.Error(err))
	}
	if ac.PopFile != "" {
		if err := a.audio.LoadClipFile(config.PopClip, ac.PopFile); err != nil {
			logger.Warn("pop sound unavailable", zap.String("path", ac.PopFile), zap.Error(err))
		} else {
			a.popClip = config.PopClip
		}
	}
	if ac.MusicFile != "" {
		if err := a.audio.PlayBGMFile(ac.MusicFile, true); err != nil {
			logger.Warn("music unavailable", zap.String("path", ac.MusicFile), zap.Error(err))
		}
	}
}

// uploadMeshes copies every registry buffer to the GPU. A buffer that fails
// to upload is logged and not drawn.
func (a *App) uploadMeshes() {
	for _, nb := range a.scene.Meshes() {
		m, err := renderer.Upload(nb.Buffer)
		if err != nil {
			logger.Error("mesh upload failed", zap.String("mesh", nb.Name), zap.Error(err))
			continue
		}
		a.meshes[nb.Name] = m
	}
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var minFrame time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.update(dt)
		a.render()
		if a.shoot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := a.scene.Stats()
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("bubbles", st.Active),
				zap.Int("lights", a.scene.Lights().Len()),
			)
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s | %d fps | %d bubbles", Title, frameCount, st.Active))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.GetSize())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_TAB:
				a.window.SetMouseCaptured(!a.window.MouseCaptured())
			case sdl.SCANCODE_F12:
				a.shoot = true
			case sdl.SCANCODE_M:
				playing := toggleMusic(a.audio)
				logger.Info("music", zap.Bool("playing", playing), zap.String("path", a.audio.GetBGMPath()))
			case sdl.SCANCODE_F:
				a.camera.Fly = !a.camera.Fly
				a.camera.SnapToGround()
				logger.Info("camera mode", zap.Bool("fly", a.camera.Fly))
			}
		}
	}
}

var moveKeys = []struct {
	key sdl.Scancode
	dir camera.Direction
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_SPACE, camera.Up},
	{sdl.SCANCODE_LCTRL, camera.Down},
}

func (a *App) update(dt float64) {
	for _, k := range moveKeys {
		if a.input.IsKeyHeld(k.key) {
			a.camera.Move(k.dir, float32(dt))
		}
	}
	if a.window.MouseCaptured() {
		a.camera.HandleMouse(a.input.MouseDelta())
	}
	if w := a.input.Wheel(); w != 0 {
		a.camera.HandleZoom(w)
	}

	a.audio.SetListener(audio.Listener{
		Position: a.camera.Position,
		Right:    a.camera.Right(),
		Rolloff:  audio.DefaultListener().Rolloff,
	})

	a.scene.Update(dt)
}

func (a *App) render() {
	frame := renderer.Frame{
		View:      a.camera.ViewMatrix(),
		Proj:      a.camera.ProjectionMatrix(a.renderer.Aspect()),
		CameraPos: a.camera.Position,
		SunDir:    a.sunDir,
		SunColor:  sunColor,
		Ambient:   ambient,
		Lights:    a.scene.Lights().GPUArrays(),
	}

	a.renderer.Begin(&frame)
	for _, d := range a.scene.Draws() {
		m, ok := a.meshes[d.Mesh]
		if !ok {
			continue
		}
		mat := renderer.DefaultMaterial
		mat.Emissive = d.Emissive
		if d.Instances != nil {
			a.renderer.DrawInstanced(m, d.Instances, mat)
		} else {
			a.renderer.Draw(m, d.Model, mat)
		}
	}
	a.renderer.End()
}

func (a *App) screenshot() {
	a.shoot = false
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.SaveFrame(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, GPU meshes, audio and window in that order.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.scene != nil {
		a.scene.Close()
	}
	for name, m := range a.meshes {
		m.Release()
		delete(a.meshes, name)
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
