package main

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine"
	"github.com/Carmen-Shannon/prism-tower/engine/camera"
	"github.com/Carmen-Shannon/prism-tower/engine/light"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer"
	"github.com/Carmen-Shannon/prism-tower/engine/scene"
	"github.com/Carmen-Shannon/prism-tower/engine/tower"
	"github.com/Carmen-Shannon/prism-tower/engine/window"
	"github.com/Carmen-Shannon/prism-tower/internal/config"
)

var backgroundColor = common.MustParseHexColor("#F5F5F5")

func rendererOptions(cfg config.Config) ([]renderer.RendererBuilderOption, error) {
	msaa, ok := renderer.ParseMSAA(cfg.MSAA)
	if !ok {
		return nil, fmt.Errorf("%w: msaa %d", config.ErrInvalidConfig, cfg.MSAA)
	}
	mode := renderer.PresentModeVSync
	if !cfg.VSync {
		mode = renderer.PresentModeUncapped
	}
	return []renderer.RendererBuilderOption{
		renderer.WithMSAA(msaa),
		renderer.WithPresentMode(mode),
		renderer.WithClearColor(backgroundColor),
	}, nil
}

// sceneLights returns the shadow-casting key light and the fill light.
func sceneLights() []light.Light {
	return []light.Light{
		light.NewLight(
			light.WithSourcePosition(5, 10, 7.5),
			light.WithIntensity(1),
			light.WithCastsShadows(true),
		),
		light.NewLight(
			light.WithSourcePosition(-5, 5, -5),
			light.WithIntensity(0.35),
		),
	}
}

func runTower(cfg config.Config) error {
	table, err := cfg.ColorTable()
	if err != nil {
		return err
	}
	tw, err := tower.NewTower(
		tower.WithDimensions(cfg.Dimensions()),
		tower.WithColorTable(table),
		tower.WithRotationRate(cfg.Rate),
	)
	if err != nil {
		return err
	}
	ropts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}

	w := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
	)
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, w, ropts...)

	cam := camera.NewCamera(
		camera.WithZoom(cfg.Zoom),
		camera.WithViewport(float32(w.Width()), float32(w.Height())),
		camera.WithController(camera.NewCameraController(
			camera.WithPosition(10, 10, 10),
			camera.WithTarget(0, 0, 0),
		)),
	)

	s, err := scene.NewScene("tower", cam, r)
	if err != nil {
		r.Release()
		return err
	}
	for _, l := range sceneLights() {
		s.AddLight(l)
	}
	if err := s.Add(tw.Root()); err != nil {
		s.Release()
		r.Release()
		return err
	}
	log.Printf("[Tower] %d levels, %d skeleton cells, %d draw items", tw.Layout().Levels, len(tw.Layout().Slots), s.Count())

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithScene(s),
		engine.WithProfiling(cfg.Profile),
	)
	e.SetRenderCallback(tw.Tick)
	return e.Run()
}
