package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Carmen-Shannon/prism-tower/engine/geometry"
	"github.com/Carmen-Shannon/prism-tower/engine/tower"
	"github.com/Carmen-Shannon/prism-tower/internal/config"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// vec encodes as a one-line [x, y, z] sequence.
type vec mgl32.Vec3

func (v vec) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range v {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: strconv.FormatFloat(float64(f), 'g', -1, 32),
		})
	}
	return n, nil
}

type slotDump struct {
	Index int     `yaml:"index"`
	Y     float32 `yaml:"y"`
	A     string  `yaml:"a,omitempty"`
	B     string  `yaml:"b,omitempty"`
}

type meshDump struct {
	Name      string `yaml:"name"`
	Topology  string `yaml:"topology"`
	Vertices  int    `yaml:"vertices"`
	Positions []vec  `yaml:"positions"`
	Normals   []vec  `yaml:"normals,omitempty"`
}

type dump struct {
	Dimensions   geometry.Dimensions `yaml:"dimensions"`
	Levels       int                 `yaml:"levels"`
	Skeleton     int                 `yaml:"skeleton"`
	ColoredStart int                 `yaml:"colored_start"`
	Height       float32             `yaml:"height"`
	Slots        []slotDump          `yaml:"slots"`
	Meshes       []meshDump          `yaml:"meshes"`
}

func prismDump(name string, m *geometry.Mesh) meshDump {
	d := meshDump{Name: name, Topology: "triangles", Vertices: len(m.Vertices)}
	for _, v := range m.Vertices {
		d.Positions = append(d.Positions, vec(v.Position))
		d.Normals = append(d.Normals, vec(v.Normal))
	}
	return d
}

func wireDump(name string, l *geometry.LineMesh) meshDump {
	d := meshDump{Name: name, Topology: "lines", Vertices: len(l.Vertices)}
	for _, p := range l.Vertices {
		d.Positions = append(d.Positions, vec(p))
	}
	return d
}

// buildDump composes the layout and generates the shared meshes without opening a window.
func buildDump(cfg config.Config) (*dump, error) {
	table, err := cfg.ColorTable()
	if err != nil {
		return nil, err
	}
	dims := cfg.Dimensions()
	layout, err := tower.Compose(table, dims)
	if err != nil {
		return nil, err
	}

	out := &dump{
		Dimensions:   dims,
		Levels:       layout.Levels,
		Skeleton:     len(layout.Slots),
		ColoredStart: layout.ColoredStart,
		Height:       layout.Height(),
	}
	for _, s := range layout.Slots {
		sd := slotDump{Index: s.Index, Y: s.Y}
		if s.A != nil {
			sd.A = s.A.Hex()
		}
		if s.B != nil {
			sd.B = s.B.Hex()
		}
		out.Slots = append(out.Slots, sd)
	}

	cache := geometry.NewCache()
	wire, err := cache.Wireframe(dims)
	if err != nil {
		return nil, err
	}
	out.Meshes = append(out.Meshes, wireDump(tower.ModelWire, wire))
	for _, h := range []struct {
		half geometry.Half
		name string
	}{{geometry.HalfA, tower.ModelPrismA}, {geometry.HalfB, tower.ModelPrismB}} {
		m, err := cache.Prism(h.half, dims)
		if err != nil {
			return nil, err
		}
		out.Meshes = append(out.Meshes, prismDump(h.name, m))
	}
	return out, nil
}

func writeDump(w io.Writer, cfg config.Config) error {
	d, err := buildDump(cfg)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("dump: failed to encode: %w", err)
	}
	return enc.Close()
}
