package scene

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism-tower/engine/camera"
	"github.com/Carmen-Shannon/prism-tower/engine/game_object"
	"github.com/Carmen-Shannon/prism-tower/engine/light"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestUniformSizesMatchShaders(t *testing.T) {
	// Uniform structs in the WGSL assets round up to 16-byte alignment.
	for name, size := range map[string]uint64{
		"camera": cameraUniformSize,
		"object": objectUniformSize,
		"shadow": shadowUniformSize,
	} {
		if size != 80 {
			t.Errorf("%s uniform size = %d, want 80", name, size)
		}
	}
	if light.LightBlockSize != 144 {
		t.Errorf("light block size = %d, want 144", light.LightBlockSize)
	}
}

func TestLightingLayoutBindings(t *testing.T) {
	desc := lightingLayout()
	if len(desc.Entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(desc.Entries))
	}
	for i, e := range desc.Entries {
		if int(e.Binding) != i {
			t.Errorf("entry %d has binding %d", i, e.Binding)
		}
	}
	if desc.Entries[2].Texture.SampleType != wgpu.TextureSampleTypeDepth {
		t.Error("binding 2 should sample a depth texture")
	}
	if desc.Entries[3].Sampler.Type != wgpu.SamplerBindingTypeComparison {
		t.Error("binding 3 should be a comparison sampler")
	}
}

func TestPipelinesValidate(t *testing.T) {
	cases := []struct {
		p            pipeline.Pipeline
		key          string
		typ          pipeline.PipelineType
		topology     wgpu.PrimitiveTopology
		attributes   int
		hasFragment  bool
		vertexSource string
	}{
		{litPipeline(), PipelineLit, pipeline.PipelineTypeRender, wgpu.PrimitiveTopologyTriangleList, 2, true, litSource},
		{linePipeline(), PipelineLine, pipeline.PipelineTypeRender, wgpu.PrimitiveTopologyLineList, 1, true, lineSource},
		{shadowPipeline(), PipelineShadow, pipeline.PipelineTypeShadow, wgpu.PrimitiveTopologyTriangleList, 1, false, shadowSource},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			if err := c.p.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if c.p.PipelineKey() != c.key || c.p.Type() != c.typ {
				t.Errorf("key/type = %s/%v", c.p.PipelineKey(), c.p.Type())
			}
			if c.p.Topology() != c.topology {
				t.Errorf("topology = %v, want %v", c.p.Topology(), c.topology)
			}
			vs := c.p.Shader(shader.ShaderTypeVertex)
			if vs.Source() != c.vertexSource {
				t.Error("vertex shader uses the wrong asset")
			}
			layouts := vs.VertexLayout(0)
			if len(layouts) != 1 {
				t.Fatalf("vertex layouts = %d, want 1", len(layouts))
			}
			if layouts[0].ArrayStride != model.GPUVertexSize {
				t.Errorf("stride = %d, want %d", layouts[0].ArrayStride, model.GPUVertexSize)
			}
			if len(layouts[0].Attributes) != c.attributes {
				t.Errorf("attributes = %d, want %d", len(layouts[0].Attributes), c.attributes)
			}
			if got := c.p.Shader(shader.ShaderTypeFragment) != nil; got != c.hasFragment {
				t.Errorf("fragment shader present = %v, want %v", got, c.hasFragment)
			}
		})
	}
}

func TestAssetsDeclareBindings(t *testing.T) {
	for name, want := range map[string][]string{
		"lit":    {"@group(0) @binding(0)", "@group(1) @binding(0)", "@group(2) @binding(3)"},
		"line":   {"@group(0) @binding(0)", "@group(1) @binding(0)"},
		"shadow": {"@group(0) @binding(0)", "@group(1) @binding(0)"},
	} {
		src := map[string]string{"lit": litSource, "line": lineSource, "shadow": shadowSource}[name]
		for _, w := range want {
			if !strings.Contains(src, w) {
				t.Errorf("%s.wgsl missing %q", name, w)
			}
		}
	}
}

func TestPipelineFor(t *testing.T) {
	if pipelineFor(model.TopologyLines) != PipelineLine {
		t.Error("lines should draw with the line pipeline")
	}
	if pipelineFor(model.TopologyTriangles) != PipelineLit {
		t.Error("triangles should draw with the lit pipeline")
	}
}

func TestChunkRanges(t *testing.T) {
	cases := []struct {
		n, workers int
		want       [][2]int
	}{
		{0, 4, nil},
		{3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{10, 3, [][2]int{{0, 4}, {4, 7}, {7, 10}}},
		{5, 0, [][2]int{{0, 5}}},
	}
	for _, c := range cases {
		got := chunkRanges(c.n, c.workers)
		if len(got) != len(c.want) {
			t.Fatalf("chunkRanges(%d, %d) = %v, want %v", c.n, c.workers, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("chunkRanges(%d, %d)[%d] = %v, want %v", c.n, c.workers, i, got[i], c.want[i])
			}
		}
	}
}

func TestShadowLight(t *testing.T) {
	fill := light.NewLight(light.WithCastsShadows(false))
	off := light.NewLight(light.WithCastsShadows(true), light.WithEnabled(false))
	key := light.NewLight(light.WithCastsShadows(true))

	if shadowLight([]light.Light{fill, off}) != nil {
		t.Error("no enabled caster should yield nil")
	}
	if shadowLight([]light.Light{fill, off, key}) != key {
		t.Error("expected the first enabled caster")
	}
}

func TestWorldBounds(t *testing.T) {
	m := model.NewModel(model.WithName("unit"), model.WithBoundingRadius(2))
	parent := game_object.NewGameObject(game_object.WithPosition(0, 1, 0))
	child := game_object.NewGameObject(
		game_object.WithModel(m),
		game_object.WithPosition(1, 2, 3),
		game_object.WithScale(1, 3, 1),
	)
	parent.AddChild(child)

	center, radius := worldBounds(child)
	want := [3]float32{1, 3, 3}
	for i := range center {
		if math.Abs(float64(center[i]-want[i])) > 1e-5 {
			t.Fatalf("center = %v, want %v", center, want)
		}
	}
	if math.Abs(float64(radius-6)) > 1e-5 {
		t.Errorf("radius = %v, want 6 (radius 2 times max scale 3)", radius)
	}
}

// recordingRenderer keeps a copy of the last batch passed to WriteBuffers.
type recordingRenderer struct {
	renderer.Renderer
	calls int
	last  []bind_group_provider.BufferWrite
}

func (r *recordingRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.calls++
	r.last = append(r.last[:0], writes...)
}

func TestPrepareFrameFansOutObjectUniforms(t *testing.T) {
	rr := &recordingRenderer{}
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           "fanout",
		cam:            camera.NewCamera(),
		r:              rr,
		ambient:        [3]float32{0.5, 0.5, 0.5},
		lightingBGP:    bind_group_provider.NewBindGroupProvider("fanout_lighting"),
		computeWorkers: 4,
	}
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, time.Second)

	unit := model.NewModel(model.WithName("unit"))
	root := game_object.NewGameObject()
	for i := 0; i < 27; i++ {
		o := game_object.NewGameObject(game_object.WithModel(unit), game_object.WithPosition(0, float32(i), 0))
		root.AddChild(o)
		s.items = append(s.items, drawItem{obj: o, bgp: bind_group_provider.NewBindGroupProvider(fmt.Sprintf("obj_%d", i))})
	}

	const frames = 500
	for f := 0; f < frames; f++ {
		root.SetRotation(0, float32(f)*0.01, 0)
		s.PrepareFrame()

		if len(rr.last) != 2+len(s.items) {
			t.Fatalf("frame %d wrote %d buffers, want %d", f, len(rr.last), 2+len(s.items))
		}
		if rr.last[0].Provider != s.cam.BindGroupProvider() || rr.last[1].Provider != s.lightingBGP {
			t.Fatalf("frame %d: camera and light block should lead the batch", f)
		}
		for i, it := range s.items {
			w := rr.last[2+i]
			u := game_object.Uniform(it.obj)
			if w.Provider != it.bgp || !bytes.Equal(w.Data, u.Marshal()) {
				t.Fatalf("frame %d: object %d uniform does not match its world matrix", f, i)
			}
		}
	}
	if rr.calls != frames {
		t.Fatalf("WriteBuffers called %d times, want %d", rr.calls, frames)
	}
}
