package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/cogentcore/webgpu/wgpu"
)

func uniformEntry(binding uint32, vis wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: vis,
		Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 16},
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex)}},
		2: {Label: "lights", Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(1, wgpu.ShaderStageVertex)}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Label: "object", Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageFragment)}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(1, wgpu.ShaderStageFragment),
			uniformEntry(0, wgpu.ShaderStageFragment),
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("merged %d groups, want 3", len(merged))
	}
	if merged[0].Label != "camera" || merged[0].Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Errorf("vertex-only group changed: %+v", merged[0])
	}
	if merged[1].Label != "object" || merged[1].Entries[0].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("fragment-only group changed: %+v", merged[1])
	}

	g2 := merged[2]
	if g2.Label != "lights" {
		t.Errorf("merged label = %q, want lights", g2.Label)
	}
	if len(g2.Entries) != 2 {
		t.Fatalf("group 2 has %d entries, want 2", len(g2.Entries))
	}
	if g2.Entries[0].Binding != 0 || g2.Entries[1].Binding != 1 {
		t.Errorf("entries not sorted by binding: %d, %d", g2.Entries[0].Binding, g2.Entries[1].Binding)
	}
	if g2.Entries[0].Visibility != wgpu.ShaderStageFragment {
		t.Errorf("binding 0 visibility = %v", g2.Entries[0].Visibility)
	}
	if g2.Entries[1].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("binding 1 visibility = %v, want vertex|fragment", g2.Entries[1].Visibility)
	}
}

func TestBindingKind(t *testing.T) {
	tex := wgpu.BindGroupLayoutEntry{Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeDepth}}
	samp := wgpu.BindGroupLayoutEntry{Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison}}
	buf := uniformEntry(0, wgpu.ShaderStageVertex)

	if bindingKind(tex) != kindTexture {
		t.Error("depth texture entry not classified as texture")
	}
	if bindingKind(samp) != kindSampler {
		t.Error("comparison sampler entry not classified as sampler")
	}
	if bindingKind(buf) != kindBuffer {
		t.Error("uniform entry not classified as buffer")
	}
}

func TestBufferUsageFor(t *testing.T) {
	if got := bufferUsageFor(wgpu.BufferBindingTypeUniform); got != wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst {
		t.Errorf("uniform usage = %v", got)
	}
	if got := bufferUsageFor(wgpu.BufferBindingTypeReadOnlyStorage); got != wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst {
		t.Errorf("storage usage = %v", got)
	}
}

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		in   int
		want MSAASampleCount
		ok   bool
	}{
		{0, MSAAOff, true},
		{1, MSAAOff, true},
		{4, MSAA4x, true},
		{8, MSAA8x, true},
		{16, MSAA16x, true},
		{2, MSAAOff, false},
		{-4, MSAAOff, false},
	}
	for _, tt := range tests {
		got, ok := ParseMSAA(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMSAA(%d) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
		WithClearColor(common.MustParseHexColor("#ffffff")),
	} {
		opt(r)
	}
	if r.pendingPresentMode == nil || *r.pendingPresentMode != PresentModeUncapped {
		t.Error("present mode not recorded")
	}
	if r.pendingMSAA == nil || *r.pendingMSAA != MSAAOff {
		t.Error("msaa not recorded")
	}
	if !r.forceFallbackAdapter {
		t.Error("fallback adapter not recorded")
	}
	if r.pendingClearColor == nil {
		t.Fatal("clear color not recorded")
	}
	c := *r.pendingClearColor
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if math.Abs(v-1) > 1e-6 {
			t.Fatalf("white clear color = %+v, want all ones", c)
		}
	}
}
