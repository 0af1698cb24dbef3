package scene

import (
	_ "embed"

	"github.com/Carmen-Shannon/prism-tower/engine/camera"
	"github.com/Carmen-Shannon/prism-tower/engine/game_object"
	"github.com/Carmen-Shannon/prism-tower/engine/light"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/lit.wgsl
var litSource string

//go:embed assets/line.wgsl
var lineSource string

//go:embed assets/shadow.wgsl
var shadowSource string

// Pipeline keys registered by every scene.
const (
	PipelineLit    = "lit"
	PipelineLine   = "line"
	PipelineShadow = "shadow"
)

var (
	cameraUniformSize = uint64((&camera.GPUCameraUniform{}).Size())
	objectUniformSize = uint64((&game_object.GPUObjectUniform{}).Size())
	shadowUniformSize = uint64((&light.GPUShadowData{}).Size())
)

const stageBoth = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

func uniformLayout(label string, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: visibility,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: size},
		}},
	}
}

// cameraLayout is @group(0) of the lit and line pipelines.
func cameraLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("camera", stageBoth, cameraUniformSize)
}

// objectLayout is @group(1) of every pipeline, so one object bind group serves all passes.
func objectLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("object", stageBoth, objectUniformSize)
}

// shadowDataLayout is @group(0) of the shadow pipeline.
func shadowDataLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("shadow_data", wgpu.ShaderStageVertex, shadowUniformSize)
}

// lightingLayout is @group(2) of the lit pipeline: light block, shadow uniform, shadow map and comparison sampler.
func lightingLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "lighting",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: light.LightBlockSize},
			},
			{
				Binding:    1,
				Visibility: stageBoth,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: shadowUniformSize},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
		},
	}
}

func vertexAttribute(location uint32, offset uint64) wgpu.VertexAttribute {
	return wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: offset, ShaderLocation: location}
}

// meshLayout reads position (and optionally normal) from the interleaved GPUVertex buffer.
func meshLayout(withNormal bool) wgpu.VertexBufferLayout {
	attrs := []wgpu.VertexAttribute{vertexAttribute(0, 0)}
	if withNormal {
		attrs = append(attrs, vertexAttribute(1, 12))
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// litPipeline draws the prism halves. The small positive depth bias keeps coincident wire edges on top.
func litPipeline() pipeline.Pipeline {
	groups := []shader.ShaderBuilderOption{
		shader.WithBindGroupLayout(0, cameraLayout()),
		shader.WithBindGroupLayout(1, objectLayout()),
		shader.WithBindGroupLayout(2, lightingLayout()),
	}
	vs := shader.NewShader("lit_vs", shader.ShaderTypeVertex, litSource,
		append(groups, shader.WithVertexLayout(0, meshLayout(true)))...)
	fs := shader.NewShader("lit_fs", shader.ShaderTypeFragment, litSource, groups...)
	return pipeline.NewPipeline(PipelineLit, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithDepthBias(1, 1.0),
	)
}

func linePipeline() pipeline.Pipeline {
	groups := []shader.ShaderBuilderOption{
		shader.WithBindGroupLayout(0, cameraLayout()),
		shader.WithBindGroupLayout(1, objectLayout()),
	}
	vs := shader.NewShader("line_vs", shader.ShaderTypeVertex, lineSource,
		append(groups, shader.WithVertexLayout(0, meshLayout(false)))...)
	fs := shader.NewShader("line_fs", shader.ShaderTypeFragment, lineSource, groups...)
	return pipeline.NewPipeline(PipelineLine, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
	)
}

func shadowPipeline() pipeline.Pipeline {
	vs := shader.NewShader("shadow_vs", shader.ShaderTypeVertex, shadowSource,
		shader.WithEntryPoint("vs_shadow"),
		shader.WithBindGroupLayout(0, shadowDataLayout()),
		shader.WithBindGroupLayout(1, objectLayout()),
		shader.WithVertexLayout(0, meshLayout(false)),
	)
	return pipeline.NewPipeline(PipelineShadow, pipeline.PipelineTypeShadow,
		pipeline.WithVertexShader(vs),
		pipeline.WithDepthBias(2, 1.5),
		pipeline.WithCullMode(wgpu.CullModeFront),
	)
}

// pipelineFor maps a model topology to the main-pass pipeline that draws it.
func pipelineFor(t model.Topology) string {
	if t == model.TopologyLines {
		return PipelineLine
	}
	return PipelineLit
}
