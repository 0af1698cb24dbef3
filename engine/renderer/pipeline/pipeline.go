package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/prism-tower/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineType selects which render pass a Pipeline is built for.
type PipelineType int

const (
	// PipelineTypeRender draws into the multisampled color + depth targets of the main pass.
	PipelineTypeRender PipelineType = iota

	// PipelineTypeShadow is depth-only and draws into a single-sampled Depth32Float shadow map.
	PipelineTypeShadow
)

func (t PipelineType) String() string {
	switch t {
	case PipelineTypeRender:
		return "render"
	case PipelineTypeShadow:
		return "shadow"
	default:
		return fmt.Sprintf("PipelineType(%d)", int(t))
	}
}

type pipeline struct {
	pipelineType PipelineType
	pipelineKey  string

	vertexShader, fragmentShader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask
	blendState          *wgpu.BlendState
}

// Pipeline describes the fixed-function state and shader stages of a GPU render pipeline.
// The GPU object itself is created by the renderer and attached with SetRenderPipeline.
type Pipeline interface {
	Type() PipelineType
	PipelineKey() string

	// Shader returns the stage registered for shaderType, or nil.
	//
	// Parameters:
	//   - shaderType: the stage to look up
	//
	// Returns:
	//   - shader.Shader: the stage, or nil when unset
	Shader(shaderType shader.ShaderType) shader.Shader

	// Pipeline returns the created GPU pipeline, nil until the renderer registers it.
	Pipeline() *wgpu.RenderPipeline

	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	DepthBias() int32
	DepthBiasSlopeScale() float32
	BlendEnabled() bool
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask
	BlendState() *wgpu.BlendState

	// Validate checks that the stages required by the pipeline type are present.
	//
	// Returns:
	//   - error: a descriptive error when a required stage is missing
	Validate() error

	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The description stays usable for a later registration.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline description with depth testing and writing on, no culling,
// triangle-list topology, CCW front faces, and standard alpha blending available but disabled.
//
// Parameters:
//   - pipelineKey: a unique key used to cache and look up the pipeline
//   - pipelineType: the pass this pipeline is built for
//   - options: functional options applied after the defaults
//
// Returns:
//   - Pipeline: the configured description
func NewPipeline(pipelineKey string, pipelineType PipelineType, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		pipelineType:      pipelineType,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pipeline) Type() PipelineType {
	return p.pipelineType
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil {
		return fmt.Errorf("%s pipeline %q: vertex shader must be set", p.pipelineType, p.pipelineKey)
	}
	switch p.pipelineType {
	case PipelineTypeRender:
		if p.fragmentShader == nil {
			return fmt.Errorf("render pipeline %q: fragment shader must be set", p.pipelineKey)
		}
	case PipelineTypeShadow:
		if p.fragmentShader != nil {
			return fmt.Errorf("shadow pipeline %q: depth-only pipelines take no fragment shader", p.pipelineKey)
		}
	default:
		return fmt.Errorf("pipeline %q: unknown type %d", p.pipelineKey, int(p.pipelineType))
	}
	return nil
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
