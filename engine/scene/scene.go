package scene

import (
	"errors"
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism-tower/common"
	"github.com/Carmen-Shannon/prism-tower/engine/camera"
	"github.com/Carmen-Shannon/prism-tower/engine/game_object"
	"github.com/Carmen-Shannon/prism-tower/engine/light"
	"github.com/Carmen-Shannon/prism-tower/engine/model"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer"
	"github.com/Carmen-Shannon/prism-tower/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoObjects is returned by DrawCalls when nothing has been added to the scene.
var ErrNoObjects = errors.New("scene: no objects to draw")

// drawItem is one object bound to the pipeline that draws its model.
type drawItem struct {
	obj         game_object.GameObject
	mesh        bind_group_provider.BindGroupProvider
	bgp         bind_group_provider.BindGroupProvider
	pipelineKey string
	shadow      bool
}

// Scene owns the GPU resources of a set of objects and lights and records their draw calls.
type Scene interface {
	Name() string

	// Add uploads every model under obj that has no mesh yet and registers a draw item for each
	// object with a model. Shared models are uploaded once.
	//
	// Parameters:
	//   - obj: the root of the object tree to add
	//
	// Returns:
	//   - error: any GPU allocation error
	Add(obj game_object.GameObject) error

	// AddLight adds a directional light. At most light.MaxGPULights are uploaded.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	Lights() []light.Light
	Objects() []game_object.GameObject
	Count() int
	Camera() camera.Camera

	// SetAmbient sets the linear ambient term added to every lit fragment.
	//
	// Parameters:
	//   - r, g, b: the ambient color
	SetAmbient(r, g, b float32)

	// PrepareFrame refreshes the camera, light and per-object uniforms on the GPU.
	PrepareFrame()

	// PrepareShadows renders the shadow depth pass for the first enabled shadow-casting light.
	//
	// Returns:
	//   - error: any error from the shadow pass
	PrepareShadows() error

	// DrawCalls records the main pass draws. Must be called between BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: ErrNoObjects or any draw error
	DrawCalls() error

	// Resize reconfigures the surface and the camera viewport.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	Release()
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera
	r    renderer.Renderer

	items    []drawItem
	objCount uint64
	meshes   map[model.Model]bind_group_provider.BindGroupProvider

	lights  []light.Light
	ambient [3]float32

	// Shadow mapping state.
	shadowDepthTexture     *wgpu.Texture
	shadowDepthTextureView *wgpu.TextureView
	shadowComparisonSamp   *wgpu.Sampler
	shadowDataBGP          bind_group_provider.BindGroupProvider // shadow pass @group(0)
	lightingBGP            bind_group_provider.BindGroupProvider // lit pass @group(2)
	shadowHalfExtent       float32
	shadowNear             float32
	shadowFar              float32
	shadowBias             float32
	shadowNormalBiasScale  float32
	shadowMapResolution    int

	// Workers persist across frames for the per-object uniform prep.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
	taskID         int
	writePool      []bind_group_provider.BufferWrite
}

var _ Scene = &scene{}

// NewScene creates a Scene drawing through r from the viewpoint of cam. It registers the lit, line and
// shadow pipelines and allocates the camera, lighting and shadow resources.
// Panics if cam or r is nil.
//
// Parameters:
//   - name: the scene name
//   - cam: the camera
//   - r: the renderer
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
//   - error: any pipeline or GPU allocation error
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:                    &sync.RWMutex{},
		name:                  name,
		cam:                   cam,
		r:                     r,
		meshes:                make(map[model.Model]bind_group_provider.BindGroupProvider),
		ambient:               [3]float32{0.5, 0.5, 0.5},
		shadowHalfExtent:      light.DefaultShadowHalfExtent,
		shadowNear:            light.DefaultShadowNear,
		shadowFar:             light.DefaultShadowFar,
		shadowBias:            light.DefaultShadowBias,
		shadowNormalBiasScale: light.DefaultShadowNormalBiasScale,
		shadowMapResolution:   light.ShadowMapResolution,
		computeWorkers:        max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(s)
	}
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	if err := r.RegisterPipelines(litPipeline(), linePipeline(), shadowPipeline()); err != nil {
		return nil, fmt.Errorf("scene %s: failed to register pipelines: %w", name, err)
	}
	if err := r.InitBindGroup(cam.BindGroupProvider(), cameraLayout(), nil, nil); err != nil {
		return nil, fmt.Errorf("scene %s: failed to init camera bind group: %w", name, err)
	}
	if err := s.initShadowResources(); err != nil {
		return nil, err
	}

	log.Printf("[Scene] %s ready (%d compute workers, %dpx shadow map)", name, s.computeWorkers, s.shadowMapResolution)
	return s, nil
}

func (s *scene) initShadowResources() error {
	view, tex, err := s.r.CreateShadowDepthTexture(s.shadowMapResolution, s.shadowMapResolution)
	if err != nil {
		return fmt.Errorf("scene %s: failed to create shadow map: %w", s.name, err)
	}
	s.shadowDepthTextureView, s.shadowDepthTexture = view, tex

	samp, err := s.r.CreateComparisonSampler()
	if err != nil {
		return fmt.Errorf("scene %s: failed to create comparison sampler: %w", s.name, err)
	}
	s.shadowComparisonSamp = samp

	s.shadowDataBGP = bind_group_provider.NewBindGroupProvider(s.name + "_shadow_data")
	if err := s.r.InitBindGroup(s.shadowDataBGP, shadowDataLayout(), nil, nil); err != nil {
		return fmt.Errorf("scene %s: failed to init shadow bind group: %w", s.name, err)
	}

	s.lightingBGP = bind_group_provider.NewBindGroupProvider(s.name+"_lighting",
		bind_group_provider.WithTextureView(2, view),
		bind_group_provider.WithSampler(3, samp),
	)
	if err := s.r.InitBindGroup(s.lightingBGP, lightingLayout(), nil, nil); err != nil {
		return fmt.Errorf("scene %s: failed to init lighting bind group: %w", s.name, err)
	}
	return nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Add(obj game_object.GameObject) error {
	if obj == nil {
		return errors.New("scene: cannot add a nil object")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	obj.Walk(func(o game_object.GameObject) {
		if err != nil || o.Model() == nil {
			return
		}
		var mesh bind_group_provider.BindGroupProvider
		if mesh, err = s.meshFor(o.Model()); err != nil {
			return
		}

		bgp := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s_object_%d", s.name, s.objCount))
		s.objCount++
		if err = s.r.InitBindGroup(bgp, objectLayout(), nil, nil); err != nil {
			err = fmt.Errorf("scene %s: failed to init object %d: %w", s.name, o.ID(), err)
			return
		}
		o.SetBindGroupProvider(bgp)
		s.items = append(s.items, drawItem{
			obj:         o,
			mesh:        mesh,
			bgp:         bgp,
			pipelineKey: pipelineFor(o.Model().Topology()),
			shadow:      o.CastsShadows() && o.Model().Topology() == model.TopologyTriangles,
		})
	})
	return err
}

// meshFor returns the uploaded vertex buffer of m, uploading it on first use.
func (s *scene) meshFor(m model.Model) (bind_group_provider.BindGroupProvider, error) {
	if p := m.MeshProvider(); p != nil {
		s.meshes[m] = p
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider("model_" + m.Name())
	if err := s.r.InitMeshBuffers(p, m.VertexData(), m.VertexCount()); err != nil {
		return nil, fmt.Errorf("scene %s: failed to upload model %s: %w", s.name, m.Name(), err)
	}
	m.SetMeshProvider(p)
	s.meshes[m] = p
	return p, nil
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lights) >= light.MaxGPULights {
		log.Printf("[Scene] %s: light limit %d reached, extra lights are not uploaded", s.name, light.MaxGPULights)
	}
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]light.Light(nil), s.lights...)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.items))
	for i, it := range s.items {
		out[i] = it.obj
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *scene) SetAmbient(r, g, b float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = [3]float32{r, g, b}
}

func (s *scene) PrepareFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.Update()
	cu := s.cam.Uniform()

	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: s.cam.BindGroupProvider(), Binding: 0, Data: cu.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightingBGP, Binding: 0, Data: light.MarshalLightBlock(s.lights, s.ambient)},
	)

	// Each chunk marshals its own slice of object uniforms; the results are written in one batch.
	uniforms := make([][]byte, len(s.items))
	var wg sync.WaitGroup
	for _, c := range chunkRanges(len(s.items), s.computeWorkers) {
		wg.Add(1)
		lo, hi := c[0], c[1]
		id := s.taskID
		s.taskID++
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					u := game_object.Uniform(s.items[i].obj)
					uniforms[i] = u.Marshal()
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, it := range s.items {
		writes = append(writes, bind_group_provider.BufferWrite{Provider: it.bgp, Binding: 0, Data: uniforms[i]})
	}
	s.r.WriteBuffers(writes)
	s.writePool = writes
}

// shadowLight returns the first enabled light that casts shadows.
func shadowLight(lights []light.Light) light.Light {
	for _, l := range lights {
		if l.Enabled() && l.CastsShadows() {
			return l
		}
	}
	return nil
}

func (s *scene) PrepareShadows() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sd light.GPUShadowData
	caster := shadowLight(s.lights)
	if caster != nil {
		cx, cy, cz := float32(0), float32(0), float32(0)
		if ctrl := s.cam.Controller(); ctrl != nil {
			cx, cy, cz = ctrl.Target()
		}
		sd.ComputeDirectionalLightVP(caster.Direction(), cx, cy, cz, s.shadowHalfExtent, s.shadowNear, s.shadowFar)
		sd.ComputeNormalBias(s.shadowHalfExtent, s.shadowNormalBiasScale, s.shadowMapResolution)
		sd.Bias = s.shadowBias
	}
	data := sd.Marshal()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.shadowDataBGP, Binding: 0, Data: data},
		{Provider: s.lightingBGP, Binding: 1, Data: data},
	})

	// The depth pass still runs with no caster so the map is cleared to the far plane.
	if err := s.r.BeginShadowFrame(); err != nil {
		return fmt.Errorf("scene %s: failed to begin shadow frame: %w", s.name, err)
	}
	s.r.BeginShadowPass(s.shadowDepthTextureView)
	var drawErr error
	if caster != nil {
		for _, it := range s.items {
			if !it.shadow || !it.obj.Enabled() {
				continue
			}
			if err := s.r.ShadowDrawCall(PipelineShadow, it.mesh, 1, []bind_group_provider.BindGroupProvider{s.shadowDataBGP, it.bgp}); err != nil {
				drawErr = fmt.Errorf("scene %s: shadow draw of object %d failed: %w", s.name, it.obj.ID(), err)
				break
			}
		}
	}
	s.r.EndShadowPass()
	s.r.EndShadowFrame()
	return drawErr
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return ErrNoObjects
	}
	camBGP := s.cam.BindGroupProvider()
	vp := s.cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(vp[:])
	// Solids first so the wire pass depth-tests against them.
	for _, key := range []string{PipelineLit, PipelineLine} {
		for _, it := range s.items {
			if it.pipelineKey != key || !it.obj.Enabled() {
				continue
			}
			if center, radius := worldBounds(it.obj); !frustum.IntersectsSphere(center, radius) {
				continue
			}
			groups := []bind_group_provider.BindGroupProvider{camBGP, it.bgp}
			if key == PipelineLit {
				groups = append(groups, s.lightingBGP)
			}
			if err := s.r.DrawCall(key, it.mesh, 1, groups); err != nil {
				return fmt.Errorf("scene %s: draw of object %d failed: %w", s.name, it.obj.ID(), err)
			}
		}
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.r.Resize(width, height)
	s.cam.SetViewport(float32(width), float32(height))
}

// Release frees every GPU resource owned by the scene. The renderer is released by its owner.
func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		it.bgp.Release()
		it.obj.SetBindGroupProvider(nil)
	}
	s.items = nil
	for m, p := range s.meshes {
		p.Release()
		m.SetMeshProvider(nil)
	}
	clear(s.meshes)

	if s.lightingBGP != nil {
		s.lightingBGP.Release()
	}
	if s.shadowDataBGP != nil {
		s.shadowDataBGP.Release()
	}
	if s.shadowDepthTextureView != nil {
		s.shadowDepthTextureView.Release()
		s.shadowDepthTextureView = nil
	}
	if s.shadowDepthTexture != nil {
		s.shadowDepthTexture.Release()
		s.shadowDepthTexture = nil
	}
	if s.shadowComparisonSamp != nil {
		s.shadowComparisonSamp.Release()
		s.shadowComparisonSamp = nil
	}
	s.cam.BindGroupProvider().Release()
}

// chunkRanges splits [0, n) into at most workers contiguous [lo, hi) ranges of near-equal size.
func chunkRanges(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	workers = min(max(workers, 1), n)
	out := make([][2]int, 0, workers)
	size, rem := n/workers, n%workers
	lo := 0
	for i := range workers {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, [2]int{lo, hi})
		lo = hi
	}
	return out
}

// worldBounds returns the world-space bounding sphere of obj's model: the world translation and the model
// radius scaled by the largest axis scale of the world matrix.
func worldBounds(obj game_object.GameObject) ([3]float32, float32) {
	w := obj.WorldMatrix()
	var scale float64
	for c := 0; c < 3; c++ {
		x, y, z := float64(w[c*4]), float64(w[c*4+1]), float64(w[c*4+2])
		scale = max(scale, math.Sqrt(x*x+y*y+z*z))
	}
	return [3]float32{w[12], w[13], w[14]}, obj.Model().BoundingRadius() * float32(scale)
}
