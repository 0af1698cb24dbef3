package bind_group_provider

import (
	"reflect"
	"testing"
)

func TestNewBindGroupProviderLabelAndCounts(t *testing.T) {
	p := NewBindGroupProvider("prism_a", WithVertexCount(24))
	if p.Label() != "prism_a" {
		t.Fatalf("Label() = %q", p.Label())
	}
	if p.VertexCount() != 24 {
		t.Fatalf("VertexCount() = %d, want 24", p.VertexCount())
	}
	if p.Buffer(0) != nil || p.BindGroup() != nil || p.VertexBuffer() != nil {
		t.Fatal("fresh provider should hold no GPU resources")
	}
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("empty", WithVertexCount(3))
	p.Release()
	p.Release()
	if p.VertexCount() != 0 {
		t.Fatal("Release should reset the vertex count")
	}
}

func TestMeshProviderIsVertexOnly(t *testing.T) {
	typ := reflect.TypeOf((*BindGroupProvider)(nil)).Elem()
	for _, name := range []string{"IndexBuffer", "IndexCount", "SetIndexBuffer", "SetIndexCount"} {
		if _, ok := typ.MethodByName(name); ok {
			t.Errorf("BindGroupProvider exposes %s; meshes are drawn non-indexed", name)
		}
	}
}
