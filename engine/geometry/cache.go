package geometry

import "sync"

type prismKey struct {
	half Half
	dims Dimensions
}

// Cache memoizes generated meshes so each distinct (half, dimensions) pair is built once and shared.
// It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	prisms map[prismKey]*Mesh
	wires  map[Dimensions]*LineMesh
}

// NewCache creates an empty mesh cache.
func NewCache() *Cache {
	return &Cache{
		prisms: make(map[prismKey]*Mesh),
		wires:  make(map[Dimensions]*LineMesh),
	}
}

// Prism returns the cached prism half for (half, dims), building it on first use.
// Errors are not cached.
//
// Parameters:
//   - half: which half to build
//   - dims: the box half extents
//
// Returns:
//   - *Mesh: the shared mesh; callers must not modify it
//   - error: any error from PrismHalf
func (c *Cache) Prism(half Half, dims Dimensions) (*Mesh, error) {
	key := prismKey{half: half, dims: dims}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.prisms[key]; ok {
		return m, nil
	}
	m, err := PrismHalf(half, dims)
	if err != nil {
		return nil, err
	}
	c.prisms[key] = m
	return m, nil
}

// Wireframe returns the cached wireframe cell for dims, building it on first use.
//
// Parameters:
//   - dims: the box half extents
//
// Returns:
//   - *LineMesh: the shared line mesh; callers must not modify it
//   - error: any error from WireframeCell
func (c *Cache) Wireframe(dims Dimensions) (*LineMesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.wires[dims]; ok {
		return l, nil
	}
	l, err := WireframeCell(dims)
	if err != nil {
		return nil, err
	}
	c.wires[dims] = l
	return l, nil
}

// Len returns the number of meshes currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prisms) + len(c.wires)
}
