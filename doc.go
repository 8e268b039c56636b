// Package arplane turns tracked AR plane boundaries into renderable meshes.
//
// # Overview
//
// An AR tracking subsystem reports, for every detected planar surface, an
// ordered boundary polygon and a center pose. arplane converts that polygon
// into a two-ring triangle mesh whose outer ring is fully transparent and whose
// inner ring is opaque, so a renderer interpolating per-vertex color draws the
// plane with a soft, feathered edge.
//
// # Quick Start
//
//	import "github.com/gogpu/arplane"
//
//	boundary := []arplane.Vec3{
//	    arplane.V3(-1, 0, -1), arplane.V3(1, 0, -1),
//	    arplane.V3(1, 0, 1), arplane.V3(-1, 0, 1),
//	}
//	mesh := arplane.Triangulate(boundary, arplane.V3(0, 0, 0))
//	// mesh.Vertices: 8 (outer ring, then inner ring)
//	// mesh.Indices:  30 (2 cap + 8 feather band triangles)
//
// # Feathering
//
// Each inner vertex is the outer vertex pulled toward the plane center by
// [FeatherLength] meters, but never by more than [FeatherScale] of its
// distance to the center:
//
//	s = 1 - min(FeatherLength/|v-c|, FeatherScale)
//	inner = c + s*(v-c)
//
// A boundary vertex that coincides with the center keeps scale 1.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Vec3, RGBA, Quat, Pose, Boundary, Mesh, Triangulate, FanTriangulate
//   - plane: per-plane visualizer state machine, palette, generator
//   - scenario: recorded or synthetic tracking data for replay
//   - render: GPU upload of plane meshes through gogpu/wgpu
//
// # Coordinate System
//
// World space follows the tracking source: Y is up, and a horizontal plane's
// normal is its center pose rotation applied to +Y.
//
// # Concurrency
//
// All operations are synchronous and allocation-light. Values are not safe
// for concurrent mutation; each tracked plane owns its own buffers.
package arplane

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
