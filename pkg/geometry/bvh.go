package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy. Children are
// either further nodes or primitives; a node built over a single object
// holds that object in both children.
type BVHNode struct {
	Left   Shape
	Right  Shape
	Box    core.AABB
	single bool // Left and Right are the same object
}

// bvhEntry caches the box of a shape for sorting during construction
type bvhEntry struct {
	shape Shape
	box   core.AABB
}

// NewBVH constructs a BVH over shapes for the time interval [time0, time1].
// The split axis of every node is drawn from sampler, so the same seed
// produces the same tree. Shapes without a bounding box are reported to
// logger and treated as unbounded.
func NewBVH(shapes []Shape, time0, time1 float64, sampler core.Sampler, logger core.Logger) *BVHNode {
	if len(shapes) == 0 {
		logger.Printf("BVH requested for an empty shape list\n")
		empty := NewShapeList()
		return &BVHNode{Left: empty, Right: empty}
	}

	// Work on a private copy so the caller's slice order is preserved
	entries := make([]bvhEntry, len(shapes))
	for i, shape := range shapes {
		entries[i] = bvhEntry{shape: shape, box: boxOrInfinite(shape, time0, time1, logger)}
	}

	return buildBVH(entries, time0, time1, sampler, logger)
}

// buildBVH recursively splits entries along a random axis
func buildBVH(entries []bvhEntry, time0, time1 float64, sampler core.Sampler, logger core.Logger) *BVHNode {
	axis := min(int(3*sampler.Get1D()), 2)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Axis(axis) < b.box.Min.Axis(axis)
	}

	node := &BVHNode{}
	var leftBox, rightBox core.AABB

	switch len(entries) {
	case 1:
		node.Left, node.Right = entries[0].shape, entries[0].shape
		node.single = true
		leftBox, rightBox = entries[0].box, entries[0].box
	case 2:
		first, second := entries[0], entries[1]
		if !less(first, second) {
			first, second = second, first
		}
		node.Left, node.Right = first.shape, second.shape
		leftBox, rightBox = first.box, second.box
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
		mid := len(entries) / 2
		left := buildBVH(entries[:mid], time0, time1, sampler, logger)
		right := buildBVH(entries[mid:], time0, time1, sampler, logger)
		node.Left, node.Right = left, right
		leftBox, rightBox = left.Box, right.Box
	}

	node.Box = leftBox.Union(rightBox)
	return node
}

// boxOrInfinite returns the shape's box, or an infinite box when it has none
func boxOrInfinite(shape Shape, time0, time1 float64, logger core.Logger) core.AABB {
	box, ok := shape.BoundingBox(time0, time1)
	if !ok {
		logger.Printf("No bounding box for %T in BVH construction, treating it as unbounded\n", shape)
		return core.InfiniteAABB()
	}
	return box
}

// Hit tests the node box, then the left child, then the right child
// restricted to hits closer than the left one
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return material.HitRecord{}, false
	}
	// Stochastic shapes (media) must be tested once per query
	if n.single {
		return n.Left.Hit(ray, tMin, tMax, sampler)
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box computed at construction
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes    int // Interior nodes
	Shapes   int // Distinct primitives referenced by the tree
	MaxDepth int
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for i, child := range []Shape{n.Left, n.Right} {
		if i == 1 && n.single {
			break
		}
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else if list, ok := child.(*ShapeList); !ok || len(list.Shapes) > 0 {
			stats.Shapes++
		}
	}
}
