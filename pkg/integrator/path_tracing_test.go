package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// createTwoSphereWorld builds a gray ground sphere with a small mirror ball resting on it
func createTwoSphereWorld(groundAlbedo, mirrorAlbedo core.Vec3) geometry.Shape {
	ground := geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(groundAlbedo))
	mirror := geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, material.NewMetal(mirrorAlbedo, 0))
	return geometry.NewShapeList(ground, mirror)
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	world := createTwoSphereWorld(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.9, 0.9, 0.9))
	integrator := NewPathTracingIntegrator(Config{MaxDepth: 0})
	sampler := core.NewSeededSampler(42)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)),
		core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, 1, 0)),
	}
	for _, ray := range rays {
		if c := integrator.RayColor(ray, world, skyBlue, sampler); c != (core.Vec3{}) {
			t.Errorf("Expected black for depth 0, got %v", c)
		}
	}
}

func TestPathTracing_EmptySceneReturnsBackground(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultConfig())
	sampler := core.NewSeededSampler(42)
	world := geometry.NewShapeList()

	for i := 0; i < 100; i++ {
		ray := core.NewRay(core.Vec3{}, core.RandomUnitVector(sampler))
		if c := integrator.RayColor(ray, world, skyBlue, sampler); c != skyBlue {
			t.Fatalf("Expected background %v, got %v", skyBlue, c)
		}
	}
}

func TestPathTracing_MirrorApexReflectsSky(t *testing.T) {
	mirrorAlbedo := core.NewVec3(0.8, 0.6, 0.2)
	world := createTwoSphereWorld(core.NewVec3(0.5, 0.5, 0.5), mirrorAlbedo)
	sampler := core.NewSeededSampler(1)

	// Straight down onto the top of the mirror ball, reflected straight back up
	ray := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0))

	integrator := NewPathTracingIntegrator(Config{MaxDepth: 2})
	expected := mirrorAlbedo.MultiplyVec(skyBlue)
	if c := integrator.RayColor(ray, world, skyBlue, sampler); !c.Equals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, c)
	}

	// With a single bounce the reflected ray has no budget left
	shallow := NewPathTracingIntegrator(Config{MaxDepth: 1})
	if c := shallow.RayColor(ray, world, skyBlue, sampler); c != (core.Vec3{}) {
		t.Errorf("Expected black when depth runs out, got %v", c)
	}
}

func TestPathTracing_GroundReturnsAttenuatedSky(t *testing.T) {
	groundAlbedo := core.NewVec3(0.5, 0.5, 0.5)
	world := createTwoSphereWorld(groundAlbedo, core.NewVec3(0.9, 0.9, 0.9))
	integrator := NewPathTracingIntegrator(Config{MaxDepth: 50})
	sampler := core.NewSeededSampler(7)

	// Far from the mirror ball every diffuse bounce off the convex ground escapes
	ray := core.NewRay(core.NewVec3(300, 10, 0), core.NewVec3(0, -1, 0))
	expected := groundAlbedo.MultiplyVec(skyBlue)
	for i := 0; i < 100; i++ {
		if c := integrator.RayColor(ray, world, skyBlue, sampler); !c.Equals(expected, 1e-12) {
			t.Fatalf("Expected %v, got %v", expected, c)
		}
	}
}

func TestPathTracing_EmitterTerminatesPath(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := geometry.NewXZRect(-1, 1, -1, 1, 2, material.NewDiffuseLight(emission))
	integrator := NewPathTracingIntegrator(DefaultConfig())

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if c := integrator.RayColor(ray, light, core.Vec3{}, core.NewSeededSampler(1)); c != emission {
		t.Errorf("Expected emission %v, got %v", emission, c)
	}
}

func TestPathTracing_FoldOrder(t *testing.T) {
	// A half-silvered mirror above a light: one attenuating vertex, then the emitter
	emission := core.NewVec3(2, 3, 4)
	light := geometry.NewXZRect(-10, 10, -10, 10, -5, material.NewDiffuseLight(emission))
	tint := geometry.NewXZRect(-10, 10, -10, 10, -1, material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0))
	world := geometry.NewShapeList(light, tint)

	ray := core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0))
	integrator := NewPathTracingIntegrator(Config{MaxDepth: 3})

	expected := core.NewVec3(0.5, 0.5, 0.5).MultiplyVec(emission)
	if c := integrator.RayColor(ray, world, core.Vec3{}, core.NewSeededSampler(1)); !c.Equals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestPathTracing_DeepPathIsIterative(t *testing.T) {
	// Two facing mirrors bounce a ray until the depth budget is spent
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	world := geometry.NewShapeList(
		geometry.NewXZRect(-1, 1, -1, 1, 0, mirror),
		geometry.NewXZRect(-1, 1, -1, 1, 1, mirror),
	)
	integrator := NewPathTracingIntegrator(Config{MaxDepth: 100000})

	c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, 1, 0)), world, skyBlue, core.NewSeededSampler(1))
	if c != (core.Vec3{}) {
		t.Errorf("Expected black after exhausting depth between mirrors, got %v", c)
	}
}

func TestNewPathTracingIntegrator_DefaultsTMin(t *testing.T) {
	integrator := NewPathTracingIntegrator(Config{MaxDepth: 5})
	if math.Abs(integrator.config.TMin-0.001) > 1e-15 {
		t.Errorf("Expected default TMin 0.001, got %f", integrator.config.TMin)
	}
}
