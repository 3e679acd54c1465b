package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_NormalIncidenceRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(glass)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	// A draw above the reflectance always picks refraction
	scatter, didScatter := glass.Scatter(ray, hit, fixedSampler{value: core.NewVec3(0.99, 0, 0)})
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}
	if !scatter.Scattered.Direction.Equals(core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected straight-through refraction, got %v", scatter.Scattered.Direction)
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
	}
}

func TestDielectric_LowDrawReflects(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(glass)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, _ := glass.Scatter(ray, hit, fixedSampler{value: core.NewVec3(0, 0, 0)})
	if !scatter.Scattered.Direction.Equals(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected reflection, got %v", scatter.Scattered.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(glass)
	hit.FrontFace = false // leaving the glass

	// 60 degrees from the normal: 1.5*sin(60) > 1
	direction := core.NewVec3(math.Sin(math.Pi/3), 0, -math.Cos(math.Pi/3))
	ray := core.NewRay(hit.Point.Subtract(direction), direction)

	scatter, didScatter := glass.Scatter(ray, hit, fixedSampler{value: core.NewVec3(0.999, 0, 0)})
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}
	expected := core.Reflect(direction, hit.Normal)
	if !scatter.Scattered.Direction.Equals(expected, 1e-12) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestDielectric_BothBranchesOccur(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := upHit(glass)
	ray := core.NewRay(core.NewVec3(-1, 0, 1), core.NewVec3(1, 0, -1))
	sampler := core.NewSeededSampler(42)

	reflections, refractions := 0, 0
	for i := 0; i < 2000; i++ {
		scatter, _ := glass.Scatter(ray, hit, sampler)
		if scatter.Scattered.Direction.Z > 0 {
			reflections++
		} else {
			refractions++
		}
	}

	if reflections == 0 || refractions == 0 {
		t.Errorf("Expected both reflection and refraction, got %d and %d", reflections, refractions)
	}
	if reflections > refractions {
		t.Errorf("Expected refraction to dominate at 45 degrees, got %d reflections and %d refractions", reflections, refractions)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"Normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"Grazing", 0.0, 1.0 / 1.5, 1.0},
		{"Matched index", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Reflectance(%f, %f) = %f, expected %f", tt.cosine, tt.ratio, got, tt.expected)
			}
		})
	}
}
