package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator over random unit vectors
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient table and permutations from the given sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		s := sampler.Get3D()
		p.gradients[i] = core.NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1).Normalize()
	}
	generatePermutation(&p.permX, sampler)
	generatePermutation(&p.permY, sampler)
	generatePermutation(&p.permZ, sampler)
	return p
}

// generatePermutation fills perm with a Fisher-Yates shuffle of 0..n-1
func generatePermutation(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := int(sampler.Get1D() * float64(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns smoothed gradient noise in roughly [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	return trilinearInterp(c, u, v, w)
}

// trilinearInterp blends the corner gradients with Hermite smoothing
func trilinearInterp(c [2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of noise with halving weights
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// turbulenceDepth is the octave count used by Noise textures
const turbulenceDepth = 7

// Noise is a marble-like procedural texture
type Noise struct {
	perlin *Perlin
	Scale  float64
}

// NewNoise creates a noise texture; the sampler seeds the Perlin tables
func NewNoise(scale float64, sampler core.Sampler) *Noise {
	return &Noise{perlin: NewPerlin(sampler), Scale: scale}
}

// Value returns a gray level phase-shifted by turbulence along z
func (n *Noise) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	g := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.perlin.Turbulence(point, turbulenceDepth)))
	return core.NewVec3(g, g, g)
}
