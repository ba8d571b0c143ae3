package shade

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mix linearly interpolates from a to b. t is clamped to [0, 1].
func Mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// Smoothstep is the cubic Hermite threshold between edge0 and edge1.
// It returns 0 below edge0, 1 above edge1 and eases in between.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// rim is the Fresnel-like edge term (1 - max(0, n·v))^power.
func rim(n, view mgl32.Vec3, power float32) float32 {
	return math32.Pow(1-math32.Max(n.Dot(view), 0), power)
}

// diffuse is the Lambert term against a unit light direction.
func diffuse(n, light mgl32.Vec3) float32 {
	return math32.Max(n.Dot(light), 0)
}

// sin is shorthand for the float32 sine used throughout the noise fields.
func sin(x float32) float32 {
	return math32.Sin(x)
}

// clamp01 clamps every channel to [0, 1]; NaN becomes 0.
func clamp01(c mgl32.Vec3) mgl32.Vec3 {
	for i, v := range c {
		switch {
		case v != v: // NaN
			c[i] = 0
		case v < 0:
			c[i] = 0
		case v > 1:
			c[i] = 1
		}
	}
	return c
}
