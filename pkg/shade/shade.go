package shade

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ViewDir is the direction from the surface toward the camera in view
// space. The camera looks down +Z, so the viewer sits toward -Z.
var ViewDir = mgl32.Vec3{0, 0, -1}

// Shade returns the color of a surface point for the given mode.
// n must be unit length and view should be ViewDir for the standard camera.
// The result is clamped to [0, 1] per channel.
func Shade(mode Mode, n, view mgl32.Vec3, time float32) mgl32.Vec3 {
	var c mgl32.Vec3
	switch mode {
	case Star:
		c = shadeStar(n, view, time)
	case Rock:
		c = shadeRock(n, view, time)
	case Gas:
		c = shadeGas(n, view, time)
	case Earth:
		c = shadeEarth(n, view, time)
	case Moon:
		c = shadeMoon(n, view, time)
	default:
		// Magenta flags an unknown mode without poisoning the buffer.
		c = mgl32.Vec3{1, 0, 1}
	}
	return clamp01(c)
}

var (
	starEdge  = mgl32.Vec3{1.0, 0.4, 0.0}
	starCore  = mgl32.Vec3{1.0, 0.95, 0.6}
	starBoil  = mgl32.Vec3{1.0, 0.8, 0.0}
	starGlow  = mgl32.Vec3{1.0, 0.3, 0.0}
	rockDirt  = mgl32.Vec3{0.2, 0.15, 0.12}
	rockSand  = mgl32.Vec3{0.6, 0.45, 0.3}
	rockVein  = mgl32.Vec3{0.55, 0.55, 0.6}
	rockLava  = mgl32.Vec3{1.0, 0.3, 0.05}
	rockRim   = mgl32.Vec3{0.2, 0.4, 1.0}
	gasLight  = mgl32.Vec3{0.9, 0.8, 0.6}
	gasDark   = mgl32.Vec3{0.8, 0.6, 0.4}
	gasSouth  = mgl32.Vec3{0.7, 0.5, 0.3}
	gasStorm  = mgl32.Vec3{1.0, 0.9, 0.7}
	gasPole   = mgl32.Vec3{0.55, 0.5, 0.48}
	gasRim    = mgl32.Vec3{1.0, 0.9, 0.8}
	oceanDeep = mgl32.Vec3{0.02, 0.08, 0.3}
	oceanLow  = mgl32.Vec3{0.05, 0.3, 0.55}
	shoreSand = mgl32.Vec3{0.76, 0.7, 0.5}
	landGreen = mgl32.Vec3{0.15, 0.42, 0.12}
	landDry   = mgl32.Vec3{0.72, 0.6, 0.36}
	iceCap    = mgl32.Vec3{0.92, 0.95, 1.0}
	cloudTint = mgl32.Vec3{0.97, 0.97, 0.97}
	earthRim  = mgl32.Vec3{0.35, 0.6, 1.0}
	moonDark  = mgl32.Vec3{0.32, 0.32, 0.34}
	moonPale  = mgl32.Vec3{0.62, 0.61, 0.6}
	moonRim   = mgl32.Vec3{0.6, 0.65, 0.75}

	// Light directions in view space. Negative Z faces the camera.
	rockLight  = mgl32.Vec3{1.0, 1.0, -0.3}.Normalize()
	earthLight = mgl32.Vec3{0.8, 0.5, -0.6}.Normalize()
	moonSun    = mgl32.Vec3{0.6, 0.5, -0.8}.Normalize()

	stormCenter = mgl32.Vec3{0.3, -0.1, -0.95}.Normalize()
)

func shadeStar(n, view mgl32.Vec3, time float32) mgl32.Vec3 {
	lat := n.Y()*0.5 + 0.5
	c := Mix(starEdge, starCore, lat)

	turb := sin(n.X()*30+time*2) * sin(n.Y()*40-time*1.5)
	turb = turb*0.5 + 0.5
	c = Mix(c, starBoil, turb*0.5)

	spots := sin(n.X()*5 + sin(n.Y()*7)*2)
	spots = Smoothstep(0.5, 0.8, spots)
	c = c.Mul(1 - spots*0.4)

	return c.Add(starGlow.Mul(rim(n, view, 3) * 1.5))
}

func shadeRock(n, view mgl32.Vec3, _ float32) mgl32.Vec3 {
	relief := sin(n.X()*4+sin(n.Y()*4)*0.5+1.7*n.Z())*0.5 + 0.5
	c := Mix(rockDirt, rockSand, relief)

	// Thin bright veins where the field crosses zero.
	vein := sin(n.X()*11 + n.Y()*7 - n.Z()*9 + sin(n.Z()*13)*0.8)
	veinMask := 1 - Smoothstep(0, 0.08, math32.Abs(vein))
	c = Mix(c, rockVein, veinMask*0.6)

	detail := sin(n.X()*30) * sin(n.Y()*30) * sin(n.Z()*30)
	detail = detail*0.5 + 0.5
	// Hard threshold: lava pockets have a crisp edge.
	if detail > 0.95 {
		c = Mix(c, rockLava, 0.85)
	}

	lit := c.Mul(0.2 + diffuse(n, rockLight)*0.8)
	return lit.Add(rockRim.Mul(rim(n, view, 2) * 0.3))
}

func shadeGas(n, view mgl32.Vec3, time float32) mgl32.Vec3 {
	lat := n.Y()*0.5 + 0.5
	stripes := sin(lat*50+sin(n.X()*4+time*0.5)*2)*0.5 + 0.5
	c := Mix(gasLight, gasDark, stripes)
	c = Mix(c, gasSouth, Smoothstep(0.3, 0.7, lat))

	flow := sin(n.X()*10+time*2)*0.5 + sin(n.Z()*20-time*1.5)*0.5
	c = c.Add(mgl32.Vec3{flow, flow, flow}.Mul(0.05))

	storm := Smoothstep(0.98, 1.0, n.Dot(stormCenter))
	c = Mix(c, gasStorm, storm)

	polar := Smoothstep(0.75, 0.95, math32.Abs(n.Y()))
	c = Mix(c, gasPole, polar*0.7)

	return c.Add(gasRim.Mul(rim(n, view, 2) * 0.4))
}

func shadeEarth(n, view mgl32.Vec3, time float32) mgl32.Vec3 {
	lat := math32.Abs(n.Y())

	continents := sin(n.X()*3+sin(n.Z()*2.5)*1.2)*sin(n.Y()*2.7-n.Z()*1.3+1.1) +
		sin(n.Z()*5.1+n.X()*2.3)*0.35
	land := Smoothstep(0.05, 0.2, continents)
	shore := Smoothstep(-0.02, 0.05, continents)

	c := Mix(oceanDeep, oceanLow, Smoothstep(-0.4, 0.05, continents))
	c = Mix(c, shoreSand, shore)

	// Deserts hug the equator and break up with longitude.
	dry := (1 - Smoothstep(0.15, 0.4, lat)) *
		Smoothstep(0.35, 0.65, sin(n.X()*6+n.Z()*4)*0.5+0.5)
	ground := Mix(landGreen, landDry, dry)
	c = Mix(c, ground, land)

	ice := Smoothstep(0.78, 0.86, lat+sin(n.X()*9+n.Z()*7)*0.03)
	c = Mix(c, iceCap, ice)

	diff := diffuse(n, earthLight)
	lit := c.Mul(0.08 + diff*0.92)

	cloud := sin(n.X()*8+time*0.3+sin(n.Y()*6)*1.5) * sin(n.Z()*7-time*0.2+n.Y()*3)
	cloudMask := Smoothstep(0.35, 0.75, cloud*0.5+0.5)
	lit = Mix(lit, cloudTint.Mul(0.15+diff*0.85), cloudMask*0.8)

	return lit.Add(earthRim.Mul(rim(n, view, 3) * 0.35))
}

func shadeMoon(n, view mgl32.Vec3, _ float32) mgl32.Vec3 {
	rough := sin(n.X()*9+sin(n.Z()*5))*sin(n.Y()*8+n.X()*3)*0.5 + 0.5
	c := Mix(moonDark, moonPale, rough)

	craters := sin(n.X()*18+sin(n.Y()*11)*1.7) * sin(n.Z()*16+sin(n.X()*13)*1.3)
	craterMask := Smoothstep(0.6, 0.9, craters)
	c = c.Mul(1 - craterMask*0.45)

	lit := c.Mul(0.12 + diffuse(n, moonSun)*0.88)
	return lit.Add(moonRim.Mul(rim(n, view, 4) * 0.15))
}
