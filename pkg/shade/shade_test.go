package shade

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestMix(t *testing.T) {
	a := mgl32.Vec3{0.1, 0.2, 0.3}
	b := mgl32.Vec3{0.9, 0.4, 0.0}

	tests := []struct {
		name string
		t    float32
		want mgl32.Vec3
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"midpoint", 0.5, mgl32.Vec3{0.5, 0.3, 0.15}},
		{"below range clamps", -3, a},
		{"above range clamps", 7, b},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Mix(a, b, tc.t)
			for i := range got {
				if !approx(got[i], tc.want[i]) {
					t.Fatalf("Mix(a, b, %v) = %v, want %v", tc.t, got, tc.want)
				}
			}
		})
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"below edge0", -1, 0},
		{"at edge0", 0.2, 0},
		{"midpoint", 0.5, 0.5},
		{"at edge1", 0.8, 1},
		{"above edge1", 5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Smoothstep(0.2, 0.8, tc.x); !approx(got, tc.want) {
				t.Errorf("Smoothstep(0.2, 0.8, %v) = %v, want %v", tc.x, got, tc.want)
			}
		})
	}

	t.Run("monotonic", func(t *testing.T) {
		prev := Smoothstep(0, 1, -0.5)
		for x := float32(-0.5); x <= 1.5; x += 0.01 {
			got := Smoothstep(0, 1, x)
			if got < prev {
				t.Fatalf("Smoothstep decreased at x=%v: %v < %v", x, got, prev)
			}
			prev = got
		}
	})
}

// sphereNormals samples unit normals over the whole sphere.
func sphereNormals(steps int) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for i := 0; i <= steps; i++ {
		theta := math.Pi * float64(i) / float64(steps)
		for j := 0; j < steps*2; j++ {
			phi := math.Pi * float64(j) / float64(steps)
			out = append(out, mgl32.Vec3{
				float32(math.Sin(theta) * math.Cos(phi)),
				float32(math.Cos(theta)),
				float32(math.Sin(theta) * math.Sin(phi)),
			})
		}
	}
	return out
}

func TestShadeRange(t *testing.T) {
	normals := sphereNormals(24)
	times := []float32{0, 1.3, 57.9}

	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			for _, n := range normals {
				for _, tm := range times {
					c := Shade(mode, n, ViewDir, tm)
					for i, v := range c {
						if v != v || v < 0 || v > 1 {
							t.Fatalf("Shade(%v, %v, t=%v) channel %d = %v, out of [0,1]", mode, n, tm, i, v)
						}
					}
				}
			}
		})
	}
}

func TestShadeDeterministic(t *testing.T) {
	n := mgl32.Vec3{0.3, -0.4, -0.8}.Normalize()
	for _, mode := range Modes {
		a := Shade(mode, n, ViewDir, 2.5)
		b := Shade(mode, n, ViewDir, 2.5)
		if a != b {
			t.Errorf("%v: Shade not deterministic: %v vs %v", mode, a, b)
		}
	}
}

func TestShadeNonFiniteNormal(t *testing.T) {
	nan := float32(math.NaN())
	n := mgl32.Vec3{nan, nan, nan}
	for _, mode := range Modes {
		c := Shade(mode, n, ViewDir, 0)
		for i, v := range c {
			if v != v {
				t.Errorf("%v: channel %d is NaN", mode, i)
			}
		}
	}
}

func TestShadeUnknownMode(t *testing.T) {
	c := Shade(Mode(42), ViewDir, ViewDir, 0)
	if c != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("unknown mode color = %v, want magenta", c)
	}
}

func TestRim(t *testing.T) {
	if got := rim(ViewDir, ViewDir, 3); !approx(got, 0) {
		t.Errorf("rim facing camera = %v, want 0", got)
	}
	if got := rim(mgl32.Vec3{1, 0, 0}, ViewDir, 3); !approx(got, 1) {
		t.Errorf("rim at silhouette = %v, want 1", got)
	}
	if got := rim(mgl32.Vec3{0, 0, 1}, ViewDir, 2); !approx(got, 1) {
		t.Errorf("rim facing away = %v, want 1", got)
	}
}

func TestRockLavaThreshold(t *testing.T) {
	// Lava pockets on the camera-facing side read as red.
	var found bool
	for _, n := range sphereNormals(200) {
		detail := sin(n.X()*30)*sin(n.Y()*30)*sin(n.Z()*30)*0.5 + 0.5
		if detail <= 0.95 || n.Z() > -0.7 {
			continue
		}
		found = true
		c := shadeRock(n, ViewDir, 0)
		if c[0] <= c[2] {
			t.Fatalf("lava pixel %v should be red dominant", c)
		}
		break
	}
	if !found {
		t.Skip("no lava sample on this grid")
	}
}

func TestMoonFacingCenterVisible(t *testing.T) {
	c := Shade(Moon, mgl32.Vec3{0, 0, -1}, ViewDir, 0)
	lum := (c[0] + c[1] + c[2]) / 3
	if lum < 0.05 {
		t.Errorf("moon center luminance %v too dark", lum)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"star", Star, false},
		{"Rock", Rock, false},
		{" GAS ", Gas, false},
		{"4", Earth, false},
		{"5", Moon, false},
		{"1", Star, false},
		{"0", 0, true},
		{"pluto", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestModeText(t *testing.T) {
	for _, m := range Modes {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != m {
			t.Errorf("text round trip %v -> %q -> %v", m, text, back)
		}
	}
	if _, err := Mode(9).MarshalText(); err == nil {
		t.Error("MarshalText of invalid mode should fail")
	}
}

func TestModeNext(t *testing.T) {
	if Moon.Next() != Star {
		t.Errorf("Moon.Next() = %v, want star", Moon.Next())
	}
	if Star.Next() != Rock {
		t.Errorf("Star.Next() = %v, want rock", Star.Next())
	}
}

func BenchmarkShade(b *testing.B) {
	n := mgl32.Vec3{0.2, 0.5, -0.8}.Normalize()
	for _, mode := range Modes {
		b.Run(mode.String(), func(b *testing.B) {
			for b.Loop() {
				Shade(mode, n, ViewDir, 1.5)
			}
		})
	}
}
