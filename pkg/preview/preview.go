// Package preview renders shaded thumbnails of keycap solids.
//
// Rendering ray-marches the signed distance field directly, so no mesh is
// needed. Images are rendered at a multiple of the target size and scaled
// down with a Catmull-Rom filter for smooth edges. The background is
// transparent.
package preview

import (
	"context"
	"image"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Defaults for Options.
const (
	DefaultSize        = 192
	DefaultSupersample = 2
	DefaultYaw         = 30.0
	DefaultPitch       = 35.0
)

// DefaultColor is the keycap body colour.
var DefaultColor = color.NRGBA{R: 0xe8, G: 0xe4, B: 0xda, A: 0xff}

// Options configures Render.
type Options struct {
	Size        int     // output edge length in pixels
	Supersample int     // render scale before downsampling
	Yaw         float64 // camera azimuth about Z, degrees from the front
	Pitch       float64 // camera elevation, degrees
	Color       color.NRGBA
}

// DefaultOptions returns a three-quarter view from the front right.
func DefaultOptions() Options {
	return Options{
		Size:        DefaultSize,
		Supersample: DefaultSupersample,
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Color:       DefaultColor,
	}
}

func (o *Options) setDefaults() {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Supersample <= 0 {
		o.Supersample = DefaultSupersample
	}
	if o.Color.A == 0 {
		o.Color = DefaultColor
	}
}

// camera is an orthographic camera framing a bounding sphere.
type camera struct {
	center  vec.Vec3
	radius  float64
	forward vec.Vec3
	right   vec.Vec3
	up      vec.Vec3
}

func newCamera(b kernel.Bounds, yaw, pitch float64) camera {
	y, p := vec.Radians(yaw), vec.Radians(pitch)
	eye := vec.Vec3{
		X: math.Cos(p) * math.Sin(y),
		Y: -math.Cos(p) * math.Cos(y),
		Z: math.Sin(p),
	}
	forward := eye.Scale(-1)
	right := forward.Cross(vec.Vec3{Z: 1}).Normalize()
	return camera{
		center:  b.Center(),
		radius:  math.Max(b.Size().Mag()/2, 1e-3),
		forward: forward,
		right:   right,
		up:      right.Cross(forward),
	}
}

// ray returns the ray origin for normalised screen coordinates u, v in
// [-1, 1]. Origins sit outside the bounding sphere.
func (c camera) ray(u, v float64) vec.Vec3 {
	return c.center.
		Add(c.right.Scale(u * c.radius)).
		Add(c.up.Scale(v * c.radius)).
		Sub(c.forward.Scale(2 * c.radius))
}

// light is a fixed key light above the camera's right shoulder.
type light struct {
	dir  vec.Vec3
	half vec.Vec3
}

func newLight(c camera) light {
	dir := c.forward.Scale(-1).Add(c.right.Scale(0.4)).Add(c.up.Scale(0.6)).Normalize()
	return light{dir: dir, half: dir.Sub(c.forward).Normalize()}
}

func (l light) shade(n vec.Vec3) float64 {
	const ambient, diffuse, specular, power = 0.35, 0.6, 0.25, 24.0
	ndl := math.Max(0, n.Dot(l.dir))
	ndh := math.Max(0, n.Dot(l.half))
	return ambient + diffuse*ndl + specular*math.Pow(ndh, power)
}

// Render draws s into a Size×Size image.
func Render(ctx context.Context, s kernel.Solid, opts Options) (*image.RGBA, error) {
	if s.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot render an empty solid")
	}
	opts.setDefaults()

	cam := newCamera(s.Bounds(), opts.Yaw, opts.Pitch)
	lit := newLight(cam)
	n := opts.Size * opts.Supersample
	hi := image.NewRGBA(image.Rect(0, 0, n, n))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < n; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			renderRow(hi, y, n, s, cam, lit, opts.Color)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Supersample == 1 {
		return hi, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Src, nil)
	return out, nil
}

// renderRow fills row y of img. Pixels that miss stay transparent.
func renderRow(img *image.RGBA, y, n int, s kernel.Solid, cam camera, lit light, base color.NRGBA) {
	maxDist := 4 * cam.radius
	v := 1 - (2*float64(y)+1)/float64(n)
	for x := 0; x < n; x++ {
		u := (2*float64(x)+1)/float64(n) - 1
		p, ok := kernel.Raycast(s, cam.ray(u, v), cam.forward, maxDist)
		if !ok {
			continue
		}
		k := lit.shade(kernel.Normal(s, p))
		img.SetRGBA(x, y, color.RGBA{
			R: channel(base.R, k),
			G: channel(base.G, k),
			B: channel(base.B, k),
			A: 0xff,
		})
	}
}

func channel(c uint8, k float64) uint8 {
	v := float64(c) * k
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
