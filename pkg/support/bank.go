package support

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Bank memoises support parts by canonical name.
type Bank struct {
	mu     sync.Mutex
	solids map[string]kernel.Solid
	hits   int
	misses int
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{solids: make(map[string]kernel.Solid)}
}

// Get returns the part stored under name, building and storing it on a
// miss. Build errors are not stored.
func (b *Bank) Get(name string, build func() (kernel.Solid, error)) (kernel.Solid, error) {
	b.mu.Lock()
	if s, ok := b.solids[name]; ok {
		b.hits++
		b.mu.Unlock()
		return s, nil
	}
	b.misses++
	b.mu.Unlock()

	s, err := build()
	if err != nil {
		return kernel.Solid{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.solids[name]; ok {
		return prev, nil
	}
	b.solids[name] = s
	return s, nil
}

// Len returns the number of stored parts.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.solids)
}

// Stats returns the hit and miss counts.
func (b *Bank) Stats() (hits, misses int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits, b.misses
}

// =============================================================================
// Parts
// =============================================================================

// Knee builds the tip and angled knee of l, with the contact point at the
// origin.
func (b *Bank) Knee(l Leg) (kernel.Solid, error) {
	return b.Get("KNEE_"+l.ID(false), func() (kernel.Solid, error) {
		tip, err := kernel.Sphere(TipDia/2, vec.Vec3{})
		if err != nil {
			return kernel.Solid{}, err
		}
		cone, err := taperedRod(MidDia/2, TipDia/2, -TipLen, 0)
		if err != nil {
			return kernel.Solid{}, err
		}
		out := tip.Union(cone)
		if l.Tip > TipLen {
			neck, err := kernel.Cylinder(MidDia/2, -l.Tip, -TipLen, 0)
			if err != nil {
				return kernel.Solid{}, err
			}
			out = out.Union(neck)
		}
		top := vec.Vec3{Z: -l.Tip}
		if l.W > 0 {
			knee, err := kernel.Capsule(top, l.KneeOffset(), MidDia/2)
			if err != nil {
				return kernel.Solid{}, err
			}
			out = out.Union(knee)
		}
		return out, nil
	})
}

// Shin builds a vertical rod of length h hanging from the origin.
func (b *Bank) Shin(h float64) (kernel.Solid, error) {
	return b.Get(fmt.Sprintf("SHIN_%gH", h), func() (kernel.Solid, error) {
		if h <= 0 {
			return kernel.Solid{}, errors.New(errors.ErrCodeGeometry, "leg too short for its knee (shin %.3f)", h)
		}
		return kernel.Cylinder(MidDia/2, -h, 0, 0)
	})
}

// Bar builds one brace from the origin toward the horizontal offset m.
func (b *Bank) Bar(m vec.Vec2) (kernel.Solid, error) {
	return b.Get(fmt.Sprintf("BAR%gA%gM", m.Angle(), m.Mag()), func() (kernel.Solid, error) {
		return kernel.Capsule(vec.Vec3{}, m.ToVec3(-BarH(m.Mag())), BarDia/2)
	})
}

// BracedShin builds a shin of length h with braces repeated down its length
// toward each offset in bars.
func (b *Bank) BracedShin(h float64, bars []vec.Vec2) (kernel.Solid, error) {
	names := []string{fmt.Sprintf("SHIN_%gH", h)}
	seen := map[string]bool{}
	for _, m := range bars {
		n := fmt.Sprintf("BAR%gA%gM", m.Angle(), m.Mag())
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names[1:])

	return b.Get(strings.Join(names, "_"), func() (kernel.Solid, error) {
		out, err := b.Shin(h)
		if err != nil {
			return kernel.Solid{}, err
		}
		for _, m := range bars {
			if m.Mag() == 0 {
				continue
			}
			bar, err := b.Bar(m)
			if err != nil {
				return kernel.Solid{}, err
			}
			step := BarH(m.Mag()) + BarGap
			for z := 0.0; z+BarH(m.Mag())+BarDia/2 <= h; z += step {
				out = out.Union(bar.Translate(vec.Vec3{Z: -z}))
			}
		}
		return out, nil
	})
}

// Foot builds the flared base that meets the build plate at z = 0.
func (b *Bank) Foot() (kernel.Solid, error) {
	return b.Get(fmt.Sprintf("FOOT_%gH_%gx%gD", FootHeight, MidDia, BotDia), func() (kernel.Solid, error) {
		return taperedRod(BotDia/2, MidDia/2, 0, FootHeight)
	})
}

// Leg builds the whole leg l at its position, without a foot.
func (b *Bank) Leg(l Leg) (kernel.Solid, error) {
	part, err := b.Get("ALL_"+l.ID(true), func() (kernel.Solid, error) {
		knee, err := b.Knee(l)
		if err != nil {
			return kernel.Solid{}, err
		}
		shin, err := b.Shin(l.ShinHeight())
		if err != nil {
			return kernel.Solid{}, err
		}
		return knee.Union(shin.Translate(l.KneeOffset())), nil
	})
	if err != nil {
		return kernel.Solid{}, err
	}
	return part.Translate(l.Pos), nil
}

// Feet places a foot under the knee of every leg, on the plane z.
func (b *Bank) Feet(legs []Leg, z float64) (kernel.Solid, error) {
	foot, err := b.Foot()
	if err != nil {
		return kernel.Solid{}, err
	}
	var out kernel.Solid
	for _, l := range legs {
		k := l.KneePos()
		out = out.Union(foot.Translate(vec.Vec3{X: k.X, Y: k.Y, Z: z}))
	}
	return out, nil
}

func taperedRod(r0, r1, z0, z1 float64) (kernel.Solid, error) {
	a, err := kernel.Circle(r0)
	if err != nil {
		return kernel.Solid{}, err
	}
	c, err := kernel.Circle(r1)
	if err != nil {
		return kernel.Solid{}, err
	}
	return kernel.Taper(a, c, z0, z1)
}
