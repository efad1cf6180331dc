package support

import (
	"fmt"
	"math"

	"github.com/matzehuels/keyforge/pkg/vec"
)

// Leg dimensions (mm and degrees).
const (
	LegAngle    = 50.0 // knee lean from vertical
	BarAngle    = 22.5 // brace lean from vertical
	BarGap      = 0.5
	TipDia      = 0.35
	MidDia      = 0.80
	BotDia      = 1.50
	BarDia      = 0.40
	TipLen      = 1.0
	FootHeight  = 0.5
	DefaultLift = 5.0
)

// Leg is one support leg. Pos is the contact point at the top of the tip;
// the leg reaches H below it.
type Leg struct {
	H     float64
	W     float64 // horizontal reach of the knee
	Angle float64 // knee heading about Z
	Tip   float64 // tip length, at least TipLen
	Pos   vec.Vec3
}

// NewLeg returns a leg with the tip length floored at TipLen.
func NewLeg(h, w, angle, tip float64, pos vec.Vec3) Leg {
	return Leg{H: h, W: w, Angle: angle, Tip: math.Max(TipLen, tip), Pos: pos}
}

// ID is the canonical key for the leg's shape. Height is included only
// when withHeight is set.
func (l Leg) ID(withHeight bool) string {
	id := fmt.Sprintf("Leg3DP(%gW,%gA,%gT)", l.W, l.Angle, l.Tip)
	if withHeight {
		id += fmt.Sprintf("(%gH)", l.H)
	}
	return id
}

// AngledLen is the length of the knee segment.
func (l Leg) AngledLen() float64 {
	return l.W / math.Sin(vec.Radians(LegAngle))
}

// AngledH is the height dropped by the knee segment.
func (l Leg) AngledH() float64 {
	return l.AngledLen() * math.Cos(vec.Radians(LegAngle))
}

// KneeOffset is the offset from Pos to the top of the shin.
func (l Leg) KneeOffset() vec.Vec3 {
	return vec.Vec2{X: l.W}.Rotate(l.Angle).ToVec3(-l.AngledH() - l.Tip)
}

// KneePos is the world position of the top of the shin.
func (l Leg) KneePos() vec.Vec3 {
	return l.Pos.Add(l.KneeOffset())
}

// ShinHeight is the length of the vertical section.
func (l Leg) ShinHeight() float64 {
	return l.H + l.KneeOffset().Z
}

// Toward returns a leg sharing this leg's contact point whose knee reaches
// toward p.
func (l Leg) Toward(p vec.Vec2) Leg {
	d := p.Sub(l.Pos.ToVec2())
	l.W = d.Mag()
	l.Angle = d.Angle()
	return l
}

// BarLen is the length of a brace spanning m horizontally.
func BarLen(m float64) float64 {
	return m / math.Sin(vec.Radians(BarAngle))
}

// BarH is the height dropped by a brace spanning m horizontally.
func BarH(m float64) float64 {
	return BarLen(m) * math.Cos(vec.Radians(BarAngle))
}
