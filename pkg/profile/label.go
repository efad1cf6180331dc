package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Label names one keycap variant: {PROFILE}_{MOUNT}_{ROW}_{X}x{Y}[_{SUFFIX}],
// where X and Y are the footprint in hundredths of a unit. Labels are used
// as file names and are parsed back by the assembly layout, so the format
// is fixed.
type Label struct {
	Profile string
	Mount   spec.Standard
	Row     string
	Width   int // hundredths of a unit
	Depth   int // hundredths of a unit
	Suffix  string
}

// NewLabel builds the label of a variant with the given units.
func NewLabel(profile string, mount spec.Standard, row string, units vec.Vec2, suffix string) Label {
	return Label{
		Profile: profile,
		Mount:   mount,
		Row:     row,
		Width:   int(math.Round(units.X * 100)),
		Depth:   int(math.Round(units.Y * 100)),
		Suffix:  suffix,
	}
}

func (l Label) String() string {
	s := fmt.Sprintf("%s_%s_%s_%dx%d", l.Profile, l.Mount, l.Row, l.Width, l.Depth)
	if l.Suffix != "" {
		s += "_" + l.Suffix
	}
	return s
}

// Units returns the footprint in keyboard units.
func (l Label) Units() vec.Vec2 {
	return vec.Vec2{X: float64(l.Width) / 100, Y: float64(l.Depth) / 100}
}

// RowIndex returns the row number (4 for R4), or 0 when the row name does
// not end in a number.
func (l Label) RowIndex() int {
	i := strings.IndexFunc(l.Row, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(l.Row[i:])
	if err != nil {
		return 0
	}
	return n
}

// Validate checks every segment of the label.
func (l Label) Validate() error {
	if err := errors.ValidateLabelSegment("profile", l.Profile); err != nil {
		return err
	}
	if err := errors.ValidateLabelSegment("row", l.Row); err != nil {
		return err
	}
	if l.Width <= 0 || l.Depth <= 0 {
		return errors.New(errors.ErrCodeInvalidLabel, "footprint must be positive: %dx%d", l.Width, l.Depth)
	}
	if l.Suffix != "" {
		return errors.ValidateLabelSegment("suffix", l.Suffix)
	}
	return nil
}

var (
	labelLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Size", Pattern: `\d+x\d+`},
		{Name: "Ident", Pattern: `[A-Za-z0-9]+`},
		{Name: "Sep", Pattern: `_`},
	})

	labelParser = participle.MustBuild[labelAST](
		participle.Lexer(labelLexer),
	)
)

// labelAST is the raw token layout of a label.
type labelAST struct {
	Profile string `parser:"@Ident"`
	Mount   string `parser:"'_' @Ident"`
	Row     string `parser:"'_' @Ident"`
	Size    string `parser:"'_' @Size"`
	Suffix  string `parser:"( '_' @Ident )?"`
}

// ParseLabel parses a label produced by [Label.String].
func ParseLabel(s string) (Label, error) {
	ast, err := labelParser.ParseString("", s)
	if err != nil {
		return Label{}, errors.Wrap(errors.ErrCodeInvalidLabel, err, "parse label %q", s)
	}

	var l Label
	l.Profile, l.Row, l.Suffix = ast.Profile, ast.Row, ast.Suffix
	switch ast.Mount {
	case spec.MX.String():
		l.Mount = spec.MX
	case spec.Choc.String():
		l.Mount = spec.Choc
	default:
		return Label{}, errors.New(errors.ErrCodeInvalidLabel, "unknown mount %q in label %q", ast.Mount, s)
	}

	w, d, _ := strings.Cut(ast.Size, "x")
	if l.Width, err = strconv.Atoi(w); err != nil {
		return Label{}, errors.Wrap(errors.ErrCodeInvalidLabel, err, "label width %q", w)
	}
	if l.Depth, err = strconv.Atoi(d); err != nil {
		return Label{}, errors.Wrap(errors.ErrCodeInvalidLabel, err, "label depth %q", d)
	}
	if err := l.Validate(); err != nil {
		return Label{}, err
	}
	return l, nil
}
