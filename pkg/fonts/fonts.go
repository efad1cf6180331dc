// Package fonts provides the fonts used on printed sheets.
//
// The Go font family is compiled into the binary, so sheets render the same
// on every machine without system fonts.
package fonts

import (
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FamilyName is the canvas family name of the sheet font.
const FamilyName = "Go"

// Cache for the parsed family (loaded once on first access).
var (
	sheetFamily     *canvas.FontFamily
	sheetFamilyErr  error
	sheetFamilyOnce sync.Once

	monoFamily     *canvas.FontFamily
	monoFamilyErr  error
	monoFamilyOnce sync.Once
)

// Sheet returns the proportional family with regular and bold styles.
func Sheet() (*canvas.FontFamily, error) {
	sheetFamilyOnce.Do(func() {
		family := canvas.NewFontFamily(FamilyName)
		if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			sheetFamilyErr = err
			return
		}
		if err := family.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
			sheetFamilyErr = err
			return
		}
		sheetFamily = family
	})
	return sheetFamily, sheetFamilyErr
}

// Mono returns the monospaced family, used for key labels.
func Mono() (*canvas.FontFamily, error) {
	monoFamilyOnce.Do(func() {
		family := canvas.NewFontFamily(FamilyName + " Mono")
		if err := family.LoadFont(gomono.TTF, 0, canvas.FontRegular); err != nil {
			monoFamilyErr = err
			return
		}
		monoFamily = family
	})
	return monoFamily, monoFamilyErr
}
