package platform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code is the RetroAchievements console identifier passed to RAHasher.
type Code int

// ErrUnsupported marks slugs RAHasher cannot hash.
var ErrUnsupported = errors.New("platform not supported by RetroAchievements")

// UnsupportedError reports the slug that failed to resolve.
type UnsupportedError struct {
	Slug string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: slug=%q", ErrUnsupported, e.Slug)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

var slugToCode = map[string]Code{
	"3do":           43,
	"amstradcpc":    37,
	"apple2":        38,
	"arcade":        27,
	"arcadia":       73,
	"arduboy":       71,
	"atari2600":     25,
	"atari7800":     51,
	"jaguarcd":      77,
	"colecovision":  44,
	"dreamcast":     40,
	"gb":            4,
	"gba":           5,
	"gbc":           6,
	"gamegear":      15,
	"genesis":       1,
	"intellivision": 45,
	"jaguar":        17,
	"lynx":          13,
	"msx":           29,
	"megaduck":      69,
	"megadrive":     1,
	"nes":           7,
	"ngc":           14,
	"famicom":       7,
	"neogeocd":      56,
	"ngp":           14,
	"ngpc":          14,
	"n64":           2,
	"nds":           18,
	"dsi":           78,
	"odyssey2":      23,
	"pc88":          47,
	"pcfx":          49,
	"psp":           41,
	"psx":           12,
	"ps2":           21,
	"pokemini":      24,
	"saturn":        39,
	"sega32x":       10,
	"segacd":        9,
	"sms":           11,
	"sg1000":        33,
	"snes":          3,
	"pcenginecd":    76,
	"pcengine":      8,
	"vectrex":       26,
	"virtualboy":    28,
	"supervision":   63,
	"wswan":         53,
	"wswanc":        53,
}

// Lookup returns the code for slug. ok is false for unknown slugs and for
// entries that do not carry a positive code.
func Lookup(slug string) (Code, bool) {
	code, ok := slugToCode[slug]
	if !ok || code <= 0 {
		return 0, false
	}
	return code, true
}

// Resolve returns the RAHasher console code for slug.
func Resolve(slug string) (Code, error) {
	code, ok := Lookup(slug)
	if !ok {
		return 0, &UnsupportedError{Slug: slug}
	}
	return code, nil
}

// Slugs returns every supported slug in lexical order.
func Slugs() []string {
	slugs := make([]string, 0, len(slugToCode))
	for slug, code := range slugToCode {
		if code > 0 {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs
}

// Aliases returns the slugs that resolve to code, in lexical order.
func Aliases(code Code) []string {
	var slugs []string
	for slug, c := range slugToCode {
		if c == code && c > 0 {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs
}

// Normalize trims and lowercases free-form input, such as a typed argument or
// a library directory name, into slug form. Lookup and Resolve stay exact, so
// callers normalize before resolving.
func Normalize(value string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(value))
}
