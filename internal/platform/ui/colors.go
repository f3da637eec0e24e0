// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

var (
	// Venom - headers and primary highlights
	Venom = pterm.NewRGB(124, 252, 0)

	// Bruise - errors
	Bruise = pterm.NewRGB(215, 38, 56)

	// Amber - warnings and cached state
	Amber = pterm.NewRGB(255, 182, 39)

	// Slate - secondary text
	Slate = pterm.NewRGB(120, 120, 120)

	// Ice - accents and success
	Ice = pterm.NewRGB(0, 206, 209)
)

var (
	StylePrimary   = Venom.ToRGBStyle()
	StyleSuccess   = Ice.ToRGBStyle()
	StyleWarning   = Amber.ToRGBStyle()
	StyleError     = Bruise.ToRGBStyle()
	StyleSecondary = Slate.ToRGBStyle()
)
