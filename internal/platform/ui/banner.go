// internal/platform/ui/banner.go
package ui

// Banner is printed by the pterm presenter above the session header.
const Banner = `
 ┌─┐┌─┐ ┬  ┬┬ ┬┬ ┬┌┐┌┌┬┐
 └─┐│─┼┐│  ││─┤│ ││││ │
 └─┘└─┘└┴─┘┴┴ ┴└─┘┘└┘ ┴
  recon → params → sqlmap
`
