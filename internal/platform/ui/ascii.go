// internal/platform/ui/ascii.go
package ui

// Banner compacto para el header principal
const Banner = `
 ┌─┐┬ ┬┌┐ ┌─┐┬─┐┌─┐┌┐ ┌─┐
 └─┐│ │├┴┐├─┘├┬┘│ │├┴┐├┤
 └─┘└─┘└─┘┴  ┴└─└─┘└─┘└─┘
 subdomain & TLD liveness prober
`

// Goodbye mensaje de salida
const Goodbye = "Scan finished. Only probe what you are authorized to test."
