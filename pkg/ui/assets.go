package ui

import (
	"embed"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

//go:embed icons/*.svg
var iconFS embed.FS

const shutterIconFile = "icons/shutter.svg"

// shutterIcon caches the loaded resource.
var shutterIcon fyne.Resource

// ShutterIcon returns the shutter button image. It falls back to a theme
// icon if the embedded file cannot be read.
func ShutterIcon() fyne.Resource {
	if shutterIcon != nil {
		return shutterIcon
	}

	data, err := iconFS.ReadFile(shutterIconFile)
	if err != nil {
		return theme.RadioButtonCheckedIcon()
	}

	shutterIcon = fyne.NewStaticResource("shutter.svg", data)
	return shutterIcon
}
