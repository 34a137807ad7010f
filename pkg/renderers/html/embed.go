package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/partials/*.tpl
var embeddedTemplates embed.FS

//go:embed static/*
var embeddedAssets embed.FS

// StylesheetName is the asset key and file name of the bundled stylesheet.
const StylesheetName = "skillswap.css"

// TemplatesFS exposes the embedded template bundle rooted at "templates".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the embedded static files so callers can serve them.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "static")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
