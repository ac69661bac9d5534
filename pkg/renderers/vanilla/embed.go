package vanilla

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed templates assets
var bundle embed.FS

// StylesheetName is the file name of the default block stylesheet inside
// AssetsFS.
const StylesheetName = "pageblocks.css"

// TemplatesFS exposes the embedded template bundle rooted at the template
// names the renderer resolves ("page.tpl", "blocks/hero.tpl", ...).
func TemplatesFS() fs.FS {
	return subtree("templates")
}

// AssetsFS exposes the embedded stylesheet for HTTP serving or asset
// pipelines.
func AssetsFS() fs.FS {
	return subtree("assets")
}

var stylesheet = sync.OnceValue(func() string {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
})

func defaultStylesheet() string {
	return stylesheet()
}

func subtree(dir string) fs.FS {
	sub, err := fs.Sub(bundle, dir)
	if err != nil {
		panic("vanilla: embedded " + dir + " missing: " + err.Error())
	}
	return sub
}
