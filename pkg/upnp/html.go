package upnp

import "github.com/upnp-panel/upnp-go/pkg/buffer"

// Response content types.
const (
	ContentTypeHTML = "text/html"
	ContentTypeCSS  = "text/css"
)

// StylesPath is the fixed route of the panel stylesheet, registered by
// RootDevice.Setup.
const StylesPath = "/styles.css"

const (
	headerTemplate = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title>` +
		`<link rel="stylesheet" type="text/css" href="/styles.css"></head>` +
		`<body><h1 class="panelTitle">%s</h1><div class="panelBody">`

	tailTemplate = `</div></body></html>`

	buttonTemplate = `<a href="%s" class="apButton">%s</a>`
)

// StyleSheet is the default stylesheet served at StylesPath.
const StyleSheet = `body{font-family:sans-serif;background:#f4f4f4;margin:0}
.panelTitle{text-align:center;margin:24px 0 8px}
.panelBody{max-width:480px;margin:0 auto;padding:16px;text-align:center}
.apButton{display:block;margin:8px 0;padding:12px;background:#2a6ebb;color:#fff;
text-decoration:none;border-radius:6px}
.apButton:hover{background:#1d4f88}`

// FormatHeader appends the panel page header, titled with the node's
// display name, and returns the new write position.
func FormatHeader(w *buffer.Writer, title string) int {
	return w.Printf(headerTemplate, title, title)
}

// FormatTail appends the panel page tail and returns the new write
// position.
func FormatTail(w *buffer.Writer) int {
	return w.Printf(tailTemplate)
}

// FormatButton appends a navigation control that links to path and
// returns the new write position.
func FormatButton(w *buffer.Writer, path, label string) int {
	return w.Printf(buttonTemplate, path, label)
}
