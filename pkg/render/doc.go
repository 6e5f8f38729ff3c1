// Package render defines the contract between form views and the concrete
// renderers (HTML, terminal), plus the helpers they share: hidden fields,
// the renderer registry and theme resolution through go-theme.
package render
