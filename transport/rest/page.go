package rest

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFiles embed.FS

// pageHandler serves the browser board. It renders whatever the API returns
// and never derives game state from the page itself.
func pageHandler() http.Handler {
	root, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}

	return http.FileServer(http.FS(root))
}
