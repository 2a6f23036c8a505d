package httpserver

import "net/http"

// RegisterStaticRoutes mounts the web client from dir under /web/ and
// redirects / there. An empty dir leaves / unhandled apart from a 404.
func RegisterStaticRoutes(mux *http.ServeMux, dir string) {
	if mux == nil {
		return
	}
	if dir != "" {
		mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(dir))))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/web":
			if dir == "" {
				http.NotFound(w, r)
				return
			}
			http.Redirect(w, r, "/web/", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
}
