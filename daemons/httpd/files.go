package httpd

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"net/http"
)

func (s *Server) fileRoutes(app *fiber.App) {
	app.Get("/:filename", s.serveFile)
}

// serveFile sends a fixture file from a fresh open and stat.
// http.ServeContent handles content type, Last-Modified, conditional requests and byte ranges.
func (s *Server) serveFile(c *fiber.Ctx) error {
	f, err := s.files.Open(c.Params("filename"))
	if err != nil {
		return err
	}
	defer f.Close()

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range f.Header {
			w.Header().Set(k, v)
		}
		http.ServeContent(w, r, f.Name, f.Info.ModTime(), f)
	})(c)
}
