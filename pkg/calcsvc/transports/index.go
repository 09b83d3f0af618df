package transports

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexPage struct {
	Title       string
	CalcPath    string
	APICalcPath string
}

// newIndexHandler renders the calculator page. The page is static, so it is
// rendered once.
func newIndexHandler(logger log.Logger) http.Handler {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexPage{
		Title:       "Calculator",
		CalcPath:    "/calc",
		APICalcPath: "/api/calc",
	})
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			level.Error(logger).Log("handler", "index", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
}
