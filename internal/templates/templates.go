// Package templates holds the embedded HTML views and renders them.
// View names mirror the pages they produce: login_page, user_registration,
// urls_index, urls_new, urls_show.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/user"
)

//go:embed views/*.gohtml
var viewsFS embed.FS

var views = template.Must(template.ParseFS(viewsFS, "views/*.gohtml"))

// ViewData is the data object consumed by the views.
// Only the fields a given view reads need to be set.
type ViewData struct {
	User         *user.User
	Urls         []models.URLRecord
	ID           string
	LongURL      string
	ShortURLBase string
}

// Render executes the named view with the given data.
func Render(w io.Writer, name string, data ViewData) error {
	if err := views.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering view %q: %w", name, err)
	}

	return nil
}
