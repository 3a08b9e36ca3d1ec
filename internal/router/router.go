// Package router wires the HTTP routes of the application and implements one
// handler per route. Handlers resolve the session identity first, delegate the
// rules to the service layer and translate its errors into plain-text
// responses with the page-specific wording.
package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pvidkov/tinyapp/internal/logger"
	"github.com/pvidkov/tinyapp/internal/models"
	"github.com/pvidkov/tinyapp/internal/session"
	"github.com/pvidkov/tinyapp/internal/templates"
	"github.com/pvidkov/tinyapp/internal/user"
)

type shortener interface {
	RegisterUser(ctx context.Context, email, plainPassword string) (*user.User, error)
	AuthenticateUser(ctx context.Context, email, plainPassword string) (*user.User, error)
	ResolveUser(ctx context.Context, userID string) (*user.User, bool, error)
	CreateURL(ctx context.Context, ownerID, longURL string) (*models.URLRecord, error)
	URLsForUser(ctx context.Context, ownerID string) ([]models.URLRecord, error)
	URLForOwner(ctx context.Context, userID, urlID string) (*models.URLRecord, error)
	UpdateURL(ctx context.Context, userID, urlID, longURL string) error
	DeleteURL(ctx context.Context, userID, urlID string) error
	ResolveShort(ctx context.Context, urlID string) (string, error)
}

type sessionManager interface {
	Load(request *http.Request) *session.Session
	Save(response http.ResponseWriter, sess *session.Session) error
	Drop(response http.ResponseWriter)
}

// Router implements the HTTP handlers of the application.
type Router struct {
	service      shortener
	sessions     sessionManager
	shortURLBase string
}

// The response texts sent verbatim on failed precondition checks.
const (
	msgFillOutForms      = "Please fill out all the forms."
	msgEmailUnknown      = "That email isn't registered"
	msgWrongCredentials  = "Your email and password do not match"
	msgEmailTaken        = "That email is already registered!"
	msgURLNotFound       = "That url does not exist!"
	msgLogInToView       = "Please log in to view urls."
	msgLogInToEdit       = "Please log in to edit urls."
	msgLogInToDelete     = "Please log in to delete urls."
	msgNoPermissionView  = "You do not have permission to view this url."
	msgNoPermissionEdit  = "You do not have permission to edit this url."
	msgNoPermissionDel   = "You do not have permission to delete this url."
	internalErrorMessage = "Internal server error"
)

// currentUser resolves the session's carried identifier through the user
// store. A missing, stale or cleared identifier means anonymous.
func (theRouter *Router) currentUser(request *http.Request, sess *session.Session) (*user.User, bool, error) {
	return theRouter.service.ResolveUser(request.Context(), sess.Get(session.UserIDKey))
}

func (theRouter *Router) internalError(response http.ResponseWriter, err error) {
	logger.Log.Debugln("internal error while handling request", zap.Error(err))
	http.Error(response, internalErrorMessage, http.StatusInternalServerError)
}

func (theRouter *Router) render(response http.ResponseWriter, view string, data templates.ViewData) {
	data.ShortURLBase = theRouter.shortURLBase
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(response, view, data); err != nil {
		logger.Log.Debugln("error rendering view", zap.Error(err))
	}
}

// GetRoot redirects to /urls when the session resolves to a user,
// otherwise to /login.
func (theRouter *Router) GetRoot(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	_, found, err := theRouter.currentUser(request, sess)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}
	if !found {
		http.Redirect(response, request, "/login", http.StatusFound)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetLogin renders the login form, or redirects home when already authenticated.
func (theRouter *Router) GetLogin(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	_, found, err := theRouter.currentUser(request, sess)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}
	if found {
		http.Redirect(response, request, "/urls", http.StatusFound)
		return
	}

	theRouter.render(response, "login_page", templates.ViewData{})
}

// PostLogin checks the submitted credentials and sets the session identity.
func (theRouter *Router) PostLogin(response http.ResponseWriter, request *http.Request) {
	usr, err := theRouter.service.AuthenticateUser(
		request.Context(),
		request.PostFormValue("email"),
		request.PostFormValue("password"),
	)
	switch {
	case errors.Is(err, models.ErrFieldsRequired):
		http.Error(response, msgFillOutForms, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrEmailNotRegistered):
		http.Error(response, msgEmailUnknown, http.StatusForbidden)
		return
	case errors.Is(err, models.ErrWrongCredentials):
		http.Error(response, msgWrongCredentials, http.StatusForbidden)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	sess := theRouter.sessions.Load(request)
	sess.Set(session.UserIDKey, usr.ID)
	if err := theRouter.sessions.Save(response, sess); err != nil {
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// PostLogout clears the whole session and redirects to the login page.
func (theRouter *Router) PostLogout(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	sess.Clear()
	theRouter.sessions.Drop(response)

	http.Redirect(response, request, "/login", http.StatusFound)
}

// GetRegister renders the registration form, or redirects home when already
// authenticated.
func (theRouter *Router) GetRegister(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	_, found, err := theRouter.currentUser(request, sess)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}
	if found {
		http.Redirect(response, request, "/urls", http.StatusFound)
		return
	}

	theRouter.render(response, "user_registration", templates.ViewData{})
}

// PostRegister creates a new user and sets the session identity to it.
func (theRouter *Router) PostRegister(response http.ResponseWriter, request *http.Request) {
	usr, err := theRouter.service.RegisterUser(
		request.Context(),
		request.PostFormValue("email"),
		request.PostFormValue("password"),
	)
	switch {
	case errors.Is(err, models.ErrFieldsRequired):
		http.Error(response, msgFillOutForms, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrEmailTaken):
		http.Error(response, msgEmailTaken, http.StatusBadRequest)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	sess := theRouter.sessions.Load(request)
	sess.Set(session.UserIDKey, usr.ID)
	if err := theRouter.sessions.Save(response, sess); err != nil {
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetUrls renders the list of URLs owned by the current user.
func (theRouter *Router) GetUrls(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	usr, found, err := theRouter.currentUser(request, sess)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}
	if !found {
		http.Redirect(response, request, "/login", http.StatusFound)
		return
	}

	urls, err := theRouter.service.URLsForUser(request.Context(), usr.ID)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}

	theRouter.render(response, "urls_index", templates.ViewData{User: usr, Urls: urls})
}

// GetUrlsNew renders the form for creating a new short URL.
func (theRouter *Router) GetUrlsNew(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	usr, found, err := theRouter.currentUser(request, sess)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}
	if !found {
		http.Redirect(response, request, "/login", http.StatusFound)
		return
	}

	theRouter.render(response, "urls_new", templates.ViewData{User: usr})
}

// PostUrls creates a new short URL owned by the session's carried identifier.
// The reference behavior performs no authentication check here, so an
// anonymous submitter produces an ownerless record; preserved as-is.
func (theRouter *Router) PostUrls(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)

	_, err := theRouter.service.CreateURL(
		request.Context(),
		sess.Get(session.UserIDKey),
		request.PostFormValue("longURL"),
	)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetUrlsID renders the edit page of a single URL after checking that the
// session resolves to the record's owner.
func (theRouter *Router) GetUrlsID(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)
	userID := sess.Get(session.UserIDKey)
	urlID := chi.URLParam(request, "id")

	record, err := theRouter.service.URLForOwner(request.Context(), userID, urlID)
	switch {
	case errors.Is(err, models.ErrNotLoggedIn):
		http.Error(response, msgLogInToView, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrURLNotFound):
		http.Error(response, msgURLNotFound, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(response, msgNoPermissionView, http.StatusBadRequest)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	usr, _, err := theRouter.service.ResolveUser(request.Context(), userID)
	if err != nil {
		theRouter.internalError(response, err)
		return
	}

	theRouter.render(response, "urls_show", templates.ViewData{
		User:    usr,
		ID:      record.ID,
		LongURL: record.LongURL,
	})
}

// PostUrlsID updates the long URL of a record owned by the current user.
func (theRouter *Router) PostUrlsID(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)

	err := theRouter.service.UpdateURL(
		request.Context(),
		sess.Get(session.UserIDKey),
		chi.URLParam(request, "id"),
		request.PostFormValue("update"),
	)
	switch {
	case errors.Is(err, models.ErrURLNotFound):
		http.Error(response, msgURLNotFound, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNotLoggedIn):
		http.Error(response, msgLogInToEdit, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(response, msgNoPermissionEdit, http.StatusBadRequest)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// PostUrlsIDDelete removes a record owned by the current user.
func (theRouter *Router) PostUrlsIDDelete(response http.ResponseWriter, request *http.Request) {
	sess := theRouter.sessions.Load(request)

	err := theRouter.service.DeleteURL(
		request.Context(),
		sess.Get(session.UserIDKey),
		chi.URLParam(request, "id"),
	)
	switch {
	case errors.Is(err, models.ErrURLNotFound):
		http.Error(response, msgURLNotFound, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNotLoggedIn):
		http.Error(response, msgLogInToDelete, http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrNotOwner):
		http.Error(response, msgNoPermissionDel, http.StatusBadRequest)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetShortRedirect redirects a short key to its long URL.
func (theRouter *Router) GetShortRedirect(response http.ResponseWriter, request *http.Request) {
	full, err := theRouter.service.ResolveShort(request.Context(), chi.URLParam(request, "id"))
	switch {
	case errors.Is(err, models.ErrURLNotFound):
		http.Error(response, msgURLNotFound, http.StatusBadRequest)
		return
	case err != nil:
		theRouter.internalError(response, err)
		return
	}

	http.Redirect(response, request, full, http.StatusFound)
}

// New registers all routes on a chi mux and returns it.
func New(
	service shortener,
	sessions sessionManager,
	shortURLBase string,
) *chi.Mux {
	theRouter := &Router{
		service:      service,
		sessions:     sessions,
		shortURLBase: shortURLBase,
	}

	mux := chi.NewRouter()
	mux.Use(logger.WithLoggingHTTPMiddleware)

	mux.Get(`/`, theRouter.GetRoot)
	mux.Get(`/login`, theRouter.GetLogin)
	mux.Post(`/login`, theRouter.PostLogin)
	mux.Post(`/logout`, theRouter.PostLogout)
	mux.Get(`/register`, theRouter.GetRegister)
	mux.Post(`/register`, theRouter.PostRegister)
	mux.Get(`/urls`, theRouter.GetUrls)
	mux.Get(`/urls/new`, theRouter.GetUrlsNew)
	mux.Post(`/urls`, theRouter.PostUrls)
	mux.Get(`/urls/{id}`, theRouter.GetUrlsID)
	mux.Post(`/urls/{id}`, theRouter.PostUrlsID)
	mux.Post(`/urls/{id}/delete`, theRouter.PostUrlsIDDelete)
	mux.Get(`/u/{id}`, theRouter.GetShortRedirect)

	return mux
}
