// Package session implements the signed-cookie session used to carry the
// authenticated user's identifier between requests. The session payload is a
// JWT signed with an HMAC secret, so the server keeps no session store of its
// own; a missing, malformed or forged cookie simply yields an empty session.
package session

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// UserIDKey is the session key under which the authenticated user's ID is carried.
const UserIDKey = "userID"

// Claims is the JWT payload of a session cookie.
// Values holds the opaque key-value pairs exposed via Session.
type Claims struct {
	jwt.RegisteredClaims
	Values map[string]string `json:"values"`
}

// Session is the per-request key-value association loaded from the cookie.
// Mutations are local until the session is saved back to the response.
type Session struct {
	values map[string]string
}

// Get returns the value stored under key, or the empty string.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	s.values[key] = value
}

// Clear removes every value from the session.
func (s *Session) Clear() {
	s.values = map[string]string{}
}

// Manager loads sessions from request cookies and saves them back to responses.
type Manager struct {
	cookieName string
	signingKey []byte
}

// New creates a session Manager using the given cookie name and HMAC signing key.
func New(cookieName string, signingKey []byte) *Manager {
	return &Manager{
		cookieName: cookieName,
		signingKey: signingKey,
	}
}

// Load returns the session carried by the request's cookie.
// Any parse or signature failure is treated as an anonymous visitor.
func (m *Manager) Load(request *http.Request) *Session {
	result := &Session{values: map[string]string{}}

	cookie, err := request.Cookie(m.cookieName)
	if err != nil {
		return result
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		cookie.Value,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.signingKey, nil
		},
	)
	if err != nil || !token.Valid {
		return result
	}

	if claims.Values != nil {
		result.values = claims.Values
	}

	return result
}

// Save signs the session and sets it as a cookie on the response.
func (m *Manager) Save(response http.ResponseWriter, sess *Session) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.New().String(),
		},
		Values: sess.values,
	})

	tokenString, err := token.SignedString(m.signingKey)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(
		response,
		&http.Cookie{
			Name:     m.cookieName,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
		},
	)

	return nil
}

// Drop expires the session cookie on the response.
func (m *Manager) Drop(response http.ResponseWriter) {
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     m.cookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		},
	)
}
