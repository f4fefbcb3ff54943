package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie signs the session token into an HS256 JWT carried by an
// HttpOnly cookie, so a client can only present tokens this server issued.
type SessionCookie struct {
	TokenAuth *jwtauth.JWTAuth
	Name      string
	MaxAge    time.Duration
	Secure    bool
}

func NewSessionCookie(secret []byte, name string, maxAge time.Duration, secure bool) *SessionCookie {
	return &SessionCookie{
		TokenAuth: jwtauth.New("HS256", secret, nil),
		Name:      name,
		MaxAge:    maxAge,
		Secure:    secure,
	}
}

func (c *SessionCookie) GenerateToken(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": now.Add(c.MaxAge).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := c.TokenAuth.Encode(claims)
	return tokenString, err
}

// FromRequest finds the signed token in the session cookie. It has the shape
// jwtauth.Verify expects of a token finder.
func (c *SessionCookie) FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set issues the cookie for sessionID.
func (c *SessionCookie) Set(w http.ResponseWriter, sessionID string) error {
	token, err := c.GenerateToken(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, c.cookie(token, int(c.MaxAge.Seconds())))
	return nil
}

// Clear tells the client to drop the cookie.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c *SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Cross-site frontends only get the cookie back with SameSite=None,
	// which browsers accept on secure cookies only.
	if c.Secure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func GetSessionIDFromClaims(claims jwt.MapClaims) (string, error) {
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}
