// Package devserver is a runnable local fixture implementing the roster
// backend contract: activities listing, login/logout/me, and the staff
// gated signup/unregister mutations. It exists so the console client can
// be developed and exercised without the production backend.
package devserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mergington/roster-console/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

type account struct {
	PasswordHash []byte
	Role         string
}

// Server holds the fixture's in-memory state. Sessions are HS256 tokens
// carrying username/role claims; logout adds the token to a revocation
// set so invalidation behaves like the real backend.
type Server struct {
	secret string
	ttl    time.Duration
	log    zerolog.Logger

	mu         sync.Mutex
	users      map[string]account
	activities []domain.Activity
	revoked    map[string]struct{}
}

func New(secret string, ttl time.Duration, log zerolog.Logger) *Server {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &Server{
		secret:     secret,
		ttl:        ttl,
		log:        log,
		users:      make(map[string]account),
		activities: seedActivities(),
		revoked:    make(map[string]struct{}),
	}
	for _, u := range seedUsers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("devserver: hash seed password: %v", err))
		}
		s.users[u.Username] = account{PasswordHash: hash, Role: u.Role}
	}
	return s
}

// Router builds the Echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = detailErrorHandler(s.log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	e.GET("/activities", s.getActivities)
	e.POST("/auth/login", s.login)
	e.POST("/auth/logout", s.logout)
	e.GET("/auth/me", s.currentUser)
	e.POST("/activities/:name/signup", s.signup)
	e.DELETE("/activities/:name/unregister", s.unregister)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// detailErrorHandler renders every error as the backend contract's
// failure envelope: {"detail": "<message>"}.
func detailErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			detail = fmt.Sprintf("%v", he.Message)
		} else {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		_ = c.JSON(code, map[string]string{"detail": detail})
	}
}

// getActivities responds with the name→details object in seed order. The
// keys are encoded by hand because Go maps marshal sorted, and the
// response order is what clients display.
func (s *Server) getActivities(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type details struct {
		Description     string   `json:"description"`
		Schedule        string   `json:"schedule"`
		MaxParticipants int      `json:"max_participants"`
		Participants    []string `json:"participants"`
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range s.activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(details{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		})
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return c.JSONBlob(http.StatusOK, buf.Bytes())
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	acct, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	claims := jwt.MapClaims{
		"username": req.Username,
		"role":     acct.Role,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access_token": signed,
		"token_type":   "bearer",
		"username":     req.Username,
		"role":         acct.Role,
	})
}

func (s *Server) logout(c echo.Context) error {
	_, token, err := s.authenticate(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.revoked[token] = struct{}{}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) currentUser(c echo.Context) error {
	identity, _, err := s.authenticate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

func (s *Server) signup(c echo.Context) error {
	identity, _, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if err := requireStaff(identity); err != nil {
		return err
	}

	name := c.Param("name")
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity := s.findActivity(name)
	if activity == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
	}
	for _, p := range activity.Participants {
		if p == email {
			return echo.NewHTTPError(http.StatusBadRequest, "Student is already signed up")
		}
	}

	activity.Participants = append(activity.Participants, email)
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (s *Server) unregister(c echo.Context) error {
	identity, _, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if err := requireStaff(identity); err != nil {
		return err
	}

	name := c.Param("name")
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity := s.findActivity(name)
	if activity == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Activity not found")
	}
	for i, p := range activity.Participants {
		if p == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			return c.JSON(http.StatusOK, map[string]string{
				"message": fmt.Sprintf("Unregistered %s from %s", email, name),
			})
		}
	}

	return echo.NewHTTPError(http.StatusBadRequest, "Student is not signed up for this activity")
}

// findActivity returns a pointer into the slice; callers hold s.mu.
func (s *Server) findActivity(name string) *domain.Activity {
	for i := range s.activities {
		if s.activities[i].Name == name {
			return &s.activities[i]
		}
	}
	return nil
}

// authenticate validates the bearer token and returns the identity it
// carries along with the raw token.
func (s *Server) authenticate(c echo.Context) (*domain.Identity, string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	raw := parts[1]

	s.mu.Lock()
	_, revoked := s.revoked[raw]
	s.mu.Unlock()
	if revoked {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &domain.Identity{Username: username, Role: role}, raw, nil
}

func requireStaff(identity *domain.Identity) error {
	if !domain.CanMutate(identity) {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}
	return nil
}
