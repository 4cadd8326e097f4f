// Package session owns the authentication token and current user: login,
// logout, identity refresh and the startup bootstrap that decides whether
// a stored token still counts as a session.
package session

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/models"
)

// Portals gate which roles may authenticate through a login surface.
const (
	PortalAdmin   = "admin"
	PortalTeacher = "teacher"
)

// User-facing messages. Every failure leaving this package is one of
// these or a normalized gateway detail, never a raw error payload.
const (
	msgNoAdminAccess   = "Không có quyền truy cập cổng quản trị"
	msgNoTeacherAccess = "Không có quyền truy cập cổng giáo viên"
	msgLoginFailed     = "Đăng nhập thất bại"
	msgNoAccessToken   = "Không nhận được access token"
	msgRegisterFailed  = "Đăng ký thất bại. Vui lòng thử lại."
	msgInvalidInfo     = "Thông tin không hợp lệ. Vui lòng kiểm tra lại."
	msgAlreadyUsed     = "Email hoặc tên đăng nhập đã được sử dụng. Vui lòng chọn thông tin khác."
)

var validate = validator.New()

// LoginResult is the outcome of a login attempt. Error is display-ready.
type LoginResult struct {
	Success bool
	User    *models.User
	Error   string
}

// Store holds the session state. All methods are safe for concurrent use.
type Store struct {
	client *api.Client
	tokens *TokenStore
	log    *zap.Logger

	mu            sync.Mutex
	user          *models.User
	authenticated bool
	loading       bool
	loadingOnce   sync.Once
}

// New constructs the session store and registers central 401 handling on
// the client: an unauthorized response clears the stored token no matter
// which call hit it.
func New(client *api.Client, tokens *TokenStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{client: client, tokens: tokens, log: log, loading: true}
	client.SetOnUnauthorized(func(ctx context.Context) {
		_ = tokens.Clear(ctx)
	})
	return s
}

// Init resolves the session once at startup. A present token triggers an
// identity fetch; a 401 destroys the session, any other failure keeps the
// token and treats the session as optimistically authenticated with an
// unknown user. The loading flag clears exactly once, after the first
// resolution attempt completes.
func (s *Store) Init(ctx context.Context) {
	defer s.finishLoading()

	if _, ok := s.tokens.Token(ctx); !ok {
		s.setState(nil, false)
		return
	}

	if _, err := s.FetchUserInfo(ctx); err != nil {
		if api.IsUnauthorized(err) {
			// FetchUserInfo already tore the session down.
			return
		}
		s.log.Warn("could not resolve identity on startup, keeping session", zap.Error(err))
		s.setState(nil, true)
	}
}

// Login authenticates against the given portal. It never returns a Go
// error: failures are normalized into LoginResult.Error and always leave
// the token cleared.
func (s *Store) Login(ctx context.Context, username, password, portal string) LoginResult {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp models.LoginResponse
	if err := s.client.PostForm(ctx, "/auth/login", form, &resp); err != nil {
		return s.loginFailed(ctx, errorMessage(err))
	}
	if resp.AccessToken == "" {
		return s.loginFailed(ctx, msgNoAccessToken)
	}
	if err := s.tokens.Set(ctx, resp.AccessToken); err != nil {
		return s.loginFailed(ctx, msgLoginFailed)
	}

	user := resp.User
	if user == nil {
		fetched, err := s.FetchUserInfo(ctx)
		switch {
		case err == nil:
			user = fetched
		case api.IsUnauthorized(err):
			return s.loginFailed(ctx, errorMessage(err))
		default:
			// Transient failure; the token may still carry enough claims.
			s.log.Warn("could not fetch user info after login", zap.Error(err))
		}
	}
	if user == nil {
		user = userFromToken(resp.AccessToken)
	}
	if user == nil {
		return s.loginFailed(ctx, msgLoginFailed)
	}

	role := models.ParseRole(user.Role)
	switch portal {
	case PortalAdmin:
		if role != models.RoleAdmin && role != models.RoleManager && role != models.RoleStaff {
			return s.loginFailed(ctx, msgNoAdminAccess)
		}
	case PortalTeacher:
		if role != models.RoleTeacher {
			return s.loginFailed(ctx, msgNoTeacherAccess)
		}
	}

	s.setState(user, true)
	return LoginResult{Success: true, User: user}
}

// Logout clears token and user synchronously; no network call is made.
func (s *Store) Logout(ctx context.Context) {
	_ = s.tokens.Clear(ctx)
	s.setState(nil, false)
}

// FetchUserInfo fetches the current identity with the stored token. A 401
// destroys the session; any other failure (network, CORS) preserves the
// token and returns the error so the caller can retry. Only an
// authentication failure ends the session.
func (s *Store) FetchUserInfo(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.GetJSON(ctx, "/auth/me", nil, &user); err != nil {
		if api.IsUnauthorized(err) {
			_ = s.tokens.Clear(ctx)
			s.setState(nil, false)
		}
		return nil, err
	}
	s.setState(&user, true)
	return &user, nil
}

// Register submits a new account. Payloads are validated client-side
// first; every failure is returned as a display-ready message.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.New(msgInvalidInfo)
	}
	if err := s.client.PostJSON(ctx, "/auth/register", req, nil); err != nil {
		return errors.New(registerMessage(err))
	}
	return nil
}

// User returns the current user, or nil when identity is unresolved.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the stored bearer token, ok=false when absent.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.tokens.Token(ctx)
}

// IsAuthenticated reports whether a session is considered active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Loading reports whether the startup resolution has not completed yet.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setState(user *models.User, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = authenticated
}

func (s *Store) finishLoading() {
	s.loadingOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
	})
}

func (s *Store) loginFailed(ctx context.Context, msg string) LoginResult {
	_ = s.tokens.Clear(ctx)
	s.setState(nil, false)
	if msg == "" {
		msg = msgLoginFailed
	}
	return LoginResult{Success: false, Error: msg}
}

// errorMessage coerces any failure into a single display string.
func errorMessage(err error) string {
	var ae *api.Error
	if errors.As(err, &ae) && ae.Detail != "" {
		return ae.Detail
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return msgLoginFailed
}

// registerMessage maps gateway registration failures onto the localized
// phrases the UI shows.
func registerMessage(err error) string {
	msg := errorMessage(err)
	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "Email or username"):
		return msgAlreadyUsed
	case strings.Contains(msg, "validation error"), strings.Contains(msg, "ValidationError"):
		return msgInvalidInfo
	case msg == "", msg == msgLoginFailed:
		return msgRegisterFailed
	}
	return msg
}

// userFromToken builds a provisional user from unverified JWT claims, the
// last resort when the identity endpoint is unreachable right after login.
// The token is not validated here; the gateway remains the authority.
func userFromToken(token string) *models.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	u := &models.User{}
	if sub, ok := claims["sub"].(string); ok {
		u.Username = sub
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		u.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	if fullName, ok := claims["full_name"].(string); ok {
		u.FullName = fullName
	}
	if role, ok := claims["role"].(string); ok {
		u.Role = role
	}
	return u
}
