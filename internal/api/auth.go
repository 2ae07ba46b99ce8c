package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
)

// TokenPair is the server's token grant. These two values are the only
// thing the client ever persists.
type TokenPair struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Role is a named role granted to the signed-in user.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Permission is a fine-grained grant on a resource.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// User is the identity payload from GET /auth/me.
type User struct {
	ID            int          `json:"id"`
	Email         string       `json:"email"`
	FullName      string       `json:"full_name"`
	IsActive      bool         `json:"is_active"`
	IsSuperuser   bool         `json:"is_superuser"`
	RolesV2       []Role       `json:"roles_v2"`
	PermissionsV2 []Permission `json:"permissions_v2"`
}

// RegisterRequest creates a new account pending invitation acceptance.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair. The server's token
// endpoint is OAuth2-shaped: it takes a multipart form with username and
// password fields rather than JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("username", email); err != nil {
		return nil, err
	}
	if err := form.WriteField("password", password); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.prepare(req)

	var pair TokenPair
	if err := c.send(req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account. The server replies with the new user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestOTP asks the server to send a one-time code to the given address.
// The OTP request names the account with a username field, like the login
// form does.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	body := struct {
		Username string `json:"username"`
	}{Username: email}
	return c.post(ctx, "/auth/otp/request", body, nil)
}

// VerifyOTP exchanges a one-time code for a token pair (passwordless sign-in).
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*TokenPair, error) {
	body := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{Email: email, OTP: code}

	var pair TokenPair
	if err := c.post(ctx, "/auth/otp/login", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh exchanges a refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	var pair TokenPair
	if err := c.post(ctx, "/auth/refresh", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// ChangePassword rotates the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{CurrentPassword: current, NewPassword: next}
	return c.post(ctx, "/auth/change-password", body, nil)
}

// Logout tells the server to revoke the current tokens. Callers treat this
// as best-effort; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Me fetches the signed-in user's identity, roles and permissions.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
