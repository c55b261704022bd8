package storefront

import "context"

// AuthService handles authentication and session lifecycle.
type AuthService struct {
	client *Client
}

// LoginRequest is the request for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response from a successful login.
type LoginResponse struct {
	// Access is the bearer token for subsequent requests.
	Access string `json:"access"`
	// Refresh is accepted from the server but unused: token renewal is
	// not part of this client.
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest is the request for creating an account.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// DetailResponse is the generic {detail} acknowledgement the API returns
// for commands that produce no resource.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Login authenticates with the API and, on success, persists the returned
// token and updates the session. The session user stays unresolved until Me
// is called.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/login/", req, &resp); err != nil {
		return nil, err
	}

	s.client.session.setToken(resp.Access)
	if err := s.client.tokens.Set(resp.Access); err != nil {
		s.client.logger.Warn("failed to persist token", "error", err)
	}
	return &resp, nil
}

// Register creates a new account. It does not establish a session: callers
// must Login separately.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*DetailResponse, error) {
	var resp DetailResponse
	if err := s.client.post(ctx, "/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the authenticated user and records it on the session.
// Requires a valid token.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/auth/me/", &user); err != nil {
		return nil, err
	}
	s.client.session.setUser(&user)
	return &user, nil
}

// Logout clears the session and the persisted token. No server call is
// made.
func (s *AuthService) Logout() error {
	s.client.session.clear()
	return s.client.tokens.Delete()
}
