package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestAuthService_Login(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/auth/login/" {
			t.Errorf("expected /auth/login/, got %s", r.URL.Path)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Username != "alice" || req.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "abc123"})
	})

	resp, err := client.Auth.Login(context.Background(), LoginRequest{
		Username: "alice",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Access != "abc123" {
		t.Errorf("expected access token 'abc123', got %q", resp.Access)
	}
	if got := client.tokens.Get(); got != "abc123" {
		t.Errorf("expected token persisted to store, got %q", got)
	}
	if got := client.Session().Token(); got != "abc123" {
		t.Errorf("expected session token 'abc123', got %q", got)
	}
	if client.Session().User() != nil {
		t.Error("expected user to stay nil until Me is called")
	}
}

func TestAuthService_LoginFailure(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	})

	_, err := client.Auth.Login(context.Background(), LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := IsAPIError(err)
	if !ok || apiErr.Message != "Invalid credentials" {
		t.Errorf("expected normalized credentials error, got %v", err)
	}

	// A failed login leaves auth state untouched.
	if client.Session().Token() != "" {
		t.Error("expected no session token after failed login")
	}
	if client.tokens.Get() != "" {
		t.Error("expected no persisted token after failed login")
	}
}

func TestAuthService_Register(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register/" {
			t.Errorf("expected /auth/register/, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "User created successfully"})
	})

	resp, err := client.Auth.Register(context.Background(), RegisterRequest{
		Username: "bob",
		Password: "secret",
		Email:    "bob@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Detail != "User created successfully" {
		t.Errorf("unexpected detail: %q", resp.Detail)
	}
	// Register never establishes a session.
	if client.Session().Token() != "" {
		t.Error("expected no session token after register")
	}
}

func TestAuthService_Me(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me/" {
			t.Errorf("expected /auth/me/, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer abc123" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(User{ID: 7, Username: "alice", Email: "alice@example.com"})
	})

	client.session.setToken("abc123")

	user, err := client.Auth.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != 7 || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if got := client.Session().User(); got == nil || got.ID != 7 {
		t.Errorf("expected session user resolved, got %+v", got)
	}
}

func TestAuthService_Logout(t *testing.T) {
	client := NewClient("https://shop.example.com")
	client.session.setToken("abc123")
	client.session.setUser(&User{ID: 7, Username: "alice"})
	if err := client.tokens.Set("abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.Auth.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.tokens.Get() != "" {
		t.Error("expected token store cleared after logout")
	}
	if client.Session().Token() != "" {
		t.Error("expected session token cleared after logout")
	}
	if client.Session().User() != nil {
		t.Error("expected session user cleared after logout")
	}
}
