package git

import (
	"os"
	"path/filepath"
	"testing"

	"mercator-hq/minerva/pkg/config"
)

func TestBasicAuth_GetAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			username: "deploy",
			password: "s3cret",
			wantErr:  false,
		},
		{
			name:     "empty username",
			username: "",
			password: "s3cret",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewBasicAuth(tt.username, tt.password)

			if auth.Type() != "basic" {
				t.Errorf("Type() = %v, want %v", auth.Type(), "basic")
			}

			_, err := auth.GetAuth()
			if (err != nil) != tt.wantErr {
				t.Errorf("GetAuth() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenAuth_GetAuth(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   "ghp_validtoken123",
			wantErr: false,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewTokenAuth(tt.token)

			if auth.Type() != "token" {
				t.Errorf("Type() = %v, want %v", auth.Type(), "token")
			}

			_, err := auth.GetAuth()
			if (err != nil) != tt.wantErr {
				t.Errorf("GetAuth() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSSHAuth_GetAuth(t *testing.T) {
	tmpDir := t.TempDir()

	wrongPermsPath := filepath.Join(tmpDir, "wrong_perms_key")
	if err := os.WriteFile(wrongPermsPath, []byte("dummy key content"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		keyPath string
		wantErr bool
	}{
		{
			name:    "empty key path",
			keyPath: "",
			wantErr: true,
		},
		{
			name:    "missing key file",
			keyPath: filepath.Join(tmpDir, "does_not_exist"),
			wantErr: true,
		},
		{
			name:    "permissions too open",
			keyPath: wrongPermsPath,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewSSHAuth(tt.keyPath, "")

			if auth.Type() != "ssh" {
				t.Errorf("Type() = %v, want %v", auth.Type(), "ssh")
			}

			_, err := auth.GetAuth()
			if (err != nil) != tt.wantErr {
				t.Errorf("GetAuth() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoAuth_GetAuth(t *testing.T) {
	auth := NewNoAuth()

	if auth.Type() != "none" {
		t.Errorf("Type() = %v, want %v", auth.Type(), "none")
	}

	method, err := auth.GetAuth()
	if err != nil {
		t.Fatalf("GetAuth() error = %v", err)
	}
	if method != nil {
		t.Errorf("GetAuth() = %v, want nil", method)
	}
}

func TestNewAuthProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.GitAuthConfig
		wantType string
		wantErr  bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name:     "empty type defaults to none",
			cfg:      &config.GitAuthConfig{},
			wantType: "none",
		},
		{
			name:     "explicit none",
			cfg:      &config.GitAuthConfig{Type: "none"},
			wantType: "none",
		},
		{
			name:     "basic",
			cfg:      &config.GitAuthConfig{Type: "basic", Username: "deploy", Password: "s3cret"},
			wantType: "basic",
		},
		{
			name:    "basic without username",
			cfg:     &config.GitAuthConfig{Type: "basic"},
			wantErr: true,
		},
		{
			name:     "token",
			cfg:      &config.GitAuthConfig{Type: "token", Token: "tok"},
			wantType: "token",
		},
		{
			name:    "token without token",
			cfg:     &config.GitAuthConfig{Type: "token"},
			wantErr: true,
		},
		{
			name:     "ssh",
			cfg:      &config.GitAuthConfig{Type: "ssh", SSHKeyPath: "/keys/id_ed25519"},
			wantType: "ssh",
		},
		{
			name:    "ssh without key path",
			cfg:     &config.GitAuthConfig{Type: "ssh"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cfg:     &config.GitAuthConfig{Type: "kerberos"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewAuthProvider(tt.cfg)

			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAuthProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if provider.Type() != tt.wantType {
				t.Errorf("Type() = %v, want %v", provider.Type(), tt.wantType)
			}
		})
	}
}
