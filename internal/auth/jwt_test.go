package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	mgr, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	userID := uuid.New()
	propertyID := uuid.New()

	token, err := mgr.GenerateToken(userID, propertyID, "gm@hotel.example", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.PropertyID != propertyID {
		t.Errorf("PropertyID = %s, want %s", claims.PropertyID, propertyID)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Role = %s, want %s", claims.Role, RoleAdmin)
	}
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	mgr, _ := NewJWTManager("test-secret", time.Hour)
	token, _ := mgr.GenerateToken(uuid.New(), uuid.New(), "gm@hotel.example", RoleViewer)

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token parts, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	if _, err := mgr.ValidateToken(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	mgr, _ := NewJWTManager("secret-a", time.Hour)
	other, _ := NewJWTManager("secret-b", time.Hour)

	token, _ := mgr.GenerateToken(uuid.New(), uuid.New(), "gm@hotel.example", RoleEditor)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	mgr, _ := NewJWTManager("test-secret", -time.Minute)
	token, _ := mgr.GenerateToken(uuid.New(), uuid.New(), "gm@hotel.example", RoleAdmin)

	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Error("expected empty secret to be rejected")
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"editor", true},
		{"viewer", true},
		{"owner", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidRole(tt.role); got != tt.want {
			t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
