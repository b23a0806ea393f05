package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/auth"
	"github.com/hotelmind/backend/internal/crypto"
	"github.com/hotelmind/backend/internal/model"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "created" {
		t.Errorf("body = %v, want status created", body)
	}
}

func TestWriteError_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, "invalid period")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != "invalid period" {
		t.Errorf("error = %q, want %q", resp.Error, "invalid period")
	}
}

// fakePropertyRepo serves a single property and its stored credential blob.
type fakePropertyRepo struct {
	property   *model.Property
	credential []byte
}

func (f *fakePropertyRepo) Create(ctx context.Context, property *model.Property) error { return nil }
func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	return f.property, nil
}
func (f *fakePropertyRepo) List(ctx context.Context) ([]*model.Property, error) {
	return []*model.Property{f.property}, nil
}
func (f *fakePropertyRepo) Update(ctx context.Context, property *model.Property) error { return nil }
func (f *fakePropertyRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings model.PropertySettings) error {
	return nil
}
func (f *fakePropertyRepo) SetRateShopperCredential(ctx context.Context, id uuid.UUID, encrypted []byte) error {
	f.credential = encrypted
	return nil
}
func (f *fakePropertyRepo) GetRateShopperCredential(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return f.credential, nil
}
func (f *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func authenticatedRequest(method, target string, propID uuid.UUID) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	claims := &auth.Claims{
		UserID:     uuid.New(),
		PropertyID: propID,
		Email:      "admin@bellavista.it",
		Role:       auth.RoleAdmin,
		Exp:        time.Now().Add(time.Hour).Unix(),
	}
	return r.WithContext(auth.ContextWithClaims(r.Context(), claims))
}

func TestRateShopperCredentialStatus(t *testing.T) {
	const masterKey = "hotelmind-master-key"
	propID := uuid.New()
	property := &model.Property{Name: "Hotel Bellavista"}
	property.ID = propID

	encrypted, err := crypto.Encrypt([]byte("rate-shopper-secret"), crypto.DeriveKey(masterKey))
	if err != nil {
		t.Fatalf("encrypting fixture: %v", err)
	}
	foreign, err := crypto.Encrypt([]byte("rate-shopper-secret"), crypto.DeriveKey("another-key"))
	if err != nil {
		t.Fatalf("encrypting fixture: %v", err)
	}

	tests := []struct {
		name       string
		credential []byte
		want       bool
	}{
		{"no credential stored", nil, false},
		{"credential decrypts", encrypted, true},
		{"credential under a rotated key", foreign, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePropertyRepo{property: property, credential: tt.credential}
			h := NewSettingsHandler(repo, masterKey)

			w := httptest.NewRecorder()
			h.RateShopperCredentialStatus(w, authenticatedRequest("GET", "/settings/rate-shopper", propID))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			var resp map[string]bool
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp["configured"] != tt.want {
				t.Errorf("configured = %v, want %v", resp["configured"], tt.want)
			}
		})
	}
}
