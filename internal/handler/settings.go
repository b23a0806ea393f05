package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hotelmind/backend/internal/auth"
	"github.com/hotelmind/backend/internal/crypto"
	"github.com/hotelmind/backend/internal/model"
	"github.com/hotelmind/backend/internal/repository"
)

// SettingsHandler manages the property profile, its preferences and the
// rate-shopper credential kept encrypted at rest.
type SettingsHandler struct {
	properties repository.PropertyRepository
	encKey     []byte
}

func NewSettingsHandler(properties repository.PropertyRepository, masterKey string) *SettingsHandler {
	return &SettingsHandler{
		properties: properties,
		encKey:     crypto.DeriveKey(masterKey),
	}
}

// GetProperty returns the property with its profile and settings.
func (h *SettingsHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	property, err := h.properties.GetByID(ctx, propID)
	if err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// UpdateProfile replaces the property profile. Admin only: the profile
// drives which KPI formulas apply.
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	var profile model.PropertyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if profile.TotalRooms <= 0 {
		writeError(w, http.StatusBadRequest, "camereTotali must be positive")
		return
	}
	if profile.Stars < 0 || profile.Stars > 5 {
		writeError(w, http.StatusBadRequest, "stelle must be within [0,5]")
		return
	}
	if profile.OperatingModel == "" {
		profile.OperatingModel = model.OperatingYearRound
	}
	if profile.OperatingModel == model.OperatingSeasonal && profile.OperatingDaysYear <= 0 {
		writeError(w, http.StatusBadRequest, "giorniAperturaAnnui required for seasonal properties")
		return
	}

	property, err := h.properties.GetByID(ctx, propID)
	if err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	property.Profile = profile

	if err := h.properties.Update(ctx, property); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// GetSettings returns the property preferences.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	property, err := h.properties.GetByID(ctx, propID)
	if err != nil {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, property.Settings)
}

// UpdateSettings replaces the property preferences. Admin only.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	var settings model.PropertySettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = model.CurrencyEUR
	}
	if settings.Timezone == "" {
		settings.Timezone = "Europe/Rome"
	}

	if err := h.properties.UpdateSettings(ctx, propID, settings); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SetRateShopperCredential stores the rate-shopper API credential
// encrypted with AES-GCM. The plaintext is never persisted or echoed.
func (h *SettingsHandler) SetRateShopperCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}
	if !isAdmin(r) {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	var req struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Credential == "" {
		writeError(w, http.StatusBadRequest, "credential is required")
		return
	}

	encrypted, err := crypto.Encrypt([]byte(req.Credential), h.encKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encrypt credential")
		return
	}

	if err := h.properties.SetRateShopperCredential(ctx, propID, encrypted); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store credential")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// RateShopperCredentialStatus reports whether a usable credential is on
// file without ever returning it. A stored blob that no longer decrypts
// under the current master key counts as not configured.
func (h *SettingsHandler) RateShopperCredentialStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propID, ok := propertyID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing property scope")
		return
	}

	encrypted, err := h.properties.GetRateShopperCredential(ctx, propID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load credential")
		return
	}

	configured := false
	if len(encrypted) > 0 {
		_, decErr := crypto.Decrypt(encrypted, h.encKey)
		configured = decErr == nil
	}
	writeJSON(w, http.StatusOK, map[string]bool{"configured": configured})
}

func isAdmin(r *http.Request) bool {
	claims := auth.GetClaimsFromContext(r.Context())
	return claims != nil && claims.Role == auth.RoleAdmin
}
