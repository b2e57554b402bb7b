package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/icedout/league-system/middleware"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type stubNegotiationService struct {
	submittedBy []int64
}

func (s *stubNegotiationService) Load(_ context.Context) error { return nil }

func (s *stubNegotiationService) SubmitPick(_ context.Context, userID int64, _ models.Match, _ models.ArbitraryPick) (services.Outcome, error) {
	s.submittedBy = append(s.submittedBy, userID)
	return services.OutcomeAwaitingOpponent, nil
}

func (s *stubNegotiationService) SubmitBackupPick(_ context.Context, userID int64, _ models.Match, _ models.ArbitraryPick) (services.Outcome, error) {
	s.submittedBy = append(s.submittedBy, userID)
	return services.OutcomeAnnounced, nil
}

func (s *stubNegotiationService) AddMatch(_ context.Context, _ models.Match) error { return nil }

func (s *stubNegotiationService) ResetWeek(_ context.Context, _ int) error { return nil }

func (s *stubNegotiationService) ResetTier(_ context.Context, _ int, _ models.Tier) error {
	return nil
}

func (s *stubNegotiationService) NextMatch(_ int64, _ int) (*models.Match, error) {
	return &models.Match{ID1: 100, ID2: 200, Tier: models.TierB, Week: 1}, nil
}

func (s *stubNegotiationService) WhoPickedSummary(_ int, _ *models.Tier) string { return "" }

func (s *stubNegotiationService) VetoedMaps(_ int64, _ models.Match) ([]models.Map, error) {
	return nil, nil
}

type stubSettingsService struct{}

func (s *stubSettingsService) CurrentWeek(_ context.Context) (int, error) { return 1, nil }

func (s *stubSettingsService) ChangeWeek(_ context.Context, _ int) error { return nil }

func signTestToken(t *testing.T, userID int64, role models.UserRole) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func submitPickBody(t *testing.T, userID int64) []byte {
	t.Helper()
	body, err := json.Marshal(submitPickRequest{
		UserID: userID,
		Match:  models.Match{ID1: 100, ID2: 200, Tier: models.TierB, Week: 1},
		Pick: models.ArbitraryPick{
			WorldMapPicks:   []models.Map{{Name: "alpha"}},
			WorldMapVetoes:  []models.Map{{Name: "beta"}},
			CountryMapPicks: []models.Map{{Name: "canada"}},
		},
	})
	require.NoError(t, err)
	return body
}

func doSubmitPick(stub *stubNegotiationService, body []byte, token string) *httptest.ResponseRecorder {
	h := NewPickHandler(stub, &stubSettingsService{})
	handler := middleware.Authenticate([]byte(testJWTSecret))(http.HandlerFunc(h.SubmitPick))

	req := httptest.NewRequest(http.MethodPost, "/picks", bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSubmitPickActsForSelf(t *testing.T) {
	stub := &stubNegotiationService{}

	rr := doSubmitPick(stub, submitPickBody(t, 100), signTestToken(t, 100, models.RolePlayer))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{100}, stub.submittedBy)
}

func TestSubmitPickRejectsForeignUserID(t *testing.T) {
	stub := &stubNegotiationService{}

	// Игрок 999 пытается подать пики от имени игрока 100.
	rr := doSubmitPick(stub, submitPickBody(t, 100), signTestToken(t, 999, models.RolePlayer))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, stub.submittedBy)
}

func TestSubmitPickModeratorActsForAnyone(t *testing.T) {
	stub := &stubNegotiationService{}

	rr := doSubmitPick(stub, submitPickBody(t, 100), signTestToken(t, 999, models.RoleModerator))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{100}, stub.submittedBy)
}

func TestSubmitPickRequiresToken(t *testing.T) {
	stub := &stubNegotiationService{}

	rr := doSubmitPick(stub, submitPickBody(t, 100), "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, stub.submittedBy)
}

func TestNextMatchRejectsForeignUserID(t *testing.T) {
	stub := &stubNegotiationService{}
	h := NewPickHandler(stub, &stubSettingsService{})
	handler := middleware.Authenticate([]byte(testJWTSecret))(http.HandlerFunc(h.NextMatch))

	req := httptest.NewRequest(http.MethodGet, "/matches/next?user_id=100", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 999, models.RolePlayer))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/matches/next?user_id=100", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 100, models.RolePlayer))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
