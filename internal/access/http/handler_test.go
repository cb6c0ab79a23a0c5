package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/locker-access-backend/internal/access"
	"github.com/nekogravitycat/locker-access-backend/internal/auth"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
)

const (
	testUserID    = "5a7a4a1e-788f-4b5e-9ef7-0a34a66745a1"
	testBookingID = "b7f0c3d8-3a52-4b8f-8f93-2d6a1c6a0e11"
)

// stubAccessService returns a canned decision and captures its inputs.
type stubAccessService struct {
	gotUserID    string
	gotBookingID string
	gotTime      time.Time

	result *access.Result
	err    error
}

func (s *stubAccessService) AuthorizeOpen(_ context.Context, userID, bookingID string, requestTime time.Time) (*access.Result, error) {
	s.gotUserID = userID
	s.gotBookingID = bookingID
	s.gotTime = requestTime
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupRouter(t *testing.T, svc access.Service, now time.Time) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken(testUserID, "u1@example.com")
	require.NoError(t, err)

	r := gin.New()
	h := NewHandler(svc, clock.Fixed{T: now})
	RegisterRoutes(r.Group("/v1"), h, auth.AuthRequired(jwtManager))

	return r, token
}

func doOpen(r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/v1/access/open", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenReturnsSuccessBody(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc := &stubAccessService{
		result: &access.Result{
			BookingID:  testBookingID,
			LockerID:   "1fd9a40f-13c1-44bb-9c03-8f2bb1f4a701",
			LockerName: "Locker 12",
		},
	}
	r, token := setupRouter(t, svc, now)

	w := doOpen(r, token, `{"booking_id":"`+testBookingID+`"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp OpenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testBookingID, resp.BookingID)
	assert.Contains(t, resp.Message, "Locker 12")

	// The handler resolves identity from the token and pins the evaluation
	// instant from its clock.
	assert.Equal(t, testUserID, svc.gotUserID)
	assert.Equal(t, testBookingID, svc.gotBookingID)
	assert.True(t, svc.gotTime.Equal(now))
}

func TestOpenRequiresBearerToken(t *testing.T) {
	svc := &stubAccessService{}
	r, _ := setupRouter(t, svc, time.Now())

	w := doOpen(r, "", `{"booking_id":"`+testBookingID+`"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// The authorizer is never reached.
	assert.Empty(t, svc.gotBookingID)
}

func TestOpenRejectsMalformedToken(t *testing.T) {
	svc := &stubAccessService{}
	r, _ := setupRouter(t, svc, time.Now())

	w := doOpen(r, "not-a-jwt", `{"booking_id":"`+testBookingID+`"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.gotBookingID)
}

func TestOpenValidatesBody(t *testing.T) {
	svc := &stubAccessService{}
	r, token := setupRouter(t, svc, time.Now())

	for name, body := range map[string]string{
		"missing booking id": `{}`,
		"not a uuid":         `{"booking_id":"locker-42"}`,
		"not json":           `booking`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doOpen(r, token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, svc.gotBookingID)
}

func TestOpenMapsDenialsToGenericErrors(t *testing.T) {
	cases := map[string]struct {
		err        error
		wantStatus int
		wantError  string
	}{
		"not found": {
			err:        access.ErrBookingNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "booking not found",
		},
		"not active": {
			err:        access.ErrBookingNotActive,
			wantStatus: http.StatusForbidden,
			wantError:  "booking is not active",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubAccessService{err: tc.err}
			r, token := setupRouter(t, svc, time.Now())

			w := doOpen(r, token, `{"booking_id":"`+testBookingID+`"}`)

			require.Equal(t, tc.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantError, resp["error"])
		})
	}
}

func TestOpenHidesInternalErrors(t *testing.T) {
	svc := &stubAccessService{err: assert.AnError}
	r, token := setupRouter(t, svc, time.Now())

	w := doOpen(r, token, `{"booking_id":"`+testBookingID+`"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp["error"])
}
