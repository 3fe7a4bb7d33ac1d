package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruit-api/config"
	"recruit-api/internal/api/routes"
	"recruit-api/internal/app"
	"recruit-api/internal/services"
	"recruit-api/internal/storage/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "root@recruit.test"
	adminPassword = "root-password"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	app    *app.Application
}

func setupTestRouter(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "routes-secret", Issuer: "test", TTL: time.Hour},
		Email:   config.EmailConfig{Mode: "development", DevCode: "123456", VerificationTTL: 15 * time.Minute},
		Uploads: config.UploadsConfig{Dir: t.TempDir(), PublicURL: "/uploads", MaxBytes: 1 << 20},
	}
	a := app.New(cfg, memory.New(), memory.NewCache())
	t.Cleanup(a.Close)
	require.NoError(t, services.EnsureSuperAdmin(context.Background(), a.Deps, "Root", adminEmail, adminPassword))

	router := gin.New()
	routes.RegisterRoutes(router, a)
	return &testAPI{t: t, router: router, app: a}
}

// do sends body as JSON and decodes the response into out when non-nil.
func (api *testAPI) do(method, path, token string, body any, out any) int {
	api.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(api.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(api.t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
	return w.Code
}

type session struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (api *testAPI) register(body map[string]any) session {
	api.t.Helper()
	var s session
	require.Equal(api.t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/auth/register", "", body, &s))
	require.NotEmpty(api.t, s.Token)

	var verified session
	code := api.do(http.MethodPost, "/api/v1/auth/verify-email", s.Token, map[string]any{"code": "123456"}, &verified)
	require.Equal(api.t, http.StatusOK, code)
	return verified
}

func (api *testAPI) login(email, password string) string {
	api.t.Helper()
	var s session
	code := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": email, "password": password}, &s)
	require.Equal(api.t, http.StatusOK, code)
	return s.Token
}

func TestRegisterRoutes(t *testing.T) {
	api := setupTestRouter(t)

	registered := map[string]bool{}
	for _, r := range api.router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	expectedRoutes := []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/offers",
		"GET /api/v1/offers/:id",
		"POST /api/v1/recruiter/offers",
		"POST /api/v1/applications",
		"PATCH /api/v1/recruiter/applications/:id/status",
		"POST /api/v1/recruiter/applications/:id/interviews",
		"POST /api/v1/admin/offers/:id/moderation",
		"POST /api/v1/admin/recruiters/:id/validate",
		"GET /api/v1/admin/logs",
		"PUT /api/v1/admin/settings/email-mode",
		"GET /api/v1/admin/admins",
		"POST /api/v1/admin/admins",
		"PATCH /api/v1/admin/admins/:id/permissions",
		"DELETE /api/v1/admin/admins/:id",
		"POST /api/v1/admin/companies",
		"POST /api/v1/admin/offers/:id/proposals",
		"POST /api/v1/notifications/read-all",
		"GET /health",
		"GET /ready",
		"GET /metrics",
	}
	for _, route := range expectedRoutes {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
}

func TestAuthAndRoleGuards(t *testing.T) {
	api := setupTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/auth/me", "", nil, nil))

	candidate := api.register(map[string]any{
		"name": "Amel", "email": "amel@example.com", "password": "password123", "role": "candidate",
	})
	var me struct {
		User struct {
			Email         string `json:"email"`
			EmailVerified bool   `json:"emailVerified"`
		} `json:"user"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/auth/me", candidate.Token, nil, &me))
	assert.Equal(t, "amel@example.com", me.User.Email)

	var errBody map[string]any
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/admin/users", candidate.Token, nil, &errBody))
	assert.Equal(t, "Insufficient role for this resource", errBody["error"])
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/recruiter/offers", candidate.Token, map[string]any{}, nil))

	// Validation failures carry per-field details.
	var validation struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	code := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"name": "X", "email": "nope", "password": "short", "role": "candidate"}, &validation)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", validation.Error)
	assert.Contains(t, validation.Details, "Email")

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "amel@example.com", "password": "wrong-password"}, nil))

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/v1/auth/logout", candidate.Token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/auth/me", candidate.Token, nil, nil))
}

func TestRecruitmentFlow(t *testing.T) {
	api := setupTestRouter(t)
	admin := api.login(adminEmail, adminPassword)

	recruiter := api.register(map[string]any{
		"name": "Karim", "email": "karim@acme.test", "password": "password123", "role": "recruiter",
		"company": map[string]any{"name": "Acme"},
	})

	var recProfile struct {
		ID        string `json:"id"`
		CompanyID string `json:"companyId"`
		Status    string `json:"status"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/recruiter/me", recruiter.Token, nil, &recProfile))
	assert.Equal(t, "pending_validation", recProfile.Status)

	// Not validated yet: the precondition code tells the client why.
	var precondition map[string]any
	offerBody := map[string]any{
		"title": "Backend engineer", "description": "Build and run the platform",
		"location": "Alger", "contractType": "CDI",
	}
	require.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/recruiter/offers", recruiter.Token, offerBody, &precondition))
	assert.Equal(t, "RECRUITER_NOT_VALIDATED", precondition["code"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/companies/"+recProfile.CompanyID+"/activate", admin, nil, nil))
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/recruiters/"+recProfile.ID+"/validate", admin, nil, nil))

	var offer struct {
		ID               string `json:"id"`
		ValidationStatus string `json:"validationStatus"`
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/recruiter/offers", recruiter.Token, offerBody, &offer))
	assert.Equal(t, "pending", offer.ValidationStatus)

	// Pending offers stay out of the public catalogue.
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/offers/"+offer.ID, "", nil, nil))

	var rejected map[string]any
	code := api.do(http.MethodPost, "/api/v1/admin/offers/"+offer.ID+"/moderation", admin, map[string]any{"decision": "rejected"}, &rejected)
	assert.Equal(t, http.StatusBadRequest, code, "a rejection needs a reason")

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/offers/"+offer.ID+"/moderation", admin, map[string]any{"decision": "approved"}, nil))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/offers/"+offer.ID, "", nil, nil))

	var second map[string]any
	code = api.do(http.MethodPost, "/api/v1/admin/offers/"+offer.ID+"/moderation", admin, map[string]any{"decision": "rejected", "reason": "too late"}, &second)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "approved", second["current"])
	assert.Equal(t, "rejected", second["requested"])

	candidate := api.register(map[string]any{
		"name": "Amel", "email": "amel@example.com", "password": "password123", "role": "candidate",
	})
	var application struct {
		ID              string `json:"id"`
		RecruiterStatus string `json:"recruiterStatus"`
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/applications", candidate.Token, map[string]any{"offerId": offer.ID}, &application))
	assert.Equal(t, "nouvelle", application.RecruiterStatus)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/applications", candidate.Token, map[string]any{"offerId": offer.ID}, nil))

	var transition map[string]any
	code = api.do(http.MethodPatch, "/api/v1/recruiter/applications/"+application.ID+"/status", recruiter.Token, map[string]any{"status": "retenue"}, &transition)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid status transition", transition["error"])
	assert.Equal(t, "nouvelle", transition["current"])
	assert.Equal(t, "retenue", transition["requested"])

	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/v1/recruiter/applications/"+application.ID+"/status", recruiter.Token, map[string]any{"status": "refusee", "note": "profil trop junior"}, &application))
	assert.Equal(t, "refusee", application.RecruiterStatus)

	var inbox struct {
		Unread int `json:"unread"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/notifications", candidate.Token, nil, &inbox))
	assert.GreaterOrEqual(t, inbox.Unread, 1)

	var logs []map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/admin/logs?targetType=offer", admin, nil, &logs))
	assert.NotEmpty(t, logs)
}

func TestBanEndsExistingSessions(t *testing.T) {
	api := setupTestRouter(t)
	admin := api.login(adminEmail, adminPassword)
	candidate := api.register(map[string]any{
		"name": "Amel", "email": "amel@example.com", "password": "password123", "role": "candidate",
	})
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/applications", candidate.Token, nil, nil))

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/users/"+candidate.User.ID+"/ban", admin, map[string]any{"reason": "fraude"}, nil))

	var errBody map[string]any
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/auth/me", candidate.Token, nil, &errBody))
	assert.Equal(t, "Account is suspended or banned", errBody["error"])
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/applications", candidate.Token, nil, nil))
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "amel@example.com", "password": "password123"}, nil))

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/users/"+candidate.User.ID+"/reactivate", admin, nil, nil))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/auth/me", candidate.Token, nil, nil))
}

func TestAdminAccountAndCompanyRoutes(t *testing.T) {
	api := setupTestRouter(t)
	root := api.login(adminEmail, adminPassword)

	var account struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Admin struct {
			Label       string          `json:"label"`
			Permissions map[string]bool `json:"permissions"`
		} `json:"admin"`
	}
	body := map[string]any{
		"name": "Nadia", "email": "nadia@recruit.test", "password": "moderator-pass",
		"label": "moderator", "permissions": []string{"manage_companies"},
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/admin/admins", root, body, &account))
	assert.Equal(t, "moderator", account.Admin.Label)
	assert.True(t, account.Admin.Permissions["manage_companies"])
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/admin/admins", root, body, nil))

	moderator := api.login("nadia@recruit.test", "moderator-pass")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/admin/admins", moderator, nil, nil))

	var company struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/admin/companies", moderator, map[string]any{"name": "Cevital"}, &company))
	assert.Equal(t, "active", company.Status)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/admin/companies/"+company.ID+"/activate", moderator, nil, nil))
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/admin/companies/"+company.ID+"/reject", moderator, map[string]any{"reason": "doublon"}, nil))

	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/v1/admin/admins/"+account.User.ID+"/permissions", root,
		map[string]any{"permissions": []string{"view_logs"}}, &account))
	assert.False(t, account.Admin.Permissions["manage_companies"])
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/admin/companies", moderator, map[string]any{"name": "Other"}, nil))

	var admins []map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/admin/admins", root, nil, &admins))
	assert.Len(t, admins, 2)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/admin/admins/"+account.User.ID, root, nil, nil))
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/auth/me", moderator, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "nadia@recruit.test", "password": "moderator-pass"}, nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/api/v1/admin/admins/"+account.User.ID, root, nil, nil))

	var logs []map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/admin/logs?targetType=admin", root, nil, &logs))
	assert.Len(t, logs, 3)
}

func TestProposeCandidateRoute(t *testing.T) {
	api := setupTestRouter(t)
	admin := api.login(adminEmail, adminPassword)

	var company struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/admin/companies", admin, map[string]any{"name": "Acme"}, &company))
	recruiter := api.register(map[string]any{
		"name": "Karim", "email": "karim@acme.test", "password": "password123", "role": "recruiter",
		"company": map[string]any{"id": company.ID},
	})
	var recProfile struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/recruiter/me", recruiter.Token, nil, &recProfile))
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/recruiters/"+recProfile.ID+"/validate", admin, nil, nil))

	publish := func(mode string) string {
		var offer struct {
			ID string `json:"id"`
		}
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/recruiter/offers", recruiter.Token, map[string]any{
			"title": "Data analyst", "description": "Dashboards and reporting",
			"location": "Oran", "contractType": "CDD", "candidateSearchMode": mode,
		}, &offer))
		require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/admin/offers/"+offer.ID+"/moderation", admin, map[string]any{"decision": "approved"}, nil))
		return offer.ID
	}
	manual := publish("manual")
	disabled := publish("disabled")

	candidate := api.register(map[string]any{
		"name": "Amel", "email": "amel@example.com", "password": "password123", "role": "candidate",
	})
	proposal := map[string]any{"candidateId": candidate.User.ID, "note": "Profil adapté"}

	var app struct {
		Source string `json:"source"`
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/admin/offers/"+manual+"/proposals", admin, proposal, &app))
	assert.Equal(t, "admin_proposal", app.Source)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/admin/offers/"+manual+"/proposals", admin, proposal, nil))

	var precondition map[string]any
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/admin/offers/"+disabled+"/proposals", admin, proposal, &precondition))
	assert.Equal(t, "CANDIDATE_SEARCH_DISABLED", precondition["code"])

	var mine []map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/applications", candidate.Token, nil, &mine))
	assert.Len(t, mine, 1)
}

func TestHealthAndMetrics(t *testing.T) {
	api := setupTestRouter(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", nil, nil))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/ready", "", nil, nil))

	api.app.Checks["database"] = func(context.Context) error { return assert.AnError }
	var ready map[string]any
	assert.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodGet, "/ready", "", nil, &ready))
	assert.Equal(t, "degraded", ready["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
