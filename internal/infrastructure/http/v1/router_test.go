package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain/crud"
	"hoteldash/internal/domain/session"
	"hoteldash/internal/domain/stats"
	"hoteldash/internal/infrastructure/dataops"
	"hoteldash/internal/schema"
	"hoteldash/pkg/logger"
)

// upstream fakes the data operations backend for end-to-end router tests.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /dataops/login/byusernamepassword", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "boss" && r.URL.Query().Get("password") == "secret" {
			writeJSON(w, map[string]any{"lid": 1, "eid": 42, "username": "boss", "position": "Administrator"})
			return
		}
		if r.URL.Query().Get("username") == "clerk" && r.URL.Query().Get("password") == "secret" {
			writeJSON(w, map[string]any{"lid": 2, "eid": 7, "username": "clerk", "position": "Regular"})
			return
		}
		writeJSON(w, "Not Found")
	})

	mux.HandleFunc("GET /dataops/chains", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"chid": -1, "cname": "placeholder", "springmkup": 0, "summermkup": 0},
			{"chid": 3, "cname": "Coastal", "springmkup": 1.1, "summermkup": 1.25},
		})
	})
	mux.HandleFunc("GET /dataops/chains/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"chid": 3, "cname": "Coastal", "springmkup": 1.1, "summermkup": 1.25})
	})
	mux.HandleFunc("POST /dataops/chains", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["chid"] = 4
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /dataops/hotel/bychid/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"hid": 11, "chid": 3, "hname": "Seaside"}})
	})

	mux.HandleFunc("GET /dataops/employee", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"eid": -1, "fname": "placeholder"},
			{"eid": 42, "fname": "Boss"},
			{"eid": 7, "fname": "Clerk"},
		})
	})
	mux.HandleFunc("GET /dataops/login/byemployeeid/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"lid": 1, "eid": 42, "username": "boss"})
	})
	mux.HandleFunc("GET /dataops/login/byemployeeid/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "Not Found")
	})
	mux.HandleFunc("GET /dataops/login/byusername", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "boss" {
			writeJSON(w, map[string]any{"lid": 1, "eid": 42, "username": "boss"})
			return
		}
		writeJSON(w, "Not Found")
	})
	mux.HandleFunc("POST /dataops/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["lid"] = 9
		writeJSON(w, body)
	})

	mux.HandleFunc("POST /dataops/most/revenue", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"Chain": "Coastal", "Revenue": 90500.0}})
	})
	mux.HandleFunc("POST /dataops/hotel/5/roomtype", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "The hotel's chain is not accessible to this employee")
	})

	return httptest.NewServer(mux)
}

func newTestRouter(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()

	registry := schema.NewRegistry()
	registry.Register(schema.EntityDef{
		Name:       "chain",
		Label:      "chain",
		PathPrefix: "/dataops/chains",
		IDField:    "chid",
		Fields: []schema.FieldDef{
			{Name: "cname", Label: "Chain Name", Type: schema.TypeText, Required: true},
			{Name: "springmkup", Label: "Spring Markup", Type: schema.TypeReal, Required: true},
			{Name: "summermkup", Label: "Summer Markup", Type: schema.TypeReal, Required: true},
		},
		Dependents: []schema.DependentDef{{Entity: "hotel", Lookup: "bychid"}},
	})
	registry.Register(schema.EntityDef{
		Name:       "hotel",
		Label:      "hotel",
		PathPrefix: "/dataops/hotel",
		IDField:    "hid",
		Fields: []schema.FieldDef{
			{Name: "chid", Type: schema.TypeReference, ReferenceTo: "chain", Required: true},
			{Name: "hname", Type: schema.TypeText, Required: true},
			{Name: "hcity", Type: schema.TypeText, Required: true},
		},
	})
	registry.Register(schema.EntityDef{
		Name:       "employee",
		Label:      "employee",
		PathPrefix: "/dataops/employee",
		IDField:    "eid",
		Fields: []schema.FieldDef{
			{Name: "fname", Type: schema.TypeText, Required: true},
		},
	})
	registry.Register(schema.EntityDef{
		Name:       "login",
		Label:      "login",
		PathPrefix: "/dataops/login",
		IDField:    "lid",
		Fields: []schema.FieldDef{
			{Name: "eid", Type: schema.TypeReference, ReferenceTo: "employee", Required: true},
			{Name: "username", Type: schema.TypeText, Required: true},
			{Name: "password", Type: schema.TypeText, Required: true},
		},
		Uniques: []schema.UniqueRule{
			{Field: "eid", Lookup: "byemployeeid", Kind: schema.LookupPath, Message: "There is already an account for this Employee ID"},
			{Field: "username", Lookup: "byusername", Kind: schema.LookupQuery, Message: "This username is already taken"},
		},
	})

	client := dataops.NewClient(upstreamURL, 5*time.Second)
	orchestrator := crud.NewOrchestrator(registry, client)
	policy := session.NewPolicy()
	jwtService := session.NewJWTService(session.DefaultJWTConfig("router-test-secret-16b"))
	sessionService := session.NewService(client, jwtService)
	statsService := stats.NewService(client, policy)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Logger:         log,
		JWTValidator:   jwtService,
		SessionService: sessionService,
		Policy:         policy,
		Registry:       registry,
		Orchestrator:   orchestrator,
		StatsService:   statsService,
		Backend:        client,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginAndList(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entities/chain", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestRegister_NoSessionNeeded(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"values": map[string]string{
			"eid":      "7",
			"username": "newclerk",
			"password": "hunter22",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "newclerk")
}

func TestRegister_EmployeeAlreadyHasAccount(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"values": map[string]string{
			"eid":      "42",
			"username": "bossagain",
			"password": "hunter22",
		},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "There is already an account for this Employee ID")
}

func TestRegister_UsernameTaken(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"values": map[string]string{
			"eid":      "7",
			"username": "boss",
			"password": "hunter22",
		},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This username is already taken")
}

func TestSession_ReturnsAuthenticatedEmployee(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Username string `json:"username"`
		Position string `json:"position"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "boss", resp.Username)
	assert.Equal(t, "Administrator", resp.Position)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "boss", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Username or Password is incorrect")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entities/chain", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreate_AdminHappyPath(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/entities/chain", token, map[string]any{
		"values": map[string]string{
			"cname":      "Mountain",
			"springmkup": "1.05",
			"summermkup": "1.30",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Mountain")
}

func TestCreate_MissingFields(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/entities/chain", token, map[string]any{
		"values": map[string]string{"cname": "Mountain"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill all the required fields")
}

func TestCreate_PositionForbidden(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "clerk", "secret")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/entities/chain", token, map[string]any{
		"values": map[string]string{
			"cname":      "Mountain",
			"springmkup": "1.05",
			"summermkup": "1.30",
		},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDelete_BlockedByDependentHotel(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodDelete, "/api/v1/entities/chain/records/3", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "There is a hotel associated with this chain")
}

func TestChoices_ExcludesSentinel(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/entities/hotel/choices/chid", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		IDs []int `json:"ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int{3}, resp.IDs)
}

func TestGlobalStats_AdminOnly(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	adminToken := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/global/revenue", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Coastal")

	clerkToken := login(t, router, "clerk", "secret")
	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats/global/revenue", clerkToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGlobalStats_ListsReportNames(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "clerk", "secret")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/global", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []string `json:"items"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Count)
	assert.Contains(t, resp.Items, "revenue")
	assert.Contains(t, resp.Items, "paymentmethod")
}

func TestHotelStats_DenialSentinelSurfacedVerbatim(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "clerk", "secret")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/hotel/5/roomtype", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "The hotel's chain is not accessible to this employee")
}

func TestMeta_ListsEntities(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	token := login(t, router, "boss", "secret")
	rec := doJSON(t, router, http.MethodGet, "/api/v1/meta", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chain")
	assert.Contains(t, rec.Body.String(), "hotel")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/meta/chain", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cname")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/meta/garage", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := upstream(t)
	defer srv.Close()
	router := newTestRouter(t, srv.URL)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
