package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/http/middleware"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory stand-in for the remote record store,
// speaking the same wire protocol the datastore client expects.
type memStore struct {
	mu          sync.Mutex
	collections map[string][]map[string]interface{}
	nextID      int
	server      *httptest.Server
}

func newMemStore(t *testing.T) *memStore {
	s := &memStore{collections: map[string][]map[string]interface{}{}}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *memStore) seed(model string, row map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[model] = append(s.collections[model], row)
}

func (s *memStore) rows(model string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]interface{}{}, s.collections[model]...)
}

func (s *memStore) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/"), "/")
	if len(parts) != 2 {
		http.Error(w, "bad path", http.StatusNotFound)
		return
	}
	model, op := parts[0], parts[1]

	var body struct {
		Data  map[string]interface{} `json:"data"`
		Where map[string]interface{} `json:"where"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch op {
	case "findMany":
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		take, _ := strconv.Atoi(r.URL.Query().Get("take"))
		rows := s.collections[model]
		if skip > len(rows) {
			skip = len(rows)
		}
		end := skip + take
		if take <= 0 || end > len(rows) {
			end = len(rows)
		}
		writeData(w, rows[skip:end])

	case "create":
		s.nextID++
		row := map[string]interface{}{}
		for k, v := range body.Data {
			row[k] = v
		}
		row["id"] = fmt.Sprintf("%s-%d", strings.ToLower(model), s.nextID)
		// Distinct timestamps so newest-row selection is deterministic
		row["createdAt"] = time.Now().Add(time.Duration(s.nextID) * time.Millisecond).UTC().Format(time.RFC3339Nano)
		row["updatedAt"] = row["createdAt"]
		s.collections[model] = append(s.collections[model], row)
		writeData(w, row)

	case "update":
		for _, row := range s.collections[model] {
			if matches(row, body.Where) {
				for k, v := range body.Data {
					row[k] = v
				}
				writeData(w, row)
				return
			}
		}
		http.Error(w, `{"error":"Record to update not found"}`, http.StatusNotFound)

	case "delete", "deleteMany":
		var kept []map[string]interface{}
		count := 0
		for _, row := range s.collections[model] {
			if matches(row, body.Where) {
				count++
				continue
			}
			kept = append(kept, row)
		}
		s.collections[model] = kept
		writeData(w, map[string]interface{}{"count": count})

	default:
		http.Error(w, "unknown op", http.StatusNotFound)
	}
}

func matches(row, where map[string]interface{}) bool {
	for k, want := range where {
		if cond, ok := want.(map[string]interface{}); ok {
			// Only the expiresAt {"lt": ...} operator is used here
			if lt, ok := cond["lt"].(string); ok {
				have, _ := row[k].(string)
				if !(have != "" && have < lt) {
					return false
				}
				continue
			}
			return false
		}
		if row[k] != want {
			return false
		}
	}
	return true
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

// apiResponse mirrors the response envelope
type apiResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *memStore) {
	cfg := &config.Config{
		AppMode: "dev",
		Port:    "8000",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			Algorithm:        "HS256",
			CitizenTokenDays: 7,
			AdminTokenHours:  8,
		},
		OTP: config.OTPConfig{Length: 6, ExpiryMinutes: 1},
		SMS: config.SMSConfig{Service: "console"},
	}
	config.AppConfig = cfg

	store := newMemStore(t)
	client := datastore.New(store.server.URL, 5*time.Second)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, client, cfg)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, *apiResponse) {
	t.Helper()
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, &parsed
}

func seedVoter(store *memStore, code string, active bool) {
	store.seed("VoterId", map[string]interface{}{
		"id": "voter-" + code, "voterId": code, "isActive": active,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func seedAdmin(t *testing.T, store *memStore, email, pass string) {
	t.Helper()
	hash, err := password.Hash(pass)
	require.NoError(t, err)
	store.seed("Admin", map[string]interface{}{
		"id": "admin-1", "firstName": "Asha", "lastName": "Rao",
		"email": email, "password": hash, "isActive": true,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func TestCitizenEndToEnd(t *testing.T) {
	app, store := newTestApp(t)
	seedVoter(store, "ABC123", true)

	// Request OTP
	status, resp := doJSON(t, app, "POST", "/api/auth/send-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "voterId": "ABC123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(60), resp.Data["expires_in"])

	otps := store.rows("OTP")
	require.Len(t, otps, 1)
	code := otps[0]["otp"].(string)
	require.Len(t, code, 6)

	// Verify OTP
	status, resp = doJSON(t, app, "POST", "/api/auth/verify-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "otp": code, "voterId": "ABC123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", resp.Data["token_type"])
	assert.Equal(t, float64(604800), resp.Data["expires_in"])
	token := resp.Data["access_token"].(string)
	require.NotEmpty(t, token)

	// A user and a session now exist
	require.Len(t, store.rows("User"), 1)
	require.Len(t, store.rows("Session"), 1)

	// getSelf
	status, resp = doJSON(t, app, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "9000000001", resp.Data["phoneNumber"])

	// Logout kills every session, which revokes the still-signed token
	status, _ = doJSON(t, app, "POST", "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCitizenVerifyIsSingleUse(t *testing.T) {
	app, store := newTestApp(t)
	seedVoter(store, "ABC123", true)

	status, _ := doJSON(t, app, "POST", "/api/auth/send-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "voterId": "ABC123",
	})
	require.Equal(t, http.StatusOK, status)
	code := store.rows("OTP")[0]["otp"].(string)

	status, _ = doJSON(t, app, "POST", "/api/auth/verify-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "otp": code, "voterId": "ABC123",
	})
	require.Equal(t, http.StatusOK, status)

	status, resp := doJSON(t, app, "POST", "/api/auth/verify-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "otp": code, "voterId": "ABC123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "OTP already used", resp.Error)
}

func TestVoterGateBlocksBeforeOTPCreation(t *testing.T) {
	app, store := newTestApp(t)
	seedVoter(store, "INACTIVE1", false)

	status, resp := doJSON(t, app, "POST", "/api/auth/send-otp", "", fiber.Map{
		"phoneNumber": "9000000010", "voterId": "MISSING",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid voter ID", resp.Error)

	status, _ = doJSON(t, app, "POST", "/api/auth/send-otp", "", fiber.Map{
		"phoneNumber": "9000000010", "voterId": "INACTIVE1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.Empty(t, store.rows("OTP"), "no OTP row may exist after rejection")
}

func TestValidateVoterIDPublic(t *testing.T) {
	app, store := newTestApp(t)
	seedVoter(store, "ABC123", true)

	status, resp := doJSON(t, app, "GET", "/api/auth/validate-voter-id/ABC123", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp.Data["is_valid"])
	assert.Equal(t, "ABC123", resp.Data["voter_id"])

	status, resp = doJSON(t, app, "GET", "/api/auth/validate-voter-id/NOPE", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, resp.Data["is_valid"])
}

func TestAdminEndToEnd(t *testing.T) {
	app, store := newTestApp(t)
	seedAdmin(t, store, "admin@example.org", "secret-password")

	// Wrong password: uniform rejection, lastLogin untouched
	status, resp := doJSON(t, app, "POST", "/api/admin/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid admin credentials", resp.Error)
	assert.Nil(t, store.rows("Admin")[0]["lastLogin"])

	// Correct password
	status, resp = doJSON(t, app, "POST", "/api/admin/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "secret-password",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(28800), resp.Data["expires_in"])
	assert.Equal(t, "admin", resp.Data["user_type"])
	assert.NotNil(t, store.rows("Admin")[0]["lastLogin"])
	token := resp.Data["access_token"].(string)

	status, resp = doJSON(t, app, "GET", "/api/admin/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin@example.org", resp.Data["email"])
	assert.Nil(t, resp.Data["password"], "hash never leaves the server")

	status, resp = doJSON(t, app, "GET", "/api/admin/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp.Data["valid"])

	// Stateless logout still answers 200
	status, _ = doJSON(t, app, "POST", "/api/admin/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestTokenKindIsolationAtRoutes(t *testing.T) {
	app, store := newTestApp(t)
	seedVoter(store, "ABC123", true)
	seedAdmin(t, store, "admin@example.org", "secret-password")

	// Citizen token
	_, _ = doJSON(t, app, "POST", "/api/auth/send-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "voterId": "ABC123",
	})
	code := store.rows("OTP")[0]["otp"].(string)
	_, resp := doJSON(t, app, "POST", "/api/auth/verify-otp", "", fiber.Map{
		"phoneNumber": "9000000001", "otp": code, "voterId": "ABC123",
	})
	citizenToken := resp.Data["access_token"].(string)

	// Admin token
	_, resp = doJSON(t, app, "POST", "/api/admin/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "secret-password",
	})
	adminToken := resp.Data["access_token"].(string)

	status, _ := doJSON(t, app, "GET", "/api/admin/auth/me", citizenToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "citizen token must not satisfy the admin resolver")

	status, _ = doJSON(t, app, "GET", "/api/auth/me", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "admin token must not satisfy the citizen resolver")
}

func TestAdminUserManagement(t *testing.T) {
	app, store := newTestApp(t)
	seedAdmin(t, store, "admin@example.org", "secret-password")
	store.seed("User", map[string]interface{}{
		"id": "user-1", "phoneNumber": "9000000001", "voterId": "ABC123",
		"isActive": true, "createdAt": time.Now().UTC().Format(time.RFC3339),
	})

	_, resp := doJSON(t, app, "POST", "/api/admin/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "secret-password",
	})
	token := resp.Data["access_token"].(string)

	status, resp := doJSON(t, app, "GET", "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, status)
	users := resp.Data["users"].([]interface{})
	assert.Len(t, users, 1)

	status, resp = doJSON(t, app, "GET", "/api/admin/users/user-1", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "9000000001", resp.Data["phoneNumber"])

	// Delete deactivates, never hard-deletes
	status, _ = doJSON(t, app, "DELETE", "/api/admin/users/user-1", token, nil)
	require.Equal(t, http.StatusOK, status)
	rows := store.rows("User")
	require.Len(t, rows, 1)
	assert.Equal(t, false, rows[0]["isActive"])
}

func TestAdminSelfDeleteForbidden(t *testing.T) {
	app, store := newTestApp(t)
	seedAdmin(t, store, "admin@example.org", "secret-password")

	_, resp := doJSON(t, app, "POST", "/api/admin/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "secret-password",
	})
	token := resp.Data["access_token"].(string)

	status, resp := doJSON(t, app, "DELETE", "/api/admin/auth/delete/admin-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cannot delete your own account", resp.Error)
	assert.Len(t, store.rows("Admin"), 1)
}
