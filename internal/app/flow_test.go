package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rathore23/auth-microservice/internal/config"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/auth"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/database"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/repositories"
	"github.com/Rathore23/auth-microservice/internal/mocks"
)

var (
	emailCode = regexp.MustCompile(`OTP is (\d{4})`)
	resetLink = regexp.MustCompile(`/forgot-password/([0-9a-f-]{36})/`)
)

type flow struct {
	t        *testing.T
	c        *Container
	notifier *mocks.MockNotificationService
}

// newFlow wires the real container over sqlite, miniredis and an in-memory policy store
func newFlow(t *testing.T) *flow {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	mr := miniredis.RunT(t)
	cas, err := auth.NewMemoryCasbinService()
	require.NoError(t, err)

	notifier := mocks.NewMockNotificationService()
	c := &Container{
		Config: &config.Config{
			PublicURL:   "http://localhost:8000",
			JWTSecret:   "flow-test-secret",
			JWTIssuer:   "authsvc",
			AccessTTL:   5 * time.Minute,
			RefreshTTL:  time.Hour,
			OTPTTL:      5 * time.Minute,
			OTPEchoCode: true,
			ResetTTL:    15 * time.Minute,
		},
		Logger:          zap.NewNop(),
		DB:              db,
		RedisClient:     redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Enforcer:        cas.E,
		NotificationSvc: notifier,
		PasswordSvc:     auth.NewPasswordServiceWithCost(bcrypt.MinCost),
	}
	require.NoError(t, c.wire())
	t.Cleanup(func() { _ = c.Close() })

	return &flow{t: t, c: c, notifier: notifier}
}

func (f *flow) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.c.Router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func (f *flow) register(username, email, phone, role string) {
	f.t.Helper()
	status, body := f.do(http.MethodPost, "/registration", "", map[string]interface{}{
		"email":      email,
		"phone":      phone,
		"password":   "Secret123!",
		"first_name": "Test",
		"last_name":  "User",
		"username":   username,
		"role":       role,
	})
	require.Equal(f.t, http.StatusCreated, status, body)
}

func (f *flow) login(identifier, password string) (access, refresh string) {
	f.t.Helper()
	status, body := f.do(http.MethodPost, "/auth/login", "", map[string]interface{}{"email": identifier, "password": password})
	require.Equal(f.t, http.StatusOK, status, body)
	return body["access"].(string), body["refresh"].(string)
}

func (f *flow) lastEmailMatch(re *regexp.Regexp) string {
	f.t.Helper()
	msg, ok := f.notifier.Last()
	require.True(f.t, ok, "no notification sent")
	m := re.FindStringSubmatch(msg.Body)
	require.Len(f.t, m, 2, "unexpected body %q", msg.Body)
	return m[1]
}

func TestFlow_RegistrationAndEmailVerification(t *testing.T) {
	f := newFlow(t)
	before := time.Now()

	f.register("alice", "a@x.com", "+15550001", "manager")

	var rows []repositories.DBUserOTP
	require.NoError(t, f.c.DB.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.WithinDuration(t, before.Add(5*time.Minute), rows[0].ExpirationTime, 5*time.Second)
	assert.False(t, rows[0].IsVerified)

	user, err := f.c.UserRepo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, user.IsEmailVerified)

	code, err := strconv.Atoi(f.lastEmailMatch(emailCode))
	require.NoError(t, err)

	status, body := f.do(http.MethodPost, "/registration/otp-verify", "", map[string]interface{}{"email": "a@x.com", "otp": code})
	require.Equal(t, http.StatusOK, status, body)

	user, err = f.c.UserRepo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.IsEmailVerified)

	status, _ = f.do(http.MethodPost, "/registration/otp-verify", "", map[string]interface{}{"email": "a@x.com", "otp": code})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(http.MethodPost, "/registration/resent-otp", "", map[string]interface{}{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, status, "verified emails get no new code")
}

func TestFlow_DuplicateRegistration(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")

	status, body := f.do(http.MethodPost, "/registration", "", map[string]interface{}{
		"email": "A@X.com", "phone": "+15550002", "password": "Secret123!",
		"first_name": "A", "last_name": "B", "username": "alice2", "role": "employee",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email", body["field"])
}

func TestFlow_OTPLoginIsSingleUse(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")

	status, body := f.do(http.MethodPost, "/auth/send-otp", "", map[string]interface{}{"phone": "+15550001"})
	require.Equal(t, http.StatusOK, status, body)
	code := int(body["otp"].(float64))

	sms, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "sms", sms.Channel)
	assert.Equal(t, "+15550001", sms.To)

	creds := map[string]interface{}{"phone": "+15550001", "otp": code}
	status, body = f.do(http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status, body)
	assert.NotEmpty(t, body["access"])
	assert.NotEmpty(t, body["refresh"])
	assert.Equal(t, "alice", body["username"])

	status, body = f.do(http.MethodPost, "/auth/login", "", creds)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotContains(t, body, "access")
}

func TestFlow_LoginValidation(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"both branches", map[string]interface{}{"email": "a@x.com", "password": "Secret123!", "phone": "+15550001", "otp": 1234}},
		{"neither branch", map[string]interface{}{"email": "a@x.com"}},
		{"wrong password", map[string]interface{}{"email": "a@x.com", "password": "nope-nope"}},
		{"unknown user", map[string]interface{}{"email": "ghost@x.com", "password": "Secret123!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := f.do(http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}

	// username and email are both accepted, case-insensitively
	f.login("ALICE", "Secret123!")
	f.login("a@x.com", "Secret123!")
}

func TestFlow_RefreshAndLogout(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")
	access, refresh := f.login("alice", "Secret123!")

	status, body := f.do(http.MethodPost, "/auth/refresh", "", map[string]interface{}{"refresh": refresh})
	require.Equal(t, http.StatusOK, status, body)
	assert.NotEmpty(t, body["access"])

	status, _ = f.do(http.MethodDelete, "/auth/logout", "", map[string]interface{}{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, status, "logout requires authentication")

	status, _ = f.do(http.MethodDelete, "/auth/logout", access, map[string]interface{}{"refresh": access})
	assert.Equal(t, http.StatusBadRequest, status, "an access token is not a refresh token")

	status, _ = f.do(http.MethodDelete, "/auth/logout", access, map[string]interface{}{"refresh": refresh})
	assert.Equal(t, http.StatusResetContent, status)

	status, _ = f.do(http.MethodPost, "/auth/refresh", "", map[string]interface{}{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.do(http.MethodDelete, "/auth/logout", access, map[string]interface{}{"refresh": refresh})
	assert.Equal(t, http.StatusResetContent, status, "revoking twice is not an error")

	status, _ = f.do(http.MethodPost, "/auth/refresh", "", map[string]interface{}{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFlow_ProductOwnership(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")
	f.register("bob", "b@x.com", "+15550002", "employee")
	aliceToken, _ := f.login("alice", "Secret123!")
	bobToken, _ := f.login("bob", "Secret123!")

	status, _ := f.do(http.MethodPost, "/products", bobToken, map[string]interface{}{"name": "Nope", "price": "1.00"})
	assert.Equal(t, http.StatusForbidden, status, "employees cannot create")

	status, body := f.do(http.MethodPost, "/products", aliceToken, map[string]interface{}{"name": "Widget", "description": "blue", "price": "9.99"})
	require.Equal(t, http.StatusCreated, status, body)
	path := "/products/" + strconv.Itoa(int(body["id"].(float64)))

	status, _ = f.do(http.MethodPatch, path, bobToken, map[string]interface{}{"name": "Stolen"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(http.MethodPatch, path, "", map[string]interface{}{"name": "Stolen"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = f.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Widget", body["name"], "denied writes leave the product unchanged")
	assert.Equal(t, "9.99", body["price"])

	status, body = f.do(http.MethodPatch, path, aliceToken, map[string]interface{}{"price": 12})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "12", body["price"])

	status, _ = f.do(http.MethodPut, path, aliceToken, map[string]interface{}{"name": "X", "price": "1"})
	assert.Equal(t, http.StatusForbidden, status, "full replace is staff only")

	status, _ = f.do(http.MethodDelete, path, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = f.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFlow_SelfServiceAccounts(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")
	f.register("bob", "b@x.com", "+15550002", "employee")
	alice, err := f.c.UserRepo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := f.c.UserRepo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	bobToken, _ := f.login("bob", "Secret123!")
	alicePath := "/accounts/" + strconv.Itoa(int(alice.ID))
	bobPath := "/accounts/" + strconv.Itoa(int(bob.ID))

	status, _ := f.do(http.MethodGet, alicePath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(http.MethodGet, bobPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := f.do(http.MethodPatch, bobPath, bobToken, map[string]interface{}{"last_name": "Builder", "role": "admin"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Builder", body["last_name"])
	assert.Equal(t, "employee", body["role"])

	status, _ = f.do(http.MethodPatch, bobPath, bobToken, map[string]interface{}{"phone": "+15550001"})
	assert.Equal(t, http.StatusBadRequest, status, "phone numbers are unique")

	status, _ = f.do(http.MethodDelete, bobPath, bobToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = f.do(http.MethodGet, bobPath, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "inactive users lose access")

	status, body = f.do(http.MethodPost, "/auth/login", "", map[string]interface{}{"email": "bob", "password": "Secret123!"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotContains(t, body, "access")
}

func TestFlow_PasswordReset(t *testing.T) {
	f := newFlow(t)
	f.register("alice", "a@x.com", "+15550001", "manager")

	status, _ := f.do(http.MethodPost, "/registration/reset-password-email", "", map[string]interface{}{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := f.do(http.MethodPost, "/registration/reset-password-email", "", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, status, body)
	ticket := f.lastEmailMatch(resetLink)

	status, body = f.do(http.MethodPost, "/registration/reset-password/"+ticket, "", map[string]interface{}{"password": "Brand-new-9"})
	require.Equal(t, http.StatusOK, status, body)

	status, _ = f.do(http.MethodPost, "/registration/reset-password/"+ticket, "", map[string]interface{}{"password": "Another-1x"})
	assert.Equal(t, http.StatusNotFound, status, "tickets are single use")

	status, _ = f.do(http.MethodPost, "/auth/login", "", map[string]interface{}{"email": "alice", "password": "Secret123!"})
	assert.Equal(t, http.StatusBadRequest, status)
	f.login("alice", "Brand-new-9")
}

func TestFlow_StaffManagesRoleGrants(t *testing.T) {
	f := newFlow(t)
	f.register("root", "root@x.com", "+15550003", "admin")
	f.register("bob", "b@x.com", "+15550002", "employee")
	require.NoError(t, f.c.DB.Model(&repositories.DBUser{}).Where("username = ?", "root").Update("is_staff", true).Error)
	rootToken, _ := f.login("root", "Secret123!")
	bobToken, _ := f.login("bob", "Secret123!")
	grant := map[string]interface{}{"sub": "employee", "obj": "product", "act": "create"}
	product := map[string]interface{}{"name": "Gizmo", "price": "3.50"}

	status, _ := f.do(http.MethodPost, "/admin/policies", bobToken, grant)
	assert.Equal(t, http.StatusForbidden, status, "only staff manage grants")

	status, _ = f.do(http.MethodPost, "/products", bobToken, product)
	require.Equal(t, http.StatusForbidden, status)

	status, body := f.do(http.MethodPost, "/admin/policies", rootToken, grant)
	require.Equal(t, http.StatusNoContent, status, body)

	status, body = f.do(http.MethodPost, "/products", bobToken, product)
	assert.Equal(t, http.StatusCreated, status, body)

	status, _ = f.do(http.MethodDelete, "/admin/policies", rootToken, grant)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = f.do(http.MethodPost, "/products", bobToken, product)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestFlow_Health(t *testing.T) {
	f := newFlow(t)
	status, body := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}
