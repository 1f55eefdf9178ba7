package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"client-wallet-service/internal/adapter/http/handler"
	"client-wallet-service/internal/adapter/http/middleware"
	"client-wallet-service/internal/adapter/storage/memory"
	redisStore "client-wallet-service/internal/adapter/storage/redis"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const site = "shop1.example.com"

type testApp struct {
	router     *gin.Engine
	token      string
	logs       *memory.LogStore
	adminHits  *atomic.Int32
	adminPaths chan string
}

// setupApp wires the real services over the in-memory stores and a fake
// site admin that accepts every relay.
func setupApp(t *testing.T, webhookLimit int) *testApp {
	t.Helper()
	app := &testApp{adminHits: &atomic.Int32{}, adminPaths: make(chan string, 16)}

	admin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.adminHits.Add(1)
		app.adminPaths <- r.URL.Path
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"message":{"success":true,"name":"VPL-0001"}}`))
	}))
	t.Cleanup(admin.Close)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	vault, err := service.NewIdentityVault(strings.Repeat("ab", 32), strings.Repeat("cd", 32))
	require.NoError(t, err)

	wallets := memory.NewWalletStore()
	txs := memory.NewTransactionStore()
	app.logs = memory.NewLogStore()
	attempts := memory.NewRelayStore()

	walletSvc := service.NewWalletService(wallets, wallets, txs, service.NewWalletPipeline(vault), nil,
		service.WalletSettings{IdentityPolicy: service.IdentityPolicyLenient}, zerolog.Nop())
	relay := service.NewAdminRelay(admin.Client(), admin.URL+"/{site_name}/wallet_log", 2*time.Second)
	settlementSvc := service.NewSettlementService(wallets, app.logs, attempts,
		redisStore.NewSettlementDeduper(rdb), nil, relay, service.SettlementSettings{}, zerolog.Nop())
	tokens := service.NewJWTTokenService("test-secret", time.Hour, "client-wallet-service")

	app.token, _, err = tokens.Generate("ops@example.com")
	require.NoError(t, err)

	app.router = handler.SetupRouter(handler.RouterDeps{
		Normalizer:     service.NewPayloadNormalizer(),
		WalletSvc:      walletSvc,
		SettlementSvc:  settlementSvc,
		TokenSvc:       tokens,
		RateLimitStore: redisStore.NewRateLimitStore(rdb),
		RateLimitRules: map[string]middleware.RateLimitRule{
			"webhook": {Limit: int64(webhookLimit), Window: time.Minute},
			"admin":   {Limit: 100, Window: time.Minute},
		},
		HealthCheckers: []ports.HealthChecker{redisStore.NewHealthCheck(rdb)},
		Mode:           gin.TestMode,
		Logger:         zerolog.Nop(),
	})
	return app
}

func (a *testApp) do(t *testing.T, method, path, contentType, body string, auth bool) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func announcement(data string) string {
	return `{"event":"wallet_created","data":` + data + `}`
}

func TestRouter_WalletLifecycle(t *testing.T) {
	app := setupApp(t, 100)

	// First wallet of a site becomes primary with sequence 1.
	code, resp := app.do(t, http.MethodPost, "/wallet-created", "application/json",
		announcement(`{"wallet_name":"Main","site_name":"`+site+`","account_number":"0123456789","identity_number":"123-456-789-01"}`), false)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Wallet created successfully", resp["message"])
	main := resp["wallet_data"].(map[string]interface{})
	assert.Equal(t, float64(1), main["wallet_sequence"])
	assert.Equal(t, true, main["is_primary_wallet"])
	assert.Equal(t, "Guest", main["created_by_user"])
	assert.Nil(t, resp["warning"])

	// Form-encoded announcement with a short identity number is saved with a warning.
	form := url.Values{}
	form.Set("event", "wallet_created")
	form.Set("data", `{"wallet_name":"Savings","site_name":"`+site+`","identity_number":"1234567890"}`)
	code, resp = app.do(t, http.MethodPost, "/wallet-created", "application/x-www-form-urlencoded", form.Encode(), false)
	require.Equal(t, http.StatusOK, code, resp)
	assert.NotEmpty(t, resp["warning"])
	savings := resp["wallet_data"].(map[string]interface{})
	assert.Equal(t, float64(2), savings["wallet_sequence"])
	assert.Equal(t, false, savings["is_primary_wallet"])

	// Admin listing is ordered by sequence.
	code, resp = app.do(t, http.MethodGet, "/api/v1/sites/"+site+"/wallets", "", "", true)
	require.Equal(t, http.StatusOK, code)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Main", items[0].(map[string]interface{})["wallet_name"])

	// Force the second wallet primary; the first loses the flag.
	savingsID := savings["wallet_id"].(string)
	code, _ = app.do(t, http.MethodPut, "/api/v1/sites/"+site+"/wallets/primary", "application/json",
		`{"wallet_id":"`+savingsID+`"}`, true)
	require.Equal(t, http.StatusOK, code)
	code, resp = app.do(t, http.MethodGet, "/api/v1/sites/"+site+"/wallets/primary", "", "", true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, savingsID, resp["data"].(map[string]interface{})["wallet_id"])

	// Ledger entries and balance.
	mainID := main["wallet_id"].(string)
	code, resp = app.do(t, http.MethodPost, "/api/v1/wallets/"+mainID+"/transactions", "application/json",
		`{"transaction_type":"Credit","amount":"100.50","reference":"REF-1"}`, true)
	require.Equal(t, http.StatusCreated, code, resp)
	assert.Equal(t, "ops@example.com", resp["data"].(map[string]interface{})["created_by"])
	code, _ = app.do(t, http.MethodPost, "/api/v1/wallets/"+mainID+"/transactions", "application/json",
		`{"transaction_type":"Debit","amount":"40","reference":"REF-2"}`, true)
	require.Equal(t, http.StatusCreated, code)
	code, resp = app.do(t, http.MethodPost, "/api/v1/wallets/"+mainID+"/transactions", "application/json",
		`{"transaction_type":"Debit","amount":"1","reference":"REF-2"}`, true)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "WAL_008", resp["error_code"])

	code, resp = app.do(t, http.MethodGet, "/api/v1/wallets/"+mainID+"/balance", "", "", true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "60.5", resp["data"].(map[string]interface{})["balance"])
}

func TestRouter_SettlementRelay(t *testing.T) {
	app := setupApp(t, 100)

	code, _ := app.do(t, http.MethodPost, "/wallet-created", "application/json",
		announcement(`{"wallet_name":"Main","site_name":"`+site+`","account_number":"0123456789"}`), false)
	require.Equal(t, http.StatusOK, code)

	settlement := `{"event":"wallet_created","data":{"accountNumber":"0123456789","transactionId":"TX-1","amount":5000.75,"narration":"invoice 42"}}`
	code, resp := app.do(t, http.MethodPost, "/wallet-log", "application/json", settlement, false)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, "Bank data saved successfully", resp["info"])
	assert.Equal(t, "VPL-0001", resp["admin_response"].(map[string]interface{})["name"])
	assert.Equal(t, "/"+site+"/wallet_log", <-app.adminPaths)

	// Replays of the same provider transaction are refused and not relayed again.
	code, resp = app.do(t, http.MethodPost, "/wallet-log", "application/json", settlement, false)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, int32(1), app.adminHits.Load())

	code, resp = app.do(t, http.MethodPost, "/wallet-log", "application/json",
		`{"event":"x","data":{"accountNumber":"999"}}`, false)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, resp["error"], "does not exist")

	code, resp = app.do(t, http.MethodPost, "/wallet-log", "application/json", `{"event":"x","data":{}}`, false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Account number is missing in transaction data.", resp["error"])

	code, resp = app.do(t, http.MethodGet, "/api/v1/wallets/WLT-"+site+"-00001/logs", "", "", true)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, float64(1), resp["data"].(map[string]interface{})["total"])
}

func TestRouter_BulkNamesMatchWebhookNames(t *testing.T) {
	app := setupApp(t, 100)

	code, resp := app.do(t, http.MethodPost, "/api/v1/sites/"+site+"/wallets/bulk", "application/json",
		`{"wallets":[{"wallet_name":" A&B ","description":"<b>ops</b>"}]}`, true)
	require.Equal(t, http.StatusCreated, code, resp)

	// Re-announcing the same name replaces the bulk-created wallet.
	code, resp = app.do(t, http.MethodPost, "/wallet-created", "application/json",
		announcement(`{"wallet_name":"A&B","site_name":"`+site+`"}`), false)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, "A&B", resp["wallet_data"].(map[string]interface{})["wallet_name"])

	code, resp = app.do(t, http.MethodGet, "/api/v1/sites/"+site+"/wallets", "", "", true)
	require.Equal(t, http.StatusOK, code)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "A&B", items[0].(map[string]interface{})["wallet_name"])
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["wallet_sequence"])
}

func TestRouter_MalformedWebhook(t *testing.T) {
	app := setupApp(t, 100)

	code, resp := app.do(t, http.MethodPost, "/wallet-created", "application/json", `{"event":`, false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Could not parse request data", resp["error"])

	code, resp = app.do(t, http.MethodPost, "/wallet-created", "application/json",
		`{"event":"wallet_deleted","data":{"wallet_name":"Main","site_name":"shop1"}}`, false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp["error"], "Unexpected event")

	for _, bad := range []string{"attacker.example/x?", "Shop One"} {
		code, resp = app.do(t, http.MethodPost, "/wallet-created", "application/json",
			announcement(`{"wallet_name":"Main","site_name":"`+bad+`"}`), false)
		assert.Equal(t, http.StatusBadRequest, code, bad)
		assert.Contains(t, resp["error"], "Invalid site_name", bad)
	}
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	app := setupApp(t, 100)

	code, resp := app.do(t, http.MethodGet, "/api/v1/sites/"+site+"/wallets", "", "", false)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_003", resp["error_code"])
}

func TestRouter_WebhookRateLimit(t *testing.T) {
	app := setupApp(t, 2)
	body := announcement(`{"wallet_name":"Main","site_name":"shop1"}`)

	for i := 0; i < 2; i++ {
		code, _ := app.do(t, http.MethodPost, "/wallet-created", "application/json", body, false)
		assert.Equal(t, http.StatusOK, code)
	}
	code, resp := app.do(t, http.MethodPost, "/wallet-created", "application/json", body, false)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, false, resp["success"])
}

func TestRouter_Health(t *testing.T) {
	app := setupApp(t, 100)

	code, resp := app.do(t, http.MethodGet, "/health", "", "", false)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])
}
