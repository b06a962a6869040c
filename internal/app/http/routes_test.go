package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artmarket-backend/config"
	routes "artmarket-backend/internal/app/http"
	"artmarket-backend/internal/checkout"
	"artmarket-backend/internal/domain/artworks"
	"artmarket-backend/internal/infra/aiverify"
	"artmarket-backend/internal/infra/filestore"
	"artmarket-backend/internal/ingest"
	"artmarket-backend/internal/store"
)

const testJWTSecret = "routes-test-secret-key-long-enough-for-hs256"

type passVerifier struct{}

func (passVerifier) Verify(_ context.Context, _ string, _ []byte) aiverify.Result {
	return aiverify.Result{
		ModelVersion: "art-authenticity-v2",
		ScoreHuman:   0.93,
		Verdict:      string(artworks.VerdictPass),
		Explanations: []string{"brushwork texture consistent with human painting"},
	}
}

func newApp(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = testJWTSecret
	config.GOOGLE_CLIENT_ID = ""

	st := store.NewMemory()
	disk, err := filestore.NewDisk(t.TempDir())
	require.NoError(t, err)

	pipeline := ingest.New(st, disk, nil, passVerifier{})
	svc := checkout.New(st, false, "http://localhost:5173", "eur")

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Store:         st,
		Pipeline:      pipeline,
		Checkout:      svc,
		Delivery:      disk,
		Disk:          disk,
		WebhookSecret: "",
	})
	return r, st
}

func uploadRequest(t *testing.T, title string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", "piece.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfakepixels"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/artworks", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	r, _ := newApp(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestUploadBrowseAndBuy(t *testing.T) {
	r, st := newApp(t)

	// Upload as a guest.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "Night Harbor"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		PriceCents   int64  `json:"price_cents"`
		FileURL      string `json:"file_url"`
		Verification *struct {
			Verdict string `json:"verdict"`
		} `json:"verification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Night Harbor", created.Title)
	assert.Equal(t, int64(500), created.PriceCents)
	require.NotNil(t, created.Verification)
	assert.Equal(t, "pass", created.Verification.Verdict)

	// Browse it back.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/artworks/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	// The uploaded bytes are served under /files.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, created.FileURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	// Buy it. No payment provider configured, so the order settles immediately.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/checkout/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checkoutResp struct {
		Simulated bool   `json:"simulated"`
		OrderID   string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	assert.True(t, checkoutResp.Simulated)

	order, err := st.OrderByID(checkoutResp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", string(order.Status))
	assert.Equal(t, created.ID, order.ArtworkID)
}

func TestRegisterLoginMe(t *testing.T) {
	r, _ := newApp(t)

	register := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret123"}`))
	register.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, register)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	login := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret123"}`))
	login.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, login)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	me := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	me.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, me)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "ana@example.com")
}

func TestMeRequiresToken(t *testing.T) {
	r, _ := newApp(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookWithoutSecretIsAcknowledged(t *testing.T) {
	r, _ := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook",
		strings.NewReader(`{"type":"checkout.session.completed"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func signRoleToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"email":   "op@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestAdminRoutesAreGated(t *testing.T) {
	r, _ := newApp(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "no token")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signRoleToken(t, "user"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "plain user")

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signRoleToken(t, "admin"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "admin")
}
