package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/castello-soft/stock-ledger/internal/auth"
	api "github.com/castello-soft/stock-ledger/internal/http"
	handler "github.com/castello-soft/stock-ledger/internal/http/handlers"
	rl "github.com/castello-soft/stock-ledger/internal/http/rate_limiter"
	"github.com/castello-soft/stock-ledger/internal/ledger"
	"github.com/castello-soft/stock-ledger/internal/models"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

var (
	token        string
	itemRepo     *repo.InMemoryItemRepository
	movementRepo *repo.InMemoryMovementRepository
	userRepo     *repo.InMemoryUserRepository
)

func init() {
	auth.Configure("test-secret", time.Minute)
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	itemRepo = repo.NewInMemoryItemRepository()
	movementRepo = repo.NewInMemoryMovementRepository()
	runner := repo.NewInMemoryTxRunner(itemRepo, movementRepo)
	handler.SetLedgerService(ledger.NewService(itemRepo, movementRepo, runner))

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(itemRepo, movementRepo)
}

func clearAllItems() {
	itemRepo.Clear()
	movementRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := postCredentials(r, "/login", username, password)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// postCredentials resets the rate limiter first so credential-endpoint tests
// never trip the per-IP burst; httptest gives every request the same address.
func postCredentials(r http.Handler, path, username, password string) *httptest.ResponseRecorder {
	rl.CleanupAllVisitors()

	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, item handler.ItemRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(item)
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerMovement(r http.Handler, m handler.MovementRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(m)
	req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r http.Handler, path string, out any) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w, fmt.Errorf("decoding %s response: %v", path, err)
		}
	}
	return w, nil
}

func floatPtr(v float64) *float64 { return &v }
