package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
// ガード用ストアが使えない間はフェイルクローズになるため、レディネスで外部に知らせます
type HealthHandler struct {
	checkers     map[string]HealthChecker
	storeBackend string
	timeout      time.Duration
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler(storeBackend string) *HealthHandler {
	return &HealthHandler{
		checkers:     make(map[string]HealthChecker),
		storeBackend: storeBackend,
		timeout:      2 * time.Second,
	}
}

// RegisterChecker はヘルスチェッカーを登録します
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status       string                   `json:"status"`
	StoreBackend string                   `json:"store_backend"`
	Services     map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready はレディネスチェックを実行します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services := make(map[string]ServiceStatus, len(h.checkers))
	allHealthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()

			err := checker.Health(ctx)
			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				services[name] = ServiceStatus{Status: "unhealthy", Message: err.Error()}
				allHealthy = false
				return
			}
			services[name] = ServiceStatus{Status: "healthy"}
		}(name, checker)
	}

	wg.Wait()

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadyResponse{
		Status:       status,
		StoreBackend: h.storeBackend,
		Services:     services,
	})
}
