package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/soar-qa/juiceshop-e2e/internal/handlers"
	"github.com/soar-qa/juiceshop-e2e/internal/repository"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestOpenOrderRepository_MemoryWithoutPostgres(t *testing.T) {
	orders, closeFn, err := OpenOrderRepository(envFrom(nil))
	if err != nil {
		t.Fatalf("OpenOrderRepository() error = %v", err)
	}
	defer closeFn()

	if _, ok := orders.(*repository.MemoryOrderRepository); !ok {
		t.Errorf("expected the memory repository, got %T", orders)
	}
}

func TestOpenOrderRepository_IncompletePostgres(t *testing.T) {
	_, _, err := OpenOrderRepository(envFrom(map[string]string{"POSTGRES_USER": "shop"}))
	if err == nil {
		t.Fatal("expected error for incomplete Postgres settings")
	}
	if !strings.Contains(err.Error(), "POSTGRES_PASSWORD is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildServerDependencies_InvalidTemplateDir(t *testing.T) {
	_, err := BuildServerDependencies("/invalid/path", envFrom(nil), repository.NewMemoryOrderRepository())
	if err == nil {
		t.Error("expected error but got none")
	}
}

func TestBuildServerDependencies_ServesStorefront(t *testing.T) {
	deps, err := BuildServerDependencies("../../templates", envFrom(map[string]string{"PORT": "3123"}), repository.NewMemoryOrderRepository())
	if err != nil {
		t.Fatalf("BuildServerDependencies() error = %v", err)
	}
	if deps.ServerConfig.Port != "3123" {
		t.Errorf("expected port 3123, got %s", deps.ServerConfig.Port)
	}

	server := httptest.NewServer(NewMux(deps))
	defer server.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	resp, err := client.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "OWASP Juice Shop") {
		t.Fatalf("unexpected catalog response %d", resp.StatusCode)
	}

	resp, err = client.PostForm(server.URL+"/basket/add", url.Values{"productId": {"8"}, "size": {"36"}})
	if err != nil {
		t.Fatalf("POST /basket/add failed: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.Request.URL.RequestURI() != "/?size=36" {
		t.Errorf("expected to land on /?size=36, got %s", resp.Request.URL.RequestURI())
	}
	if !strings.Contains(string(body), "Placed Apple Pomace into basket.") {
		t.Error("expected the basket acknowledgment")
	}

	resp, err = client.Get(server.URL + "/rest/basket")
	if err != nil {
		t.Fatalf("GET /rest/basket failed: %v", err)
	}
	defer resp.Body.Close()
	var basket handlers.BasketResponse
	if err := json.NewDecoder(resp.Body).Decode(&basket); err != nil {
		t.Fatalf("Failed to decode basket: %v", err)
	}
	if len(basket.Lines) != 1 || basket.Total != 89 {
		t.Errorf("unexpected basket %+v", basket)
	}

	resp, err = client.Post(server.URL+"/basket", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /basket failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405 for POST /basket, got %d", resp.StatusCode)
	}
}
