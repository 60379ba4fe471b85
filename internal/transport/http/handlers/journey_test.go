package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"emimet/internal/app/server"
	"emimet/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		UploadDir:          "storage/uploads",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     5 * 1024 * 1024,
		RateLimitPerMinute: 1000,
		CORSOrigins:        []string{"http://localhost:3000"},
		MetricsEnabled:     true,
	}
}

func TestPayrollJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := time.Now().UnixNano()
	sectorID := createNamed(t, client, ts.URL, token, "/api/v1/sectors", fmt.Sprintf("Sector %d", suffix))
	functionID := createNamed(t, client, ts.URL, token, "/api/v1/functions", fmt.Sprintf("Function %d", suffix))

	employeeID := createEmployee(t, client, ts.URL, token, sectorID, functionID, suffix)

	// Three workdays at 1.0, 1.5 and 2.0 for a 250/day employee.
	for i, multiplier := range []string{"1", "1.5", "2"} {
		workday := map[string]any{
			"employeeId": employeeID,
			"date":       fmt.Sprintf("2025-03-%02d", 3+i),
			"multiplier": json.Number(multiplier),
		}
		postJSON(t, client, ts.URL+"/api/v1/workdays", token, workday, http.StatusCreated)
	}

	// A duplicate workday must be rejected.
	dup := map[string]any{"employeeId": employeeID, "date": "2025-03-03", "multiplier": json.Number("1")}
	postJSON(t, client, ts.URL+"/api/v1/workdays", token, dup, http.StatusBadRequest)

	// Record a 100 advance.
	advance := map[string]any{"amount": json.Number("100"), "notes": "tools"}
	postJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/advances", token, advance, http.StatusCreated)

	// Salary for March: gross 1125, net 1025.
	var calc struct {
		GrossSalary string `json:"grossSalary"`
		NetSalary   string `json:"netSalary"`
		WorkedDays  int    `json:"workedDays"`
	}
	getJSON(t, client, ts.URL+"/api/v1/reports/salaries/"+employeeID+"?startDate=2025-03-01&endDate=2025-03-31", token, &calc)
	if calc.WorkedDays != 3 {
		t.Fatalf("expected 3 worked days, got %d", calc.WorkedDays)
	}
	if calc.GrossSalary != "1125" {
		t.Fatalf("expected gross 1125, got %s", calc.GrossSalary)
	}
	if calc.NetSalary != "1025" {
		t.Fatalf("expected net 1025, got %s", calc.NetSalary)
	}

	// Flat CSV.
	body := getRaw(t, client, ts.URL+"/api/v1/reports/csv?startDate=2025-03-01&endDate=2025-03-31", token)
	if !strings.HasPrefix(body, "Employee Name,") {
		t.Fatalf("unexpected flat CSV start: %q", body[:40])
	}
	if !strings.Contains(body, `"1125.00"`) {
		t.Fatalf("flat CSV missing gross:\n%s", body)
	}

	// Detailed CSV carries a BOM and the French preamble.
	body = getRaw(t, client, ts.URL+"/api/v1/reports/csv?startDate=2025-03-01&endDate=2025-03-31&format=detailed", token)
	if !strings.HasPrefix(body, "\ufeff") {
		t.Fatal("detailed CSV must start with a BOM")
	}
	if !strings.Contains(body, "Rapport de présence détaillé") {
		t.Fatal("detailed CSV missing preamble")
	}

	// Dashboard stats are served.
	var stats struct {
		ActiveEmployees int `json:"activeEmployees"`
	}
	getJSON(t, client, ts.URL+"/api/v1/reports/dashboard", token, &stats)
	if stats.ActiveEmployees < 1 {
		t.Fatalf("expected at least one active employee, got %d", stats.ActiveEmployees)
	}

	// Anonymous access is rejected.
	resp, err := client.Get(ts.URL + "/api/v1/reports/dashboard")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", resp.StatusCode)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := client.Post(baseURL+"/api/v1/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login status %d: %s", resp.StatusCode, body)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("missing token in %s", env.Data)
	}
	return data.Token
}

func createNamed(t *testing.T, client *http.Client, baseURL, token, path, name string) string {
	t.Helper()
	raw := postJSON(t, client, baseURL+path, token, map[string]string{"name": name}, http.StatusCreated)
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		t.Fatalf("missing id in %s", raw)
	}
	return data.ID
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, sectorID, functionID string, suffix int64) string {
	t.Helper()
	payload := map[string]any{
		"cin":              fmt.Sprintf("CIN%d", suffix),
		"firstName":        "Ahmed",
		"lastName":         "Benali",
		"dateOfBirth":      "1990-05-20",
		"phoneNumber":      "0600000000",
		"address":          "12 Rue des Artisans",
		"sectorId":         sectorID,
		"functionId":       functionID,
		"dailySalary":      json.Number("250"),
		"advanceAmount":    json.Number("0"),
		"joinDate":         "2024-01-15",
		"employmentStatus": "ACTIVE",
	}
	raw := postJSON(t, client, baseURL+"/api/v1/employees", token, payload, http.StatusCreated)
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		t.Fatalf("missing employee id in %s", raw)
	}
	return data.ID
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any, wantStatus int) json.RawMessage {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("post %s: status %d, want %d: %s", url, resp.StatusCode, wantStatus, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return env.Data
}

func getJSON(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d: %s", url, resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", url, err)
	}
}

func getRaw(t *testing.T, client *http.Client, url, token string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d: %s", url, resp.StatusCode, raw)
	}
	return string(raw)
}
