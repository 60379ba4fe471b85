package employeehandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Validation rejections happen before any storage access, so a nil
// store is fine for these.
func postEmployee(t *testing.T, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.handleCreate(rec, req)
	return rec
}

func decodeIssues(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []struct {
					Field  string `json:"field"`
					Reason string `json:"reason"`
				} `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	issues := make(map[string]string)
	for _, issue := range envelope.Error.Details.Fields {
		issues[issue.Field] = issue.Reason
	}
	return issues
}

func TestCreateEmployeeFieldMinimums(t *testing.T) {
	rec := postEmployee(t, `{
		"cin": "A1",
		"firstName": "J",
		"lastName": "D",
		"dateOfBirth": "1990-05-20",
		"phoneNumber": "12345",
		"address": "rue",
		"sectorId": "s1",
		"functionId": "f1",
		"dailySalary": "250",
		"joinDate": "2025-01-06"
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	issues := decodeIssues(t, rec)
	for _, field := range []string{"cin", "firstName", "lastName", "phoneNumber", "address"} {
		if issues[field] == "" {
			t.Errorf("expected an issue for %s, got none (issues: %v)", field, issues)
		}
	}
}

func TestCreateEmployeeAcceptsMinimallyValidFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{
		"cin": "AB123",
		"firstName": "Jo",
		"lastName": "El",
		"dateOfBirth": "1991-02-11",
		"phoneNumber": "0612345678",
		"address": "12 rue A",
		"sectorId": "s1",
		"functionId": "f1",
		"dailySalary": "250",
		"joinDate": "2025-01-06"
	}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	emp, ok := decodeEmployee(rec, req)
	if !ok {
		t.Fatalf("expected validation to pass, got: %s", rec.Body.String())
	}
	if emp.CIN != "AB123" || emp.FirstName != "Jo" {
		t.Fatalf("unexpected decoded employee: %+v", emp)
	}
}

func TestRecordAdvanceRequiresPositiveAmount(t *testing.T) {
	h := NewHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount": "-50"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.handleRecordAdvance(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative advance, got %d", rec.Code)
	}
	if issues := decodeIssues(t, rec); issues["amount"] == "" {
		t.Fatalf("expected an issue for amount, got %v", issues)
	}
}
