package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/netpulse/netpulse-api/schema"
)

func postJSON(env *testEnv, url string, body string) *http.Request {
	request, _ := http.NewRequest("POST", url, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestPostSpeedTest_Created(t *testing.T) {
	env := newTestEnv()
	body := `{"userId":"u1","downloadSpeed":50,"uploadSpeed":10,"ping":20,"jitter":2,"carrier":"X","networkType":"5G","testedAt":"2024-01-01T00:00:00Z"}`
	response := env.serve(postJSON(env, "/api/tests", body))

	if response.Code != http.StatusCreated {
		t.Fatalf("Resp given [%d] expected [%d]: %s", response.Code, http.StatusCreated, response.Body.String())
	}
	var stored schema.SpeedTest
	parseBody(t, response, &stored)
	if stored.ID.IsZero() {
		t.Fatal("stored record has no id")
	}
	if stored.UserID != "u1" || stored.Carrier != "X" || stored.NetworkType != "5G" {
		t.Fatalf("stored record fields do not match submission: %+v", stored)
	}
	// omitted location must be stored as the default Point [0,0]
	if stored.Location.Type != "Point" || len(stored.Location.Coordinates) != 2 ||
		stored.Location.Coordinates[0] != 0 || stored.Location.Coordinates[1] != 0 {
		t.Fatalf("location given [%+v] expected default Point [0,0]", stored.Location)
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Fatal("storage-assigned timestamps are missing")
	}
}

func TestPostSpeedTest_ZeroValuesAreValid(t *testing.T) {
	env := newTestEnv()
	body := `{"userId":"u1","downloadSpeed":0,"uploadSpeed":0,"ping":0,"jitter":0,"carrier":"X","networkType":"wifi","testedAt":"2024-01-01T00:00:00Z"}`
	response := env.serve(postJSON(env, "/api/tests", body))

	if response.Code != http.StatusCreated {
		t.Fatalf("Resp given [%d] expected [%d]: %s", response.Code, http.StatusCreated, response.Body.String())
	}
}

func TestPostSpeedTest_MissingField(t *testing.T) {
	env := newTestEnv()
	// no ping
	body := `{"userId":"u1","downloadSpeed":50,"uploadSpeed":10,"jitter":2,"carrier":"X","networkType":"5G","testedAt":"2024-01-01T00:00:00Z"}`
	response := env.serve(postJSON(env, "/api/tests", body))

	if response.Code != http.StatusBadRequest {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusBadRequest)
	}
	detailed := parseError(t, response)
	if detailed.Code != "missing_field" {
		t.Fatalf("error code given [%s] expected [missing_field]", detailed.Code)
	}
	if len(env.speedTestRepository.Records) != 0 {
		t.Fatal("invalid submission must not be persisted")
	}
}

func TestPostSpeedTest_InvalidBody(t *testing.T) {
	env := newTestEnv()
	response := env.serve(postJSON(env, "/api/tests", `{not json`))

	if response.Code != http.StatusBadRequest {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusBadRequest)
	}
	detailed := parseError(t, response)
	if detailed.Code != "invalid_payload" {
		t.Fatalf("error code given [%s] expected [invalid_payload]", detailed.Code)
	}
}

func TestGetSpeedTests_FilteredAndOrdered(t *testing.T) {
	env := newTestEnv()
	bodies := []string{
		`{"userId":"u1","downloadSpeed":1,"uploadSpeed":1,"ping":1,"jitter":1,"carrier":"X","networkType":"5G","testedAt":"2024-01-01T00:00:00Z"}`,
		`{"userId":"u1","downloadSpeed":2,"uploadSpeed":2,"ping":2,"jitter":2,"carrier":"X","networkType":"5G","testedAt":"2024-01-03T00:00:00Z"}`,
		`{"userId":"u1","downloadSpeed":3,"uploadSpeed":3,"ping":3,"jitter":3,"carrier":"X","networkType":"5G","testedAt":"2024-01-02T00:00:00Z"}`,
		`{"userId":"u2","downloadSpeed":4,"uploadSpeed":4,"ping":4,"jitter":4,"carrier":"Y","networkType":"4G","testedAt":"2024-01-04T00:00:00Z"}`,
	}
	for _, body := range bodies {
		if response := env.serve(postJSON(env, "/api/tests", body)); response.Code != http.StatusCreated {
			t.Fatalf("setup submission failed: %s", response.Body.String())
		}
	}

	request, _ := http.NewRequest("GET", "/api/tests?userId=u1", nil)
	response := env.serve(request)
	if response.Code != http.StatusOK {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusOK)
	}
	var records []schema.SpeedTest
	parseBody(t, response, &records)
	if len(records) != 3 {
		t.Fatalf("records given [%d] expected [3]", len(records))
	}
	// most recent testedAt first
	if records[0].DownloadSpeed != 2 || records[1].DownloadSpeed != 3 || records[2].DownloadSpeed != 1 {
		t.Fatalf("records are not sorted by testedAt descending: %+v", records)
	}

	request, _ = http.NewRequest("GET", "/api/tests", nil)
	response = env.serve(request)
	parseBody(t, response, &records)
	if len(records) != 4 {
		t.Fatalf("unfiltered records given [%d] expected [4]", len(records))
	}
}

func TestGetSpeedTests_Empty(t *testing.T) {
	env := newTestEnv()
	request, _ := http.NewRequest("GET", "/api/tests", nil)
	response := env.serve(request)

	if response.Code != http.StatusOK {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusOK)
	}
	if response.Body.String() != "[]" {
		t.Fatalf("body given [%s] expected [[]]", response.Body.String())
	}
}

func TestGetSpeedTests_StoreError(t *testing.T) {
	env := newTestEnv()
	env.speedTestRepository.Err = errMockStore

	request, _ := http.NewRequest("GET", "/api/tests", nil)
	response := env.serve(request)

	if response.Code != http.StatusInternalServerError {
		t.Fatalf("Resp given [%d] expected [%d] ", response.Code, http.StatusInternalServerError)
	}
	detailed := parseError(t, response)
	if detailed.Code != "data_store_error" {
		t.Fatalf("error code given [%s] expected [data_store_error]", detailed.Code)
	}
	// opaque message, no internal details
	if detailed.Message != "internal server error" {
		t.Fatalf("error message given [%s] expected opaque [internal server error]", detailed.Message)
	}
}
