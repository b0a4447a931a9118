package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/hydromet/internal/hydromet"
	"github.com/i474232898/hydromet/internal/store"
)

type staticTable [][]string

func (s staticTable) Name() string { return "static" }

func (s staticTable) FetchTable(ctx context.Context, url string) ([][]string, error) {
	return s, nil
}

func newTestApp(t *testing.T, withReport bool) *fiber.App {
	t.Helper()

	rows := staticTable{
		{"H"},
		{"01.01.2024 09:00", "5.0", "2.1", "Clear", "", "N", "10"},
		{"01.01.2024 06:00", "-1.0", "-3.0", "Snow", "", "NE", "5"},
		{"02.01.2024 03:00", ".5", "-.5", "Fog", "", "S", "2"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := hydromet.NewService(rows, store.NewFlatFile(t.TempDir()), store.NewMemoryStore(10, 0), hydromet.Options{}, logger)
	if withReport {
		if err := svc.RunAndStore(context.Background()); err != nil {
			t.Fatalf("RunAndStore: %v", err)
		}
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, svc)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestRoutesWithoutReport(t *testing.T) {
	app := newTestApp(t, false)

	for _, target := range []string{"/api/v1/report", "/api/v1/summary", "/api/v1/chart", "/api/v1/observations"} {
		resp, _ := doGet(t, app, target)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: status %d; want %d", target, resp.StatusCode, http.StatusNotFound)
		}
	}
}

func TestReportRoute(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doGet(t, app, "/api/v1/report")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d; want 200: %s", resp.StatusCode, body)
	}

	var got hydromet.Report
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Max.Temperature != 5.0 || got.Max.Time != "09:00" {
		t.Errorf("max = %+v; want 5.0 at 09:00", got.Max)
	}
	if got.Min.Temperature != -1.0 || got.Min.Date != "01.01.2024" {
		t.Errorf("min = %+v; want -1.0 on 01.01.2024", got.Min)
	}
	if len(got.Days) != 2 {
		t.Errorf("days = %d; want 2", len(got.Days))
	}
}

func TestSummaryRoute(t *testing.T) {
	app := newTestApp(t, true)

	resp, body := doGet(t, app, "/api/v1/summary")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d; want 200", resp.StatusCode)
	}
	want := "Max: 5° 01.01.2024 09:00\nMin: -1° 01.01.2024 06:00\n"
	if string(body) != want {
		t.Errorf("body = %q; want %q", body, want)
	}
}

func TestObservationsRoute(t *testing.T) {
	app := newTestApp(t, true)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/observations", http.StatusOK},
		{"/api/v1/observations?date=02.01.2024", http.StatusOK},
		{"/api/v1/observations?date=05.01.2024", http.StatusNotFound},
		{"/api/v1/observations?date=tomorrow", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, body := doGet(t, app, tt.target)
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s: status %d; want %d: %s", tt.target, resp.StatusCode, tt.status, body)
		}
	}

	_, body := doGet(t, app, "/api/v1/observations?date=01.01.2024")
	var bucket hydromet.DateBucket
	if err := json.Unmarshal(body, &bucket); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bucket.Observations) != 2 || bucket.Observations[0].Time != "06:00" {
		t.Errorf("bucket = %+v; want 06:00 first", bucket)
	}
}

func TestChartRoute(t *testing.T) {
	app := newTestApp(t, true)

	resp, _ := doGet(t, app, "/api/v1/chart?label=sideways")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d; want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, body := doGet(t, app, "/api/v1/chart?label=date-time")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d; want 200", resp.StatusCode)
	}
	var got struct {
		Series string                `json:"series"`
		Points []hydromet.ChartPoint `json:"points"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Points) != 3 {
		t.Fatalf("points = %d; want 3", len(got.Points))
	}
	if got.Points[0].Category != "01.01.2024/06:00" || got.Points[2].Value != 0.5 {
		t.Errorf("points = %+v", got.Points)
	}
}

func TestTemperatureRoute(t *testing.T) {
	app := newTestApp(t, true)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/temperature", http.StatusBadRequest},
		{"/api/v1/temperature?value=hot", http.StatusBadRequest},
		{"/api/v1/temperature?value=5&epsilon=-1", http.StatusBadRequest},
		{"/api/v1/temperature?value=42", http.StatusNotFound},
		{"/api/v1/temperature?value=.5", http.StatusOK},
		{"/api/v1/temperature?value=4.95&epsilon=0.1", http.StatusOK},
	}
	for _, tt := range tests {
		resp, body := doGet(t, app, tt.target)
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s: status %d; want %d: %s", tt.target, resp.StatusCode, tt.status, body)
		}
	}

	_, body := doGet(t, app, "/api/v1/temperature?value=-1.0")
	var point hydromet.TempPoint
	if err := json.Unmarshal(body, &point); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if point.Date != "01.01.2024" || point.Time != "06:00" {
		t.Errorf("point = %+v; want 01.01.2024 06:00", point)
	}
}
