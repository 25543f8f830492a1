package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gourab8389/blog-author/internal/aiservice"
	"github.com/gourab8389/blog-author/internal/assetservice"
	"github.com/gourab8389/blog-author/internal/blogservice"
	"github.com/gourab8389/blog-author/internal/common"
	"github.com/gourab8389/blog-author/internal/eventservice"
	"github.com/gourab8389/blog-author/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *eventservice.RecordingProducer, *assetservice.MockUploader) {
	t.Helper()

	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	producer := eventservice.NewRecordingProducer()
	uploader := new(assetservice.MockUploader)

	cfg := &Config{Port: ":0", Environment: "test", Version: "test"}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db),
		blogService: blogservice.NewBlogService(db, cache, eventservice.NewPublisher(producer, logger), uploader),
		aiClient:    aiservice.NewClient("http://localhost:1", "test-key", "test-model", logger),
	}

	return app, db, producer, uploader
}

// createTestUser provisions a user the way an operator would and logs them in.
func createTestUser(t *testing.T, app *application, db *sql.DB, username string) (int, string) {
	t.Helper()

	var p userservice.Password
	if err := p.Set("testpassword"); err != nil {
		t.Fatalf("could not hash password: %v", err)
	}

	var id int
	err := db.QueryRow(`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`, username, username+"@example.com", p.Hash()).Scan(&id)
	if err != nil {
		t.Fatalf("could not create test user: %v", err)
	}

	token, err := app.userService.Login(context.Background(), username, "testpassword")
	if err != nil {
		t.Fatalf("could not log in test user: %v", err)
	}

	return id, token.Plain
}

func readResponse(t *testing.T, res *http.Response) (int, envelope) {
	t.Helper()

	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, env
}

func (ts *testServer) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) postJSON(t *testing.T, path string, data any, token string) (int, envelope) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	return ts.do(t, req, token)
}

// postMultipart sends a multipart form. filename == "" omits the file field.
func (ts *testServer) postMultipart(t *testing.T, path string, fields map[string]string, filename string, file []byte, token string) (int, envelope) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatal(err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return ts.do(t, req, token)
}

func (ts *testServer) get(t *testing.T, path string, token string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, req, token)
}

func (ts *testServer) delete(t *testing.T, path string, token string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, req, token)
}
