package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gourab8389/blog-author/internal/common"
	"github.com/gourab8389/blog-author/internal/eventservice"
)

const testImageURL = "https://cdn.example.com/blogs/test.jpg"

var blogFields = map[string]string{
	"title":       "Hello",
	"description": "A greeting.",
	"content":     "Hello, world.",
	"category":    "general",
}

func blogPath(id int) string {
	return fmt.Sprintf("/api/v1/blog/%d", id)
}

func lastEventKeys(t *testing.T, producer *eventservice.RecordingProducer) []string {
	t.Helper()

	msgs := producer.Published(common.CacheInvalidationQueue)
	if len(msgs) == 0 {
		t.Fatal("expected at least one invalidation event")
	}

	var event eventservice.InvalidationEvent
	if err := json.Unmarshal(msgs[len(msgs)-1], &event); err != nil {
		t.Fatalf("could not unmarshal invalidation event: %v", err)
	}

	assert.Equal(t, "invalidateCache", event.Action)

	return event.Keys
}

func TestCreateBlogEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, db, producer, uploader := newTestApplication(t)
	_, token := createTestUser(t, app, db, "author")
	uploader.On("Upload", mock.Anything, "photo.jpg", mock.Anything).Return(testImageURL, nil)

	ts := newTestServer(t, app.routes())

	t.Run("success", func(t *testing.T) {
		status, env := ts.postMultipart(t, "/api/v1/blog/new", blogFields, "photo.jpg", []byte("fake image bytes"), token)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, env["success"])

		blog := env["blog"].(map[string]any)
		assert.Equal(t, "Hello", blog["title"])
		assert.Equal(t, testImageURL, blog["image"])

		assert.Equal(t, []string{"blogs:*"}, lastEventKeys(t, producer))
	})

	t.Run("missing file", func(t *testing.T) {
		before := len(producer.Published(common.CacheInvalidationQueue))

		status, env := ts.postMultipart(t, "/api/v1/blog/new", blogFields, "", nil, token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, env["success"])
		assert.Len(t, producer.Published(common.CacheInvalidationQueue), before)

		// only the blog from the success subtest exists
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM blogs`).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		status, env := ts.postMultipart(t, "/api/v1/blog/new", blogFields, "photo.jpg", []byte("fake image bytes"), "")

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, env["success"])
	})
}

func TestUpdateBlogEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, db, producer, uploader := newTestApplication(t)
	ownerID, ownerToken := createTestUser(t, app, db, "author")
	_, otherToken := createTestUser(t, app, db, "intruder")
	uploader.On("Upload", mock.Anything, "photo.jpg", mock.Anything).Return(testImageURL, nil)

	var blogID int
	err := db.QueryRow(`
		INSERT INTO blogs (title, description, content, category, image, user_id)
		VALUES ('Hello', 'A greeting.', 'Hello, world.', 'general', $1, $2)
		RETURNING id`, testImageURL, ownerID).Scan(&blogID)
	assert.NoError(t, err)

	ts := newTestServer(t, app.routes())
	path := blogPath(blogID)

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		status, env := ts.postMultipart(t, path, map[string]string{"title": "Renamed"}, "", nil, ownerToken)

		assert.Equal(t, http.StatusOK, status)
		blog := env["blog"].(map[string]any)
		assert.Equal(t, "Renamed", blog["title"])
		assert.Equal(t, "A greeting.", blog["description"])
		assert.Equal(t, testImageURL, blog["image"])

		assert.Equal(t, []string{"blogs:*", common.CacheKeyBlog(blogID)}, lastEventKeys(t, producer))
	})

	t.Run("not owner", func(t *testing.T) {
		before := len(producer.Published(common.CacheInvalidationQueue))

		status, env := ts.postMultipart(t, path, map[string]string{"title": "Hijacked"}, "", nil, otherToken)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, env["success"])
		assert.Len(t, producer.Published(common.CacheInvalidationQueue), before)

		var title string
		err := db.QueryRow(`SELECT title FROM blogs WHERE id = $1`, blogID).Scan(&title)
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", title)
	})

	t.Run("not found", func(t *testing.T) {
		status, _ := ts.postMultipart(t, blogPath(999999), map[string]string{"title": "Whatever"}, "", nil, ownerToken)

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteBlogEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, db, producer, _ := newTestApplication(t)
	ownerID, ownerToken := createTestUser(t, app, db, "author")

	var blogID int
	err := db.QueryRow(`
		INSERT INTO blogs (title, description, content, category, image, user_id)
		VALUES ('Hello', 'A greeting.', 'Hello, world.', 'general', $1, $2)
		RETURNING id`, testImageURL, ownerID).Scan(&blogID)
	assert.NoError(t, err)

	_, err = db.Exec(`INSERT INTO comments (blog_id, user_id, content) VALUES ($1, $2, 'nice post')`, blogID, ownerID)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO saved_blogs (blog_id, user_id) VALUES ($1, $2)`, blogID, ownerID)
	assert.NoError(t, err)

	ts := newTestServer(t, app.routes())

	status, env := ts.delete(t, blogPath(blogID), ownerToken)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, env["success"])
	assert.Equal(t, []string{"blogs:*", common.CacheKeyBlog(blogID)}, lastEventKeys(t, producer))

	var comments, saved int
	assert.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&comments))
	assert.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM saved_blogs WHERE blog_id = $1`, blogID).Scan(&saved))
	assert.Zero(t, comments)
	assert.Zero(t, saved)

	status, _ = ts.delete(t, blogPath(blogID), ownerToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetBlogEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, db, _, _ := newTestApplication(t)
	ownerID, _ := createTestUser(t, app, db, "author")

	var blogID int
	err := db.QueryRow(`
		INSERT INTO blogs (title, description, content, category, image, user_id)
		VALUES ('Hello', 'A greeting.', 'Hello, world.', 'general', $1, $2)
		RETURNING id`, testImageURL, ownerID).Scan(&blogID)
	assert.NoError(t, err)

	ts := newTestServer(t, app.routes())

	// reads are public
	status, env := ts.get(t, blogPath(blogID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello", env["blog"].(map[string]any)["title"])

	status, _ = ts.get(t, blogPath(999999), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLoginEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, db, _, _ := newTestApplication(t)
	createTestUser(t, app, db, "author")

	ts := newTestServer(t, app.routes())

	status, env := ts.postJSON(t, "/api/v1/users/login", map[string]string{"username": "author", "password": "testpassword"}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, env["success"])
	assert.NotEmpty(t, env["token"].(map[string]any)["token"])

	status, _ = ts.postJSON(t, "/api/v1/users/login", map[string]string{"username": "author", "password": "wrongpassword"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthcheckEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app, _, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, env := ts.get(t, "/api/v1/healthcheck", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", env["message"])
}
