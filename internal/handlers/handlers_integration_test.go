package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kritika/internal/handlers"
	"kritika/internal/middleware"
	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/internal/services"
	"kritika/pkg/mailer"
)

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	capture *mailer.Capture
}

// setupEnv wires the full HTTP surface against an in-memory SQLite
// database and a capture mailer.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	capture := mailer.NewCapture()
	policy := services.NewAccessPolicy()
	authService := services.NewAuthService(userRepo, capture, services.TokenConfig{
		Secret:     "integration_test_secret",
		CodeTTL:    time.Hour,
		AccessTTL:  time.Hour,
		RefreshTTL: time.Hour,
	})
	userService := services.NewUserService(userRepo, policy)
	categoryService := services.NewCategoryService(categoryRepo, policy)
	genreService := services.NewGenreService(genreRepo, policy)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, policy)
	reviewService := services.NewReviewService(reviewRepo, titleRepo, policy)
	commentService := services.NewCommentService(commentRepo, reviewRepo, policy)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.AuthOptional(authService))
	authRequired := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1, authRequired)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(apiV1, authRequired)
	handlers.NewGenreHandler(genreService).RegisterRoutes(apiV1, authRequired)
	handlers.NewTitleHandler(titleService).RegisterRoutes(apiV1, authRequired)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1, authRequired)
	handlers.NewCommentHandler(commentService).RegisterRoutes(apiV1, authRequired)

	return &testEnv{app: app, db: db, capture: capture}
}

func (e *testEnv) seedUser(t *testing.T, username, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Role: role}
	require.NoError(t, repositories.NewGORMUserRepository(e.db).Create(user))
	return user
}

// login runs the real confirmation-code flow and returns an access token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/v1/auth/email", "", fiber.Map{"email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg, ok := e.capture.Last()
	require.True(t, ok)
	idx := strings.LastIndex(msg.Body, ": ")
	require.Greater(t, idx, 0)
	code := msg.Body[idx+2:]

	resp = e.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
		"email":             email,
		"confirmation_code": code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var credential struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeJSON(t, resp, &credential)
	require.NotEmpty(t, credential.Token)
	return credential.Token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decodeJSON(t, resp, &body)
	return body.ErrorCode
}

func TestAuthFlow(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	env.seedUser(t, "bob", "bob@example.com", models.RoleUser)

	// Unknown email cannot request a code.
	resp := env.request(t, http.MethodPost, "/api/v1/auth/email", "", fiber.Map{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Alice requests a code; bob cannot redeem it.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/email", "", fiber.Map{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg, ok := env.capture.Last()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", msg.To)
	code := msg.Body[strings.LastIndex(msg.Body, ": ")+2:]

	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
		"email":             "bob@example.com",
		"confirmation_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMAIL_MISMATCH", errorCode(t, resp))

	// Garbage codes are rejected.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
		"email":             "alice@example.com",
		"confirmation_code": "not.a.code",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CODE", errorCode(t, resp))

	// Alice redeems her own code and the exchange verifies her account.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/token", "", fiber.Map{
		"email":             "alice@example.com",
		"confirmation_code": code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var credential struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeJSON(t, resp, &credential)
	require.NotEmpty(t, credential.Token)

	resp = env.request(t, http.MethodGet, "/api/v1/users/me", credential.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeJSON(t, resp, &me)
	assert.Equal(t, "alice", me.Username)
	assert.True(t, me.IsVerified)

	// The refresh token mints a fresh usable pair.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
		"refresh_token": credential.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &credential)
	resp = env.request(t, http.MethodGet, "/api/v1/users/me", credential.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// No token at all on a protected route.
	resp = env.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTaxonomyPermissions(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "admin", "admin@example.com", models.RoleAdmin)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	adminToken := env.login(t, "admin@example.com")
	aliceToken := env.login(t, "alice@example.com")

	category := fiber.Map{"name": "Movies", "slug": "movies"}

	resp := env.request(t, http.MethodPost, "/api/v1/categories/", "", category)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/categories/", aliceToken, category)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/categories/", adminToken, category)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate slug conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/categories/", adminToken, category)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A malformed slug never reaches the database.
	resp = env.request(t, http.MethodPost, "/api/v1/genres/", adminToken, fiber.Map{
		"name": "Bad", "slug": "no spaces!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing is open to anonymous readers.
	resp = env.request(t, http.MethodGet, "/api/v1/categories/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.Category
	decodeJSON(t, resp, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "movies", categories[0].Slug)

	resp = env.request(t, http.MethodDelete, "/api/v1/categories/movies", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/v1/categories/movies", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/v1/categories/movies", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTitleLifecycleAndRatings(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "admin", "admin@example.com", models.RoleAdmin)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	env.seedUser(t, "bob", "bob@example.com", models.RoleUser)
	adminToken := env.login(t, "admin@example.com")
	aliceToken := env.login(t, "alice@example.com")
	bobToken := env.login(t, "bob@example.com")

	for _, body := range []fiber.Map{
		{"name": "Movies", "slug": "movies"},
	} {
		resp := env.request(t, http.MethodPost, "/api/v1/categories/", adminToken, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	for _, body := range []fiber.Map{
		{"name": "Drama", "slug": "drama"},
		{"name": "Sci-Fi", "slug": "sci-fi"},
		{"name": "Comedy", "slug": "comedy"},
	} {
		resp := env.request(t, http.MethodPost, "/api/v1/genres/", adminToken, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// An unknown genre slug rejects the whole create: nothing is written.
	resp := env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{
		"name": "Solaris", "year": 1972, "category": "movies",
		"genre": []string{"drama", "does-not-exist"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/titles/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []services.TitleView
	decodeJSON(t, resp, &listed)
	assert.Empty(t, listed)

	// Future years are rejected.
	resp = env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{
		"name": "From Tomorrow", "year": 3000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{
		"name": "Solaris", "year": 1972, "category": "movies",
		"genre": []string{"drama", "sci-fi"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created services.TitleView
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.ID)

	// No reviews yet: rating is null, not zero.
	resp = env.request(t, http.MethodGet, "/api/v1/titles/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched services.TitleView
	decodeJSON(t, resp, &fetched)
	assert.Nil(t, fetched.Rating)
	require.Len(t, fetched.Genres, 2)

	reviewsPath := "/api/v1/titles/" + created.ID + "/reviews/"
	resp = env.request(t, http.MethodPost, reviewsPath, aliceToken, fiber.Map{"text": "slow but great", "score": 7})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.request(t, http.MethodPost, reviewsPath, bobToken, fiber.Map{"text": "masterpiece", "score": 9})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// One review per author and title.
	resp = env.request(t, http.MethodPost, reviewsPath, aliceToken, fiber.Map{"text": "again", "score": 5})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Scores outside [1,10] never reach the database.
	resp = env.request(t, http.MethodPost, reviewsPath, bobToken, fiber.Map{"text": "x", "score": 11})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/titles/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &fetched)
	require.NotNil(t, fetched.Rating)
	assert.InDelta(t, 8.0, *fetched.Rating, 0.001)

	// Filters narrow the listing; ratings ride along.
	resp = env.request(t, http.MethodGet, "/api/v1/titles/?genre=sci-fi&year=1972", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &listed)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Rating)
	assert.InDelta(t, 8.0, *listed[0].Rating, 0.001)

	resp = env.request(t, http.MethodGet, "/api/v1/titles/?genre=comedy", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &listed)
	assert.Empty(t, listed)

	// Patching the genre list replaces the whole set.
	resp = env.request(t, http.MethodPatch, "/api/v1/titles/"+created.ID, adminToken, fiber.Map{
		"genre": []string{"comedy"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &fetched)
	require.Len(t, fetched.Genres, 1)
	assert.Equal(t, "comedy", fetched.Genres[0].Slug)

	// Catalog writes stay admin-only.
	resp = env.request(t, http.MethodDelete, "/api/v1/titles/"+created.ID, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Deleting the title takes its reviews with it.
	resp = env.request(t, http.MethodDelete, "/api/v1/titles/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	var reviewCount int64
	require.NoError(t, env.db.Model(&models.Review{}).Count(&reviewCount).Error)
	assert.Zero(t, reviewCount)
}

func TestReviewPermissions(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "admin", "admin@example.com", models.RoleAdmin)
	env.seedUser(t, "mod", "mod@example.com", models.RoleModerator)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	env.seedUser(t, "bob", "bob@example.com", models.RoleUser)
	adminToken := env.login(t, "admin@example.com")
	modToken := env.login(t, "mod@example.com")
	aliceToken := env.login(t, "alice@example.com")
	bobToken := env.login(t, "bob@example.com")

	resp := env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{"name": "Dune"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var title services.TitleView
	decodeJSON(t, resp, &title)

	reviewsPath := "/api/v1/titles/" + title.ID + "/reviews/"
	resp = env.request(t, http.MethodPost, reviewsPath, aliceToken, fiber.Map{"text": "sand", "score": 8})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var review services.ReviewView
	decodeJSON(t, resp, &review)
	assert.Equal(t, "alice", review.Author)

	reviewPath := reviewsPath + review.ID

	// A stranger cannot touch alice's review.
	resp = env.request(t, http.MethodPatch, reviewPath, bobToken, fiber.Map{"score": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodDelete, reviewPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The author can edit their own.
	resp = env.request(t, http.MethodPatch, reviewPath, aliceToken, fiber.Map{"text": "more sand"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &review)
	assert.Equal(t, "more sand", review.Text)
	assert.Equal(t, 8, review.Score)

	// A moderator can edit anyone's.
	resp = env.request(t, http.MethodPatch, reviewPath, modToken, fiber.Map{"score": 6})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &review)
	assert.Equal(t, 6, review.Score)

	// Anonymous readers see it.
	resp = env.request(t, http.MethodGet, reviewPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A moderator can delete anyone's.
	resp = env.request(t, http.MethodDelete, reviewPath, modToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.request(t, http.MethodGet, reviewPath, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestComments(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "admin", "admin@example.com", models.RoleAdmin)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	env.seedUser(t, "bob", "bob@example.com", models.RoleUser)
	adminToken := env.login(t, "admin@example.com")
	aliceToken := env.login(t, "alice@example.com")
	bobToken := env.login(t, "bob@example.com")

	resp := env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{"name": "Dune"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var title services.TitleView
	decodeJSON(t, resp, &title)
	resp = env.request(t, http.MethodPost, "/api/v1/titles/", adminToken, fiber.Map{"name": "Alien"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var other services.TitleView
	decodeJSON(t, resp, &other)

	resp = env.request(t, http.MethodPost, "/api/v1/titles/"+title.ID+"/reviews/", aliceToken,
		fiber.Map{"text": "sand", "score": 8})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var review services.ReviewView
	decodeJSON(t, resp, &review)

	commentsPath := "/api/v1/titles/" + title.ID + "/reviews/" + review.ID + "/comments/"
	resp = env.request(t, http.MethodPost, commentsPath, bobToken, fiber.Map{"text": "agreed"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment services.CommentView
	decodeJSON(t, resp, &comment)
	assert.Equal(t, "bob", comment.Author)

	// The review must belong to the title in the path.
	wrongPath := "/api/v1/titles/" + other.ID + "/reviews/" + review.ID + "/comments/"
	resp = env.request(t, http.MethodPost, wrongPath, bobToken, fiber.Map{"text": "lost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.request(t, http.MethodGet, wrongPath, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Anonymous listing works on the right path.
	resp = env.request(t, http.MethodGet, commentsPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []services.CommentView
	decodeJSON(t, resp, &comments)
	require.Len(t, comments, 1)

	// Ownership gates comment edits the same way as reviews.
	commentPath := commentsPath + comment.ID
	resp = env.request(t, http.MethodPatch, commentPath, aliceToken, fiber.Map{"text": "hijack"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.request(t, http.MethodPatch, commentPath, bobToken, fiber.Map{"text": "still agreed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &comment)
	assert.Equal(t, "still agreed", comment.Text)

	resp = env.request(t, http.MethodDelete, commentPath, bobToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Deleting the review sweeps remaining comments.
	resp = env.request(t, http.MethodPost, commentsPath, bobToken, fiber.Map{"text": "one more"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.request(t, http.MethodDelete, "/api/v1/titles/"+title.ID+"/reviews/"+review.ID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserDirectory(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "admin", "admin@example.com", models.RoleAdmin)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	adminToken := env.login(t, "admin@example.com")
	aliceToken := env.login(t, "alice@example.com")

	// Directory management is admin territory.
	resp := env.request(t, http.MethodGet, "/api/v1/users/", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decodeJSON(t, resp, &users)
	assert.Len(t, users, 2)

	// Admin creates a moderator account directly.
	resp = env.request(t, http.MethodPost, "/api/v1/users/", adminToken, fiber.Map{
		"username": "mod", "email": "mod@example.com", "role": "moderator",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mod models.User
	decodeJSON(t, resp, &mod)
	assert.Equal(t, models.RoleModerator, mod.Role)

	// Duplicate username conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/users/", adminToken, fiber.Map{
		"username": "mod", "email": "mod2@example.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Admin promotes alice by username.
	resp = env.request(t, http.MethodPatch, "/api/v1/users/alice", adminToken, fiber.Map{"role": "moderator"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var alice models.User
	decodeJSON(t, resp, &alice)
	assert.Equal(t, models.RoleModerator, alice.Role)

	resp = env.request(t, http.MethodDelete, "/api/v1/users/mod", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.request(t, http.MethodGet, "/api/v1/users/mod", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileSelfService(t *testing.T) {
	env := setupEnv(t)
	env.seedUser(t, "alice", "alice@example.com", models.RoleUser)
	aliceToken := env.login(t, "alice@example.com")

	resp := env.request(t, http.MethodPatch, "/api/v1/users/me", aliceToken, fiber.Map{
		"bio":        "I review things",
		"first_name": "Alice",
		"role":       "admin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeJSON(t, resp, &me)
	assert.Equal(t, "I review things", me.Bio)
	assert.Equal(t, "Alice", me.FirstName)
	// Self-service can never change the role.
	assert.Equal(t, models.RoleUser, me.Role)
}
