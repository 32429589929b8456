package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/admidio-bridge/admidio-bridge/internal/bridge"
	"github.com/admidio-bridge/admidio-bridge/internal/db/models"
	"github.com/admidio-bridge/admidio-bridge/internal/extstore"
	"github.com/admidio-bridge/admidio-bridge/internal/hoststore"
)

// fakeExternal is a canned membership store with a single user.
type fakeExternal struct {
	hash string
}

func (f *fakeExternal) FindUserByUsername(username string) (*extstore.UserRecord, error) {
	if username != "ada" {
		return nil, extstore.ErrUserNotFound
	}

	return &extstore.UserRecord{ID: 7, Username: "ada", PasswordHash: f.hash}, nil
}

func (f *fakeExternal) ProfileFields(int64) (map[extstore.FieldKey]string, error) {
	return map[extstore.FieldKey]string{
		extstore.FieldEmail:     "a@b.com",
		extstore.FieldFirstName: "Ada",
		extstore.FieldLastName:  "Lovelace",
	}, nil
}

func (f *fakeExternal) RoleNames(string) ([]string, error) {
	return []string{"Admin"}, nil
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Group{}, &models.UserGroup{}))
	require.NoError(t, db.Create(&models.Group{Title: "Admin"}).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)

	b := bridge.New(
		&fakeExternal{hash: string(hash)},
		bridge.NewVerifier(),
		bridge.NewProvisioner(hoststore.NewStore(db)),
		"Admidio",
	)

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, b))

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) bridge.Response {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out bridge.Response
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)

	return out
}

func TestPostLoginSuccessProvisionsUser(t *testing.T) {
	app, db := setupApp(t)

	resp := postJSON(t, app, Path+LoginPath, `{"username":"ada","password":"s3cr3t"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.Equal(t, bridge.StatusSuccess, out.Status)
	assert.Equal(t, "Ada Lovelace", out.DisplayName)
	assert.Equal(t, "a@b.com", out.Email)
	assert.Equal(t, "Admidio", out.Type)

	// the post-login sync created the host user and joined the Admin group
	store := hoststore.NewStore(db)

	user, err := store.FindUserByUsername("ada")
	require.NoError(t, err)

	ids, err := store.UserGroupIDs(user.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestPostLoginBadPassword(t *testing.T) {
	app, db := setupApp(t)

	resp := postJSON(t, app, Path+LoginPath, `{"username":"ada","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.Equal(t, bridge.StatusFailure, out.Status)
	assert.Equal(t, bridge.KindBadPassword, out.ErrorKind)

	// no host user on failure
	_, err := hoststore.NewStore(db).FindUserByUsername("ada")
	assert.ErrorIs(t, err, hoststore.ErrUserNotFound)
}

func TestPostLoginUnknownUser(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, Path+LoginPath, `{"username":"nobody","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.Equal(t, bridge.KindUnknownUser, out.ErrorKind)
}

func TestPostLoginEmptySecret(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, Path+LoginPath, `{"username":"ada","password":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.Equal(t, bridge.KindEmptySecret, out.ErrorKind)
}

func TestPostSync(t *testing.T) {
	app, db := setupApp(t)

	resp := postJSON(t, app, Path+SyncPath, `{"username":"ada"}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err := hoststore.NewStore(db).FindUserByUsername("ada")
	assert.NoError(t, err)

	// unknown usernames are reported, not silently ignored
	resp = postJSON(t, app, Path+SyncPath, `{"username":"nobody"}`)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// brokenGroupsHost is a host store whose group reconciliation always fails,
// so a sync leaves the user provisioned but without its memberships.
type brokenGroupsHost struct{}

func (brokenGroupsHost) FindUserByUsername(string) (*models.User, error) {
	return nil, hoststore.ErrUserNotFound
}

func (brokenGroupsHost) CreateUser(username, displayName, email, _ string) (*models.User, error) {
	return &models.User{ID: 1, Username: username, DisplayName: displayName, Email: email}, nil
}

func (brokenGroupsHost) UpdateProfile(uint64, string, string) error { return nil }

func (brokenGroupsHost) ListGroups() ([]models.Group, error) { return nil, nil }

func (brokenGroupsHost) SetUserGroups(uint64, []uint) error {
	return errors.New("connection reset")
}

func TestPostSyncPartialProvisioning(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)

	b := bridge.New(
		&fakeExternal{hash: string(hash)},
		bridge.NewVerifier(),
		bridge.NewProvisioner(brokenGroupsHost{}),
		"Admidio",
	)

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, b))

	resp := postJSON(t, app, Path+SyncPath, `{"username":"ada"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	out := decodeResponse(t, resp)
	assert.Equal(t, bridge.StatusFailure, out.Status)
	assert.Equal(t, bridge.KindPartialProvisioning, out.ErrorKind,
		"a user created without its memberships must be reported distinctly on the wire")
}

func TestInitNilDependencies(t *testing.T) {
	var s Service

	err := s.Init(nil, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
}
