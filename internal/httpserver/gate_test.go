package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamevault/backend/internal/config"
	authdomain "gamevault/backend/internal/domain/auth"
	gamedomain "gamevault/backend/internal/domain/game"
	librarydomain "gamevault/backend/internal/domain/library"
	roledomain "gamevault/backend/internal/domain/role"
	"gamevault/backend/internal/infrastructure/token"
	"gamevault/backend/internal/metrics"
	authusecase "gamevault/backend/internal/usecase/auth"
	gameusecase "gamevault/backend/internal/usecase/game"
	libraryusecase "gamevault/backend/internal/usecase/library"
	roleusecase "gamevault/backend/internal/usecase/role"
	userusecase "gamevault/backend/internal/usecase/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users  map[int64]*authdomain.User
	nextID int64
}

func (r *memUserRepo) Create(ctx context.Context, user *authdomain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email && !u.Removed {
			return authdomain.ErrEmailExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email && !u.Removed {
			copy := *u
			return &copy, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*authdomain.User, error) {
	if u, ok := r.users[id]; ok && !u.Removed {
		copy := *u
		return &copy, nil
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *memUserRepo) List(ctx context.Context, filter authdomain.UserFilter) ([]*authdomain.User, error) {
	out := []*authdomain.User{}
	for _, u := range r.users {
		if u.Removed {
			continue
		}
		if filter.RoleName != "" && u.RoleName != filter.RoleName {
			continue
		}
		copy := *u
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *authdomain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return authdomain.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64, removedAt time.Time) error {
	u, ok := r.users[id]
	if !ok || u.Removed {
		return authdomain.ErrUserNotFound
	}
	u.Removed = true
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	u, ok := r.users[id]
	if !ok || u.Removed {
		return authdomain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type memRoleRepo struct {
	roles map[int64]*roledomain.Role
}

func (r *memRoleRepo) Create(ctx context.Context, role *roledomain.Role) error {
	role.ID = int64(len(r.roles) + 1)
	r.roles[role.ID] = role
	return nil
}

func (r *memRoleRepo) GetByID(ctx context.Context, id int64) (*roledomain.Role, error) {
	if role, ok := r.roles[id]; ok {
		return role, nil
	}
	return nil, roledomain.ErrNotFound
}

func (r *memRoleRepo) GetByName(ctx context.Context, name string) (*roledomain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, roledomain.ErrNotFound
}

func (r *memRoleRepo) List(ctx context.Context) ([]*roledomain.Role, error) {
	out := []*roledomain.Role{}
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memRoleRepo) Update(ctx context.Context, role *roledomain.Role) error {
	r.roles[role.ID] = role
	return nil
}

func (r *memRoleRepo) Delete(ctx context.Context, id int64) error {
	delete(r.roles, id)
	return nil
}

type memGameRepo struct {
	games map[int64]*gamedomain.Game
}

func (r *memGameRepo) Create(ctx context.Context, game *gamedomain.Game) error {
	game.ID = int64(len(r.games) + 1)
	r.games[game.ID] = game
	return nil
}

func (r *memGameRepo) GetByID(ctx context.Context, id int64) (*gamedomain.Game, error) {
	if g, ok := r.games[id]; ok {
		copy := *g
		return &copy, nil
	}
	return nil, gamedomain.ErrNotFound
}

func (r *memGameRepo) List(ctx context.Context) ([]*gamedomain.Game, error) {
	out := []*gamedomain.Game{}
	for _, g := range r.games {
		copy := *g
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memGameRepo) ListOnSale(ctx context.Context) ([]*gamedomain.Game, error) {
	out := []*gamedomain.Game{}
	for _, g := range r.games {
		if g.OnSale {
			copy := *g
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memGameRepo) Update(ctx context.Context, game *gamedomain.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return gamedomain.ErrNotFound
	}
	r.games[game.ID] = game
	return nil
}

func (r *memGameRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.games[id]; !ok {
		return gamedomain.ErrNotFound
	}
	delete(r.games, id)
	return nil
}

type libraryKey struct {
	userID int64
	gameID int64
}

type memLibraryRepo struct {
	entries map[libraryKey]*librarydomain.Entry
}

func (r *memLibraryRepo) Add(ctx context.Context, entry *librarydomain.Entry) error {
	key := libraryKey{entry.UserID, entry.GameID}
	if _, ok := r.entries[key]; ok {
		return librarydomain.ErrAlreadyOwned
	}
	r.entries[key] = entry
	return nil
}

func (r *memLibraryRepo) Get(ctx context.Context, userID, gameID int64) (*librarydomain.Entry, error) {
	if e, ok := r.entries[libraryKey{userID, gameID}]; ok {
		return e, nil
	}
	return nil, librarydomain.ErrNotOwned
}

func (r *memLibraryRepo) ListAll(ctx context.Context) ([]*librarydomain.Entry, error) {
	out := []*librarydomain.Entry{}
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *memLibraryRepo) ListByUser(ctx context.Context, userID int64) ([]*librarydomain.Entry, error) {
	out := []*librarydomain.Entry{}
	for key, e := range r.entries {
		if key.userID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLibraryRepo) ListByGame(ctx context.Context, gameID int64) ([]*librarydomain.Entry, error) {
	out := []*librarydomain.Entry{}
	for key, e := range r.entries {
		if key.gameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLibraryRepo) Remove(ctx context.Context, userID, gameID int64) error {
	key := libraryKey{userID, gameID}
	if _, ok := r.entries[key]; !ok {
		return librarydomain.ErrNotOwned
	}
	delete(r.entries, key)
	return nil
}

type testEnv struct {
	server *Server
	codec  *token.Codec
	users  *memUserRepo
}

// Seeded identities: user 1 is an administrator, users 2 and 3 hold the
// Common role. User 2 owns game 1.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUserRepo{users: map[int64]*authdomain.User{
		1: {ID: 1, Email: "admin@example.com", Name: "Admin", RoleID: 1, RoleName: roledomain.Administrator, PasswordHash: string(hash)},
		2: {ID: 2, Email: "alice@example.com", Name: "Alice", RoleID: 2, RoleName: roledomain.Common, PasswordHash: string(hash)},
		3: {ID: 3, Email: "bob@example.com", Name: "Bob", RoleID: 2, RoleName: roledomain.Common, PasswordHash: string(hash)},
	}, nextID: 3}

	roles := &memRoleRepo{roles: map[int64]*roledomain.Role{
		1: {ID: 1, Name: roledomain.Administrator},
		2: {ID: 2, Name: roledomain.Common},
	}}

	games := &memGameRepo{games: map[int64]*gamedomain.Game{
		1: {ID: 1, Name: "Chess II", Price: 9.99},
		2: {ID: 2, Name: "Space Miner", Price: 29.99},
	}}

	libraries := &memLibraryRepo{entries: map[libraryKey]*librarydomain.Entry{
		{userID: 2, gameID: 1}: {UserID: 2, GameID: 1, UserName: "Alice", GameName: "Chess II"},
	}}

	codec, err := token.NewCodec(token.Config{
		Secret:   "gate-test-signing-secret-value!!",
		Issuer:   "api issuer",
		Audience: "api audience",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	services := Services{
		Auth:    authusecase.NewService(users, codec, logger),
		User:    userusecase.NewService(users, roles, logger),
		Role:    roleusecase.NewService(roles, logger),
		Game:    gameusecase.NewService(games, nil, logger),
		Library: libraryusecase.NewService(libraries, users, games, logger),
	}

	cfg := config.Config{
		HTTPPort:       "0",
		AllowedOrigins: []string{"*"},
	}
	server := NewServer(cfg, logger, metrics.NewHTTP("test", prometheus.NewRegistry()), services)

	return &testEnv{server: server, codec: codec, users: users}
}

func (e *testEnv) tokenFor(t *testing.T, id int64, name, email, role string) string {
	t.Helper()
	signed, _, err := e.codec.Mint(authusecase.Identity{UserID: id, Name: name, Email: email, Role: role})
	require.NoError(t, err)
	return signed
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.tokenFor(t, 1, "Admin", "admin@example.com", roledomain.Administrator)
}

func (e *testEnv) aliceToken(t *testing.T) string {
	return e.tokenFor(t, 2, "Alice", "alice@example.com", roledomain.Common)
}

func (e *testEnv) bobToken(t *testing.T) string {
	return e.tokenFor(t, 3, "Bob", "bob@example.com", roledomain.Common)
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: jwtCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	e.server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestProtectedRoutesRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/games"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/roles"},
		{http.MethodGet, "/library"},
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/users/change-password"},
	}
	for _, p := range paths {
		rec := env.do(p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Authentication required", messageOf(t, rec))
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	env := newTestEnv(t)

	tampered := env.aliceToken(t) + "x"
	rec := env.do(http.MethodGet, "/games", tampered, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", messageOf(t, rec))
}

func TestBearerHeaderAccepted(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("Authorization", "Bearer "+env.aliceToken(t))
	rec := httptest.NewRecorder()
	env.server.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCommonRoleRejectedOnAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.aliceToken(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/roles"},
		{http.MethodPost, "/games"},
		{http.MethodDelete, "/games/1"},
		{http.MethodGet, "/library"},
		{http.MethodGet, "/library/game/1"},
	}
	for _, p := range paths {
		rec := env.do(p.method, p.path, token, "{}")
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
		assert.Equal(t,
			"User is not allowed to access this endpoint. Required role(s): Administrator. Current role: Common",
			messageOf(t, rec))
	}
}

func TestCommonRoleAllowedOnCatalog(t *testing.T) {
	env := newTestEnv(t)
	token := env.aliceToken(t)

	for _, path := range []string{"/games", "/games/on-sale", "/games/1"} {
		rec := env.do(http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestAdminAllowedEverywhere(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	paths := []string{"/users", "/roles", "/games", "/library"}
	for _, path := range paths {
		rec := env.do(http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestEmptyRoleClaimDenied(t *testing.T) {
	env := newTestEnv(t)

	// The codec defaults a missing role to Common, so an empty role can
	// only reach the gate through the context path. Exercise requireRoles
	// directly.
	handler := env.server.requireRoles()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	identity := authusecase.Identity{UserID: 2, Name: "Alice", Email: "alice@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKeyIdentity{}, identity))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User role not found. Access denied.", messageOf(t, rec))
}

func TestLibraryOwnership(t *testing.T) {
	env := newTestEnv(t)

	// Alice may view her own library.
	rec := env.do(http.MethodGet, "/library/user/2", env.aliceToken(t), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Bob may not view Alice's.
	rec = env.do(http.MethodGet, "/library/user/2", env.bobToken(t), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Common users can only view their own game library", messageOf(t, rec))

	// Administrators bypass the ownership check.
	rec = env.do(http.MethodGet, "/library/user/2", env.adminToken(t), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Bob may not add a game to Alice's library.
	rec = env.do(http.MethodPost, "/library", env.bobToken(t), `{"userId":2,"gameId":2}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Common users can only add games to their own library", messageOf(t, rec))

	// Bob may add to his own.
	rec = env.do(http.MethodPost, "/library", env.bobToken(t), `{"userId":3,"gameId":2}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Bob may not delete from Alice's library.
	rec = env.do(http.MethodDelete, "/library/2/1", env.bobToken(t), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Common users can only delete games from their own library", messageOf(t, rec))

	// Alice may delete her own entry.
	rec = env.do(http.MethodDelete, "/library/2/1", env.aliceToken(t), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginSetsCookieAndGrantsAccess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwtCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login should set the jwt cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	var body struct {
		Success bool `json:"success"`
		User    struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Alice", body.User.Name)
	assert.Equal(t, "Login successful", body.Message)

	rec = env.do(http.MethodGet, "/auth/me", cookie.Value, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password.", messageOf(t, rec))

	rec = env.do(http.MethodPost, "/auth/login", "", `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", messageOf(t, rec))
}

func TestLoginRejectedWhileLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/login", env.aliceToken(t), `{"email":"bob@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User is already logged in. Please logout first before logging in again.", messageOf(t, rec))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No user is logged in.", messageOf(t, rec))

	rec = env.do(http.MethodPost, "/auth/logout", env.aliceToken(t), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", messageOf(t, rec))

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwtCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.aliceToken(t)

	rec := env.do(http.MethodPost, "/users/change-password", token, `{"currentPassword":"wrong","newPassword":"new password"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "current password is incorrect", messageOf(t, rec))

	rec = env.do(http.MethodPost, "/users/change-password", token, `{"currentPassword":"password123","newPassword":"new password"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The new password now authenticates.
	rec = env.do(http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"new password"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndMetricsAreOpen(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
