package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/api/controller"
	"github.com/leon37/BloggerHub/internal/model"
	"github.com/leon37/BloggerHub/internal/repository"
	"github.com/leon37/BloggerHub/internal/service"
	"github.com/spf13/viper"
)

func init() {
	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire_hours", 720)
}

type testApp struct {
	router   *gin.Engine
	userRepo *repository.MemoryUserRepo
	postRepo *repository.MemoryPostRepo
	authSvc  *service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	userRepo := repository.NewMemoryUserRepo()
	postRepo := repository.NewMemoryPostRepo()

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo)

	r := gin.New()
	RegisterRoutes(r, userRepo,
		controller.NewUserController(authSvc, userSvc),
		controller.NewPostController(postSvc))

	return &testApp{router: r, userRepo: userRepo, postRepo: postRepo, authSvc: authSvc}
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login 前置依赖注册成功，直接返回 token
func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/users/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Token == "" {
		t.Fatalf("login body %s: %v", w.Body.String(), err)
	}
	return body.Token
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %s: %v", w.Body.String(), err)
	}
	return body["code"]
}

// 完整走一遍：注册 → 登录 → 发文 → 公开列表能看到
func TestRegisterLoginPostScenario(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	token := app.login(t, "a@x.com", "pw1234")

	w = app.do(t, http.MethodPost, "/posts/blogger/newPost", token, `{"title":"T","content":"C"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("newPost status = %d, body %s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodGet, "/posts", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var posts []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("bad list body: %v", err)
	}
	if len(posts) != 1 || posts[0]["title"] != "T" || posts[0]["content"] != "C" {
		t.Errorf("public list = %v, want [{T C}]", posts)
	}
	// 公开投影不带 is_hidden
	if _, ok := posts[0]["is_hidden"]; ok {
		t.Error("public projection leaks is_hidden")
	}
}

func TestEditForeignPostForbidden(t *testing.T) {
	app := newTestApp(t)

	for _, u := range []struct{ name, email string }{{"alice", "a@x.com"}, {"bob", "b@x.com"}} {
		w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"`+u.name+`","email":"`+u.email+`","password":"pw1234"}`)
		if w.Code != http.StatusNoContent {
			t.Fatalf("register %s: %d", u.name, w.Code)
		}
	}
	aliceToken := app.login(t, "a@x.com", "pw1234")
	bobToken := app.login(t, "b@x.com", "pw1234")

	w := app.do(t, http.MethodPost, "/posts/blogger/newPost", aliceToken, `{"title":"T","content":"C"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("newPost: %d", w.Code)
	}

	alice, _ := app.userRepo.GetByEmail(context.Background(), "a@x.com")
	mine, _ := app.postRepo.ListByAuthor(context.Background(), alice.ID)
	if len(mine) != 1 {
		t.Fatalf("alice has %d posts", len(mine))
	}
	postID := mine[0].ID

	w = app.do(t, http.MethodPut, "/posts/blogger/editPost/"+postID, bobToken, `{"title":"X","content":"Y"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign edit status = %d, want 403", w.Code)
	}
	if code := errCode(t, w); code != "YOU_CAN'T_EDIT_THIS_POST" {
		t.Errorf("code = %q", code)
	}

	w = app.do(t, http.MethodPut, "/posts/blogger/editPost/"+postID, aliceToken, `{"title":"X","content":"Y"}`)
	if w.Code != http.StatusOK {
		t.Errorf("owner edit status = %d, want 200", w.Code)
	}
}

func TestDeleteMissingPost(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}
	token := app.login(t, "a@x.com", "pw1234")

	w = app.do(t, http.MethodDelete, "/posts/blogger/deletePost/no-such-id", token, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errCode(t, w); code != "THIS_POST_DOES_NOT_EXISTS" {
		t.Errorf("code = %q", code)
	}
}

func TestPublishHideOverHTTP(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}
	token := app.login(t, "a@x.com", "pw1234")

	if w := app.do(t, http.MethodPost, "/posts/blogger/newPost", token, `{"title":"T","content":"C"}`); w.Code != http.StatusNoContent {
		t.Fatalf("newPost: %d", w.Code)
	}
	alice, _ := app.userRepo.GetByEmail(context.Background(), "a@x.com")
	mine, _ := app.postRepo.ListByAuthor(context.Background(), alice.ID)
	postID := mine[0].ID

	// 新文章默认公开，publish 直接报已公开
	w = app.do(t, http.MethodPut, "/posts/blogger/publishPost/"+postID, token, "")
	if w.Code != http.StatusBadRequest || errCode(t, w) != "ALREADY_PUBLISHED" {
		t.Fatalf("publish on public: %d %s", w.Code, w.Body.String())
	}

	if w := app.do(t, http.MethodPut, "/posts/blogger/hidePost/"+postID, token, ""); w.Code != http.StatusOK {
		t.Fatalf("hide: %d", w.Code)
	}
	w = app.do(t, http.MethodPut, "/posts/blogger/hidePost/"+postID, token, "")
	if w.Code != http.StatusBadRequest || errCode(t, w) != "ALREADY_HIDDEN" {
		t.Fatalf("second hide: %d %s", w.Code, w.Body.String())
	}

	// 隐藏后公开列表看不到，自己的列表还在
	w = app.do(t, http.MethodGet, "/posts", token, "")
	if body := w.Body.String(); body != "[]" {
		t.Errorf("public list after hide = %s, want []", body)
	}
	w = app.do(t, http.MethodGet, "/posts/blogger", token, "")
	var mineView []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &mineView); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(mineView) != 1 || mineView[0]["is_hidden"] != true {
		t.Errorf("own list after hide = %v", mineView)
	}

	if w := app.do(t, http.MethodPut, "/posts/blogger/publishPost/"+postID, token, ""); w.Code != http.StatusOK {
		t.Fatalf("re-publish: %d", w.Code)
	}
}

func TestUserListByRole(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if err := app.authSvc.CreateByAdmin(ctx, model.UserTypeAdmin, "root", "root@x.com", "pw1234"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}

	adminToken := app.login(t, "root@x.com", "pw1234")
	bloggerToken := app.login(t, "a@x.com", "pw1234")

	w = app.do(t, http.MethodGet, "/api/v1/users", adminToken, "")
	var asAdmin []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &asAdmin); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(asAdmin) != 2 {
		t.Errorf("admin sees %d users, want 2", len(asAdmin))
	}
	for _, u := range asAdmin {
		if u["id"] == nil || u["id"] == "" {
			t.Errorf("admin listing missing id: %v", u)
		}
	}

	w = app.do(t, http.MethodGet, "/api/v1/users", bloggerToken, "")
	var asBlogger []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &asBlogger); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	// 非管理员：看不到 id，也看不到管理员账号
	if len(asBlogger) != 1 || asBlogger[0]["name"] != "alice" {
		t.Errorf("blogger listing = %v, want only alice", asBlogger)
	}
	if _, ok := asBlogger[0]["id"]; ok {
		t.Error("blogger listing leaks ids")
	}
}

func TestAdminGateOnUserCreation(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if err := app.authSvc.CreateByAdmin(ctx, model.UserTypeAdmin, "root", "root@x.com", "pw1234"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}

	adminToken := app.login(t, "root@x.com", "pw1234")
	bloggerToken := app.login(t, "a@x.com", "pw1234")

	body := `{"type":"ADMIN","name":"root2","email":"root2@x.com","password":"pw1234"}`
	w = app.do(t, http.MethodPost, "/api/v1/users", bloggerToken, body)
	if w.Code != http.StatusForbidden || errCode(t, w) != "NOT_AN_ADMIN" {
		t.Fatalf("blogger create user: %d %s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, "/api/v1/users", adminToken, body)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin create user: %d %s", w.Code, w.Body.String())
	}
}

func TestMiscRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}
	token := app.login(t, "a@x.com", "pw1234")

	w = app.do(t, http.MethodGet, "/api/v1/users/home", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Welcome on home page") {
		t.Errorf("home: %d %s", w.Code, w.Body.String())
	}

	// 没 token 的受保护路由一律 401
	if w := app.do(t, http.MethodGet, "/posts", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /posts: %d", w.Code)
	}

	// 没匹配上的路由 404
	if w := app.do(t, http.MethodGet, "/nope", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("unmatched route: %d", w.Code)
	}

	if w := app.do(t, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}
}

func TestDuplicateRegistrationOverHTTP(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("register: %d", w.Code)
	}

	// name 和 email 同时撞车先报 name
	w = app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"alice","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusBadRequest || errCode(t, w) != "NAME_ALREADY_USED" {
		t.Fatalf("dup both: %d %s", w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodPost, "/api/v1/users/register", "", `{"name":"bob","email":"a@x.com","password":"pw1234"}`)
	if w.Code != http.StatusBadRequest || errCode(t, w) != "EMAIL_ALREADY_USED" {
		t.Fatalf("dup email: %d %s", w.Code, w.Body.String())
	}
}
