package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yigit/campusnet/internal/app/controllers"
	"github.com/yigit/campusnet/internal/app/repositories/memory"
	"github.com/yigit/campusnet/internal/app/routes"
	"github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/middleware"
	"github.com/yigit/campusnet/internal/pkg/auth"
	"github.com/yigit/campusnet/internal/pkg/filestorage"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Field   string          `json:"field"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type APISuite struct {
	suite.Suite
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidation()

	storage, err := filestorage.NewLocalStorage(s.T().TempDir(), "/uploads")
	s.Require().NoError(err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "campusnet-test"})
	revocations := auth.NewMemoryRevocationList()
	svc := services.NewServices(services.Dependencies{
		Repos:       memory.NewRepositories(),
		Storage:     storage,
		JWT:         jwtService,
		Revocations: revocations,
		Logger:      zerolog.Nop(),
		BcryptCost:  bcrypt.MinCost,
	})

	s.router = gin.New()
	routes.SetupRouter(s.router, routes.Controllers{
		Home:         controllers.NewHomeController(nil),
		Auth:         controllers.NewAuthController(svc.Auth, zerolog.Nop()),
		Users:        controllers.NewUserController(svc.Users, zerolog.Nop()),
		Educations:   controllers.NewEducationController(svc.Educations),
		Certificates: controllers.NewCertificateController(svc.Certificates),
		Achievements: controllers.NewAchievementController(svc.Achievements),
		Resumes:      controllers.NewResumeController(svc.Resumes),
		Posts:        controllers.NewPostController(svc.Posts, svc.Comments),
		Connections:  controllers.NewConnectionController(svc.Connections),
	}, middleware.NewAuthMiddleware(jwtService, revocations))
}

func (s *APISuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *APISuite) upload(method, path, token, field, filename string, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		s.Require().NoError(w.WriteField(k, v))
	}
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		s.Require().NoError(err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.serve(req, token)
}

func (s *APISuite) serve(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent && w.Body.Len() > 0 {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// signupAndLogin returns the new user's id and an access token
func (s *APISuite) signupAndLogin(username string) (int64, string) {
	w, env := s.do(http.MethodPost, "/api/v1/signup", "", map[string]interface{}{
		"username": username, "email": username + "@example.com", "password": "strongpw123", "is_student": true,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &user))

	w, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "strongpw123"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var token struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &token))
	return user.ID, token.AccessToken
}

func (s *APISuite) TestHome() {
	w, _ := s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Welcome to CampusNet API!")

	w, _ = s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestSignupResponse() {
	w, env := s.do(http.MethodPost, "/api/v1/signup", "", map[string]interface{}{
		"username": "john_doe", "email": "john@example.com", "password": "strongpw123", "is_student": true,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.True(env.Success)

	var user map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &user))
	s.Equal("john_doe", user["username"])
	s.Equal(true, user["is_student"])
	s.NotNil(user["id"])
	s.NotContains(user, "password")

	w, env = s.do(http.MethodPost, "/api/v1/users", "", map[string]interface{}{
		"username": "john_doe", "email": "other@example.com", "password": "strongpw123",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("username", env.Error.Field)

	w, env = s.do(http.MethodPost, "/api/v1/signup", "", map[string]interface{}{"username": "x", "email": "x@example.com"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("password", env.Error.Field)
}

func (s *APISuite) TestLoginFailuresAreUniform() {
	s.signupAndLogin("john_doe")

	w, wrongPassword := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "john_doe", "password": "nope-nope"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, unknownUser := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "nobody", "password": "nope-nope"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(wrongPassword.Error.Code, unknownUser.Error.Code)
}

func (s *APISuite) TestLogoutRejectsToken() {
	_, token := s.signupAndLogin("john_doe")

	w, _ := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestEducationOwnership() {
	_, aliceToken := s.signupAndLogin("alice")
	_, bobToken := s.signupAndLogin("bob")

	w, _ := s.do(http.MethodPost, "/api/v1/educations", "", map[string]interface{}{"degree": "BSc", "institution": "U", "start_year": 2020})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/educations", bobToken, map[string]interface{}{"degree": "BSc", "institution": "U", "start_year": 2020})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var edu struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &edu))
	path := fmt.Sprintf("/api/v1/educations/%d", edu.ID)

	w, env = s.do(http.MethodPatch, path, aliceToken, map[string]interface{}{"degree": "PhD"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("FORBIDDEN", env.Error.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/educations", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPut, path, bobToken, map[string]interface{}{"degree": "MSc"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(string(env.Error.Details), "institution")

	w, _ = s.do(http.MethodPatch, path, bobToken, map[string]interface{}{"end_year": 2019})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, path, bobToken, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w, _ = s.do(http.MethodGet, path, "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestUsernameChangeRejected() {
	id, token := s.signupAndLogin("john_doe")

	w, env := s.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", id), token, map[string]interface{}{"username": "johnny"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("username", env.Error.Field)
}

func (s *APISuite) TestProfileWithResume() {
	id, token := s.signupAndLogin("john_doe")

	for _, degree := range []string{"BSc", "MSc"} {
		w, _ := s.do(http.MethodPost, "/api/v1/educations", token, map[string]interface{}{"degree": degree, "institution": "U", "start_year": 2018})
		s.Require().Equal(http.StatusCreated, w.Code)
	}
	w, _ := s.do(http.MethodPost, "/api/v1/certificates", token, map[string]interface{}{"title": "CKA", "issued_by": "CNCF", "issue_date": "2021-09-01"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, _ = s.upload(http.MethodPost, "/api/v1/resumes", token, "", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, env := s.upload(http.MethodPost, "/api/v1/resumes", token, "file", "cv.pdf", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resume struct {
		ID         int64     `json:"id"`
		File       string    `json:"file"`
		UploadedAt time.Time `json:"uploaded_at"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &resume))

	w, _ = s.upload(http.MethodPost, "/api/v1/resumes", token, "file", "cv2.pdf", nil)
	s.Equal(http.StatusConflict, w.Code)

	w, env = s.upload(http.MethodPut, fmt.Sprintf("/api/v1/resumes/%d", resume.ID), token, "file", "cv3.pdf", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var replaced struct {
		File       string    `json:"file"`
		UploadedAt time.Time `json:"uploaded_at"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &replaced))
	s.NotEqual(resume.File, replaced.File)
	s.True(resume.UploadedAt.Equal(replaced.UploadedAt))

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var profile struct {
		Educations   []json.RawMessage `json:"educations"`
		Certificates []json.RawMessage `json:"certificates"`
		Achievements []json.RawMessage `json:"achievements"`
		Resume       *json.RawMessage  `json:"resume"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &profile))
	s.Len(profile.Educations, 2)
	s.Len(profile.Certificates, 1)
	s.NotNil(profile.Achievements)
	s.Empty(profile.Achievements)
	s.NotNil(profile.Resume)
	s.Contains(string(env.Data), `"achievements":[]`)
}

func (s *APISuite) TestDeleteAccount() {
	id, token := s.signupAndLogin("john_doe")
	w, _ := s.do(http.MethodPost, "/api/v1/achievements", token, map[string]interface{}{"title": "Winner"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", id), token, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/achievements", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, string(env.Data))
}

func (s *APISuite) TestSearchUsers() {
	_, token := s.signupAndLogin("alice_w")
	s.signupAndLogin("bob")
	s.signupAndLogin("alicia")

	w, env := s.do(http.MethodGet, "/api/v1/users/search?q=ALI", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var users []struct {
		Username string `json:"username"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &users))
	s.Require().Len(users, 2)
	s.Equal("alicia", users[0].Username)
	s.Equal("alice_w", users[1].Username)

	w, env = s.do(http.MethodGet, "/api/v1/users/search?q=ali", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &users))
	s.Require().Len(users, 1)
	s.Equal("alicia", users[0].Username)

	w, env = s.do(http.MethodGet, "/api/v1/users/search?q=bob@example", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &users))
	s.Len(users, 1)
}

func (s *APISuite) TestPostsAndComments() {
	_, aliceToken := s.signupAndLogin("alice")
	_, bobToken := s.signupAndLogin("bob")

	w, _ := s.do(http.MethodPost, "/api/v1/posts", "", map[string]string{"content": "hello"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{"content": "hello campus"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var post struct {
		ID        int64   `json:"id"`
		Likes     []int64 `json:"likes"`
		LikeCount int     `json:"like_count"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	s.NotNil(post.Likes)
	path := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	w, _ = s.do(http.MethodPatch, path, bobToken, map[string]string{"content": "hijacked"})
	s.Equal(http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodDelete, path, bobToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPatch, path, aliceToken, map[string]string{"content": "   "})
	s.Equal(http.StatusBadRequest, w.Code)
	w, _ = s.do(http.MethodPatch, path, aliceToken, map[string]string{"content": "edited"})
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPut, path+"/like", bobToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	s.Equal(1, post.LikeCount)
	w, env = s.do(http.MethodPut, path+"/like", bobToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	s.Equal(0, post.LikeCount)

	w, env = s.do(http.MethodPost, path+"/comments", bobToken, map[string]string{"content": "nice"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var comment struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &comment))
	commentPath := fmt.Sprintf("/api/v1/comments/%d", comment.ID)

	w, _ = s.do(http.MethodPut, commentPath+"/like", aliceToken, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, commentPath, aliceToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodGet, path, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(string(env.Data), `"comment_count":1`)

	w, _ = s.do(http.MethodDelete, path, aliceToken, nil)
	s.Equal(http.StatusNoContent, w.Code)
	w, _ = s.do(http.MethodGet, commentPath, "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, path+"/comments", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestFeedFilters() {
	aliceID, aliceToken := s.signupAndLogin("alice")
	_, bobToken := s.signupAndLogin("bob")
	for _, token := range []string{aliceToken, bobToken, aliceToken} {
		w, _ := s.do(http.MethodPost, "/api/v1/posts", token, map[string]string{"content": "post"})
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	var posts []json.RawMessage
	w, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/posts?user=%d", aliceID), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &posts))
	s.Len(posts, 2)

	w, env = s.do(http.MethodGet, "/api/v1/posts?limit=1", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &posts))
	s.Len(posts, 1)

	w, env = s.do(http.MethodGet, "/api/v1/posts?limit=-1", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("limit", env.Error.Field)
}

func (s *APISuite) TestConnectionFlow() {
	aliceID, aliceToken := s.signupAndLogin("alice")
	bobID, bobToken := s.signupAndLogin("bob")

	w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/connect", aliceID), aliceToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/connect", bobID), aliceToken, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/connect", bobID), aliceToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/connections/requests", bobToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var pending []struct {
		Requester int64  `json:"requester"`
		Status    string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &pending))
	s.Require().Len(pending, 1)
	s.Equal(aliceID, pending[0].Requester)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/accept", bobID), aliceToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/accept", aliceID), bobToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(string(env.Data), `"status":"accepted"`)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/connections", aliceID), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var accepted []json.RawMessage
	s.Require().NoError(json.Unmarshal(env.Data, &accepted))
	s.Len(accepted, 1)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/connection", aliceID), bobToken, nil)
	s.Equal(http.StatusNoContent, w.Code)
	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/connections", aliceID), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, string(env.Data))
}

func (s *APISuite) TestDeleteAccountWithSocialData() {
	aliceID, aliceToken := s.signupAndLogin("alice")
	bobID, bobToken := s.signupAndLogin("bob")

	w, env := s.do(http.MethodPost, "/api/v1/posts", bobToken, map[string]string{"content": "bob's post"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var post struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	path := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	w, _ = s.do(http.MethodPut, path+"/like", aliceToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, path+"/comments", aliceToken, map[string]string{"content": "hi"})
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{"content": "alice's post"})
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/connect", bobID), aliceToken, nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aliceID), aliceToken, nil)
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, path, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(string(env.Data), `"like_count":0`)
	s.Contains(string(env.Data), `"comment_count":0`)

	w, env = s.do(http.MethodGet, "/api/v1/posts", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var posts []json.RawMessage
	s.Require().NoError(json.Unmarshal(env.Data, &posts))
	s.Len(posts, 1)

	w, env = s.do(http.MethodGet, "/api/v1/connections/requests", bobToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, string(env.Data))
}
