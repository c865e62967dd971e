package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasavipoluri/student-registry-api/internal/model"
	"github.com/vasavipoluri/student-registry-api/internal/payload"
	"github.com/vasavipoluri/student-registry-api/internal/usecase"
	"github.com/vasavipoluri/student-registry-api/shared/auth"
	"github.com/vasavipoluri/student-registry-api/shared/validator"
)

type fakeAuthUsecase struct {
	registerErr error
	loginResult *usecase.LoginResult
	loginErr    error
}

func (f *fakeAuthUsecase) Register(_ context.Context, _ usecase.RegisterParams) (*model.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}

	return &model.User{ID: 1, Username: "alice@example.com"}, nil
}

func (f *fakeAuthUsecase) Login(_ context.Context, _ usecase.LoginParams) (*usecase.LoginResult, error) {
	return f.loginResult, f.loginErr
}

type fakePasswordResetUsecase struct {
	generateErr error
	verifyErr   error
}

func (f *fakePasswordResetUsecase) GenerateOTP(_ context.Context, _ string) error {
	return f.generateErr
}

func (f *fakePasswordResetUsecase) VerifyAndUpdate(_ context.Context, _, _, _ string) error {
	return f.verifyErr
}

type fakeRegistrationUsecase struct {
	student   *model.Student
	getErr    error
	editErr   error
	deleteErr error
	createErr error
}

func (f *fakeRegistrationUsecase) Create(
	_ context.Context, _ string, _ usecase.StudentParams,
) ([]*model.Student, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	return []*model.Student{f.student}, nil
}

func (f *fakeRegistrationUsecase) Get(_ context.Context, _ int64) (*model.Student, error) {
	return f.student, f.getErr
}

func (f *fakeRegistrationUsecase) Edit(_ context.Context, _ string, _ int64, _ usecase.StudentParams) error {
	return f.editErr
}

func (f *fakeRegistrationUsecase) Delete(_ context.Context, _ string, _ int64) error {
	return f.deleteErr
}

func (f *fakeRegistrationUsecase) List(_ context.Context) ([]*model.Student, error) {
	return []*model.Student{f.student}, nil
}

func newTestHandler(
	t *testing.T,
	authUC usecase.AuthUsecase,
	resetUC usecase.PasswordResetUsecase,
	regUC usecase.RegistrationUsecase,
) (http.Handler, auth.JWTAuthenticator) {
	t.Helper()

	logger := zerolog.Nop()

	validate, err := validator.New()
	require.NoError(t, err)

	jwtAuth := auth.NewJWTAuthenticator("test-secret", "student-registry-api", 30*time.Minute)

	h := NewHTTPHandler(&logger, validate, jwtAuth, authUC, resetUC, regUC)

	return h.Router(), jwtAuth
}

func sessionCookieFor(t *testing.T, jwtAuth auth.JWTAuthenticator, username string) *http.Cookie {
	t.Helper()

	token, _, err := jwtAuth.GenerateSessionToken(username)
	require.NoError(t, err)

	return &http.Cookie{Name: sessionCookie, Value: token}
}

func TestRequireSession(t *testing.T) {
	router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(sessionCookieFor(t, jwtAuth, "alice@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var page payload.PageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, "home", page.Page)
		assert.Equal(t, "alice@example.com", page.User)
	})
}

func TestLoginHandler(t *testing.T) {
	body := `{"username":"alice@example.com","password":"Str0ng!pass"}`

	t.Run("success sets cookie and redirects home", func(t *testing.T) {
		authUC := &fakeAuthUsecase{
			loginResult: &usecase.LoginResult{Token: "tok", ExpiresAt: time.Now().Add(30 * time.Minute)},
		}
		router, _ := newTestHandler(t, authUC, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/home", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, 30*60, cookies[0].MaxAge)

		var resp payload.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("already registered redirects without a cookie", func(t *testing.T) {
		authUC := &fakeAuthUsecase{loginErr: usecase.ErrAlreadyRegistered}
		router, _ := newTestHandler(t, authUC, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/already-registered", rec.Header().Get("Location"))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("bad credentials", func(t *testing.T) {
		authUC := &fakeAuthUsecase{loginErr: usecase.ErrInvalidCredentials}
		router, _ := newTestHandler(t, authUC, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields are enumerated", func(t *testing.T) {
		router, _ := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp payload.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 2)
	})
}

func TestSignupHandler(t *testing.T) {
	t.Run("weak password reports every violation", func(t *testing.T) {
		authUC := &fakeAuthUsecase{
			registerErr: &usecase.PasswordPolicyError{Violations: []string{
				"Password is too short",
				"Password doesn't contain an uppercase letter",
				"Password doesn't contain a special character",
				"Password doesn't contain a digit",
			}},
		}
		router, _ := newTestHandler(t, authUC, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		body := `{"username":"alice@example.com","password":"weak","password_repeat":"weak"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp payload.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 4)
	})

	t.Run("duplicate user conflicts", func(t *testing.T) {
		authUC := &fakeAuthUsecase{registerErr: usecase.ErrUserAlreadyExists}
		router, _ := newTestHandler(t, authUC, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		body := `{"username":"alice@example.com","password":"Str0ng!pass","password_repeat":"Str0ng!pass"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		router, _ := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{}, &fakeRegistrationUsecase{})

		body := `{"username":"alice@example.com","password":"Str0ng!pass","password_repeat":"Str0ng!pass"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestPasswordResetHandlers(t *testing.T) {
	t.Run("unknown user on generate", func(t *testing.T) {
		resetUC := &fakePasswordResetUsecase{generateErr: usecase.ErrUserNotFound}
		router, _ := newTestHandler(t, &fakeAuthUsecase{}, resetUC, &fakeRegistrationUsecase{})

		body := `{"username":"ghost@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/generate-otp", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid otp on verify", func(t *testing.T) {
		resetUC := &fakePasswordResetUsecase{verifyErr: usecase.ErrInvalidOTP}
		router, _ := newTestHandler(t, &fakeAuthUsecase{}, resetUC, &fakeRegistrationUsecase{})

		body := `{"username":"alice@example.com","otp":"123456","new_password":"NewPass1!"}`
		req := httptest.NewRequest(http.MethodPost, "/verify-and-update", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStudentHandlers(t *testing.T) {
	student := &model.Student{
		ID:               7,
		FirstName:        "Alice",
		Email:            "alice@example.com",
		CourseRegistered: true,
	}

	t.Run("invalid id", func(t *testing.T) {
		router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{},
			&fakeRegistrationUsecase{student: student})

		req := httptest.NewRequest(http.MethodGet, "/student/abc", nil)
		req.AddCookie(sessionCookieFor(t, jwtAuth, "alice@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lookup returns record and requester", func(t *testing.T) {
		router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{},
			&fakeRegistrationUsecase{student: student})

		req := httptest.NewRequest(http.MethodGet, "/student/7", nil)
		req.AddCookie(sessionCookieFor(t, jwtAuth, "bob@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp studentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Alice", resp.Student.FirstName)
		assert.Equal(t, "bob@example.com", resp.User)
	})

	t.Run("edit by non-owner is forbidden", func(t *testing.T) {
		router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{},
			&fakeRegistrationUsecase{student: student, editErr: usecase.ErrNotOwner})

		body := `{"first_name":"A","last_name":"B","date_of_birth":"1999-04-12","email":"mallory@example.com",` +
			`"phone":"5550101","college_name":"C","degree":"BSc","course":"CS"}`
		req := httptest.NewRequest(http.MethodPost, "/edit-student/7", strings.NewReader(body))
		req.AddCookie(sessionCookieFor(t, jwtAuth, "mallory@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("edit form enforces ownership", func(t *testing.T) {
		router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{},
			&fakeRegistrationUsecase{student: student})

		req := httptest.NewRequest(http.MethodGet, "/edit-student/7", nil)
		req.AddCookie(sessionCookieFor(t, jwtAuth, "mallory@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("already registered create redirects", func(t *testing.T) {
		router, jwtAuth := newTestHandler(t, &fakeAuthUsecase{}, &fakePasswordResetUsecase{},
			&fakeRegistrationUsecase{student: student, createErr: usecase.ErrAlreadyRegistered})

		body := `{"first_name":"A","last_name":"B","date_of_birth":"1999-04-12","email":"alice@example.com",` +
			`"phone":"5550101","college_name":"C","degree":"BSc","course":"CS"}`
		req := httptest.NewRequest(http.MethodPost, "/registration", strings.NewReader(body))
		req.AddCookie(sessionCookieFor(t, jwtAuth, "alice@example.com"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/already-registered", rec.Header().Get("Location"))
	})
}
