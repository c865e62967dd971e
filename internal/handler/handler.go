package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasavipoluri/student-registry-api/internal/usecase"
	"github.com/vasavipoluri/student-registry-api/shared/auth"
	"github.com/vasavipoluri/student-registry-api/shared/validator"
)

// HTTPHandler exposes the HTTP surface of the service.
type HTTPHandler struct {
	logger               *zerolog.Logger
	validate             *validator.Validator
	jwtAuth              auth.JWTAuthenticator
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	registrationUsecase  usecase.RegistrationUsecase
}

// NewHTTPHandler creates a new HTTPHandler instance.
func NewHTTPHandler(
	logger *zerolog.Logger,
	validate *validator.Validator,
	jwtAuth auth.JWTAuthenticator,
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	registrationUsecase usecase.RegistrationUsecase,
) *HTTPHandler {
	return &HTTPHandler{
		logger:               logger,
		validate:             validate,
		jwtAuth:              jwtAuth,
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		registrationUsecase:  registrationUsecase,
	}
}

// Router builds the chi router with the public and session-protected routes.
func (h *HTTPHandler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.loginPage)
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Get("/signup", h.signupPage)
	r.Post("/signup", h.signup)
	r.Get("/reset", h.resetPage)
	r.Post("/generate-otp", h.generateOTP)
	r.Post("/verify-and-update", h.verifyAndUpdate)
	r.Get("/already-registered", h.alreadyRegisteredPage)
	r.Get("/healthz", h.healthz)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/home", h.homePage)
		r.Get("/registration", h.registrationPage)
		r.Post("/registration", h.createRegistration)
		r.Get("/studentdetails", h.listStudents)
		r.Get("/student/{id}", h.getStudent)
		r.Get("/edit-student/{id}", h.editStudentForm)
		r.Post("/edit-student/{id}", h.editStudent)
		r.Post("/delete-student/{id}", h.deleteStudent)
		r.Get("/contactus", h.contactPage)
		r.Get("/courses", h.coursesPage)
		r.Get("/logout", h.logout)
	})

	return r
}

func (h *HTTPHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
