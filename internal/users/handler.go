package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitrack/internal/auth"
	"github.com/2beens/fitrack/internal/telemetry/metrics"
	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

const minPasswordLength = 6

var strengthTrackingModes = map[string]bool{
	"prs":    true,
	"volume": true,
	"both":   true,
}

type usersRepo interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error)
	SetOnboarding(ctx context.Context, id string, params OnboardingParams) (*User, error)
}

type loginService interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type OnboardingRequest struct {
	Goal                 string  `json:"goal"`
	TrainingDaysPerWeek  int     `json:"trainingDaysPerWeek"`
	StrengthTrackingMode string  `json:"strengthTrackingMode"`
	ExperienceLevel      string  `json:"experienceLevel"`
	BaselineWeight       float64 `json:"baselineWeight"`
}

type Handler struct {
	repo           usersRepo
	authService    loginService
	metricsManager *metrics.Manager
}

func NewHandler(repo usersRepo, authService loginService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		authService:    authService,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, authRouter *mux.Router) {
	authRouter.HandleFunc("/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	router.HandleFunc("/api/me", handler.HandleMe).Methods("GET", "OPTIONS").Name("me")
	router.HandleFunc("/api/me", handler.HandleUpdateProfile).Methods("PATCH", "OPTIONS").Name("update-profile")
	router.HandleFunc("/api/onboarding", handler.HandleOnboarding).Methods("POST", "OPTIONS").Name("onboarding")
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var registerReq RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	registerReq.Email = strings.TrimSpace(registerReq.Email)
	registerReq.Username = strings.TrimSpace(registerReq.Username)

	if registerReq.Email == "" || !strings.Contains(registerReq.Email, "@") {
		http.Error(w, "error, invalid email", http.StatusBadRequest)
		return
	}
	if len(registerReq.Password) < minPasswordLength {
		http.Error(w, "error, password too short", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Create(ctx, CreateParams{
		Email:        registerReq.Email,
		Username:     registerReq.Username,
		FirstName:    strings.TrimSpace(registerReq.FirstName),
		LastName:     strings.TrimSpace(registerReq.LastName),
		PasswordHash: passwordHash,
	})
	switch {
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, "username taken", http.StatusBadRequest)
		return
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, "email taken", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("register, create user: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.authService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("register, login after create: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterUsersRegistered.Inc()
	}

	log.Debugf("new user registered: %s", user.Email)
	handler.writeLoginResponse(w, token, user, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		log.Tracef("[email] failed login attempt for: %s", loginReq.Email)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for: %s", loginReq.Email)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success: %s", user.Email)
	handler.writeLoginResponse(w, token, user, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	authToken := auth.TokenFromRequest(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %s: %s", userID, err)
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	handler.writeUser(w, user, http.StatusOK)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateProfile")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var updateReq UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.UpdateProfile(ctx, UpdateProfileParams{
		ID:        userID,
		Username:  strings.TrimSpace(updateReq.Username),
		FirstName: strings.TrimSpace(updateReq.FirstName),
		LastName:  strings.TrimSpace(updateReq.LastName),
	})
	switch {
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, "username taken", http.StatusBadRequest)
		return
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to update profile for user %s: %s", userID, err)
		http.Error(w, "update profile failed", http.StatusInternalServerError)
		return
	}

	handler.writeUser(w, user, http.StatusOK)
}

func (handler *Handler) HandleOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.onboarding")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var onboardingReq OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&onboardingReq); err != nil {
		log.Tracef("onboarding, unmarshal json params: %s", err)
		http.Error(w, "onboarding failed", http.StatusBadRequest)
		return
	}

	if onboardingReq.Goal == "" {
		http.Error(w, "error, goal empty", http.StatusBadRequest)
		return
	}
	if onboardingReq.TrainingDaysPerWeek < 1 || onboardingReq.TrainingDaysPerWeek > 7 {
		http.Error(w, "error, invalid training days per week", http.StatusBadRequest)
		return
	}
	if !strengthTrackingModes[onboardingReq.StrengthTrackingMode] {
		http.Error(w, "error, invalid strength tracking mode", http.StatusBadRequest)
		return
	}
	if onboardingReq.ExperienceLevel == "" {
		http.Error(w, "error, experience level empty", http.StatusBadRequest)
		return
	}
	if onboardingReq.BaselineWeight <= 0 {
		http.Error(w, "error, invalid baseline weight", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.SetOnboarding(ctx, userID, OnboardingParams{
		Goal:                 onboardingReq.Goal,
		TrainingDaysPerWeek:  onboardingReq.TrainingDaysPerWeek,
		StrengthTrackingMode: onboardingReq.StrengthTrackingMode,
		ExperienceLevel:      onboardingReq.ExperienceLevel,
		BaselineWeight:       onboardingReq.BaselineWeight,
	})
	switch {
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to save onboarding for user %s: %s", userID, err)
		http.Error(w, "onboarding failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %s onboarded: goal %q, experience %q", user.Email, user.Goal, user.ExperienceLevel)
	handler.writeUser(w, user, http.StatusOK)
}

func (handler *Handler) writeLoginResponse(w http.ResponseWriter, token string, user *User, statusCode int) {
	respJson, err := json.Marshal(LoginResponse{Token: token, User: user})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func (handler *Handler) writeUser(w http.ResponseWriter, user *User, statusCode int) {
	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "failed to marshal user", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, statusCode)
}
