package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
)

// UserHandler handles signup and signin.
type UserHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	validator  *RequestValidator
	logger     *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		validator:  NewRequestValidator(),
		logger:     logger.With(slog.String("component", "user_handler")),
	}
}

// Signup handles POST /user/signup.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SignupRequest
	if issues := h.validator.DecodeAndValidate(r, &req); len(issues) > 0 {
		respondInvalidInput(w, r, issues)
		return
	}

	user, err := domain.NewUser(req.Email, req.Password, req.Name)
	if err != nil {
		respondInvalidInput(w, r, []Issue{domainIssue(err)})
		return
	}

	user.HashedPassword, err = h.hasher.Hash(req.Password)
	if err != nil {
		respondPersistenceFailure(w, r, MsgInvalidRequest, err)
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("signup rejected: email already registered")
		}
		respondPersistenceFailure(w, r, MsgInvalidRequest, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		respondPersistenceFailure(w, r, MsgInvalidRequest, err)
		return
	}

	log.Info("user signed up", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message: MsgUserCreated,
		Token:   token,
	})
}

// Signin handles POST /user/signin.
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SigninRequest
	if issues := h.validator.DecodeAndValidate(r, &req); len(issues) > 0 {
		respondInvalidInput(w, r, issues)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusForbidden, MsgInvalidCredentials)
			return
		}
		respondPersistenceFailure(w, r, MsgInvalidRequest, err)
		return
	}

	if err := h.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Warn("stored credential could not be compared",
				slog.Int64("user_id", user.ID),
				slog.String("error", redact.Error(err)))
		}
		shared.RespondWithError(w, r, http.StatusForbidden, MsgInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		respondPersistenceFailure(w, r, MsgInvalidRequest, err)
		return
	}

	log.Debug("user signed in", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message: MsgLoginSuccess,
		Token:   token,
	})
}
