package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/users"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "пользователь не найден"
	msgWrongPassword      = "неверный текущий пароль"
	msgEmailTaken         = "пользователь с таким email уже зарегистрирован"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			h.logger.Warn("PUT /me - Wrong current password: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgWrongPassword)

		case errors.Is(err, users.ErrEmailTaken):
			h.logger.Warn("PUT /me - Email taken: user_id=%d", userID)
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /me - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /me - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /me - Failed to update profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /me - Profile updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
