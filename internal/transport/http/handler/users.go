package handler

import (
	"errors"
	"net/http"

	"github.com/go-otp-register/internal/application/user"
	"github.com/go-otp-register/internal/domain"
	"github.com/go-otp-register/internal/pkg/validate"
	"go.uber.org/zap"
)

// UserHandler serves registration, OTP verification and the user listing.
type UserHandler struct {
	svc user.Service
	log *zap.Logger
}

func NewUserHandler(svc user.Service, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	_, err := h.svc.Register(r.Context(), req)
	switch {
	case err == nil:
		writeOK(w, "Registration succeeded! An OTP code has been sent to your email.")
	case errors.Is(err, domain.ErrAlreadyVerified), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, msgEmailTaken)
	case errors.Is(err, domain.ErrDelivery):
		writeError(w, http.StatusInternalServerError, msgRegisterDelivery)
	default:
		internalError(w, r, h.log, "register", err)
	}
}

func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgVerifyRequired)
		return
	}

	err := h.svc.Verify(r.Context(), req.Email, req.OTP)
	if err == nil {
		writeOK(w, "Verification succeeded! Your account is now active.")
		return
	}
	if status, msg, ok := otpErrorStatus(err); ok {
		writeError(w, status, msg)
		return
	}
	internalError(w, r, h.log, "verify otp", err)
}

func (h *UserHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgEmailRequired)
		return
	}

	err := h.svc.Resend(r.Context(), req.Email)
	switch {
	case err == nil:
		writeOK(w, "A new OTP code has been sent to your email.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgEmailUnknown)
	case errors.Is(err, domain.ErrAlreadyVerified):
		writeError(w, http.StatusBadRequest, msgAlreadyVerified)
	case errors.Is(err, domain.ErrDelivery):
		writeError(w, http.StatusInternalServerError, msgResendDelivery)
	default:
		internalError(w, r, h.log, "resend otp", err)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "list users", err)
		return
	}
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	writeJSON(w, http.StatusOK, UsersEnvelope{Success: true, Users: views})
}
