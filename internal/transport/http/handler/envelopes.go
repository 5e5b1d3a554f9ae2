package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-otp-register/internal/domain"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UsersEnvelope wraps the diagnostic user listing.
type UsersEnvelope struct {
	Success bool       `json:"success"`
	Users   []UserView `json:"users"`
}

// UserView is the listed projection of a user. IsVerified is 0 or 1.
type UserView struct {
	ID         string    `json:"id"`
	Nama       string    `json:"nama"`
	Email      string    `json:"email"`
	IsVerified int       `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserView(u *domain.User) UserView {
	v := UserView{ID: u.UserID, Nama: u.Nama, Email: u.Email, CreatedAt: u.CreatedAt}
	if u.Verified {
		v.IsVerified = 1
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Message: msg})
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
