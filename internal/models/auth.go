// Входные/выходные модели под REST-бэкенд HeartLink.
package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ POST /auth/login.
// RequiresVerification == true означает, что токены отсутствуют:
// аккаунт существует, но e-mail ещё не подтверждён.
type LoginResponse struct {
	Token                string `json:"token"`
	RefreshToken         string `json:"refreshToken,omitempty"`
	ExpiresIn            int64  `json:"expiresIn,omitempty"` // секунды жизни access-токена
	User                 *User  `json:"user,omitempty"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse — ответ POST /auth/refresh-token.
// ExpiresIn и User опциональны: бэкенд может не возвращать их.
type RefreshResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
