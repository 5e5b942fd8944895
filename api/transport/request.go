package transport

// PasswordRecoveryRequest asks for a reset token for the given email.
type PasswordRecoveryRequest struct {
	Email string `json:"email"`
}

// PasswordResetRequest exchanges a valid reset token for a new password.
type PasswordResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SelfUpdateRequest is the /users/me payload. It deliberately has no
// is_active or is_superuser fields: callers cannot change their own
// privileges. Pointer fields distinguish "not sent" from "sent empty".
type SelfUpdateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
}

// AdminCreateUserRequest is the superuser create payload.
type AdminCreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	IsActive    *bool  `json:"is_active"`
	IsSuperuser *bool  `json:"is_superuser"`
}

// AdminUpdateUserRequest is the superuser partial-update payload.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}
