package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/models/account"
	"github.com/GymDesk/gymdesk/models/member"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RegisterResponse returns the new account id, and the member id when
// a member-role account was created. Registration does not log the
// user in; no token is issued.
type RegisterResponse struct {
	Message  string  `json:"message"`
	UserID   string  `json:"userId"`
	MemberID *string `json:"memberId"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the trimmed account projection carried in the login
// response: identity and role only, plus the member id for member
// accounts.
type LoginUser struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Role      account.Role `json:"role"`
	MemberID  *string      `json:"member_id,omitempty"`
}

// UserResponse is the sanitized account projection returned by the
// profile endpoint. It never carries the password hash.
type UserResponse struct {
	ID         string       `json:"id"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Role       account.Role `json:"role"`
	Phone      string       `json:"phone,omitempty"`
	Address    string       `json:"address,omitempty"`
	City       string       `json:"city,omitempty"`
	State      string       `json:"state,omitempty"`
	PostalCode string       `json:"postal_code,omitempty"`
	IsActive   bool         `json:"is_active"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// ProfileResponse wraps the profile projection
type ProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func userProjection(acc *account.Account) UserResponse {
	return UserResponse{
		ID:         acc.ID,
		Username:   acc.Username,
		Email:      acc.Email,
		FirstName:  acc.FirstName,
		LastName:   acc.LastName,
		Role:       acc.Role,
		Phone:      acc.Phone,
		Address:    acc.Address,
		City:       acc.City,
		State:      acc.State,
		PostalCode: acc.PostalCode,
		IsActive:   acc.IsActive,
	}
}

// Register handles user registration
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !isValidEmail(req.Email) {
		writeMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	role := account.Role(req.Role)
	if req.Role == "" {
		role = account.RoleUser
	}
	if !role.Valid() {
		writeMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}

	exists, err := accountRepo.IdentityExists(req.Email, req.Username)
	if err != nil {
		log.WithError(err).Error("Registration error")
		writeMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if exists {
		// Do not reveal which field collided.
		writeMessage(w, http.StatusConflict, "Email or username already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Registration error")
		writeMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	userID := uuid.NewString()
	acc, err := accountRepo.Create(userID, req.Username, req.Email, hash, req.FirstName, req.LastName, role, true)
	if err != nil {
		if errors.Is(err, account.ErrIdentityExists) {
			// Lost the check-then-insert race; the unique constraints
			// are the backstop.
			writeMessage(w, http.StatusConflict, "Email or username already exists")
			return
		}
		log.WithError(err).Error("Registration error")
		writeMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	log.WithFields(log.Fields{"userId": acc.ID, "email": acc.Email, "role": acc.Role}).Info("User registered successfully")

	var memberID *string
	if role == account.RoleMember {
		id := uuid.NewString()
		if err := memberRepo.Create(id, acc.ID); err != nil {
			log.WithError(err).Error("Registration error")
			writeMessage(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		memberID = &id
		log.WithFields(log.Fields{"memberId": id, "userId": acc.ID}).Info("Member record created")
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message:  "User registered successfully",
		UserID:   acc.ID,
		MemberID: memberID,
	})
}

// Login handles user login. Besides the ordinary credential check it
// carries two recovery paths for the configured bootstrap identity:
// auto-provisioning the admin account when it does not exist, and
// resetting its password when the stored hash no longer matches. Both
// are logged every time they fire.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	isBootstrap := req.Email == bootstrapEmail && req.Password == bootstrapPassword

	acc, err := accountRepo.FindByEmail(req.Email)
	switch {
	case err == nil:
		if !auth.CheckPassword(req.Password, acc.Password) {
			if acc.Email == bootstrapEmail && req.Password == bootstrapPassword {
				// The stored admin hash has drifted from the configured
				// bootstrap password. Overwrite it and let the login
				// through.
				hash, herr := auth.HashPassword(bootstrapPassword)
				if herr != nil {
					log.WithError(herr).Error("Login error")
					writeMessage(w, http.StatusInternalServerError, "Login failed")
					return
				}
				if uerr := accountRepo.UpdatePassword(acc.ID, hash); uerr != nil {
					log.WithError(uerr).Error("Login error")
					writeMessage(w, http.StatusInternalServerError, "Login failed")
					return
				}
				log.WithFields(log.Fields{"userId": acc.ID}).Warn("Reset default admin password during login")
			} else {
				log.WithFields(log.Fields{"userId": acc.ID}).Warn("Login attempt with invalid password")
				writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
		}

	case errors.Is(err, account.ErrAccountNotFound) && isBootstrap:
		adminID := uuid.NewString()
		hash, herr := auth.HashPassword(bootstrapPassword)
		if herr != nil {
			log.WithError(herr).Error("Login error")
			writeMessage(w, http.StatusInternalServerError, "Login failed")
			return
		}
		acc, err = accountRepo.Create(adminID, "admin", bootstrapEmail, hash, "Admin", "User", account.RoleAdmin, true)
		if err != nil {
			// A concurrent bootstrap may have won the insert; surface
			// as an internal error and let the client retry.
			log.WithError(err).Error("Login error")
			writeMessage(w, http.StatusInternalServerError, "Login failed")
			return
		}
		log.WithFields(log.Fields{"adminId": acc.ID, "email": bootstrapEmail}).Warn("Auto-created default admin during login")

	case errors.Is(err, account.ErrAccountNotFound):
		// Same message as a wrong password: do not reveal whether the
		// email exists.
		log.WithFields(log.Fields{"email": req.Email}).Warn("Login attempt with invalid email")
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return

	default:
		log.WithError(err).Error("Login error")
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !acc.Role.Valid() {
		log.WithFields(log.Fields{"userId": acc.ID, "role": acc.Role}).Error("Stored account has unknown role")
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !acc.IsActive {
		log.WithFields(log.Fields{"userId": acc.ID}).Warn("Login attempt with inactive account")
		writeMessage(w, http.StatusForbidden, "Account is inactive")
		return
	}

	// Member accounts get their member record backfilled if it is
	// missing, so the dashboard always has a member id to work with.
	var memberID *string
	if acc.Role == account.RoleMember {
		m, merr := memberRepo.FindByUserID(acc.ID)
		switch {
		case merr == nil:
			memberID = &m.ID
		case errors.Is(merr, member.ErrMemberNotFound):
			id := uuid.NewString()
			if cerr := memberRepo.Create(id, acc.ID); cerr != nil {
				log.WithError(cerr).Error("Login error")
				writeMessage(w, http.StatusInternalServerError, "Login failed")
				return
			}
			memberID = &id
			log.WithFields(log.Fields{"memberId": id, "userId": acc.ID}).Info("Backfilled member record during login")
		default:
			log.WithError(merr).Error("Login error")
			writeMessage(w, http.StatusInternalServerError, "Login failed")
			return
		}
	}

	token, err := tokens.GenerateToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		log.WithError(err).Error("Login error")
		writeMessage(w, http.StatusInternalServerError, "Login failed")
		return
	}

	log.WithFields(log.Fields{"userId": acc.ID, "email": acc.Email}).Info("User logged in successfully")

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: LoginUser{
			ID:        acc.ID,
			Username:  acc.Username,
			Email:     acc.Email,
			FirstName: acc.FirstName,
			LastName:  acc.LastName,
			Role:      acc.Role,
			MemberID:  memberID,
		},
	})
}

// GetProfile returns the current user's account
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := auth.GetUserFromContext(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	acc, err := accountRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.WithError(err).Error("Get profile error")
		writeMessage(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Message: "Profile retrieved successfully",
		User:    userProjection(acc),
	})
}

// UpdateProfileRequest carries the mutable profile fields
type UpdateProfileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// UpdateProfile updates the current user's profile
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := auth.GetUserFromContext(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Phone != "" && !isValidPhone(req.Phone) {
		writeMessage(w, http.StatusBadRequest, "Invalid phone format")
		return
	}

	err := accountRepo.UpdateProfile(claims.UserID, account.Profile{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		log.WithError(err).Error("Update profile error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	log.WithFields(log.Fields{"userId": claims.UserID}).Info("User profile updated")
	writeMessage(w, http.StatusOK, "Profile updated successfully")
}

// ChangePasswordRequest carries the old and new passwords
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword changes the current user's password
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := auth.GetUserFromContext(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	acc, err := accountRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.WithError(err).Error("Change password error")
		writeMessage(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if !auth.CheckPassword(req.OldPassword, acc.Password) {
		writeMessage(w, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.WithError(err).Error("Change password error")
		writeMessage(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if err := accountRepo.UpdatePassword(acc.ID, hash); err != nil {
		log.WithError(err).Error("Change password error")
		writeMessage(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	log.WithFields(log.Fields{"userId": acc.ID}).Info("User password changed")
	writeMessage(w, http.StatusOK, "Password changed successfully")
}
