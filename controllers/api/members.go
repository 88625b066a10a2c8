package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/models/member"
)

// ListMembers returns a paginated page of members. With ?q= the page is
// filtered by name, email or username.
func ListMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit := pageParams(r)
	query := r.URL.Query().Get("q")

	members, total, err := memberRepo.List(query, page, limit)
	if err != nil {
		log.WithError(err).Error("Get all members error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	message := "Members retrieved successfully"
	if query != "" {
		message = "Search completed successfully"
		log.WithFields(log.Fields{"query": query, "results": len(members)}).Info("Members search performed")
	} else {
		log.WithFields(log.Fields{"count": len(members)}).Info("Retrieved all members")
	}

	writeList(w, message, members, page, limit, total)
}

// GetMember returns a single member with its account fields
func GetMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, err := memberRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			writeMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		log.WithError(err).Error("Get member by ID error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve member")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		Data    *member.Member `json:"data"`
	}{"Member retrieved successfully", m})
}

// AddMemberRequest carries the account and member fields for admin
// member creation
type AddMemberRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	EmergencyContact  string `json:"emergency_contact"`
	EmergencyPhone    string `json:"emergency_phone"`
	MedicalConditions string `json:"medical_conditions"`
}

// AddMember creates a member together with its user account in one
// transaction
func AddMember(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Phone != "" && !isValidPhone(req.Phone) {
		writeMessage(w, http.StatusBadRequest, "Invalid phone format")
		return
	}

	exists, err := accountRepo.IdentityExists(req.Email, req.Username)
	if err != nil {
		log.WithError(err).Error("Add member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to add member")
		return
	}
	if exists {
		writeMessage(w, http.StatusConflict, "Email or username already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Add member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to add member")
		return
	}

	userID := uuid.NewString()
	memberID := uuid.NewString()

	err = memberRepo.CreateWithUser(memberID, member.NewUserDetails{
		UserID:       userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	})
	if err != nil {
		log.WithError(err).Error("Add member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to add member")
		return
	}

	// Emergency details come in a follow-up update so the transaction
	// above only deals with the account linkage.
	if req.EmergencyContact != "" || req.EmergencyPhone != "" || req.MedicalConditions != "" {
		err = memberRepo.Update(memberID, member.UpdateDetails{
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			EmergencyContact:  req.EmergencyContact,
			EmergencyPhone:    req.EmergencyPhone,
			MedicalConditions: req.MedicalConditions,
			MembershipStatus:  "active",
		})
		if err != nil {
			log.WithError(err).Error("Add member error")
			writeMessage(w, http.StatusInternalServerError, "Failed to add member")
			return
		}
	}

	log.WithFields(log.Fields{"memberId": memberID, "userId": userID, "email": req.Email}).Info("New member added")

	writeJSON(w, http.StatusCreated, struct {
		Message  string `json:"message"`
		MemberID string `json:"memberId"`
		UserID   string `json:"userId"`
	}{"Member added successfully", memberID, userID})
}

// UpdateMemberRequest carries the mutable member and account fields
type UpdateMemberRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postal_code"`
	EmergencyContact  string `json:"emergency_contact"`
	EmergencyPhone    string `json:"emergency_phone"`
	MedicalConditions string `json:"medical_conditions"`
	MembershipStatus  string `json:"membership_status"`
}

// UpdateMember updates a member and its account in one transaction
func UpdateMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Phone != "" && !isValidPhone(req.Phone) {
		writeMessage(w, http.StatusBadRequest, "Invalid phone format")
		return
	}

	id := ps.ByName("id")
	err := memberRepo.Update(id, member.UpdateDetails{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		PostalCode:        req.PostalCode,
		EmergencyContact:  req.EmergencyContact,
		EmergencyPhone:    req.EmergencyPhone,
		MedicalConditions: req.MedicalConditions,
		MembershipStatus:  req.MembershipStatus,
	})
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			writeMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		log.WithError(err).Error("Update member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update member")
		return
	}

	log.WithFields(log.Fields{"memberId": id}).Info("Member updated")
	writeMessage(w, http.StatusOK, "Member updated successfully")
}

// DeleteMember removes a member record. Related rows cascade.
func DeleteMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := memberRepo.Delete(id); err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			writeMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		log.WithError(err).Error("Delete member error")
		writeMessage(w, http.StatusInternalServerError, "Failed to delete member")
		return
	}

	log.WithFields(log.Fields{"memberId": id}).Info("Member deleted")
	writeMessage(w, http.StatusOK, "Member deleted successfully")
}
