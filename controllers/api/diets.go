package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/diet"
)

// DietRequest carries a diet plan payload for create and update
type DietRequest struct {
	MemberID string `json:"member_id"`
	Title    string `json:"title"`
	Plan     string `json:"plan"`
	Notes    string `json:"notes"`
}

// ListDiets returns every diet plan with its member's account id
func ListDiets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := dietRepo.ListAll()
	if err != nil {
		log.WithError(err).Error("List all diets error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve diets")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		Data    []*diet.Diet `json:"data"`
	}{"Diets retrieved", items})
}

// ListMemberDiets returns a member's diet plans
func ListMemberDiets(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := dietRepo.ListByMember(ps.ByName("id"))
	if err != nil {
		log.WithError(err).Error("List diets error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve diets")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		Data    []*diet.Diet `json:"data"`
	}{"Diets retrieved", items})
}

// CreateDiet creates a diet plan for a member
func CreateDiet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req DietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.MemberID) == "" {
		writeMessage(w, http.StatusBadRequest, "member_id is required")
		return
	}
	if req.Title == "" && req.Plan == "" {
		writeMessage(w, http.StatusBadRequest, "At least a title or plan is required")
		return
	}

	d := &diet.Diet{
		ID:       uuid.NewString(),
		MemberID: strings.TrimSpace(req.MemberID),
		Title:    req.Title,
		Plan:     req.Plan,
		Notes:    req.Notes,
	}

	if err := dietRepo.Create(d); err != nil {
		log.WithError(err).Error("Create diet error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create diet")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{"Diet created", d.ID})
}

// UpdateDiet updates a diet plan
func UpdateDiet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req DietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" && req.Plan == "" && req.Notes == "" {
		writeMessage(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	d := &diet.Diet{
		ID:    ps.ByName("id"),
		Title: req.Title,
		Plan:  req.Plan,
		Notes: req.Notes,
	}

	if err := dietRepo.Update(d); err != nil {
		if errors.Is(err, diet.ErrDietNotFound) {
			writeMessage(w, http.StatusNotFound, "Diet not found")
			return
		}
		log.WithError(err).Error("Update diet error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update diet")
		return
	}

	writeMessage(w, http.StatusOK, "Diet updated")
}

// GetDiet returns a single diet plan
func GetDiet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	d, err := dietRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, diet.ErrDietNotFound) {
			writeMessage(w, http.StatusNotFound, "Diet not found")
			return
		}
		log.WithError(err).Error("Get diet error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve diet")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string     `json:"message"`
		Data    *diet.Diet `json:"data"`
	}{"Diet retrieved", d})
}

// DeleteDiet removes a diet plan
func DeleteDiet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := dietRepo.Delete(ps.ByName("id")); err != nil {
		log.WithError(err).Error("Delete diet error")
		writeMessage(w, http.StatusInternalServerError, "Failed to delete diet")
		return
	}
	writeMessage(w, http.StatusOK, "Diet deleted")
}
