package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/supplement"
)

// SupplementRequest carries a store item payload for create and update
type SupplementRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    *bool   `json:"is_active"`
}

func (req *SupplementRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if req.Price < 0 {
		return "Price must be a positive number"
	}
	if req.Stock < 0 {
		return "Stock must be zero or a positive integer"
	}
	return ""
}

// GetSupplement returns a single store item
func GetSupplement(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	item, err := supplementRepo.FindByID(ps.ByName("id"))
	if err != nil {
		if errors.Is(err, supplement.ErrSupplementNotFound) {
			writeMessage(w, http.StatusNotFound, "Supplement not found")
			return
		}
		log.WithError(err).Error("Get supplement error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve supplement")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string                 `json:"message"`
		Data    *supplement.Supplement `json:"data"`
	}{"Supplement retrieved", item})
}

// ListSupplements returns the active store items
func ListSupplements(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := supplementRepo.ListActive()
	if err != nil {
		log.WithError(err).Error("List supplements error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve supplements")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string                   `json:"message"`
		Data    []*supplement.Supplement `json:"data"`
	}{"Supplements retrieved", items})
}

// CreateSupplement creates a store item
func CreateSupplement(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SupplementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	s := &supplement.Supplement{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    active,
	}

	if err := supplementRepo.Create(s); err != nil {
		log.WithError(err).Error("Create supplement error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create supplement")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{"Supplement created", s.ID})
}

// UpdateSupplement updates a store item
func UpdateSupplement(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req SupplementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	s := &supplement.Supplement{
		ID:          ps.ByName("id"),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    active,
	}

	if err := supplementRepo.Update(s); err != nil {
		if errors.Is(err, supplement.ErrSupplementNotFound) {
			writeMessage(w, http.StatusNotFound, "Supplement not found")
			return
		}
		log.WithError(err).Error("Update supplement error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update supplement")
		return
	}

	writeMessage(w, http.StatusOK, "Supplement updated")
}

// DeleteSupplement removes a store item
func DeleteSupplement(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := supplementRepo.Delete(ps.ByName("id")); err != nil {
		log.WithError(err).Error("Delete supplement error")
		writeMessage(w, http.StatusInternalServerError, "Failed to delete supplement")
		return
	}
	writeMessage(w, http.StatusOK, "Supplement deleted")
}
