package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/models/feepackage"
)

// FeePackageRequest carries a fee package payload for create and update
type FeePackageRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MonthlyFee   float64 `json:"monthly_fee"`
	DurationDays *int    `json:"duration_days"`
	Benefits     string  `json:"benefits"`
	IsActive     *bool   `json:"is_active"`
}

func (req *FeePackageRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if req.MonthlyFee < 0 {
		return "Monthly fee must be a positive number"
	}
	if req.DurationDays != nil && *req.DurationDays < 0 {
		return "Duration days must be a positive integer"
	}
	return ""
}

// ListFeePackages returns the active fee packages
func ListFeePackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	packages, err := feePackageRepo.ListActive()
	if err != nil {
		log.WithError(err).Error("Fee packages list error")
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve fee packages")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string                   `json:"message"`
		Data    []*feepackage.FeePackage `json:"data"`
	}{"Fee packages retrieved", packages})
}

// CreateFeePackage creates a fee package
func CreateFeePackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req FeePackageRequest
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

	p := &feepackage.FeePackage{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		MonthlyFee:   req.MonthlyFee,
		DurationDays: req.DurationDays,
		Benefits:     req.Benefits,
		IsActive:     active,
	}

	if err := feePackageRepo.Create(p); err != nil {
		log.WithError(err).Error("Fee package create error")
		writeMessage(w, http.StatusInternalServerError, "Failed to create fee package")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{"Fee package created", p.ID})
}

// UpdateFeePackage updates a fee package
func UpdateFeePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req FeePackageRequest
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

	p := &feepackage.FeePackage{
		ID:           ps.ByName("id"),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		MonthlyFee:   req.MonthlyFee,
		DurationDays: req.DurationDays,
		Benefits:     req.Benefits,
		IsActive:     active,
	}

	if err := feePackageRepo.Update(p); err != nil {
		if errors.Is(err, feepackage.ErrPackageNotFound) {
			writeMessage(w, http.StatusNotFound, "Fee package not found")
			return
		}
		log.WithError(err).Error("Fee package update error")
		writeMessage(w, http.StatusInternalServerError, "Failed to update fee package")
		return
	}

	writeMessage(w, http.StatusOK, "Fee package updated")
}

// DeleteFeePackage deletes a fee package
func DeleteFeePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := feePackageRepo.Delete(ps.ByName("id")); err != nil {
		log.WithError(err).Error("Fee package delete error")
		writeMessage(w, http.StatusInternalServerError, "Failed to delete fee package")
		return
	}
	writeMessage(w, http.StatusOK, "Fee package deleted")
}
