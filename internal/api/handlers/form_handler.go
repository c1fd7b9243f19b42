package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"traffic-sim-registration-api-server/internal/registration"
	"traffic-sim-registration-api-server/internal/sink"
)

// FormHandler exposes the registration form events over HTTP. Each session
// is one form-filling lifetime.
type FormHandler struct {
	Manager       *registration.Manager
	Records       sink.RecordSink
	Notifier      sink.Notifier
	SubmitDelay   time.Duration
	SimulationURL string
}

type FieldUpdateRequest struct {
	Field registration.Field `json:"field" binding:"required"`
	Value string             `json:"value"`
}

type GenderRequest struct {
	Gender registration.Gender `json:"gender" binding:"required"`
}

type VehicleUpdateRequest struct {
	Number     *string `json:"registrationNumber"`
	CustomType *string `json:"customType"`
}

// CreateSession opens a new form session in the editing state.
func (h *FormHandler) CreateSession(c *gin.Context) {
	sessionID := fmt.Sprintf("SES-%s", strings.ToUpper(uuid.New().String()[:8]))
	h.Manager.Create(sessionID, h.SubmitDelay,
		func(rec registration.Record) {
			if err := h.Records.Emit(context.Background(), rec); err != nil {
				slog.Error("record sink emit failed", "recordID", rec.RecordID, "error", err)
			}
		},
		func() {
			h.Notifier.Notify(sessionID, sink.Notification{
				Title:       "Registration Successful",
				Description: "Your registration has been completed. You can now launch the simulation.",
			})
		},
	)
	c.JSON(http.StatusCreated, gin.H{"sessionID": sessionID, "state": registration.StateEditing})
}

// GetSession returns the draft and view state.
func (h *FormHandler) GetSession(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	draft, state := form.Snapshot()
	c.JSON(http.StatusOK, gin.H{"sessionID": form.ID, "state": state, "draft": draft})
}

// UpdateField replaces one scalar field of the draft. No validation happens
// until submit.
func (h *FormHandler) UpdateField(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.SetField(req.Field, req.Value); err != nil {
		h.writeFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SetGender sets the exclusive gender choice.
func (h *FormHandler) SetGender(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	var req GenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.SetGender(req.Gender); err != nil {
		h.writeFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ToggleVehicle flips the selected flag of one slot.
func (h *FormHandler) ToggleVehicle(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := form.ToggleVehicle(registration.Slot(c.Param("slot"))); err != nil {
		h.writeFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// UpdateVehicle updates the registration number and/or custom type of one
// slot without selecting it.
func (h *FormHandler) UpdateVehicle(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	var req VehicleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slot := registration.Slot(c.Param("slot"))
	if req.Number != nil {
		if err := form.SetVehicleNumber(slot, *req.Number); err != nil {
			h.writeFormError(c, err)
			return
		}
	}
	if req.CustomType != nil {
		if err := form.SetVehicleCustomType(slot, *req.CustomType); err != nil {
			h.writeFormError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// UploadPicture accepts one image file and decodes it into the profile
// picture preview asynchronously. A decode failure leaves the prior preview
// unchanged and is not surfaced.
func (h *FormHandler) UploadPicture(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		// No file chosen: no state change.
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	form.AttachPicture(data, nil)
	c.JSON(http.StatusAccepted, gin.H{"status": "decoding"})
}

// Submit runs the validation rules. One violation at most is surfaced per
// attempt; on success the session enters the submitting state and reaches
// success after the simulated round-trip.
func (h *FormHandler) Submit(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	violation, err := form.Submit()
	if err != nil {
		h.writeFormError(c, err)
		return
	}
	if violation != nil {
		h.Notifier.Notify(form.ID, sink.Notification{
			Title:       "Validation Error",
			Description: violation.Message(),
			Destructive: true,
		})
		resp := gin.H{"error": string(violation.Kind), "message": violation.Message()}
		if violation.Kind == registration.MissingRequiredField {
			resp["field"] = string(violation.Field)
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "submitting"})
}

// GetRecord returns the emitted record once the session reached success.
func (h *FormHandler) GetRecord(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	rec, err := form.Record()
	if err != nil {
		h.writeFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// LaunchSimulation redirects to the external digital-twin simulator. No data
// is passed and no return path exists.
func (h *FormHandler) LaunchSimulation(c *gin.Context) {
	c.Redirect(http.StatusFound, h.SimulationURL)
}

// GetOptions lists the fixed choices the form offers.
func (h *FormHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":     registration.StateOptions,
		"experience": registration.ExperienceOptions,
		"routes":     registration.RouteOptions,
		"genders":    []registration.Gender{registration.GenderMale, registration.GenderFemale, registration.GenderOther},
		"slots":      registration.SlotOrder,
	})
}

func (h *FormHandler) lookup(c *gin.Context) (*registration.Form, bool) {
	form, err := h.Manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return form, true
}

func (h *FormHandler) writeFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registration.ErrNotEditing), errors.Is(err, registration.ErrNotCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, registration.ErrUnknownField),
		errors.Is(err, registration.ErrUnknownSlot),
		errors.Is(err, registration.ErrInvalidGender),
		errors.Is(err, registration.ErrNoCustomType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
