package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medical-agenda/internal/model"
	"medical-agenda/internal/service"
)

type AppointmentUseCase interface {
	Create(ctx context.Context, req service.AppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
	Update(ctx context.Context, id int64, req service.AppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type AppointmentHandler struct {
	svc AppointmentUseCase
	log *slog.Logger
}

func NewAppointmentHandler(svc AppointmentUseCase, log *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, log: log}
}

func (h *AppointmentHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/citas")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

type appointmentRequest struct {
	Date      string `json:"fecha" binding:"required"`
	Time      string `json:"hora" binding:"required"`
	Status    string `json:"estado"`
	Notes     string `json:"observaciones"`
	PatientID int64  `json:"pacienteId" binding:"required"`
	DoctorID  int64  `json:"medicoId" binding:"required"`
}

func (r appointmentRequest) toService() service.AppointmentRequest {
	return service.AppointmentRequest{
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		Date:      r.Date,
		Time:      r.Time,
		Status:    r.Status,
		Notes:     r.Notes,
	}
}

type appointmentDTO struct {
	ID        int64  `json:"id"`
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	Status    string `json:"estado"`
	Notes     string `json:"observaciones"`
	PatientID int64  `json:"pacienteId"`
	DoctorID  int64  `json:"medicoId"`
}

func toAppointmentDTO(a *model.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:        a.ID,
		Date:      a.Date.Format(model.DateLayout),
		Time:      model.FormatClock(a.Time),
		Status:    string(a.Status),
		Notes:     a.Notes,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
	}
}

func (h *AppointmentHandler) create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), req.toService())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":   "appointment created",
		"timestamp": time.Now().UTC(),
		"cita":      toAppointmentDTO(a),
	})
}

func (h *AppointmentHandler) list(c *gin.Context) {
	apts, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]appointmentDTO, len(apts))
	for i := range apts {
		out[i] = toAppointmentDTO(&apts[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toAppointmentDTO(a))
}

func (h *AppointmentHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.svc.Update(c.Request.Context(), id, req.toService())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":   "appointment updated",
		"timestamp": time.Now().UTC(),
		"cita":      toAppointmentDTO(a),
	})
}

func (h *AppointmentHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":   "appointment deleted",
		"timestamp": time.Now().UTC(),
	})
}
