package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fojia/lms/internal/models"
	"github.com/fojia/lms/internal/service"
	appErrors "github.com/fojia/lms/pkg/errors"
	"github.com/fojia/lms/pkg/response"
)

// EnrolmentHandler exposes enrolment endpoints.
type EnrolmentHandler struct {
	enrolments *service.EnrolmentService
}

// NewEnrolmentHandler constructs EnrolmentHandler.
func NewEnrolmentHandler(enrolments *service.EnrolmentService) *EnrolmentHandler {
	return &EnrolmentHandler{enrolments: enrolments}
}

type enrolmentView struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	CourseID  string     `json:"course_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func newEnrolmentView(e *models.Enrolment) enrolmentView {
	period := e.Period()
	return enrolmentView{
		ID:        string(e.ID),
		StudentID: string(e.StudentID),
		CourseID:  string(e.CourseID),
		StartDate: period.Start,
		EndDate:   period.End,
	}
}

// Create godoc
// @Summary Enroll a student in a course
// @Tags Enrolments
// @Accept json
// @Produce json
// @Param payload body service.EnrollStudentRequest true "Enrolment payload"
// @Success 201 {object} response.Envelope
// @Router /enrolments [post]
func (h *EnrolmentHandler) Create(c *gin.Context) {
	var req service.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrolment, err := h.enrolments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, newEnrolmentView(enrolment))
}

// Get godoc
// @Summary Get an enrolment
// @Tags Enrolments
// @Produce json
// @Param id path string true "Enrolment ID"
// @Success 200 {object} response.Envelope
// @Router /enrolments/{id} [get]
func (h *EnrolmentHandler) Get(c *gin.Context) {
	enrolment, err := h.enrolments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, newEnrolmentView(enrolment))
}

// UpdatePeriod godoc
// @Summary Update an enrolment's active period
// @Tags Enrolments
// @Accept json
// @Produce json
// @Param id path string true "Enrolment ID"
// @Param payload body service.UpdateEnrolmentPeriodRequest true "Period payload"
// @Success 200 {object} response.Envelope
// @Router /enrolments/{id}/period [put]
func (h *EnrolmentHandler) UpdatePeriod(c *gin.Context) {
	var req service.UpdateEnrolmentPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrolments.UpdatePeriod(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "enrolment period updated successfully"})
}
