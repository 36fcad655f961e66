package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fojia/lms/internal/models"
	"github.com/fojia/lms/internal/service"
	appErrors "github.com/fojia/lms/pkg/errors"
	"github.com/fojia/lms/pkg/export"
	"github.com/fojia/lms/pkg/response"
)

// CourseHandler exposes course and content management endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type courseView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func newCourseView(course *models.Course) courseView {
	return courseView{
		ID:        string(course.ID),
		Name:      course.Name,
		StartDate: course.Period.Start,
		EndDate:   course.Period.End,
	}
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, newCourseView(course))
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, newCourseView(course))
}

// AddLesson godoc
// @Summary Schedule a lesson within a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/lessons [post]
func (h *CourseHandler) AddLesson(c *gin.Context) {
	var req service.AddLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	content, err := h.courses.AddLesson(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// AddHomework godoc
// @Summary Add a homework to a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddHomeworkRequest true "Homework payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/homeworks [post]
func (h *CourseHandler) AddHomework(c *gin.Context) {
	var req service.AddHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	content, err := h.courses.AddHomework(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// AddPrepMaterial godoc
// @Summary Add preparatory material to a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AddPrepMaterialRequest true "Prep material payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/prep-materials [post]
func (h *CourseHandler) AddPrepMaterial(c *gin.Context) {
	var req service.AddPrepMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	content, err := h.courses.AddPrepMaterial(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// ListContents godoc
// @Summary List course contents
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/contents [get]
func (h *CourseHandler) ListContents(c *gin.Context) {
	contents, err := h.courses.ListContents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contents)
}

// ExportContents godoc
// @Summary Export course contents as CSV
// @Tags Courses
// @Produce text/csv
// @Param id path string true "Course ID"
// @Success 200 {string} string "CSV document"
// @Router /courses/{id}/contents/export [get]
func (h *CourseHandler) ExportContents(c *gin.Context) {
	contents, err := h.courses.ListContents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	table := export.Table{Headers: []string{"id", "kind", "title", "available_from"}}
	for _, content := range contents {
		table.Rows = append(table.Rows, []string{
			content.ID, content.Kind, content.Title,
			content.AvailableFrom.UTC().Format(time.RFC3339),
		})
	}

	data, err := export.CSV(table)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render contents export"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "course-contents-"+c.Param("id")+".csv"))
	c.Data(http.StatusOK, "text/csv", data)
}
