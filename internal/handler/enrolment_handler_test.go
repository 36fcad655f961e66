package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fojia/lms/internal/models"
	"github.com/fojia/lms/internal/service"
)

type stubEnrolmentRepository struct {
	enrolment *models.Enrolment
	findErr   error
	saveErr   error
	saved     bool
}

func (s *stubEnrolmentRepository) FindByID(ctx context.Context, id models.EnrolmentID) (*models.Enrolment, error) {
	return s.enrolment, s.findErr
}

func (s *stubEnrolmentRepository) FindByStudentAndCourse(ctx context.Context, studentID models.StudentID, courseID models.CourseID) (*models.Enrolment, error) {
	if s.enrolment == nil {
		return nil, sql.ErrNoRows
	}
	return s.enrolment, nil
}

func (s *stubEnrolmentRepository) Create(ctx context.Context, enrolment *models.Enrolment) error {
	return nil
}

func (s *stubEnrolmentRepository) Save(ctx context.Context, enrolment *models.Enrolment) error {
	s.saved = true
	return s.saveErr
}

func newTestEnrolmentHandler(t *testing.T, repo *stubEnrolmentRepository) *EnrolmentHandler {
	t.Helper()
	svc := service.NewEnrolmentService(repo, nil, nil, nil, nil)
	return NewEnrolmentHandler(svc)
}

func putEnrolmentPeriod(t *testing.T, h *EnrolmentHandler, id, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPut, "/enrolments/"+id+"/period", bytes.NewBufferString(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.UpdatePeriod(c)
	return w
}

func TestEnrolmentHandlerUpdatePeriod(t *testing.T) {
	enrolment := models.NewEnrolment("enrolment-1", "student-emma", "course-biology",
		mustRange(t, "2025-05-01 00:00:00", "2025-05-30 23:59:59"))
	repo := &stubEnrolmentRepository{enrolment: enrolment}
	h := newTestEnrolmentHandler(t, repo)

	newEnd := time.Now().UTC().Add(30 * 24 * time.Hour)
	payload := fmt.Sprintf(`{"start_date": "2025-05-10T00:00:00Z", "end_date": %q}`, newEnd.Format(time.RFC3339))

	w := putEnrolmentPeriod(t, h, "enrolment-1", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.saved)
	assert.Contains(t, w.Body.String(), "enrolment period updated successfully")
}

func TestEnrolmentHandlerUpdatePeriodRejectsEndedPeriod(t *testing.T) {
	enrolment := models.NewEnrolment("enrolment-1", "student-emma", "course-biology",
		mustRange(t, "2025-05-01 00:00:00", "2025-05-30 23:59:59"))
	repo := &stubEnrolmentRepository{enrolment: enrolment}
	h := newTestEnrolmentHandler(t, repo)

	w := putEnrolmentPeriod(t, h, "enrolment-1", `{
		"start_date": "2025-05-01T00:00:00Z",
		"end_date": "2025-05-20T23:59:59Z"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, repo.saved)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_ENROLMENT_PERIOD", body.Error.Code)
	assert.Contains(t, body.Error.Message, "already ended")
}

func TestEnrolmentHandlerUpdatePeriodNotFound(t *testing.T) {
	repo := &stubEnrolmentRepository{findErr: sql.ErrNoRows}
	h := newTestEnrolmentHandler(t, repo)

	w := putEnrolmentPeriod(t, h, "missing", `{
		"start_date": "2025-05-01T00:00:00Z",
		"end_date": "2027-05-20T23:59:59Z"
	}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrolmentHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	enrolment := models.NewEnrolment("enrolment-1", "student-emma", "course-biology",
		mustRange(t, "2025-05-01 00:00:00", ""))
	h := newTestEnrolmentHandler(t, &stubEnrolmentRepository{enrolment: enrolment})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/enrolments/enrolment-1", nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "enrolment-1"}}

	h.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			ID        string `json:"id"`
			StudentID string `json:"student_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "enrolment-1", body.Data.ID)
	assert.Equal(t, "student-emma", body.Data.StudentID)
}
