package service

import (
	"fmt"
	"time"

	"github.com/fojia/lms/internal/models"
	appErrors "github.com/fojia/lms/pkg/errors"
)

const denyTimeLayout = "2006-01-02 15:04:05"

// ContentAccessControl decides whether a student may access a piece of
// course content at an instant. It is stateless and mutates nothing.
type ContentAccessControl struct{}

// NewContentAccessControl constructs the access control service.
func NewContentAccessControl() *ContentAccessControl {
	return &ContentAccessControl{}
}

// CheckAccess evaluates three ordered conditions and stops at the first
// failure: the enrolment must be active, the course must have started,
// and the content must be available. The checks run from the broadest
// scope to the narrowest so the reported reason is the most structurally
// relevant one; an unenrolled student is told they are not enrolled, not
// that some content is locked. Each failure is an ACCESS_DENIED error
// carrying a human-readable reason.
func (s *ContentAccessControl) CheckAccess(student *models.Student, course *models.Course, content models.CourseContent, enrolment *models.Enrolment, accessTime time.Time) error {
	at := accessTime.UTC().Format(denyTimeLayout)

	if !enrolment.IsActiveAt(accessTime) {
		return appErrors.Clone(appErrors.ErrAccessDenied,
			fmt.Sprintf("Student %q is not enrolled in course %q at %s", student.Name, course.Name, at))
	}

	if !course.HasStartedAt(accessTime) {
		return appErrors.Clone(appErrors.ErrAccessDenied,
			fmt.Sprintf("Course %q has not started yet at %s", course.Name, at))
	}

	if !content.IsAvailableAt(accessTime) {
		return appErrors.Clone(appErrors.ErrAccessDenied,
			fmt.Sprintf("Content %q is not available yet at %s", content.ContentTitle(), at))
	}

	return nil
}

// CanAccess reports whether CheckAccess passes. An ACCESS_DENIED
// outcome becomes false; any other failure propagates.
func (s *ContentAccessControl) CanAccess(student *models.Student, course *models.Course, content models.CourseContent, enrolment *models.Enrolment, accessTime time.Time) (bool, error) {
	err := s.CheckAccess(student, course, content, enrolment, accessTime)
	if err == nil {
		return true, nil
	}
	if appErrors.HasCode(err, appErrors.ErrAccessDenied.Code) {
		return false, nil
	}
	return false, err
}
