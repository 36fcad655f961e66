package models

import "github.com/google/uuid"

// Identifier kinds are distinct types so a student id can never be
// passed where a course id is expected. Equality is value-based.
type (
	StudentID   string
	CourseID    string
	ContentID   string
	EnrolmentID string
)

// NewStudentID returns a freshly generated student identifier.
func NewStudentID() StudentID { return StudentID(uuid.NewString()) }

// NewCourseID returns a freshly generated course identifier.
func NewCourseID() CourseID { return CourseID(uuid.NewString()) }

// NewContentID returns a freshly generated content identifier.
func NewContentID() ContentID { return ContentID(uuid.NewString()) }

// NewEnrolmentID returns a freshly generated enrolment identifier.
func NewEnrolmentID() EnrolmentID { return EnrolmentID(uuid.NewString()) }

func (id StudentID) String() string   { return string(id) }
func (id CourseID) String() string    { return string(id) }
func (id ContentID) String() string   { return string(id) }
func (id EnrolmentID) String() string { return string(id) }
