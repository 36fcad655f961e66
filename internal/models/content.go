package models

import "time"

// ContentKind tags the course content variants.
type ContentKind string

const (
	ContentKindLesson       ContentKind = "LESSON"
	ContentKindHomework     ContentKind = "HOMEWORK"
	ContentKindPrepMaterial ContentKind = "PREP_MATERIAL"
)

// CourseContent is a unit of course material. Availability is a pure
// function of the access instant; variants differ only in which
// instant gates them.
type CourseContent interface {
	ContentID() ContentID
	ContentTitle() string
	Kind() ContentKind
	IsAvailableAt(t time.Time) bool
}

// Lesson is content unlocked at its scheduled time.
type Lesson struct {
	ID          ContentID `json:"id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (l Lesson) ContentID() ContentID { return l.ID }
func (l Lesson) ContentTitle() string { return l.Title }
func (l Lesson) Kind() ContentKind    { return ContentKindLesson }

func (l Lesson) IsAvailableAt(t time.Time) bool {
	return !t.Before(l.ScheduledAt)
}

// Homework is content unlocked from an availability instant,
// conventionally the course start.
type Homework struct {
	ID            ContentID `json:"id"`
	Title         string    `json:"title"`
	AvailableFrom time.Time `json:"available_from"`
}

func (h Homework) ContentID() ContentID { return h.ID }
func (h Homework) ContentTitle() string { return h.Title }
func (h Homework) Kind() ContentKind    { return ContentKindHomework }

func (h Homework) IsAvailableAt(t time.Time) bool {
	return !t.Before(h.AvailableFrom)
}

// PrepMaterial is preparatory content unlocked at the course start date.
type PrepMaterial struct {
	ID            ContentID `json:"id"`
	Title         string    `json:"title"`
	CourseStartAt time.Time `json:"course_start_at"`
}

func (p PrepMaterial) ContentID() ContentID { return p.ID }
func (p PrepMaterial) ContentTitle() string { return p.Title }
func (p PrepMaterial) Kind() ContentKind    { return ContentKindPrepMaterial }

func (p PrepMaterial) IsAvailableAt(t time.Time) bool {
	return !t.Before(p.CourseStartAt)
}

// ContentAvailableFrom returns the instant gating the given content.
func ContentAvailableFrom(c CourseContent) time.Time {
	switch v := c.(type) {
	case Lesson:
		return v.ScheduledAt
	case Homework:
		return v.AvailableFrom
	case PrepMaterial:
		return v.CourseStartAt
	}
	return time.Time{}
}
