package models

import (
	"fmt"
	"time"

	appErrors "github.com/fojia/lms/pkg/errors"
)

// Course aggregates its content collection. The course owns its content
// values exclusively; lookups go through Content, listings through
// Contents in insertion order.
type Course struct {
	ID     CourseID      `json:"id"`
	Name   string        `json:"name"`
	Period DateTimeRange `json:"period"`

	contents map[ContentID]CourseContent
	order    []ContentID
}

// NewCourse constructs a course, generating an identifier when none is
// supplied.
func NewCourse(id CourseID, name string, period DateTimeRange) *Course {
	if id == "" {
		id = NewCourseID()
	}
	return &Course{
		ID:       id,
		Name:     name,
		Period:   period,
		contents: make(map[ContentID]CourseContent),
	}
}

// AddLesson registers a lesson. A duplicate identifier replaces the
// previous content in place.
func (c *Course) AddLesson(lesson Lesson) {
	c.put(lesson)
}

// AddHomework registers a homework.
func (c *Course) AddHomework(homework Homework) {
	c.put(homework)
}

// AddPrepMaterial registers preparatory material.
func (c *Course) AddPrepMaterial(material PrepMaterial) {
	c.put(material)
}

func (c *Course) put(content CourseContent) {
	if c.contents == nil {
		c.contents = make(map[ContentID]CourseContent)
	}
	id := content.ContentID()
	if _, ok := c.contents[id]; !ok {
		c.order = append(c.order, id)
	}
	c.contents[id] = content
}

// Content returns the content with the given identifier.
func (c *Course) Content(id ContentID) (CourseContent, error) {
	content, ok := c.contents[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrContentNotFound,
			fmt.Sprintf("content with ID %q not found in course %q", id, c.Name))
	}
	return content, nil
}

// Contents lists all content in insertion order.
func (c *Course) Contents() []CourseContent {
	out := make([]CourseContent, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.contents[id])
	}
	return out
}

// HasStartedAt reports whether the course period has begun at t.
func (c *Course) HasStartedAt(t time.Time) bool {
	return c.Period.HasStarted(t)
}
