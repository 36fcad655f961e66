package models

// Student represents a learner known to the platform.
type Student struct {
	ID   StudentID `db:"id" json:"id"`
	Name string    `db:"full_name" json:"name"`
}

// NewStudent constructs a student, generating an identifier when none
// is supplied.
func NewStudent(id StudentID, name string) *Student {
	if id == "" {
		id = NewStudentID()
	}
	return &Student{ID: id, Name: name}
}
