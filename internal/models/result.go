package models

import "time"

// ResultStatus tracks the delivery lifecycle of a result record.
type ResultStatus string

const (
	ResultStatusPending ResultStatus = "pending"
	ResultStatusSent    ResultStatus = "sent"
	ResultStatusFailed  ResultStatus = "failed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultStatusPending, ResultStatusSent, ResultStatusFailed:
		return true
	}
	return false
}

// ResultRecord represents a single course result awaiting delivery to a student.
type ResultRecord struct {
	ID        string       `db:"id" json:"id"`
	StudentID string       `db:"student_id" json:"student_id"`
	CourseID  string       `db:"course_id" json:"course_id"`
	Score     string       `db:"score" json:"score"`
	Grade     *string      `db:"grade" json:"grade,omitempty"`
	Remarks   *string      `db:"remarks" json:"remarks,omitempty"`
	Status    ResultStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	SentAt    *time.Time   `db:"sent_at" json:"sent_at,omitempty"`
}

// PendingResult is a result record joined with the student and course
// display fields needed to assemble a notification payload.
type PendingResult struct {
	ResultRecord
	StudentName  string `db:"student_name" json:"student_name"`
	StudentEmail string `db:"student_email" json:"student_email"`
	CourseCode   string `db:"course_code" json:"course_code"`
	CourseName   string `db:"course_name" json:"course_name"`
}

// ResultDetail is a result record joined with display fields for the register listing.
type ResultDetail struct {
	ResultRecord
	StudentName  string `db:"student_name" json:"student_name"`
	StudentEmail string `db:"student_email" json:"student_email"`
	Regno        string `db:"regno" json:"regno"`
	CourseCode   string `db:"course_code" json:"course_code"`
	CourseName   string `db:"course_name" json:"course_name"`
}

// ResultFilter encapsulates allowed search parameters for listing results.
type ResultFilter struct {
	Search    string
	StudentID string
	Status    ResultStatus
	Page      int
	PageSize  int
}

// Pagination describes page metadata returned alongside list payloads.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
