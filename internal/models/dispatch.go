package models

// CourseResult is one course row inside a consolidated result notification.
type CourseResult struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Score      string `json:"score"`
	Grade      string `json:"grade,omitempty"`
}

// BatchAggregate is the derived grade-point summary for one student batch.
// GPA and Remark are empty when no entry carries a mappable letter grade.
type BatchAggregate struct {
	GPA    string `json:"gpa,omitempty"`
	Remark string `json:"remark,omitempty"`
}

// ResultEmailPayload is the consolidated message delivered to one student.
type ResultEmailPayload struct {
	StudentName  string         `json:"studentName"`
	StudentEmail string         `json:"studentEmail"`
	Regno        string         `json:"regno"`
	Department   string         `json:"department"`
	Level        string         `json:"level,omitempty"`
	Semester     string         `json:"semester,omitempty"`
	Results      []CourseResult `json:"results"`
	GPA          string         `json:"gpa,omitempty"`
	Remarks      string         `json:"remarks,omitempty"`
	ResultIDs    []string       `json:"resultIds"`
}

// DispatchOutcomeStatus classifies the result of a single-student dispatch.
type DispatchOutcomeStatus string

const (
	DispatchSent          DispatchOutcomeStatus = "sent"
	DispatchFailed        DispatchOutcomeStatus = "failed"
	DispatchNothingToSend DispatchOutcomeStatus = "nothing_to_send"
)

// DispatchOutcome summarises one student's dispatch attempt.
type DispatchOutcome struct {
	StudentID   string                `json:"student_id"`
	Status      DispatchOutcomeStatus `json:"status"`
	ResultCount int                   `json:"result_count"`
}

// DispatchSummary aggregates a full dispatch run, counted per student group.
type DispatchSummary struct {
	SuccessCount int `json:"success_count"`
	FailCount    int `json:"fail_count"`
}
