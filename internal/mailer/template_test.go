package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadpoly-ict/ards-api/internal/models"
)

func samplePayload() models.ResultEmailPayload {
	return models.ResultEmailPayload{
		StudentName:  "Amina Bello",
		StudentEmail: "amina@school.test",
		Regno:        "KPT/CS/21/001",
		Department:   "Computer Science",
		Level:        "200",
		Semester:     "First",
		Results: []models.CourseResult{
			{CourseCode: "COM101", CourseName: "Intro to Computing", Score: "78/100", Grade: "A"},
			{CourseCode: "MTH102", CourseName: "Calculus", Score: "64/100"},
		},
		GPA:       "3.50",
		Remarks:   "Excellent Performance",
		ResultIDs: []string{"r1", "r2"},
	}
}

func TestRenderResultEmail(t *testing.T) {
	html, err := RenderResultEmail("Kaduna State Polytechnic", samplePayload())
	require.NoError(t, err)

	assert.Contains(t, html, "Kaduna State Polytechnic")
	assert.Contains(t, html, "Amina Bello")
	assert.Contains(t, html, "KPT/CS/21/001")
	assert.Contains(t, html, "First semester")
	assert.Contains(t, html, "Level:")
	assert.Contains(t, html, "COM101")
	assert.Contains(t, html, "MTH102")
	assert.Contains(t, html, "GPA: 3.50")
	assert.Contains(t, html, "Excellent Performance")
}

func TestRenderResultEmailOmitsEmptySections(t *testing.T) {
	payload := samplePayload()
	payload.Level = ""
	payload.Semester = ""
	payload.GPA = ""
	payload.Remarks = ""

	html, err := RenderResultEmail("Kaduna State Polytechnic", payload)
	require.NoError(t, err)

	assert.Contains(t, html, "current session")
	assert.NotContains(t, html, "Level:")
	assert.NotContains(t, html, "GPA:")
	assert.NotContains(t, html, "REMARK:")
}

func TestRenderResultEmailEscapesHTML(t *testing.T) {
	payload := samplePayload()
	payload.StudentName = `<script>alert("x")</script>`

	html, err := RenderResultEmail("Kaduna State Polytechnic", payload)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name     string
		semester string
		level    string
		want     string
	}{
		{"semester and level", "First", "200", "Your Academic Results - First Semester Level 200"},
		{"semester only", "Second", "", "Your Academic Results - Second Semester"},
		{"neither", "", "", "Your Academic Results - Session"},
		{"level only", "", "100", "Your Academic Results - Session Level 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := models.ResultEmailPayload{Semester: tt.semester, Level: tt.level}
			assert.Equal(t, tt.want, Subject(payload))
		})
	}
}
