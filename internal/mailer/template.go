package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/kadpoly-ict/ards-api/internal/models"
)

var resultEmailTmpl = template.Must(template.New("result_email").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f5f5f5; margin: 0; padding: 20px; }
      .container { max-width: 700px; margin: 0 auto; background: white; }
      .header { background: linear-gradient(135deg, #4F46E5, #7C3AED); color: white; padding: 30px; text-align: center; }
      .content { padding: 30px; }
      .info-section { background: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0; }
      .info-row { display: flex; padding: 8px 0; }
      .info-label { font-weight: 600; color: #6b7280; min-width: 180px; }
      .results-table { width: 100%; border-collapse: collapse; margin: 25px 0; }
      .results-table th { background: #4F46E5; color: white; padding: 12px; text-align: center; font-weight: 600; }
      .results-table td { padding: 12px; border: 1px solid #e5e7eb; }
      .gpa-section { background: #EEF2FF; border-left: 4px solid #4F46E5; padding: 15px 20px; margin: 20px 0; }
      .remarks-section { background: #F3F4F6; padding: 15px; border-radius: 6px; margin: 20px 0; }
      .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; margin-top: 30px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>🎓 {{.Institution}}</h1>
        <p>Automated Result Dispatching System</p>
      </div>
      <div class="content">
        <p>Dear <strong>{{.Payload.StudentName}}</strong>,</p>
        <p>Your academic result for the {{if .Payload.Semester}}{{.Payload.Semester}} semester{{else}}current session{{end}} is as follows:</p>

        <div class="info-section">
          <div class="info-row"><span class="info-label">Registration number:</span><span>{{.Payload.Regno}}</span></div>
          <div class="info-row"><span class="info-label">Department:</span><span>{{.Payload.Department}}</span></div>
          {{if .Payload.Level}}<div class="info-row"><span class="info-label">Level:</span><span>{{.Payload.Level}}</span></div>{{end}}
        </div>

        <table class="results-table">
          <thead>
            <tr><th>Course Code</th><th>Course Title</th><th>Score</th><th>Grade</th></tr>
          </thead>
          <tbody>
            {{range .Payload.Results}}<tr>
              <td style="text-align: center;">{{.CourseCode}}</td>
              <td>{{.CourseName}}</td>
              <td style="text-align: center;">{{.Score}}</td>
              <td style="text-align: center; font-weight: 600; color: #4F46E5;">{{if .Grade}}{{.Grade}}{{else}}-{{end}}</td>
            </tr>{{end}}
          </tbody>
        </table>

        {{if .Payload.GPA}}<div class="gpa-section"><strong>GPA: {{.Payload.GPA}}</strong></div>{{end}}

        {{if .Payload.Remarks}}<div class="remarks-section">
          <div style="font-weight: 600; color: #6b7280;">REMARK:</div>
          <p style="margin: 0; color: #111827;">{{.Payload.Remarks}}</p>
        </div>{{end}}

        <p style="margin-top: 25px;">If you have any questions about your results, please contact your instructor.</p>

        <div class="footer">
          <p>This is an automated email from the Results Dispatching System.</p>
          <p>Please do not reply to this email.</p>
        </div>
      </div>
    </div>
  </body>
</html>`))

type templateData struct {
	Institution string
	Payload     models.ResultEmailPayload
}

// RenderResultEmail produces the consolidated HTML result slip for a student batch.
func RenderResultEmail(institution string, payload models.ResultEmailPayload) (string, error) {
	buf := &bytes.Buffer{}
	if err := resultEmailTmpl.Execute(buf, templateData{Institution: institution, Payload: payload}); err != nil {
		return "", fmt.Errorf("render result email: %w", err)
	}
	return buf.String(), nil
}

// Subject builds the email subject line for a batch.
func Subject(payload models.ResultEmailPayload) string {
	subject := "Your Academic Results - "
	if payload.Semester != "" {
		subject += payload.Semester + " Semester"
	} else {
		subject += "Session"
	}
	if payload.Level != "" {
		subject += " Level " + payload.Level
	}
	return subject
}
