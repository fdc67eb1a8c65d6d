package email

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

var overdueBody = template.Must(template.New("overdue").Parse(`
<h1>Task Overdue</h1>
<p>The task "<strong>{{.Title}}</strong>" was due on {{.DueDate.Format "January 2, 2006"}}.</p>
<p>Please address it as soon as possible.</p>
`))

// RenderOverdue produces the subject and HTML body for an overdue-task
// notification.
func RenderOverdue(title string, dueDate time.Time) (subject, body string, err error) {
	subject = fmt.Sprintf("Overdue Task: %s", title)

	var buf bytes.Buffer
	data := struct {
		Title   string
		DueDate time.Time
	}{Title: title, DueDate: dueDate}
	if err := overdueBody.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("execute overdue template: %w", err)
	}
	return subject, buf.String(), nil
}
