package email

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// AnswerNotification is the data for the "your question was answered" email.
type AnswerNotification struct {
	QuestionTitle      string
	QuestionAuthorName string
	AnswerAuthor       string
	AnswerContent      string
	QuestionURL        string
}

// NewLead is the data for the internal new-lead email.
type NewLead struct {
	Kind         string
	ID           string
	FormType     string
	Name         string
	Email        string
	Phone        string
	ServiceTypes []string
	SubmittedAt  time.Time
}

var funcs = map[string]any{
	"join":    strings.Join,
	"default": func(def, v string) string { return firstNonEmpty(v, def) },
}

var answerHTML = htmltemplate.Must(htmltemplate.New("answer").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; line-height: 1.6;">
  <h2 style="color: #1e3a8a;">Your question has a new answer</h2>
  <p>Hi {{default "there" .QuestionAuthorName}},</p>
  <p><strong>{{default "A community member" .AnswerAuthor}}</strong> answered your question
     <strong>&ldquo;{{.QuestionTitle}}&rdquo;</strong>:</p>
  <blockquote style="border-left: 4px solid #1e3a8a; margin: 16px 0; padding: 8px 16px; background: #f3f4f6;">
    {{.AnswerContent}}
  </blockquote>
  <p><a href="{{.QuestionURL}}" style="background: #1e3a8a; color: #ffffff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">View the discussion</a></p>
  <p style="font-size: 12px; color: #6b7280;">Military Disability Nexus community</p>
</body>
</html>
`))

var answerText = texttemplate.Must(texttemplate.New("answer").Funcs(funcs).Parse(`Hi {{default "there" .QuestionAuthorName}},

{{default "A community member" .AnswerAuthor}} answered your question "{{.QuestionTitle}}":

{{.AnswerContent}}

View the discussion: {{.QuestionURL}}

Military Disability Nexus community
`))

var leadText = texttemplate.Must(texttemplate.New("lead").Funcs(funcs).Parse(`New {{.Kind}} received
{{if .FormType}}Form type: {{.FormType}}
{{end}}Name: {{.Name}}
Email: {{.Email}}
Phone: {{default "-" .Phone}}
{{if .ServiceTypes}}Services: {{join .ServiceTypes ", "}}
{{end}}Submitted: {{.SubmittedAt.Format "2006-01-02 15:04 MST"}}
ID: {{.ID}}
`))

// RenderAnswerNotification returns the subject, HTML and text bodies.
// Question and answer text is HTML-escaped in the HTML body.
func RenderAnswerNotification(d AnswerNotification) (subject, html, text string, err error) {
	var hb, tb bytes.Buffer
	if err = answerHTML.Execute(&hb, d); err != nil {
		return "", "", "", err
	}
	if err = answerText.Execute(&tb, d); err != nil {
		return "", "", "", err
	}
	return "New answer to your question: " + d.QuestionTitle, hb.String(), tb.String(), nil
}

// RenderNewLead returns the subject and text body of the internal alert.
func RenderNewLead(d NewLead) (subject, text string, err error) {
	var tb bytes.Buffer
	if err = leadText.Execute(&tb, d); err != nil {
		return "", "", err
	}
	subject = "New " + d.Kind + " from " + d.Name
	if d.FormType != "" {
		subject += " (" + d.FormType + ")"
	}
	return subject, tb.String(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
