package forms

import (
	"net/http"
	"strings"
)

type CommentForm struct {
	Text   string
	Errors Errors
}

func NewCommentForm() *CommentForm {
	return &CommentForm{Errors: Errors{}}
}

func ParseCommentForm(r *http.Request) *CommentForm {
	return &CommentForm{Text: r.PostFormValue("text"), Errors: Errors{}}
}

func (f *CommentForm) Validate() bool {
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		f.Errors.Add("text", msgRequired)
	}
	return f.Errors.Valid()
}
