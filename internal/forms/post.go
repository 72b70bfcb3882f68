package forms

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

const msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."

type GroupLookup interface {
	GetGroupByID(id uint) (*models.Group, error)
}

// PostForm covers create and edit. Image is optional in both.
type PostForm struct {
	Text   string
	Group  string
	Image  *Image
	Errors Errors

	// GroupID is the cleaned group reference, nil when no group was chosen.
	GroupID *uint
}

// NewPostForm prefills the form from an existing post.
func NewPostForm(p *models.Post) *PostForm {
	f := &PostForm{Errors: Errors{}}
	if p == nil {
		return f
	}
	f.Text = p.Text
	if p.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	return f
}

// ParsePostForm reads the submitted fields; r must already have its multipart form parsed.
func ParsePostForm(r *http.Request, maxUploadBytes int64) (*PostForm, error) {
	image, err := ReadImage(r, "image", maxUploadBytes)
	if err != nil {
		return nil, err
	}
	return &PostForm{
		Text:   r.PostFormValue("text"),
		Group:  r.PostFormValue("group"),
		Image:  image,
		Errors: Errors{},
	}, nil
}

// Validate checks the fields. A missing group is a field error; any other lookup failure is
// returned as err.
func (f *PostForm) Validate(groups GroupLookup) (bool, error) {
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		f.Errors.Add("text", msgRequired)
	}

	f.GroupID = nil
	if raw := strings.TrimSpace(f.Group); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			f.Errors.Add("group", msgInvalidChoice)
		} else if _, err := groups.GetGroupByID(uint(id)); errors.Is(err, storage.ErrNotFound) {
			f.Errors.Add("group", msgInvalidChoice)
		} else if err != nil {
			return false, fmt.Errorf("could not check group %d: %w", id, err)
		} else {
			groupID := uint(id)
			f.GroupID = &groupID
		}
	}

	if f.Image != nil {
		if msg := f.Image.Check(); msg != "" {
			f.Errors.Add("image", msg)
		}
	}

	return f.Errors.Valid(), nil
}

// Selected reports whether the group with id is the chosen one, for rendering the select.
func (f *PostForm) Selected(id uint) bool {
	return f.Group == strconv.FormatUint(uint64(id), 10)
}
