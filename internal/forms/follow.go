package forms

// FollowForm checks a follow request once both users are resolved.
type FollowForm struct {
	UserID   uint
	AuthorID uint
	Errors   Errors
}

func NewFollowForm(userID, authorID uint) *FollowForm {
	return &FollowForm{UserID: userID, AuthorID: authorID, Errors: Errors{}}
}

func (f *FollowForm) Validate() bool {
	if f.AuthorID == 0 {
		f.Errors.Add("author", msgRequired)
	} else if f.UserID == f.AuthorID {
		f.Errors.Add("author", "You cannot follow yourself.")
	}
	return f.Errors.Valid()
}
