package signup

import "strings"

// FieldName identifies one of the text fields bound to the form.
type FieldName string

const (
	FieldFirstName FieldName = "firstName"
	FieldLastName  FieldName = "lastName"
	FieldEmail     FieldName = "email"
	FieldPassword  FieldName = "password"
	FieldBio       FieldName = "bio"
)

// FieldNames lists the text fields in display order.
func FieldNames() []FieldName {
	return []FieldName{FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldBio}
}

// ParseFieldName maps a form input name onto a FieldName.
func ParseFieldName(raw string) (FieldName, bool) {
	name := FieldName(strings.TrimSpace(raw))
	switch name {
	case FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldBio:
		return name, true
	default:
		return "", false
	}
}

// Fields holds the raw values typed by the user. Values are stored exactly as
// received; no trimming or validation happens here.
type Fields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio"`
}

// Get returns the value for name.
func (f Fields) Get(name FieldName) string {
	switch name {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldBio:
		return f.Bio
	default:
		return ""
	}
}

// With returns a copy of f with name overwritten by value.
func (f Fields) With(name FieldName, value string) (Fields, error) {
	switch name {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldBio:
		f.Bio = value
	default:
		return f, unknownField(string(name))
	}
	return f, nil
}
