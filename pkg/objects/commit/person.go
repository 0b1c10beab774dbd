package commit

import (
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

// UnknownAuthor is used when no author is configured.
const UnknownAuthor = "Unknown"

// Person is the author recorded on a commit.
//
// Format: "Name <email>", or just "Name" when no email is known.
type Person struct {
	Name  string
	Email string
}

// NewPerson creates a new Person with validation
func NewPerson(name, email string) (*Person, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, err.New(pkgName, err.CodeInvalidInput, "NewPerson", "name cannot be empty", nil)
	}
	if strings.ContainsAny(name, "<>\n\r") {
		return nil, err.New(pkgName, err.CodeInvalidInput, "NewPerson", "name contains invalid characters", nil)
	}
	if email != "" && (strings.ContainsAny(email, "<> \n\r") || !strings.Contains(email, "@")) {
		return nil, err.New(pkgName, err.CodeInvalidInput, "NewPerson", "invalid email address: "+email, nil)
	}
	return &Person{Name: name, Email: email}, nil
}

// String returns the author field value.
func (p *Person) String() string {
	if p.Email == "" {
		return p.Name
	}
	return p.Name + " <" + p.Email + ">"
}
