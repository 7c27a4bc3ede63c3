package types

import "strings"

var (
	SexOptions = []string{"male", "female", "non-binary", "prefer not to say"}

	RelationshipOptions = []string{
		"single",
		"in a relationship",
		"engaged",
		"married",
		"it's complicated",
		"prefer not to say",
	}
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username" msg:"Username must be 3-50 letters, numbers or underscores"`
	Email    string `json:"email" validate:"required,email,max=255" msg:"A valid email is required"`
	Password string `json:"password" validate:"required,min=8,max=72,bcryptlen" msg:"Password must be 8-72 characters and at most 72 bytes"`
}

// Normalize trims and lowercases the username and email, so length rules apply to the
// stored form.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Username string `json:"username" validate:"required" msg:"Username is required"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type PostRequest struct {
	Content string `json:"content" validate:"required,notblank,max=1000" msg:"Post content must be 1-1000 characters"`
}

// Normalize trims the content; length rules apply to the trimmed value.
func (p *PostRequest) Normalize() {
	p.Content = strings.TrimSpace(p.Content)
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=500" msg:"Comment must be 1-500 characters"`
}

func (c *CommentRequest) Normalize() {
	c.Content = strings.TrimSpace(c.Content)
}

// ProfileUpdate carries only the fields the client sent. A field sent as null clears
// the stored value.
type ProfileUpdate struct {
	DisplayName        Optional[string] `json:"display_name" type:"string" description:"Display name, at most 100 characters"`
	Bio                Optional[string] `json:"bio" type:"string" description:"Bio, at most 500 characters"`
	Sex                Optional[string] `json:"sex" type:"string" description:"One of male, female, non-binary, prefer not to say"`
	Birthday           Optional[string] `json:"birthday" type:"string" description:"Date in YYYY-MM-DD form"`
	RelationshipStatus Optional[string] `json:"relationship_status" type:"string" description:"One of single, in a relationship, engaged, married, it's complicated, prefer not to say"`
}

// ProfileFields is the validation shape of a ProfileUpdate: only present, non-null
// fields are set, so each supplied field is checked by its own rule.
type ProfileFields struct {
	DisplayName        *string `validate:"omitempty,max=100" msg:"Display name must be at most 100 characters"`
	Bio                *string `validate:"omitempty,max=500" msg:"Bio must be at most 500 characters"`
	Sex                *string `validate:"omitempty,sex" msg:"Sex must be one of the listed options"`
	Birthday           *string `validate:"omitempty,datetime=2006-01-02" msg:"Birthday must be a YYYY-MM-DD date"`
	RelationshipStatus *string `validate:"omitempty,relstatus" msg:"Relationship status must be one of the listed options"`
}

func (p ProfileUpdate) Fields() ProfileFields {
	return ProfileFields{
		DisplayName:        p.DisplayName.Ptr(),
		Bio:                p.Bio.Ptr(),
		Sex:                p.Sex.Ptr(),
		Birthday:           p.Birthday.Ptr(),
		RelationshipStatus: p.RelationshipStatus.Ptr(),
	}
}

// Columns returns the column updates for the present fields, keyed by column name.
// Null and empty values clear the column.
func (p ProfileUpdate) Columns() map[string]any {
	cols := map[string]any{}

	for col, opt := range map[string]Optional[string]{
		"display_name":        p.DisplayName,
		"bio":                 p.Bio,
		"sex":                 p.Sex,
		"birthday":            p.Birthday,
		"relationship_status": p.RelationshipStatus,
	} {
		if !opt.Set {
			continue
		}

		if v := opt.Ptr(); v != nil && *v != "" {
			cols[col] = *v
		} else {
			cols[col] = nil
		}
	}

	return cols
}
