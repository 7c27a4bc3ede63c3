package database

// Kind classifies the failures callers are expected to handle. None of them are retried.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindUnauthorized
	KindForbidden
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	}

	return "Unknown"
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches errors of the same kind and message, so wrapped copies still compare equal
// to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && t.Message == e.Message
}

var (
	ErrUserNotFound       = &Error{KindNotFound, "User not found"}
	ErrPostNotFound       = &Error{KindNotFound, "Post not found"}
	ErrCommentNotFound    = &Error{KindNotFound, "Comment not found"}
	ErrUsernameTaken      = &Error{KindConflict, "That username is already taken"}
	ErrEmailTaken         = &Error{KindConflict, "An account with this email already exists"}
	ErrInvalidCredentials = &Error{KindInvalidCredentials, "Incorrect username or password"}
	ErrUnauthorized       = &Error{KindUnauthorized, "Authentication required. Please log in."}
	ErrForbidden          = &Error{KindForbidden, "You don't have permission to perform this action"}
)
