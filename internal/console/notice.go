package console

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anarchistempire/empire/internal/lists"
	"github.com/anarchistempire/empire/internal/session"
	"github.com/anarchistempire/empire/pkg/client"
	"github.com/anarchistempire/empire/pkg/domain"
)

// ValidationError lists the form fields that failed local checks. No request
// is made when one is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New()

// check runs the struct tags of form and collects readable problems.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		problems = append(problems, fieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// NoticeFor turns the error of a failed operation into something to show.
// op is a short sentence naming what failed, e.g. "Could not update status".
func NoticeFor(op string, err error) domain.Notice {
	var (
		verr *ValidationError
		herr *client.HTTPError
		terr *client.TransportError
	)
	switch {
	case err == nil:
		return domain.Notice{}
	case errors.As(err, &verr):
		return failure("Check the form", strings.Join(verr.Problems, "; "))
	case errors.Is(err, lists.ErrNoSession):
		return failure("Sign in required", op+": sign in to the admin panel first")
	case errors.Is(err, client.ErrMissingToken), errors.Is(err, session.ErrEmptyToken):
		return failure("Invalid credentials", "Wrong username or password")
	case errors.As(err, &terr):
		return failure("Service unreachable", op)
	case errors.As(err, &herr):
		if herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden {
			return failure("Access denied", op+": "+herr.Message)
		}
		return failure(op, herr.Message)
	default:
		return failure(op, err.Error())
	}
}

func failure(title, message string) domain.Notice {
	return domain.Notice{Title: title, Message: message, Severity: domain.SeverityDestructive}
}

func success(title, message string) domain.Notice {
	return domain.Notice{Title: title, Message: message, Severity: domain.SeveritySuccess}
}
