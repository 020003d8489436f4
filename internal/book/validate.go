package book

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Error details name fields as the wire contract does, so resolve
	// field names through the json struct tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", validateNotBlank)
	// Overrides the builtin isbn tag: the catalog accepts structural ISBN
	// forms without verifying the checksum.
	_ = validate.RegisterValidation("isbn", validateISBN)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Structural ISBN forms, matched after stripping an optional
// "ISBN"/"ISBN-10:"/"ISBN-13:" prefix:
//   - ten characters ending in a digit or X
//   - bare thirteen digits starting 978/979
//   - four hyphen/space-separated groups, thirteen characters total
//   - 978/979 plus four separated groups, seventeen characters total
var (
	isbnPrefixRe = regexp.MustCompile(`^ISBN(?:-1[03])?:? `)
	isbn10Re     = regexp.MustCompile(`^[0-9]{9}[0-9X]$`)
	isbn13BareRe = regexp.MustCompile(`^97[89][0-9]{10}$`)
	isbn10SepRe  = regexp.MustCompile(`^[0-9]{1,5}[- ][0-9]+[- ][0-9]+[- ][0-9X]$`)
	isbn13SepRe  = regexp.MustCompile(`^97[89][- ][0-9]{1,5}[- ][0-9]+[- ][0-9]+[- ][0-9]$`)
)

func validateISBN(fl validator.FieldLevel) bool {
	return isValidISBN(fl.Field().String())
}

func isValidISBN(s string) bool {
	s = isbnPrefixRe.ReplaceAllString(s, "")
	switch len(s) {
	case 10:
		return isbn10Re.MatchString(s)
	case 13:
		return isbn13BareRe.MatchString(s) || isbn10SepRe.MatchString(s)
	case 17:
		return isbn13SepRe.MatchString(s)
	}
	return false
}

// ValidateCreate checks all create constraints and reports every violation.
func ValidateCreate(req CreateRequest) error {
	return translateErrors(validate.Struct(req))
}

// ValidateUpdate checks the constraints of every present (non-nil) field.
// Absent fields are skipped. Violations are reported for all present fields
// at once, in declared field order.
func ValidateUpdate(req UpdateRequest) error {
	return translateErrors(validate.Struct(req))
}

func translateErrors(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var fields []FieldError
	for _, verr := range verrs {
		// Field() resolves through the json tag name function; the Go
		// field name keeps the human-readable message wording.
		display := verr.StructField()

		var message string
		switch verr.Tag() {
		case "required", "notblank":
			message = display + " cannot be blank"
		case "min", "max":
			message = display + " must be between 1 and 100 characters"
		case "isbn":
			message = "Invalid ISBN format"
		default:
			message = display + " is invalid"
		}

		fields = append(fields, FieldError{Field: verr.Field(), Message: message})
	}

	return &InvalidInputError{Fields: fields}
}
