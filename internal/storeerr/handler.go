package storeerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey|idx)$`)
	// E11000 duplicate key error collection: tracker.users index: username_1 dup key: ...
	mongoDuplicateRe = regexp.MustCompile(`collection: [^.\s]+\.(\S+) index: (\S+)`)
)

// ErrCode reports the Code of err, or Other when err is not a store error.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}

// ConvertPgError normalises a postgres server error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Collection:     src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertMongoDuplicateKey normalises a mongo E11000 error.
func ConvertMongoDuplicateKey(src error) *Error {
	storeErr := &Error{
		Code:         UniqueViolation,
		Severity:     SeverityError,
		DatabaseCode: "11000",
		Message:      src.Error(),
		driverErr:    src,
	}
	if matches := mongoDuplicateRe.FindStringSubmatch(src.Error()); len(matches) == 3 {
		storeErr.Collection = matches[1]
		storeErr.ConstraintName = matches[2]
		storeErr.ColumnName = strings.SplitN(matches[2], "_", 2)[0]
	}
	return storeErr
}

// generateErrorCode builds a machine friendly code such as USER_ALREADY_EXISTS.
func generateErrorCode(collection string, errType Code) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(collection)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(storeErr *Error) string {
	entityName := getEntityName(storeErr.Collection, storeErr.ColumnName)

	switch storeErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(storeErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation, InvalidText:
		fieldName := humanizeText(storeErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a foreign key style column (user_id -> User), then
// the singular collection name.
func getEntityName(collection, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if collection != "" {
		entity := collection
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a store error into an *errs.HTTPError.
//
// HTTP errors pass through untouched. Constraint violations become 400s,
// missing rows or documents 404s, and anything else a generic 500 so
// driver details never reach the client.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var storeErr *Error
	var pgerr *pgconn.PgError
	switch {
	case errors.As(err, &storeErr):
	case errors.As(err, &pgerr):
		storeErr = ConvertPgError(pgerr)
	case mongo.IsDuplicateKeyError(err):
		storeErr = ConvertMongoDuplicateKey(err)
	}

	if storeErr != nil {
		errorCode := generateErrorCode(storeErr.Collection, storeErr.Code)
		userMessage := formatUserFriendlyMessage(storeErr)

		switch storeErr.Code {
		case ForeignKeyViolation, CheckViolation, InvalidText:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(storeErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			} else if storeErr.ColumnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(storeErr.ColumnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(storeErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NewNotFoundError("not found", false, nil)
	}

	return errs.NewInternalServerError()
}
