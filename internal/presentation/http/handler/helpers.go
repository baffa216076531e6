package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/apperror"
)

// bindJSON decodes the body into dst. On failure it writes a 400 and returns false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

// bindError turns decoding and binding failures into a validation AppError.
func bindError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		return apperror.NewValidationError(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return apperror.NewBadRequestError("Invalid request body")
		}
		return apperror.NewValidationError(apperror.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a %s", field, jsonKind(typeErr.Type.Kind().String())),
		})
	}

	if errors.Is(err, io.EOF) {
		return apperror.NewBadRequestError("Request body is required")
	}
	return apperror.NewBadRequestError("Invalid request body")
}

// fieldPath drops the struct name from a namespace like
// "CreateBillRequest.items[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required and must be a non-empty string"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func jsonKind(kind string) string {
	switch kind {
	case "float64", "float32", "int", "int64":
		return "number"
	case "slice":
		return "array"
	case "struct", "map", "ptr":
		return "object"
	default:
		return kind
	}
}

// parseID reads the :id path parameter. On failure it writes a 400 and returns false.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func toItemInputs(items []request.ItemRequest) []billing.ItemInput {
	if items == nil {
		return nil
	}
	out := make([]billing.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, billing.ItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return out
}
