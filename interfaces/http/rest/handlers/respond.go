package handlers

import (
	"errors"
	"net/http"

	"coursemap-backend/pkg/common"
	appErrors "coursemap-backend/pkg/errors"
)

// respondAppError maps an application error onto the response envelope.
// Unknown error types collapse to a 500 so internals never leak.
func respondAppError(w http.ResponseWriter, err error) {
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		common.RespondError(w, http.StatusInternalServerError,
			common.StandardErrorCodes.InternalError, "Internal server error")
		return
	}

	code := common.StandardErrorCodes.InternalError
	message := "Internal server error"

	switch appErr.Type {
	case appErrors.ErrorTypeValidation:
		code = common.StandardErrorCodes.ValidationError
		message = appErr.Message
	case appErrors.ErrorTypeNotFound:
		code = common.StandardErrorCodes.NotFound
		message = appErr.Message
	case appErrors.ErrorTypeConflict:
		code = common.StandardErrorCodes.Conflict
		message = appErr.Message
	case appErrors.ErrorTypeDataSource:
		code = common.StandardErrorCodes.ServiceUnavailable
		message = "Catalog data source unavailable"
	}

	common.RespondError(w, appErrors.StatusOf(appErr), code, message)
}
