package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openfmis/ipsas_ledger/internal/apperrors"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
	"github.com/openfmis/ipsas_ledger/internal/middleware"
	"github.com/openfmis/ipsas_ledger/internal/platform/config"
	"github.com/openfmis/ipsas_ledger/internal/utils/pagination"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// All ledger routes require an acting user; the upstream gateway is
	// responsible for authenticating it.
	v1 := r.Group("/api/v1", middleware.ActorIDMiddleware())

	registerEntityRoutes(v1, services.Entity, services.Fund)
	registerFundRoutes(v1, services.Fund)
	registerAccountRoutes(v1, services.Account)
	registerGLRoutes(v1, services.GL)
}

// statusForError maps the service error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnbalanced):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error response, hiding internals behind a
// generic message when nothing in the taxonomy matched.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	logger.Warn("Request rejected", slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// paginationFromQuery reads page/limit/sortBy/sortOrder query parameters and
// normalizes them.
func paginationFromQuery(c *gin.Context) pagination.Params {
	var q struct {
		Page      int    `form:"page"`
		Limit     int    `form:"limit"`
		SortBy    string `form:"sortBy"`
		SortOrder string `form:"sortOrder"`
	}
	// Unparseable values fall through to the defaults applied by Normalize.
	_ = c.ShouldBindQuery(&q)
	return pagination.Normalize(q.Page, q.Limit, q.SortBy, q.SortOrder)
}
