package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawfolio/services/scheduling"
)

// renderEngineError maps the engine's typed errors onto HTTP responses.
// Each response carries enough structured detail for the console to
// render an actionable message; the engine itself produces no UI text.
func renderEngineError(c *gin.Context, err error) {
	var (
		denied      scheduling.PermissionDeniedError
		notFound    scheduling.NotFoundError
		conflict    scheduling.ConflictError
		invalidRule scheduling.InvalidRuleError
		partial     scheduling.PartialBatchError
		unavailable scheduling.DependencyUnavailableError
	)

	switch {
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "permission_denied", "actorId": denied.ActorID,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not_found", "kind": notFound.Kind, "id": notFound.ID,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "conflict",
			"bookingId": conflict.BookingID,
			"sitterId":  conflict.CurrentSitterID,
			"reason":    conflict.Reason,
		})
	case errors.As(err, &invalidRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "invalid_rule",
			"reason":    invalidRule.Reason,
			"requested": invalidRule.Requested,
			"generated": invalidRule.Generated,
		})
	case errors.As(err, &partial):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "partial_batch_failure",
			"committedCount": partial.CommittedCount,
			"failedChunk":    partial.FailedChunk,
			"totalWrites":    partial.TotalWrites,
			"cause":          partial.Err.Error(),
		})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "dependency_unavailable", "dependency": unavailable.Dependency,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "details": err.Error()})
	}
}
