package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tcdirect/direct/api/middleware"
	"github.com/tcdirect/direct/internal/apierror"
)

// GetMyChallenges lists the challenges the caller can see.
// With includeCount=true the total ignoring limit and offset is returned under metadata.
func (a Api) GetMyChallenges(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access."})
		return
	}

	query, errs := ParseQueryFromContext(c, nil)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	challenges, err := a.direct.GetMyChallenges(c.Request.Context(), caller, query)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := FilterResponse{Data: challenges}
	if includeCount(c) {
		total, err := a.direct.GetMyChallengesCount(c.Request.Context(), caller, query)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Metadata = &Metadata{TotalCount: total}
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetMyChallengesCount(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access."})
		return
	}

	query, errs := ParseQueryFromContext(c, nil)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	total, err := a.direct.GetMyChallengesCount(c.Request.Context(), caller, query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalCount": total})
}

func includeCount(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("includeCount", "false"))
	return err == nil && v
}

func writeError(c *gin.Context, err error) {
	c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "An unexpected error occurred"
}
