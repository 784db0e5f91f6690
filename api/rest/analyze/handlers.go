package analyze

import (
	"net/http"

	"codeberg.org/codescribe/server/internal/errors"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

const (
	msgNoCode        = "No code received."
	msgUnknownAction = "Unknown action."
)

// Handler godoc
// @Summary Run a code action
// @Description Builds the prompt for the requested action and returns the model output (or demo output)
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body Request true "Action request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /analyze [post]
func Handler(dispatcher *scribe.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		result, err := dispatcher.Run(c.Request.Context(), req.Action, req.Code)
		if err != nil {
			if scribe.IsUnknownAction(err) {
				errors.UnknownAction(c, msgUnknownAction)
				return
			}

			errors.ValidationError(c, msgNoCode)
			return
		}

		c.JSON(http.StatusOK, Response{
			OK:     true,
			Result: result.Text,
			Demo:   result.Demo,
		})
	}
}
