package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"shepherd-laundry/internal/labels"
	"shepherd-laundry/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	app     *store.App
	webpush *webpush.Options
}

// NewHandler creates a new API handler. webpushOptions may be nil when push is
// not configured.
func NewHandler(app *store.App, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		app:     app,
		webpush: webpushOptions,
	}
}

// catalog returns the label catalog negotiated from the request. A "lang" query
// parameter wins over Accept-Language.
func catalog(c *gin.Context) labels.Catalog {
	if lang := c.Query("lang"); lang != "" {
		return labels.ForLanguage(lang)
	}
	return labels.Negotiate(c.GetHeader("Accept-Language"))
}

// respondReplaceError maps a rejected replace to a 400 listing every problem.
func respondReplaceError(c *gin.Context, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidSnapshot.Error(), "collection": verr.Collection, "problems": verr.Problems})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
