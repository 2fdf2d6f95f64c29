package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"umailer-backend/internal/email/usecase"
	"umailer-backend/pkg/imap"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// DownloadEmails handles POST /emails/download. Any failure, bad input
// included, comes back as a 400 with the underlying error text.
func (h *EmailHandler) DownloadEmails(c *gin.Context) {
	onlyUnread, err := boolQuery(c, "only_unread", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isReadonly, err := boolQuery(c, "is_readonly", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.emailUsecase.DownloadEmails(c.Request.Context(), usecase.DownloadOptions{
		OnlyUnread: onlyUnread,
		IsReadonly: isReadonly,
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DownloadEmailByUID handles POST /emails/download-by-uid. The fetch is
// always read-only; a missing message surfaces as a transport error, which
// gets its own explanatory message.
func (h *EmailHandler) DownloadEmailByUID(c *gin.Context) {
	uidStr := c.Query("uid")
	if uidStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
		return
	}
	uid, err := strconv.ParseUint(uidStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid must be an integer"})
		return
	}

	response, err := h.emailUsecase.DownloadEmailByUID(c.Request.Context(), uint32(uid))
	if err != nil {
		var transportErr *imap.TransportError
		if errors.As(err, &transportErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(
				"IMAP service failed to fetch the email with UID %d from inbox. Maybe there's no such email? For reference, error = %v",
				uid, transportErr.Err,
			)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEmailByID handles GET /emails/:id. Database only, no server fetch.
func (h *EmailHandler) GetEmailByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	email, err := h.emailUsecase.GetEmailByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if email == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		return
	}

	c.JSON(http.StatusOK, email)
}

func boolQuery(c *gin.Context, name string, defaultValue bool) (bool, error) {
	value := c.Query(name)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return parsed, nil
}
