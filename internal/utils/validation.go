package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"symptom-helper-server/internal/models"
)

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range errs {
			errorMessages = append(errorMessages, e.Error())
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, "Invalid request payload: "+FormatValidationError(err))
		return false
	}
	return true
}

// base64Charset matches the standard base64 alphabet with optional
// trailing padding. Uploads are charset-checked instead of decoded in
// full; the size limit works off the decoded-length estimate.
var base64Charset = regexp.MustCompile(`^[A-Za-z0-9+/\r\n]+={0,2}$`)

// ValidateDiagnosisRequest applies the cross-field rules gin binding
// tags cannot express. It returns the first violation found.
func ValidateDiagnosisRequest(req *models.DiagnosisRequest, maxUploadBytes int) error {
	if req.Age.Set && (req.Age.Value < 1 || req.Age.Value > 18) {
		return fmt.Errorf("age must be between 1 and 18")
	}
	if req.File != nil {
		if err := ValidateAttachment(req.File, maxUploadBytes); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAttachment checks a file upload before anything touches it:
// base64 charset, decoded-size estimate against the configured limit,
// mime allow-list, and image-flag consistency.
func ValidateAttachment(att *models.Attachment, maxUploadBytes int) error {
	if !base64Charset.MatchString(att.Base64) {
		return fmt.Errorf("file data is not valid base64")
	}
	decodedEstimate := len(att.Base64) / 4 * 3
	if maxUploadBytes > 0 && decodedEstimate > maxUploadBytes {
		return fmt.Errorf("file is too large (max %d bytes)", maxUploadBytes)
	}
	if !models.AllowedMimeTypes[att.MimeType] {
		return fmt.Errorf("file type %s is not allowed", att.MimeType)
	}
	if att.IsImage && !models.ImageMimeTypes[att.MimeType] {
		return fmt.Errorf("image uploads must be JPEG, PNG, or WebP")
	}
	return nil
}
