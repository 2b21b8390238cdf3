package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	receiptdomain "github.com/smallbiznis/clubhub/internal/receipt/domain"
)

// UploadReceipt accepts a multipart "file" field, validates it and
// stores it on disk. The returned URL is what RegisterPayment expects
// as receipt_url.
func (s *Server) UploadReceipt(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, receiptdomain.ErrMissingFile)
		return
	}

	f, err := header.Open()
	if err != nil {
		AbortWithError(c, receiptdomain.ErrMissingFile)
		return
	}
	defer f.Close()

	stored, err := s.receiptSvc.Store(c.Request.Context(), receiptdomain.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   f,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveReceiptUpload("rejected")
		}
		AbortWithError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveReceiptUpload("stored")
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      stored.URL,
		"filename": stored.Filename,
		"size":     stored.Size,
		"type":     stored.ContentType,
	})
}
