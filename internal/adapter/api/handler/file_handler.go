package handler

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/infrastructure/storage"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

var fileHandler *FileHandler

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = &FileHandler{storageClient: storageClient}
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

var uploadFolders = map[string]struct {
	folder string
	public bool
}{
	"listing_image":      {storage.FolderListingImages, true},
	"avatar":             {storage.FolderUserAvatars, true},
	"message_attachment": {storage.FolderMessageAttachments, false},
}

// Upload stores an image and returns its URL. Verification documents
// never pass through here; they go straight to the payment provider.
func (h *FileHandler) Upload(c echo.Context) error {
	kind := c.FormValue("kind")
	target, ok := uploadFolders[kind]
	if !ok {
		return response.Error(c, errors.BadRequest("kind must be listing_image, avatar or message_attachment", nil))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("file is required", err))
	}
	if fileHeader.Size > 10<<20 {
		return response.Error(c, errors.BadRequest("File exceeds the 10MB limit", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read upload", err))
	}
	defer file.Close()

	url, err := h.storageClient.UploadFile(c.Request().Context(), file, fileHeader.Header.Get("Content-Type"), target.folder, target.public)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]string{"url": url})
}

type signedUploadRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=listing_image avatar message_attachment"`
	ContentType string `json:"content_type" validate:"required"`
}

// SignedUploadURL hands the client a short-lived PUT URL so large
// images skip the API server.
func (h *FileHandler) SignedUploadURL(c echo.Context) error {
	var req signedUploadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	target := uploadFolders[req.Kind]
	url, err := h.storageClient.GenerateSignedUploadURL(c.Request().Context(), req.ContentType, target.folder, target.public)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"upload_url": url})
}
