package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"voice-memos/constant"
	"voice-memos/dto"
	"voice-memos/pkg/blob"
	"voice-memos/repository"
	"voice-memos/service"
)

type RecordingHandler struct {
	svc   service.Service
	blobs blob.Store
}

func NewRecordingHandler(svc service.Service, blobs blob.Store) *RecordingHandler {
	return &RecordingHandler{
		svc:   svc,
		blobs: blobs,
	}
}

// List returns every recording, newest first.
func (h *RecordingHandler) List(c *gin.Context) {
	recordings, err := h.svc.List(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to fetch recordings")
		c.JSON(http.StatusInternalServerError, dto.StatusMessage{Message: "Failed to fetch recordings"})
		return
	}
	c.JSON(http.StatusOK, recordings)
}

// Create accepts multipart form data: an "audio" file field plus a "data"
// field holding a JSON {question, duration} payload.
func (h *RecordingHandler) Create(c *gin.Context) {
	// Bound the request body before the multipart reader buffers it. The
	// slack covers the metadata field and multipart framing.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constant.MaxUploadBytes+64*1024)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, dto.StatusMessage{Message: service.ErrFileTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, dto.StatusMessage{Message: service.ErrNoAudioFile.Error()})
		return
	}

	var meta dto.RecordingMeta
	raw := c.PostForm("data")
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusMessage{Message: "Invalid metadata payload"})
		return
	}

	audio, err := fileHeader.Open()
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, dto.StatusMessage{Message: "Failed to create recording"})
		return
	}
	defer audio.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	recording, err := h.svc.Create(c.Request.Context(), meta, audio, fileHeader.Size, contentType)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.StatusMessage{Message: err.Error()})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to create recording")
		c.JSON(http.StatusInternalServerError, dto.StatusMessage{Message: "Failed to create recording"})
		return
	}

	c.JSON(http.StatusCreated, recording)
}

// Delete removes a recording row and, best-effort, its audio file.
func (h *RecordingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.StatusMessage{Message: "Invalid recording ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrRecordingNotFound) {
			c.JSON(http.StatusNotFound, dto.StatusMessage{Message: "Recording not found"})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Int64("id", id).Msg("failed to delete recording")
		c.JSON(http.StatusInternalServerError, dto.StatusMessage{Message: "Failed to delete recording"})
		return
	}

	c.JSON(http.StatusOK, dto.StatusMessage{Message: "Recording deleted successfully"})
}

// ServeAudio streams a stored audio file. Going through the blob store
// keeps disk and MinIO deployments behind the same URL.
func (h *RecordingHandler) ServeAudio(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || name != path.Base(name) || strings.Contains(name, "..") {
		c.JSON(http.StatusNotFound, dto.StatusMessage{Message: "Audio file not found"})
		return
	}

	obj, err := h.blobs.Open(c.Request.Context(), name)
	if err != nil {
		if !errors.Is(err, blob.ErrObjectNotFound) {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("filename", name).Msg("failed to open audio file")
		}
		c.JSON(http.StatusNotFound, dto.StatusMessage{Message: "Audio file not found"})
		return
	}
	defer obj.Content.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Content, nil)
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrNoAudioFile) ||
		errors.Is(err, service.ErrNotAudio) ||
		errors.Is(err, service.ErrFileTooLarge) ||
		errors.Is(err, service.ErrEmptyQuestion) ||
		errors.Is(err, service.ErrInvalidDuration)
}
