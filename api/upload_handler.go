package api

import (
	"io"
	"net/http"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   *services.S3Storage
}

func newUploadHandler(storage *services.S3Storage) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
	}
}

// upload stores a multipart file and returns the public URL and key
// @Summary Upload file
// @Description Uploads a file to blob storage. The optional folder form field namespaces the key
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} services.UploadResult "Upload result"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing file"
// @Router /upload [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to parse multipart form"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "uploads"
		}

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to read file", err))
			return
		}

		result, err := h.storage.Upload(r.Context(), data, header.Filename, folder, header.Header.Get("Content-Type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to upload file", err))
			return
		}

		h.logger.Info().Str("key", result.PublicID).Int64("bytes", result.Bytes).Msg("file uploaded")
		h.responder.WriteJSON(w, result)
	}
}
