package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/upload"
)

// UploadService is implemented by *upload.Service.
type UploadService interface {
	upload.Uploader
	List(ctx context.Context, parent model.Parent) ([]upload.Listed, error)
	Recent(ctx context.Context, limit int) ([]upload.Listed, error)
	Delete(ctx context.Context, id string) error
}

// UploadHandler serves document uploads and their admin views.
type UploadHandler struct {
	Uploads  UploadService
	MaxFiles int
}

func NewUploadHandler(uploads UploadService, maxFiles int) *UploadHandler {
	return &UploadHandler{Uploads: uploads, MaxFiles: maxFiles}
}

type uploadResult struct {
	LocalID  string             `json:"localId"`
	Filename string             `json:"filename"`
	Status   model.UploadStatus `json:"status"`
	Error    string             `json:"error,omitempty"`
	Upload   *model.FileUpload  `json:"upload,omitempty"`
}

func parseParent(kind, id string) (model.Parent, error) {
	k, err := model.ParseParentKind(kind)
	if err != nil {
		return model.Parent{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Parent{}, errRequired("parentId")
	}
	return model.Parent{Kind: k, ID: id}, nil
}

// Create handles POST /v1/uploads (multipart).  Files are uploaded one at a
// time in the order sent; each gets its own status and the request itself
// succeeds even when some files fail.
func (h *UploadHandler) Create(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "invalid multipart form")
	}
	parent, err := parseParent(c.FormValue("parentType"), c.FormValue("parentId"))
	if err != nil {
		return respondError(c, err, "")
	}
	category, err := model.ParseFileCategory(c.FormValue("category"))
	if err != nil {
		return respondError(c, err, "")
	}
	isPHI, _ := strconv.ParseBool(c.FormValue("isPhi"))

	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c, "no files provided")
	}
	if h.MaxFiles > 0 && len(headers) > h.MaxFiles {
		return badRequest(c, "too many files; maximum is "+strconv.Itoa(h.MaxFiles))
	}

	files := make([]upload.File, len(headers))
	for i, fh := range headers {
		files[i] = fileFromHeader(fh)
	}
	items := upload.Queue(files)
	batch := &upload.Batch{
		Uploader: h.Uploads,
		OnError: func(it *upload.Item, err error) {
			logger.Get().Warn("file upload failed",
				zap.String("local_id", it.LocalID), zap.String("filename", it.File.Filename),
				zap.String("parent_id", parent.ID), zap.Error(err))
		},
	}
	batch.Run(c.Request().Context(), parent, upload.Options{Category: category, IsPHI: isPHI}, items)

	out := make([]uploadResult, len(items))
	for i, it := range items {
		out[i] = uploadResult{LocalID: it.LocalID, Filename: it.File.Filename, Status: it.Status, Upload: it.Upload}
		if it.Err != nil {
			out[i].Error = publicUploadError(it.Err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"files": out})
}

func fileFromHeader(fh *multipart.FileHeader) upload.File {
	return upload.File{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
		Open:     func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// List handles GET /v1/admin/uploads?parentType=&parentId=.  Without a
// parent it returns the newest files across all leads.
func (h *UploadHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var rows []upload.Listed
	var err error
	if c.QueryParam("parentType") == "" && c.QueryParam("parentId") == "" {
		rows, err = h.Uploads.Recent(ctx, queryLimit(c, 50, 200))
	} else {
		parent, perr := parseParent(c.QueryParam("parentType"), c.QueryParam("parentId"))
		if perr != nil {
			return respondError(c, perr, "")
		}
		rows, err = h.Uploads.List(ctx, parent)
	}
	if err != nil {
		return respondError(c, err, "Failed to load uploads")
	}
	if rows == nil {
		rows = []upload.Listed{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Delete handles DELETE /v1/admin/uploads/:id?confirm=true.
func (h *UploadHandler) Delete(c echo.Context) error {
	if ok, _ := strconv.ParseBool(c.QueryParam("confirm")); !ok {
		return badRequest(c, "deletion must be confirmed with confirm=true")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Uploads.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete file", zap.String("upload_id", c.Param("id")))
	}
	return c.NoContent(http.StatusNoContent)
}
