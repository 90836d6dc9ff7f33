package handlers

import (
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/model"
	"PartsCatalog/internal/service"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"
)

// multipartMemory: сколько формы держать в памяти, остальное уходит во временные файлы.
const multipartMemory = 8 << 20

type PartHandler struct {
	PartService *service.PartService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewPartHandler(partService *service.PartService, logger *zap.SugaredLogger, config *config.Config) *PartHandler {
	return &PartHandler{
		PartService: partService,
		Logger:      logger,
		Config:      config,
	}
}

type partListResponse struct {
	Parts      []model.Part `json:"parts"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

// List ищет детали: ?q=&page=&limit=
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	res, err := h.PartService.List(r.Context(), r.URL.Query().Get("q"), page, limit)
	if err != nil {
		writeServiceError(w, h.Logger, "ListParts", err)
		return
	}
	writeJSON(w, http.StatusOK, partListResponse{
		Parts:      res.Parts,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	part, err := h.PartService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "GetPart", err)
		return
	}
	writeJSON(w, http.StatusOK, part)
}

func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, image, ok := h.readPartForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	id, err := h.PartService.Create(r.Context(), fields, asReader(image))
	if err != nil {
		writeServiceError(w, h.Logger, "CreatePart", err)
		return
	}
	h.Logger.Infow("Part created", "id", id)
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields, image, ok := h.readPartForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := h.PartService.Update(r.Context(), id, fields, asReader(image)); err != nil {
		writeServiceError(w, h.Logger, "UpdatePart", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.PartService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, "DeletePart", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadCSV импортирует детали из файла в поле формы "csv"
func (h *PartHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.UploadMaxBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.writeFormError(w, "UploadCSV", err)
		return
	}

	file, _, err := r.FormFile("csv")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	inserted, err := h.PartService.ImportCSV(r.Context(), file)
	if err != nil {
		writeServiceError(w, h.Logger, "UploadCSV", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "inserted": inserted})
}

// readPartForm разбирает multipart или urlencoded форму детали.
// Отсутствующее поле даёт nil, присутствующее (даже пустое): значение.
func (h *PartHandler) readPartForm(w http.ResponseWriter, r *http.Request) (model.PartFields, multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.UploadMaxBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.writeFormError(w, "PartForm", err)
		return model.PartFields{}, nil, false
	}

	fields := model.PartFields{
		ModelNumber:     formValue(r, "model_number"),
		ArticleNumber:   formValue(r, "article_number"),
		ArticleName:     formValue(r, "article_name"),
		PartName:        formValue(r, "part_name"),
		PartPseudoName:  formValue(r, "part_pseudo_name"),
		PartDescription: formValue(r, "part_description"),
		PartWeight:      formValue(r, "part_weight"),
		PartSize:        formValue(r, "part_size"),
	}

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		return fields, file, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return fields, nil, true
	default:
		h.Logger.Warnw("bad image part", "error", err)
		writeError(w, http.StatusBadRequest, "invalid image")
		return model.PartFields{}, nil, false
	}
}

// writeFormError: тело больше UPLOAD_MAX_MB даёт 413, прочие ошибки разбора формы: 400.
func (h *PartHandler) writeFormError(w http.ResponseWriter, op string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Logger.Warnw(op+": upload too large", "limit", tooLarge.Limit)
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload too large: limit is %d bytes", tooLarge.Limit))
		return
	}
	h.Logger.Warnw(op+": bad form", "error", err)
	writeError(w, http.StatusBadRequest, "invalid form")
}

func formValue(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}

// asReader не даёт typed-nil попасть в интерфейс.
func asReader(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}
