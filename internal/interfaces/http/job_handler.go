package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// JobHandler iş ilanları ile herkese açık ilan ve başvuru uç noktaları.
type JobHandler struct {
	uc           *usecase.JobUseCase
	applications *usecase.ApplicationUseCase
}

// NewJobHandler kurucu.
func NewJobHandler(uc *usecase.JobUseCase, applications *usecase.ApplicationUseCase) *JobHandler {
	return &JobHandler{uc: uc, applications: applications}
}

// List godoc
// @Summary      İş ilanları
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "draft | open | closed"
// @Param        department_id  query  string  false  "Departman"
// @Success      200            {object}  dto.ListResponse[entity.Job]
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var q dto.JobQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      İlan detayı
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "İlan ID"
// @Success      200  {object}  entity.Job
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      İlan oluştur
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JobRequest  true  "ilan"
// @Success      201   {object}  entity.Job
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.JobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      İlan güncelle
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "İlan ID"
// @Param        body  body  dto.JobRequest  true  "ilan"
// @Success      200   {object}  entity.Job
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.JobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      İlan sil
// @Tags         jobs
// @Security     Bearer
// @Param        id   path  string  true  "İlan ID"
// @Success      204
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPublic godoc
// @Summary      Şirketin açık ilanları (herkese açık)
// @Tags         public
// @Produce      json
// @Param        companyId  path   string  true   "Şirket ID"
// @Param        limit      query  int     false  "Sayfa boyutu"  default(20)
// @Param        offset     query  int     false  "Başlangıç"     default(0)
// @Success      200        {object}  dto.ListResponse[dto.PublicJobResponse]
// @Router       /api/public/companies/{companyId}/jobs [get]
func (h *JobHandler) ListPublic(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListPublic(c.Context(), c.Params("companyId"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPublic godoc
// @Summary      Açık ilan detayı (herkese açık)
// @Tags         public
// @Produce      json
// @Param        id   path  string  true  "İlan ID"
// @Success      200  {object}  dto.PublicJobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/jobs/{id} [get]
func (h *JobHandler) GetPublic(c *fiber.Ctx) error {
	out, err := h.uc.GetPublic(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      İlana başvur (herkese açık)
// @Description  Yalnızca açık ve başvuru tarihi geçmemiş ilanlara başvurulabilir.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "İlan ID"
// @Param        body  body  dto.ApplyRequest  true  "aday bilgileri"
// @Success      201   {object}  dto.ApplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/public/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.applications.Apply(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CVUploadURL godoc
// @Summary      CV yükleme adresi (herkese açık)
// @Description  S3 imzalı PUT adresi döner; dönen key başvuruda cv_key olarak gönderilir.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "İlan ID"
// @Param        body  body  dto.CVUploadRequest  true  "dosya adı ve türü"
// @Success      200   {object}  dto.CVUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/public/jobs/{id}/cv-upload-url [post]
func (h *JobHandler) CVUploadURL(c *fiber.Ctx) error {
	var in dto.CVUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.applications.CVUploadURL(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
