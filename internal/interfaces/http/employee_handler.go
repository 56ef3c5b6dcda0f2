package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// EmployeeHandler personel uç noktaları.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler kurucu.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Personel listesi
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  string  false  "Departman"
// @Param        status         query  string  false  "active | on_leave | terminated"
// @Param        search         query  string  false  "Ad, e-posta ya da sicil no"
// @Param        limit          query  int     false  "Sayfa boyutu"  default(20)
// @Param        offset         query  int     false  "Başlangıç"     default(0)
// @Success      200            {object}  dto.ListResponse[entity.Employee]
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var q dto.EmployeeQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Kendi personel kaydım
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Employee
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/me [get]
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Personel detayı
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Personel ID"
// @Success      200  {object}  entity.Employee
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Personel oluştur
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "personel"
// @Success      201   {object}  entity.Employee
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
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
// @Summary      Personel güncelle
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Personel ID"
// @Param        body  body  dto.EmployeeRequest  true  "personel"
// @Success      200   {object}  entity.Employee
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Terminate godoc
// @Summary      İşten çıkış
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Personel ID"
// @Param        body  body  dto.TerminateEmployeeRequest  true  "çıkış tarihi ve nedeni"
// @Success      200   {object}  entity.Employee
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/terminate [post]
func (h *EmployeeHandler) Terminate(c *fiber.Ctx) error {
	var in dto.TerminateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Terminate(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Personel sil
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "Personel ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      CSV ile personel içe aktar
// @Description  multipart "file" alanı ya da ham text/csv gövde. UTF-8 ve Windows-1254 desteklenir.
// @Tags         employees
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  false  "CSV dosyası"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees/import [post]
func (h *EmployeeHandler) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		r = f
	} else {
		body := c.Body()
		if len(body) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "CSV dosyası gerekli"})
		}
		r = bytes.NewReader(body)
	}
	out, err := h.uc.Import(c.Context(), actor(c), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
