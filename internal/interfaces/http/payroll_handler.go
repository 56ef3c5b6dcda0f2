package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// HeaderContentDigest XML dışa aktarımının kanonik özet başlığı.
const HeaderContentDigest = "X-Content-Digest"

// PayrollHandler bordro uç noktaları.
type PayrollHandler struct {
	uc   *usecase.PayrollUseCase
	docs *usecase.PayrollDocumentUseCase
}

// NewPayrollHandler kurucu.
func NewPayrollHandler(uc *usecase.PayrollUseCase, docs *usecase.PayrollDocumentUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc, docs: docs}
}

// List godoc
// @Summary      Bordrolar
// @Description  Bordro yazma yetkisi olmayan kullanıcı yalnızca kendi bordrolarını görür.
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Personel"
// @Param        year         query  int     false  "Yıl"
// @Param        month        query  int     false  "Ay (1-12)"
// @Param        status       query  string  false  "draft | approved | paid"
// @Success      200          {object}  dto.ListResponse[entity.Payroll]
// @Router       /api/payroll [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	var q dto.PayrollQuery
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
// @Summary      Bordro detayı
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bordro ID"
// @Success      200  {object}  entity.Payroll
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id} [get]
func (h *PayrollHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Bordro oluştur
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayrollRequest  true  "personel, dönem, kalemler"
// @Success      201   {object}  entity.Payroll
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payroll [post]
func (h *PayrollHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Generate godoc
// @Summary      Dönem bordrolarını toplu oluştur
// @Description  Aktif tüm personel için taslak bordro üretir; mevcut olanlar atlanır.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneratePayrollRequest  true  "yıl, ay"
// @Success      200   {object}  dto.GeneratePayrollResult
// @Router       /api/payroll/generate [post]
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	var in dto.GeneratePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Generate(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Taslak bordroyu güncelle
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Bordro ID"
// @Param        body  body  dto.UpdatePayrollRequest  true  "kalemler"
// @Success      200   {object}  entity.Payroll
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payroll/{id} [put]
func (h *PayrollHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Bordroyu onayla
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bordro ID"
// @Success      200  {object}  entity.Payroll
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/approve [post]
func (h *PayrollHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Bordroyu ödendi işaretle
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bordro ID"
// @Success      200  {object}  entity.Payroll
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/pay [post]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Taslak bordroyu sil
// @Tags         payroll
// @Security     Bearer
// @Param        id   path  string  true  "Bordro ID"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id} [delete]
func (h *PayrollHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Payslip godoc
// @Summary      Bordro PDF
// @Tags         payroll
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Bordro ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/{id}/payslip.pdf [get]
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	out, err := h.docs.Payslip(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out, false)
}

// ExportXML godoc
// @Summary      Dönem bordro XML dışa aktarımı
// @Description  X-Content-Digest başlığı Payrolls bölümünün kanonik (C14N) SHA-256 özetidir.
// @Tags         payroll
// @Security     Bearer
// @Produce      application/xml
// @Param        year   query  int  true  "Yıl"
// @Param        month  query  int  true  "Ay (1-12)"
// @Success      200    {file}    binary
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/payroll/export.xml [get]
func (h *PayrollHandler) ExportXML(c *fiber.Ctx) error {
	out, err := h.docs.ExportXML(c.Context(), actor(c), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(HeaderContentDigest, "sha-256="+out.Digest)
	return sendFile(c, out, true)
}

// ExportArchive godoc
// @Summary      Dönem bordro PDF arşivi (ZIP)
// @Tags         payroll
// @Security     Bearer
// @Produce      application/zip
// @Param        year   query  int  true  "Yıl"
// @Param        month  query  int  true  "Ay (1-12)"
// @Success      200    {file}    binary
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/payroll/export.zip [get]
func (h *PayrollHandler) ExportArchive(c *fiber.Ctx) error {
	out, err := h.docs.ExportArchive(c.Context(), actor(c), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out, true)
}

func sendFile(c *fiber.Ctx, f *dto.PayrollExport, attachment bool) error {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, f.FileName))
	return c.Send(f.Content)
}
