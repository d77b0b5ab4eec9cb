package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/dto"
)

// InvoiceHandler invoice aggregate endpoints: CRUD, items, listing, search
// and the rendered document.
type InvoiceHandler struct {
	uc    *billing.UseCase
	pdfUC *billing.PDFUseCase
}

func NewInvoiceHandler(uc *billing.UseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create issues an invoice under the shop.
// POST /api/shops/:id/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns one page of the shop's invoices, newest first.
// GET /api/shops/:id/invoices?page=&page_size=&type=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page := dto.ParsePage(c.Query("page"))
	pageSize := dto.ParsePageSize(c.Query("page_size"))
	resp, err := h.uc.List(c.Context(), GetUserID(c), c.Params("id"), page, pageSize, c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SearchBillTo returns distinct bill-to parties matching a name fragment.
// GET /api/shops/:id/invoices/search/bill-to?q=
func (h *InvoiceHandler) SearchBillTo(c *fiber.Ctx) error {
	resp, err := h.uc.SearchBillTo(c.Context(), GetUserID(c), c.Params("id"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SearchShipTo returns distinct ship-to parties matching a name fragment.
// GET /api/shops/:id/invoices/search/ship-to?q=
func (h *InvoiceHandler) SearchShipTo(c *fiber.Ctx) error {
	resp, err := h.uc.SearchShipTo(c.Context(), GetUserID(c), c.Params("id"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns the invoice with its items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update applies a merge patch to the invoice.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete removes the invoice and its items.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem appends one line to the invoice.
// POST /api/invoices/:id/items
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateItem rewrites one line.
// PUT /api/invoice-items/:id
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteItem removes one line.
// DELETE /api/invoice-items/:id
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders the invoice document and streams it back.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	doc, name, err := h.pdfUC.BuildInvoicePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(doc)
}
