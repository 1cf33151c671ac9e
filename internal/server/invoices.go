package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	invoicedomain "github.com/artmafra/notas/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoicesvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		SupplierCNPJ: c.Query("supplier_cnpj"),
		ServiceCode:  c.Query("service_code"),
		EntryFrom:    c.Query("entry_from"),
		EntryTo:      c.Query("entry_to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.invoicesvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordInvoiceCreated()
	}

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "invoice.create",
		TableName: "invoices",
		RecordID:  created.ID.String(),
		NewData:   snapshot(created),
	})

	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.invoicesvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{ID: req.ID})

	updated, err := s.invoicesvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "invoice.update",
		TableName: "invoices",
		RecordID:  updated.ID.String(),
		NewData:   snapshot(updated),
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	var req invoicedomain.DeleteInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.invoicesvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{ID: req.ID})

	if err := s.invoicesvc.Delete(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "invoice.delete",
		TableName: "invoices",
		RecordID:  req.ID,
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
