package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
)

func (s *Server) ListSuppliers(c *gin.Context) {
	suppliers, err := s.suppliersvc.List(c.Request.Context(), supplierdomain.ListSupplierRequest{
		Name:      c.Query("name"),
		City:      c.Query("city"),
		TaxRegime: c.Query("tax_regime"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func (s *Server) CreateSupplier(c *gin.Context) {
	var req supplierdomain.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.suppliersvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "supplier.create",
		TableName: "suppliers",
		RecordID:  created.CNPJ,
		NewData:   snapshot(created),
	})

	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var req supplierdomain.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.suppliersvc.GetByCNPJ(c.Request.Context(), supplierdomain.GetSupplierRequest{CNPJ: req.CNPJ})

	updated, err := s.suppliersvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "supplier.update",
		TableName: "suppliers",
		RecordID:  updated.CNPJ,
		NewData:   snapshot(updated),
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	var req supplierdomain.DeleteSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.suppliersvc.GetByCNPJ(c.Request.Context(), supplierdomain.GetSupplierRequest{CNPJ: req.CNPJ})

	if err := s.suppliersvc.Delete(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "supplier.delete",
		TableName: "suppliers",
		RecordID:  req.CNPJ,
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
