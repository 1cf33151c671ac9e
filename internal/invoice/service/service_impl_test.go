package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/artmafra/notas/internal/invoice/domain"
	invoicerepo "github.com/artmafra/notas/internal/invoice/repository"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	servicerepo "github.com/artmafra/notas/internal/service/repository"
	serviceservice "github.com/artmafra/notas/internal/service/service"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	supplierrepo "github.com/artmafra/notas/internal/supplier/repository"
	supplierservice "github.com/artmafra/notas/internal/supplier/service"
	"github.com/artmafra/notas/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cnpjSeq atomic.Int64

func nextCNPJ() string {
	return fmt.Sprintf("%014d", 10000000000000+cnpjSeq.Add(1))
}

type fixture struct {
	invoices domain.Service
	cnpj     string
	code     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&supplierdomain.Supplier{},
		&servicedomain.Service{},
		&domain.Invoice{},
	))

	log := zap.NewNop()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	suppliers := supplierservice.New(supplierservice.Params{DB: dbConn, Log: log, Repo: supplierrepo.Provide()})
	services := serviceservice.New(serviceservice.Params{DB: dbConn, Log: log, Repo: servicerepo.Provide()})
	invoices := New(Params{
		DB:        dbConn,
		Log:       log,
		GenID:     node,
		Repo:      invoicerepo.Provide(),
		Suppliers: suppliers,
		Services:  services,
	})

	cnpj := nextCNPJ()
	_, err = suppliers.Create(context.Background(), supplierdomain.CreateSupplierRequest{
		CNPJ:      cnpj,
		Name:      fmt.Sprintf("Obras Guaiba %d", cnpjSeq.Load()),
		City:      "Guaiba",
		TaxRegime: "N",
	})
	require.NoError(t, err)

	code := fmt.Sprintf("MANUTENCAO_%d", cnpjSeq.Load())
	_, err = services.Create(context.Background(), servicedomain.CreateServiceRequest{
		Code:         code,
		Description:  "Manutencao predial",
		DebitAccount: "3.1.1.05",
		RateN: &servicedomain.RateSet{
			ISSQN: bp(500),
			INSS:  bp(1100),
			CS:    bp(465),
			IRRF:  bp(150),
		},
	})
	require.NoError(t, err)

	return fixture{invoices: invoices, cnpj: cnpj, code: code}
}

func (f fixture) createRequest() domain.CreateInvoiceRequest {
	return domain.CreateInvoiceRequest{
		SupplierCNPJ:           f.cnpj,
		ServiceCode:            f.code,
		InvoiceNumber:          "NF-100",
		EntryDate:              "2025-05-02",
		IssueDate:              "2025-04-30",
		DueDate:                "2025-05-30",
		ValueCents:             100000,
		MaterialDeductionCents: 20000,
	}
}

func TestCreateInvoiceComputesWithholding(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invoices.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(5000), inv.ISSQNCents)
	assert.Equal(t, int64(8800), inv.INSSCents)
	assert.Equal(t, int64(4650), inv.CSCents)
	assert.Equal(t, int64(1500), inv.IRRFCents)
	assert.Equal(t, int64(80050), inv.NetAmountCents)

	stored, err := f.invoices.GetByID(context.Background(), domain.GetInvoiceRequest{ID: inv.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, inv.NetAmountCents, stored.NetAmountCents)
	assert.Equal(t, "2025-05-02", stored.EntryDate)
}

func TestCreateInvoiceUnknownSupplier(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.SupplierCNPJ = "00000000000000"
	_, err := f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestCreateInvoiceUnknownService(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.ServiceCode = "NOPE"
	_, err := f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.InvoiceNumber = "  "
	_, err := f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)

	req = f.createRequest()
	req.EntryDate = "02/05/2025"
	_, err = f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = f.createRequest()
	req.ValueCents = -1
	_, err = f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	req = f.createRequest()
	req.MaterialDeductionCents = req.ValueCents + 1
	_, err = f.invoices.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidMaterial)
}

func TestUpdateInvoiceRecomputes(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invoices.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	newValue := int64(50000)
	newMaterial := int64(0)
	updated, err := f.invoices.Update(context.Background(), domain.UpdateInvoiceRequest{
		ID:                     inv.ID.String(),
		ValueCents:             &newValue,
		MaterialDeductionCents: &newMaterial,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), updated.ISSQNCents)
	assert.Equal(t, int64(5500), updated.INSSCents)
	// 50000 × 465 bp = R$ 23.25, above the floor.
	assert.Equal(t, int64(2325), updated.CSCents)
	// 50000 × 150 bp = R$ 7.50, under the floor.
	assert.Equal(t, int64(0), updated.IRRFCents)
	assert.Equal(t, int64(39675), updated.NetAmountCents)
	assert.Equal(t, inv.InvoiceNumber, updated.InvoiceNumber)
}

func TestUpdateInvoiceNumberOnlyKeepsAmounts(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invoices.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	number := "NF-200"
	updated, err := f.invoices.Update(context.Background(), domain.UpdateInvoiceRequest{
		ID:            inv.ID.String(),
		InvoiceNumber: &number,
	})
	require.NoError(t, err)

	assert.Equal(t, "NF-200", updated.InvoiceNumber)
	assert.Equal(t, inv.NetAmountCents, updated.NetAmountCents)
	assert.Equal(t, inv.INSSCents, updated.INSSCents)
}

func TestDeleteInvoice(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invoices.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.invoices.Delete(context.Background(), domain.DeleteInvoiceRequest{ID: inv.ID.String()}))

	err = f.invoices.Delete(context.Background(), domain.DeleteInvoiceRequest{ID: inv.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.invoices.GetByID(context.Background(), domain.GetInvoiceRequest{ID: inv.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceInvalidID(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoices.GetByID(context.Background(), domain.GetInvoiceRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
