package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/artmafra/notas/internal/supplier/domain"
	"github.com/artmafra/notas/internal/supplier/repository"
	"github.com/artmafra/notas/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cnpjSeq atomic.Int64

func nextCNPJ() string {
	return fmt.Sprintf("%014d", 20000000000000+cnpjSeq.Add(1))
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Supplier{}))

	return New(Params{DB: dbConn, Log: zap.NewNop(), Repo: repository.Provide()})
}

func TestCreateSupplierNormalizes(t *testing.T) {
	svc := newTestService(t)

	cnpj := nextCNPJ()
	note := "  pagamento via boleto  "
	created, err := svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ:      cnpj,
		Name:      "  terraplanagem irmaos  ",
		City:      " Sapucaia do Sul ",
		TaxRegime: "sn",
		Note:      &note,
	})
	require.NoError(t, err)

	assert.Equal(t, "TERRAPLANAGEM IRMAOS", created.Name)
	assert.Equal(t, "Sapucaia do Sul", created.City)
	assert.Equal(t, domain.TaxRegimeSimplesNacional, created.TaxRegime)
	require.NotNil(t, created.Note)
	assert.Equal(t, "pagamento via boleto", *created.Note)
}

func TestCreateSupplierValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: "123", Name: "X", TaxRegime: "SN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)

	_, err = svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: nextCNPJ(), Name: "  ", TaxRegime: "SN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: nextCNPJ(), Name: "X", TaxRegime: "LUCRO",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRegime)
}

func TestCreateSupplierDuplicate(t *testing.T) {
	svc := newTestService(t)

	cnpj := nextCNPJ()
	req := domain.CreateSupplierRequest{CNPJ: cnpj, Name: "Duplicada", TaxRegime: "MEI"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateSupplierPartial(t *testing.T) {
	svc := newTestService(t)

	cnpj := nextCNPJ()
	_, err := svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: cnpj, Name: "Eletrica Farroupilha", City: "Porto Alegre", TaxRegime: "N",
	})
	require.NoError(t, err)

	regime := "MEI"
	updated, err := svc.Update(context.Background(), domain.UpdateSupplierRequest{
		CNPJ:      cnpj,
		TaxRegime: &regime,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaxRegimeMEI, updated.TaxRegime)
	assert.Equal(t, "ELETRICA FARROUPILHA", updated.Name)
	assert.Equal(t, "Porto Alegre", updated.City)
}

func TestUpdateSupplierNotFound(t *testing.T) {
	svc := newTestService(t)

	name := "Alguem"
	_, err := svc.Update(context.Background(), domain.UpdateSupplierRequest{
		CNPJ: nextCNPJ(),
		Name: &name,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSupplier(t *testing.T) {
	svc := newTestService(t)

	cnpj := nextCNPJ()
	_, err := svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: cnpj, Name: "Removivel", TaxRegime: "SN",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteSupplierRequest{CNPJ: cnpj}))
	err = svc.Delete(context.Background(), domain.DeleteSupplierRequest{CNPJ: cnpj})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSuppliersFilters(t *testing.T) {
	svc := newTestService(t)

	first := nextCNPJ()
	second := nextCNPJ()
	_, err := svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: first, Name: "Filtro Alfa", City: "Cachoeirinha", TaxRegime: "SN",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateSupplierRequest{
		CNPJ: second, Name: "Filtro Beta", City: "Cachoeirinha", TaxRegime: "N",
	})
	require.NoError(t, err)

	found, err := svc.List(context.Background(), domain.ListSupplierRequest{
		City:      "Cachoeirinha",
		TaxRegime: "N",
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second, found[0].CNPJ)
}
