package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/artmafra/notas/internal/service/domain"
	"github.com/artmafra/notas/internal/service/repository"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"github.com/artmafra/notas/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var codeSeq atomic.Int64

func nextCode() string {
	return fmt.Sprintf("SERVICO_%03d", codeSeq.Add(1))
}

func bp(v int64) *int64 { return &v }

func newTestRegistry(t *testing.T) domain.ServiceRegistry {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Service{}))

	return New(Params{DB: dbConn, Log: zap.NewNop(), Repo: repository.Provide()})
}

func TestCreateServiceRoundTripsRates(t *testing.T) {
	svc := newTestRegistry(t)

	code := nextCode()
	created, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Code:         code,
		Description:  "Vigilancia patrimonial",
		DebitAccount: "3.1.1.07",
		RateSN:       &domain.RateSet{ISSQN: bp(500)},
		RateN:        &domain.RateSet{ISSQN: bp(500), INSS: bp(1100), CS: bp(465), IRRF: bp(150)},
	})
	require.NoError(t, err)

	stored, err := svc.GetByCode(context.Background(), domain.GetServiceRequest{Code: code})
	require.NoError(t, err)

	rateN := stored.RateN.Data()
	require.NotNil(t, rateN.INSS)
	assert.Equal(t, int64(1100), *rateN.INSS)
	require.NotNil(t, rateN.CS)
	assert.Equal(t, int64(465), *rateN.CS)

	// MEI defaults to an empty set, not a null column.
	rateMEI := stored.RateMEI.Data()
	assert.Nil(t, rateMEI.ISSQN)
	assert.Nil(t, rateMEI.INSS)

	assert.Equal(t, created.Description, stored.Description)
}

func TestRatesForRegime(t *testing.T) {
	svc := newTestRegistry(t)

	code := nextCode()
	_, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Code:        code,
		Description: "Jardinagem",
		RateSN:      &domain.RateSet{ISSQN: bp(200)},
		RateN:       &domain.RateSet{ISSQN: bp(300)},
	})
	require.NoError(t, err)

	stored, err := svc.GetByCode(context.Background(), domain.GetServiceRequest{Code: code})
	require.NoError(t, err)

	sn := stored.RatesForRegime(supplierdomain.TaxRegimeSimplesNacional)
	require.NotNil(t, sn.ISSQN)
	assert.Equal(t, int64(200), *sn.ISSQN)

	n := stored.RatesForRegime(supplierdomain.TaxRegimeNormal)
	require.NotNil(t, n.ISSQN)
	assert.Equal(t, int64(300), *n.ISSQN)

	mei := stored.RatesForRegime(supplierdomain.TaxRegimeMEI)
	assert.Nil(t, mei.ISSQN)
}

func TestCreateServiceValidation(t *testing.T) {
	svc := newTestRegistry(t)

	_, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Code: " ", Description: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.Create(context.Background(), domain.CreateServiceRequest{
		Code: nextCode(), Description: " ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)

	_, err = svc.Create(context.Background(), domain.CreateServiceRequest{
		Code: nextCode(), Description: "X",
		RateN: &domain.RateSet{ISSQN: bp(10001)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestCreateServiceDuplicate(t *testing.T) {
	svc := newTestRegistry(t)

	code := nextCode()
	req := domain.CreateServiceRequest{Code: code, Description: "Repetida"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateServiceReplacesRateSet(t *testing.T) {
	svc := newTestRegistry(t)

	code := nextCode()
	_, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Code:        code,
		Description: "Dedetizacao",
		RateN:       &domain.RateSet{ISSQN: bp(500), INSS: bp(1100)},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), domain.UpdateServiceRequest{
		Code:  code,
		RateN: &domain.RateSet{ISSQN: bp(300)},
	})
	require.NoError(t, err)

	rateN := updated.RateN.Data()
	require.NotNil(t, rateN.ISSQN)
	assert.Equal(t, int64(300), *rateN.ISSQN)
	// A present set replaces the stored one wholesale.
	assert.Nil(t, rateN.INSS)
	assert.Equal(t, "Dedetizacao", updated.Description)
}

func TestUpdateServiceNotFound(t *testing.T) {
	svc := newTestRegistry(t)

	description := "Nada"
	_, err := svc.Update(context.Background(), domain.UpdateServiceRequest{
		Code:        "INEXISTENTE",
		Description: &description,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteService(t *testing.T) {
	svc := newTestRegistry(t)

	code := nextCode()
	_, err := svc.Create(context.Background(), domain.CreateServiceRequest{
		Code: code, Description: "Descartavel",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), domain.DeleteServiceRequest{Code: code}))
	err = svc.Delete(context.Background(), domain.DeleteServiceRequest{Code: code})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
