package service

import (
	servicedomain "github.com/artmafra/notas/internal/service/domain"
)

// Withheld amounts per tax component, in cents.
type Withholding struct {
	ISSQNCents int64
	INSSCents  int64
	CSCents    int64
	IRRFCents  int64
}

// Total returns the sum of all withheld components.
func (w Withholding) Total() int64 {
	return w.ISSQNCents + w.INSSCents + w.CSCents + w.IRRFCents
}

// CS and IRRF are only withheld when the computed tax reaches R$ 10.00.
// The comparison uses the unrounded product: valueCents × rateBp against
// 1000 cents × 10000 bp-scale.
const withholdingFloorProduct = 10_000_000

// Compute derives the withheld amounts for an invoice. Rates are in basis
// points (1% = 100 bp); a nil rate means the component does not apply.
//
//   - INSS is computed on the value net of material deductions.
//   - CS and IRRF apply only at or above the R$ 10.00 floor.
//   - ISSQN applies unconditionally.
//
// Pure function: deterministic, no I/O, safe for concurrent use.
func Compute(rates servicedomain.RateSet, valueCents, materialDeductionCents int64) Withholding {
	var w Withholding

	if rates.INSS != nil {
		base := valueCents - materialDeductionCents
		w.INSSCents = roundHalfUp(base, *rates.INSS)
	}
	if rates.CS != nil && valueCents*(*rates.CS) >= withholdingFloorProduct {
		w.CSCents = roundHalfUp(valueCents, *rates.CS)
	}
	if rates.IRRF != nil && valueCents*(*rates.IRRF) >= withholdingFloorProduct {
		w.IRRFCents = roundHalfUp(valueCents, *rates.IRRF)
	}
	if rates.ISSQN != nil {
		w.ISSQNCents = roundHalfUp(valueCents, *rates.ISSQN)
	}

	return w
}

// NetAmount returns the payable amount after withholding.
func NetAmount(valueCents int64, w Withholding) int64 {
	return valueCents - w.Total()
}

// roundHalfUp computes cents × bp / 10000 with half-up rounding in pure
// integer arithmetic.
func roundHalfUp(cents, bp int64) int64 {
	return (cents*bp + 5000) / 10000
}
