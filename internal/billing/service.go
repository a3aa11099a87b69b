// Package billing contains handlers, services and structures used to settle
// the charges of a visit at departure.
package billing

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-desk/internal/auth"
	"clinic-desk/internal/database"
)

// Settler determines the methods available to settle visits.
type Settler interface {

	// SettleVisit records a paid billing for a visit and moves the visit to
	// departed, both inside one transaction. Settling a visit that already
	// departed is rejected.
	SettleVisit(ctx context.Context, user auth.User, settlement SettlementRequest) (*SettlementResult, error)
}

// Service determines the methods used to manage billing.
type Service interface {
	Settler
}

type defaultService struct {
	repository Repository
	dbConn     database.Connection
}

// NewService creates a new billing service.
func NewService(dbConn database.Connection) Service {
	return &defaultService{
		dbConn:     dbConn,
		repository: newRepository(),
	}
}

func (d defaultService) SettleVisit(ctx context.Context, user auth.User, settlement SettlementRequest) (*SettlementResult, error) {
	if err := settlement.Validate(); err != nil {
		return nil, err
	}
	selfFee := settlement.TotalFee - settlement.InsuranceFee
	var billID int64
	err := database.WithinTransaction(ctx, d.dbConn, func(ctx context.Context, tx *sql.Tx) error {
		status, err := d.repository.FindVisitStatus(ctx, tx, settlement.VisitID)
		if err != nil {
			return err
		}
		if status == nil {
			return ErrVisitNotFound
		}
		if *status == "departed" {
			return ErrVisitAlreadySettled
		}
		billID, err = d.repository.InsertBilling(ctx, tx, settlement, selfFee, user.EmpID)
		if err != nil {
			return err
		}
		return d.repository.MarkVisitDeparted(ctx, tx, settlement.VisitID)
	})
	if err != nil {
		if err == ErrVisitNotFound || err == ErrVisitAlreadySettled {
			return nil, err
		}
		return nil, fmt.Errorf("an unexpected error occurred: %w", err)
	}
	return &SettlementResult{BillID: billID, SelfFee: selfFee}, nil
}
