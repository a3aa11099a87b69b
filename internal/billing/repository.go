package billing

import (
	"context"
	"database/sql"
)

const (
	findVisitStatusQuery   = "SELECT status FROM visit WHERE visit_id = $1"
	insertBillingQuery     = "INSERT INTO billing (visit_id, patient_id, total_fee, insurance_fee, self_fee, payment_method, payment_status, payment_time, operator_id) VALUES ($1, $2, $3, $4, $5, $6, 'paid', NOW(), $7) RETURNING bill_id"
	markVisitDepartedQuery = "UPDATE visit SET status = 'departed' WHERE visit_id = $1"
)

// Repository provides access to billing data. All methods take the enclosing
// transaction, since settlement reads and writes must commit together.
type Repository interface {

	// FindVisitStatus returns the status of the given visit, or nil when it does not exist.
	FindVisitStatus(ctx context.Context, tx *sql.Tx, visitID int64) (*string, error)

	// InsertBilling inserts a paid billing record and returns its identifier.
	InsertBilling(ctx context.Context, tx *sql.Tx, settlement SettlementRequest, selfFee float64, operatorID *int64) (int64, error)

	// MarkVisitDeparted moves the given visit to the departed status.
	MarkVisitDeparted(ctx context.Context, tx *sql.Tx, visitID int64) error
}

type defaultRepository struct {
}

// newRepository creates a new Repository.
func newRepository() Repository {
	return &defaultRepository{}
}

func (d defaultRepository) FindVisitStatus(ctx context.Context, tx *sql.Tx, visitID int64) (*string, error) {
	params := make([]interface{}, 1)
	params[0] = visitID
	var status string
	if err := tx.QueryRowContext(ctx, findVisitStatusQuery, params...).Scan(&status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (d defaultRepository) InsertBilling(ctx context.Context, tx *sql.Tx, settlement SettlementRequest, selfFee float64, operatorID *int64) (int64, error) {
	params := make([]interface{}, 7)
	params[0] = settlement.VisitID
	params[1] = settlement.PatientID
	params[2] = settlement.TotalFee
	params[3] = settlement.InsuranceFee
	params[4] = selfFee
	params[5] = settlement.PaymentMethod
	params[6] = operatorID
	var billID int64
	if err := tx.QueryRowContext(ctx, insertBillingQuery, params...).Scan(&billID); err != nil {
		return 0, err
	}
	return billID, nil
}

func (d defaultRepository) MarkVisitDeparted(ctx context.Context, tx *sql.Tx, visitID int64) error {
	params := make([]interface{}, 1)
	params[0] = visitID
	_, err := tx.ExecContext(ctx, markVisitDepartedQuery, params...)
	return err
}
