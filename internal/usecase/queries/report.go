package queries

import (
	"context"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidReportRange = errs.New("report end date must not precede start date")

type ReportQueries interface {
	// Income aggregates completed reservations on the owner's spots over
	// [from, to], bucketed by groupBy. Rows are recomputed per query.
	Income(ctx context.Context, ownerID uuid.UUID, from, to time.Time, groupBy GroupBy) ([]*IncomeRow, error)
}

type reportQueriesImpl struct {
	store ReportReadStore
}

func NewReportQueries(store ReportReadStore) ReportQueries {
	return &reportQueriesImpl{store: store}
}

func (q *reportQueriesImpl) Income(ctx context.Context, ownerID uuid.UUID, from, to time.Time, groupBy GroupBy) ([]*IncomeRow, error) {
	if to.Before(from) {
		return nil, ErrInvalidReportRange
	}
	if !groupBy.IsValid() {
		groupBy = GroupByDay
	}
	return q.store.IncomeByOwner(ctx, ownerID, from, to, groupBy)
}
