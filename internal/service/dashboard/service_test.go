package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

type fixedCount struct {
	n   int
	err error
}

func (f fixedCount) Count(context.Context) (int, error) { return f.n, f.err }

type fixedBookings struct {
	fixedCount
	pending int
}

func (f fixedBookings) CountPending(context.Context) (int, error) { return f.pending, nil }

func TestSummary(t *testing.T) {
	svc := NewService(fixedBookings{fixedCount{n: 12}, 3}, fixedCount{n: 4}, fixedCount{n: 9}, fixedCount{n: 11})

	d, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.Dashboard{
		TotalBookings:   12,
		PendingBookings: 3,
		TotalBlogs:      4,
		TotalImages:     9,
		TotalServices:   11,
	}, d)
}

func TestSummaryStoreFailure(t *testing.T) {
	svc := NewService(fixedBookings{}, fixedCount{}, fixedCount{err: errors.New("db down")}, fixedCount{})

	_, err := svc.Summary(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrStore))
}
