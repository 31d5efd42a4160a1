package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coachos/coach-os-api/infrastructure/repository/mocks"
	"github.com/coachos/coach-os-api/internal/domain"
)

type reporterMocks struct {
	payments    *mocks.MockPaymentRepository
	clients     *mocks.MockClientRepository
	posts       *mocks.MockSocialPostRepository
	automations *mocks.MockAutomationRepository
}

func newTestReporter(t *testing.T) (Reporter, reporterMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := reporterMocks{
		payments:    mocks.NewMockPaymentRepository(ctrl),
		clients:     mocks.NewMockClientRepository(ctrl),
		posts:       mocks.NewMockSocialPostRepository(ctrl),
		automations: mocks.NewMockAutomationRepository(ctrl),
	}

	return NewService(m.payments, m.clients, m.posts, m.automations), m
}

func TestService_MonthlyRevenue(t *testing.T) {
	t.Run("Pagamentos são agrupados por mês em ordem cronológica", func(t *testing.T) {
		reporter, m := newTestReporter(t)

		m.payments.EXPECT().ListCompletedByUser(1).Return([]domain.Payment{
			{Amount: 297.0, CreatedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
			{Amount: 97.5, CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{Amount: 97.0, CreatedAt: time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)},
			{Amount: 297.0, CreatedAt: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)},
		}, nil)

		series, err := reporter.MonthlyRevenue(1)
		require.NoError(t, err)

		require.Len(t, series, 3)
		assert.Equal(t, domain.MonthlyRevenue{Name: "Jan", Value: 194.5}, series[0])
		assert.Equal(t, domain.MonthlyRevenue{Name: "Feb", Value: 297.0}, series[1])
		assert.Equal(t, domain.MonthlyRevenue{Name: "Mar", Value: 297.0}, series[2])
	})

	t.Run("Sem pagamentos a série é vazia", func(t *testing.T) {
		reporter, m := newTestReporter(t)

		m.payments.EXPECT().ListCompletedByUser(1).Return(nil, nil)

		series, err := reporter.MonthlyRevenue(1)
		require.NoError(t, err)
		assert.Empty(t, series)
	})

	t.Run("Falha do repositório é propagada", func(t *testing.T) {
		reporter, m := newTestReporter(t)

		m.payments.EXPECT().ListCompletedByUser(1).Return(nil, assert.AnError)

		_, err := reporter.MonthlyRevenue(1)
		assert.Error(t, err)
	})
}

func TestService_DashboardStats(t *testing.T) {
	reporter, m := newTestReporter(t)

	m.clients.EXPECT().ListByUser(1).Return([]domain.Client{
		{ID: "c1", Status: domain.ClientStatusActive},
		{ID: "c2", Status: domain.ClientStatusActive},
		{ID: "c3", Status: domain.ClientStatusLead},
		{ID: "c4", Status: domain.ClientStatusChurned},
	}, nil)
	m.payments.EXPECT().ListCompletedByUser(1).Return([]domain.Payment{
		{Amount: 97.0},
		{Amount: 297.0},
	}, nil)
	m.posts.EXPECT().ListByUser(1).Return([]domain.SocialPost{{ID: "p1"}}, nil)
	m.automations.EXPECT().ListByUser(1).Return([]domain.Automation{{ID: "a1"}, {ID: "a2"}}, nil)

	stats, err := reporter.DashboardStats(1)
	require.NoError(t, err)

	assert.Equal(t, &domain.DashboardStats{
		TotalClients:     4,
		ActiveClients:    2,
		TotalRevenue:     394.0,
		TotalPosts:       1,
		TotalAutomations: 2,
	}, stats)
}
