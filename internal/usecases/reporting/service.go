package reporting

import (
	"sort"
	"time"

	"github.com/coachos/coach-os-api/infrastructure/repository"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/pkg/utils"
)

// Reporter agrega os números exibidos no dashboard e na visão financeira.
type Reporter interface {
	MonthlyRevenue(userID int) ([]domain.MonthlyRevenue, error)
	DashboardStats(userID int) (*domain.DashboardStats, error)
}

type Service struct {
	paymentRepository    repository.PaymentRepository
	clientRepository     repository.ClientRepository
	postRepository       repository.SocialPostRepository
	automationRepository repository.AutomationRepository
}

func NewService(
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	postRepo repository.SocialPostRepository,
	automationRepo repository.AutomationRepository,
) Reporter {
	return &Service{
		paymentRepository:    paymentRepo,
		clientRepository:     clientRepo,
		postRepository:       postRepo,
		automationRepository: automationRepo,
	}
}

// MonthlyRevenue monta a série mensal de receita a partir dos pagamentos
// concluídos, em ordem cronológica.
func (s *Service) MonthlyRevenue(userID int) ([]domain.MonthlyRevenue, error) {
	payments, err := s.paymentRepository.ListCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]float64)
	for _, payment := range payments {
		month := time.Date(payment.CreatedAt.Year(), payment.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += payment.Amount
	}

	months := make([]time.Time, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]domain.MonthlyRevenue, 0, len(months))
	for _, month := range months {
		series = append(series, domain.MonthlyRevenue{
			Name:  month.Format("Jan"),
			Value: utils.RoundWithTwoDecimalPlace(totals[month]),
		})
	}

	return series, nil
}

// DashboardStats calcula os contadores do topo do dashboard.
func (s *Service) DashboardStats(userID int) (*domain.DashboardStats, error) {
	clients, err := s.clientRepository.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, client := range clients {
		if client.Status == domain.ClientStatusActive {
			active++
		}
	}

	payments, err := s.paymentRepository.ListCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	revenue := 0.0
	for _, payment := range payments {
		revenue += payment.Amount
	}

	posts, err := s.postRepository.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	automations, err := s.automationRepository.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalClients:     len(clients),
		ActiveClients:    active,
		TotalRevenue:     utils.RoundWithTwoDecimalPlace(revenue),
		TotalPosts:       len(posts),
		TotalAutomations: len(automations),
	}, nil
}
