package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/internal/usecases/reporting"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

// GetMonthlyRevenue devolve a série mensal de receita do dashboard.
func GetMonthlyRevenue(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(w, r)
		if !ok {
			return
		}

		series, err := service.MonthlyRevenue(userID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular a receita mensal", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(series)
	}
}

// GetDashboardStats devolve os contadores agregados do dashboard.
func GetDashboardStats(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(w, r)
		if !ok {
			return
		}

		stats, err := service.DashboardStats(userID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular os indicadores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}
