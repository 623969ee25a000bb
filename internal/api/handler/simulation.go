package handler

import (
	"net/http"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/simulating"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
)

// Simulate calcula o valor líquido e as opções de parcelamento de uma venda
func Simulate(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SimulationRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := service.Simulate(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
