package handler

import (
	"net/http"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// ListStores lista as lojas ativas; include_inactive=true traz todas
func ListStores(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := service.ListStores(r.Context(), queryBool(r, "include_inactive"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, stores)
	}
}

func CreateStore(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateStore")

		var req domain.CreateStoreRequest
		if !decodeBody(w, r, &req) {
			return
		}

		store, err := service.CreateStore(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, store)
	}
}

func UpdateStore(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateStore")

		var req domain.UpdateStoreRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		store, err := service.UpdateStore(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, store)
	}
}

func ListCategories(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.ListCategories(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, categories)
	}
}

func CreateCategory(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		category, err := service.CreateCategory(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, category)
	}
}

func ListSubcategories(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subcategories, err := service.ListSubcategories(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, subcategories)
	}
}

func CreateSubcategory(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateSubcategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.CategoryID = pathParam(r, "id")

		subcategory, err := service.CreateSubcategory(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, subcategory)
	}
}

// ListPhoneModels lista os modelos filtrados por q, category_id e status, paginados
func ListPhoneModels(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := service.ListPhoneModels(r.Context(), selectionFilter(r))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, selecting.Paginate(models, queryInt(r, "page"), queryInt(r, "page_size")))
	}
}

func GetPhoneModel(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model, err := service.GetPhoneModel(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, model)
	}
}

func CreatePhoneModel(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreatePhoneModel")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.CreatePhoneModelRequest
		if !decodeBody(w, r, &req) {
			return
		}

		model, err := service.CreatePhoneModel(r.Context(), userClaims, &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, model)
	}
}

func UpdatePhoneModel(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdatePhoneModelRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		model, err := service.UpdatePhoneModel(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, model)
	}
}

func TogglePhoneModel(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.TogglePhoneModel(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeletePhoneModel(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeletePhoneModel(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListTradeInDevices(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devices, err := service.ListTradeInDevices(r.Context(), selectionFilter(r))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, selecting.Paginate(devices, queryInt(r, "page"), queryInt(r, "page_size")))
	}
}

func CreateTradeInDevice(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateTradeInDevice")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.CreateTradeInDeviceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		device, err := service.CreateTradeInDevice(r.Context(), userClaims, &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, device)
	}
}

func UpdateTradeInDevice(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateTradeInDeviceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		device, err := service.UpdateTradeInDevice(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, device)
	}
}

func ListDamageTypes(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		damageTypes, err := service.ListDamageTypes(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, damageTypes)
	}
}

func CreateDamageType(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateDamageTypeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		damageType, err := service.CreateDamageType(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, damageType)
	}
}

func UpdateDamageType(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateDamageTypeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		if err := service.UpdateDamageType(r.Context(), &req); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteDamageType(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteDamageType(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListDamageMatrix(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := service.ListDamageMatrix(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, rows)
	}
}

func ListCardMachines(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		machines, err := service.ListCardMachines(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, machines)
	}
}

func CreateCardMachine(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateCardMachineRequest
		if !decodeBody(w, r, &req) {
			return
		}

		machine, err := service.CreateCardMachine(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, machine)
	}
}

func UpdateCardMachine(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateCardMachineRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		machine, err := service.UpdateCardMachine(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, machine)
	}
}
