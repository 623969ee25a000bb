package handler

import (
	"net/http"

	"github.com/vfg2006/phone-retail-admin-api/internal/api/handler/router"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/backup"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/simulating"
	"github.com/vfg2006/phone-retail-admin-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func allRoles() middlewares {
	return middlewares{middleware.AllRoles()}
}

func withPermission(p domain.Permission) middlewares {
	return middlewares{middleware.AllRoles(), middleware.RequirePermission(p)}
}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: allRoles(),
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: withPermission(domain.PermissionUsersManage),
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: withPermission(domain.PermissionUsersManage),
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: allRoles(),
		},
	}
}

func Stores(service catalog.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stores",
			Method:      http.MethodGet,
			Handler:     ListStores(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/stores",
			Method:      http.MethodPost,
			Handler:     CreateStore(service),
			Middlewares: withPermission(domain.PermissionStoresManage),
		},
		{
			Path:        "/v1/stores/:id",
			Method:      http.MethodPut,
			Handler:     UpdateStore(service),
			Middlewares: withPermission(domain.PermissionStoresManage),
		},
	}
}

func Catalog(service catalog.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/categories",
			Method:      http.MethodGet,
			Handler:     ListCategories(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/categories",
			Method:      http.MethodPost,
			Handler:     CreateCategory(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/categories/:id/subcategories",
			Method:      http.MethodGet,
			Handler:     ListSubcategories(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/categories/:id/subcategories",
			Method:      http.MethodPost,
			Handler:     CreateSubcategory(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/models",
			Method:      http.MethodGet,
			Handler:     ListPhoneModels(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/models",
			Method:      http.MethodPost,
			Handler:     CreatePhoneModel(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/models/:id",
			Method:      http.MethodGet,
			Handler:     GetPhoneModel(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/models/:id",
			Method:      http.MethodPut,
			Handler:     UpdatePhoneModel(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/models/:id",
			Method:      http.MethodDelete,
			Handler:     DeletePhoneModel(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/models/:id/toggle",
			Method:      http.MethodPost,
			Handler:     TogglePhoneModel(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/trade-ins",
			Method:      http.MethodGet,
			Handler:     ListTradeInDevices(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/trade-ins",
			Method:      http.MethodPost,
			Handler:     CreateTradeInDevice(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/trade-ins/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTradeInDevice(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/damage-types",
			Method:      http.MethodGet,
			Handler:     ListDamageTypes(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/damage-types",
			Method:      http.MethodPost,
			Handler:     CreateDamageType(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/damage-types/:id",
			Method:      http.MethodPut,
			Handler:     UpdateDamageType(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/damage-types/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDamageType(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/damage-matrix",
			Method:      http.MethodGet,
			Handler:     ListDamageMatrix(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/card-machines",
			Method:      http.MethodGet,
			Handler:     ListCardMachines(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/card-machines",
			Method:      http.MethodPost,
			Handler:     CreateCardMachine(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
		{
			Path:        "/v1/card-machines/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCardMachine(service),
			Middlewares: withPermission(domain.PermissionCatalogWrite),
		},
	}
}

func Prices(service adjusting.Adjuster) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/prices",
			Method:      http.MethodGet,
			Handler:     ListPriceCells(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/prices",
			Method:      http.MethodPut,
			Handler:     UpdatePriceCell(service),
			Middlewares: withPermission(domain.PermissionPricesWrite),
		},
		{
			Path:        "/v1/prices/history",
			Method:      http.MethodGet,
			Handler:     GetPriceHistory(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/prices/copy",
			Method:      http.MethodPost,
			Handler:     CopyPrices(service),
			Middlewares: withPermission(domain.PermissionPricesBulk),
		},
	}
}

func BulkSessions(service adjusting.Adjuster) []router.Route {
	bulk := withPermission(domain.PermissionPricesBulk)

	return []router.Route{
		{
			Path:        "/v1/bulk-sessions",
			Method:      http.MethodPost,
			Handler:     CreateBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id",
			Method:      http.MethodGet,
			Handler:     GetBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id",
			Method:      http.MethodDelete,
			Handler:     DismissBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/items",
			Method:      http.MethodGet,
			Handler:     GetBulkSessionItems(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/configure",
			Method:      http.MethodPut,
			Handler:     ConfigureBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/selection",
			Method:      http.MethodPut,
			Handler:     UpdateBulkSelection(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/preview",
			Method:      http.MethodPost,
			Handler:     PreviewBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/apply",
			Method:      http.MethodPost,
			Handler:     ApplyBulkSession(service),
			Middlewares: bulk,
		},
		{
			Path:        "/v1/bulk-sessions/:id/apply-custom",
			Method:      http.MethodPost,
			Handler:     ApplyCustomBulkSession(service),
			Middlewares: bulk,
		},
	}
}

func Backup(service backup.Backuper) []router.Route {
	manage := withPermission(domain.PermissionBackupManage)

	return []router.Route{
		{
			Path:        "/v1/backup/export",
			Method:      http.MethodGet,
			Handler:     ExportBackup(service),
			Middlewares: manage,
		},
		{
			Path:        "/v1/backup/validate",
			Method:      http.MethodPost,
			Handler:     ValidateBackup(service),
			Middlewares: manage,
		},
		{
			Path:        "/v1/backup/import",
			Method:      http.MethodPost,
			Handler:     ImportBackup(service),
			Middlewares: manage,
		},
	}
}

func Preferences(service preferences.Preferencer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/preferences",
			Method:      http.MethodGet,
			Handler:     GetPreferences(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me/preferences",
			Method:      http.MethodPut,
			Handler:     UpdatePreferences(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me/preferences/events",
			Method:      http.MethodGet,
			Handler:     StreamPreferenceEvents(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me/recent-searches/:scope",
			Method:      http.MethodGet,
			Handler:     GetRecentSearches(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me/recent-searches/:scope",
			Method:      http.MethodPost,
			Handler:     AddRecentSearch(service),
			Middlewares: allRoles(),
		},
		{
			Path:        "/v1/me/recent-searches/:scope",
			Method:      http.MethodDelete,
			Handler:     ClearRecentSearches(service),
			Middlewares: allRoles(),
		},
	}
}

func Simulation(service simulating.Simulator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/simulations",
			Method:      http.MethodPost,
			Handler:     Simulate(service),
			Middlewares: allRoles(),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
	}
}
