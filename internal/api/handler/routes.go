package handler

import (
	"net/http"

	"github.com/coachos/coach-os-api/internal/api/handler/router"
	"github.com/coachos/coach-os-api/internal/usecases/authenticating"
	"github.com/coachos/coach-os-api/internal/usecases/reporting"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator, registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: SignUp(service),
		},
		{
			Path:    "/v1/signin",
			Method:  http.MethodPost,
			Handler: SignIn(service, registry),
		},
		{
			Path:    "/v1/signout",
			Method:  http.MethodPost,
			Handler: SignOut(registry),
		},
		{
			Path:    "/v1/confirm",
			Method:  http.MethodPost,
			Handler: Confirm(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodPut,
			Handler: UpdateProfile(service),
		},
		{
			Path:    "/v1/me/change-password",
			Method:  http.MethodPost,
			Handler: ChangePassword(service),
		},
	}
}

func Project(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/project",
			Method:  http.MethodGet,
			Handler: GetProject(registry),
		},
		{
			Path:    "/v1/project/reload",
			Method:  http.MethodPost,
			Handler: ReloadProject(registry),
		},
		{
			Path:    "/v1/notifications",
			Method:  http.MethodGet,
			Handler: GetNotifications(registry),
		},
	}
}

func Onboarding(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/onboarding/generate",
			Method:  http.MethodPost,
			Handler: GenerateBlueprint(registry),
		},
		{
			Path:    "/v1/onboarding/complete",
			Method:  http.MethodPost,
			Handler: CompleteOnboarding(registry),
		},
	}
}

func Clients(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clients",
			Method:  http.MethodGet,
			Handler: ListClients(registry),
		},
		{
			Path:    "/v1/clients",
			Method:  http.MethodPost,
			Handler: CreateClient(registry),
		},
		{
			Path:    "/v1/clients/:id",
			Method:  http.MethodPut,
			Handler: UpdateClient(registry),
		},
		{
			Path:    "/v1/clients/:id",
			Method:  http.MethodDelete,
			Handler: DeleteClient(registry),
		},
		{
			Path:    "/v1/leads",
			Method:  http.MethodPost,
			Handler: CaptureLead(registry),
		},
	}
}

func Blueprint(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/blueprint",
			Method:  http.MethodGet,
			Handler: GetBlueprint(registry),
		},
		{
			Path:    "/v1/blueprint",
			Method:  http.MethodPut,
			Handler: UpdateBlueprint(registry),
		},
	}
}

func Content(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/posts",
			Method:  http.MethodGet,
			Handler: ListPosts(registry),
		},
		{
			Path:    "/v1/posts",
			Method:  http.MethodPost,
			Handler: CreatePost(registry),
		},
		{
			Path:    "/v1/posts/:id",
			Method:  http.MethodPut,
			Handler: UpdatePost(registry),
		},
		{
			Path:    "/v1/posts/:id",
			Method:  http.MethodDelete,
			Handler: DeletePost(registry),
		},
		{
			Path:    "/v1/content-plan",
			Method:  http.MethodPut,
			Handler: ReplaceContentPlan(registry),
		},
		{
			Path:    "/v1/content-plan/regenerate",
			Method:  http.MethodPost,
			Handler: RegenerateContent(registry),
		},
	}
}

func Automations(registry *syncing.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/automations",
			Method:  http.MethodGet,
			Handler: ListAutomations(registry),
		},
		{
			Path:    "/v1/automations",
			Method:  http.MethodPost,
			Handler: CreateAutomation(registry),
		},
		{
			Path:    "/v1/automations/:id/toggle",
			Method:  http.MethodPost,
			Handler: ToggleAutomation(registry),
		},
	}
}

func Analytics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/revenue",
			Method:  http.MethodGet,
			Handler: GetMonthlyRevenue(service),
		},
		{
			Path:    "/v1/analytics/stats",
			Method:  http.MethodGet,
			Handler: GetDashboardStats(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
