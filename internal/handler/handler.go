package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/config"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 分享出去的日历不需要登录，凭令牌访问
	h.Mux.Route("/shared/{token}", func(r chi.Router) {
		r.Get("/calendar", h.GetSharedCalendar)
		r.Post("/study-record", h.SaveSharedStudyRecord)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/", h.UpdateMyProfile)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/planner", func(r chi.Router) {
			r.Use(h.myInfo)

			r.Route("/vacation", func(r chi.Router) {
				r.Get("/", h.GetVacation)
				r.Put("/", h.SetVacation)
				r.Delete("/", h.DeleteVacation)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.GetSchedules)
				r.Post("/", h.CreateSchedule)
				r.Patch("/{id}", h.UpdateSchedule)
				r.Delete("/{id}", h.DeleteSchedule)
			})

			r.Get("/calendar", h.GetCalendar)

			r.Route("/study-records", func(r chi.Router) {
				r.Put("/", h.SaveStudyRecord)
				r.Delete("/", h.DeleteStudyRecord)
			})

			r.Post("/completions/toggle", h.ToggleCompletion)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/daily", h.GetDailyStats)
				r.Get("/weekly", h.GetWeeklyStats)
				r.Get("/elapsed", h.GetElapsedStats)
			})
		})

		r.Route("/share", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/status", h.GetShareStatus)
			r.Post("/generate", h.GenerateShareLinks)
			r.Post("/revoke", h.RevokeShareLinks)
		})
	})
}
