package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/gops/agent"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/config"
	"github.com/GymDesk/gymdesk/controllers/api"
	"github.com/GymDesk/gymdesk/db"
	"github.com/GymDesk/gymdesk/jobs"
	"github.com/GymDesk/gymdesk/middleware"
	"github.com/GymDesk/gymdesk/models/account"
	"github.com/GymDesk/gymdesk/models/activitylog"
)

type myRouter struct {
	httprouter.Router

	tokens   *auth.TokenService
	activity activitylog.Repository
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (mr *myRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	mr.Router.ServeHTTP(rw, r)
	log.WithFields(log.Fields{
		"method": r.Method,
		"IP":     r.RemoteAddr,
		"URI":    r.URL.Path,
		"status": rw.statusCode,
	}).Info("visit")

	mr.recordActivity(r, rw.statusCode)
}

// recordActivity appends an audit row for successful authenticated
// requests. Recording happens off the request path; a failed insert
// only logs a warning.
func (mr *myRouter) recordActivity(r *http.Request, status int) {
	if status >= http.StatusBadRequest {
		return
	}

	tokenString, err := auth.ExtractTokenFromHeader(r)
	if err != nil {
		return
	}
	claims, err := mr.tokens.ValidateToken(tokenString)
	if err != nil {
		return
	}

	action := r.Method + " " + r.URL.Path
	ip := r.RemoteAddr

	go func() {
		if err := mr.activity.Record(uuid.NewString(), claims.UserID, action, ip); err != nil {
			log.WithError(err).Warn("Activity log record failed")
		}
	}()
}

func newRouter(tokens *auth.TokenService) *myRouter {
	return &myRouter{
		Router:   *httprouter.New(),
		tokens:   tokens,
		activity: &activitylog.Postgres{},
	}
}

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(ctx); err != nil {
		cancel()
		log.WithError(err).Fatal("Database migration failed")
	}
	cancel()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	mw := auth.NewMiddleware(tokens)
	api.Configure(tokens, cfg.AdminEmail, cfg.AdminPassword)

	log.Info("Start Jobs")
	startJobs()

	router := newRouter(tokens)
	adminOnly := auth.NewAdminRouter(&router.Router, mw)
	staff := func(h httprouter.Handle) httprouter.Handle {
		return mw.Authorize(h, account.RoleAdmin, account.RoleMember)
	}

	// health check
	router.GET("/api/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"OK"}`))
	})

	// auth
	router.POST("/api/auth/register", api.Register)
	router.POST("/api/auth/login", api.Login)
	router.GET("/api/auth/profile", mw.Authenticate(api.GetProfile))
	router.PUT("/api/auth/profile", mw.Authenticate(api.UpdateProfile))
	router.POST("/api/auth/change-password", mw.Authenticate(api.ChangePassword))

	// members
	adminOnly.GET("/api/members", api.ListMembers)
	router.GET("/api/members/:id", staff(api.GetMember))
	adminOnly.POST("/api/members", api.AddMember)
	adminOnly.PUT("/api/members/:id", api.UpdateMember)
	adminOnly.DELETE("/api/members/:id", api.DeleteMember)

	// member sub-resources
	router.GET("/api/members/:id/bills", staff(api.ListMemberBills))
	router.GET("/api/members/:id/payments", staff(api.ListMemberPayments))
	router.GET("/api/members/:id/subscriptions", staff(api.ListMemberSubscriptions))
	router.GET("/api/members/:id/diets", staff(api.ListMemberDiets))

	// stats
	adminOnly.GET("/api/stats/members", api.GetMemberStats)
	adminOnly.GET("/api/stats/payments", api.GetPaymentStats)

	// bills
	adminOnly.POST("/api/bills", api.CreateBill)
	adminOnly.GET("/api/bills", api.ListBills)
	router.GET("/api/bills/:id", staff(api.GetBill))
	router.GET("/api/bills/:id/receipt", staff(api.GetBillReceipt))
	adminOnly.PATCH("/api/bills/:id/status", api.UpdateBillStatus)
	adminOnly.DELETE("/api/bills/:id", api.DeleteBill)

	// payments
	adminOnly.POST("/api/payments", api.CreatePayment)
	adminOnly.GET("/api/payments", api.ListPayments)
	router.GET("/api/payments/:id", staff(api.GetPayment))

	// fee packages
	router.GET("/api/fee-packages", staff(api.ListFeePackages))
	adminOnly.POST("/api/fee-packages", api.CreateFeePackage)
	adminOnly.PUT("/api/fee-packages/:id", api.UpdateFeePackage)
	adminOnly.DELETE("/api/fee-packages/:id", api.DeleteFeePackage)

	// subscriptions
	adminOnly.POST("/api/subscriptions", api.AssignSubscription)

	// notifications
	adminOnly.POST("/api/notifications", api.CreateNotification)
	router.GET("/api/notifications/user/:userId", staff(api.ListUserNotifications))
	router.GET("/api/notifications/user/:userId/unread-count", staff(api.GetUnreadCount))
	router.PATCH("/api/notifications/:id/read", staff(api.MarkNotificationRead))
	adminOnly.POST("/api/notifications/seed/monthly", api.SeedMonthlyReminders)

	// store
	router.GET("/api/store", staff(api.ListSupplements))
	router.GET("/api/store/:id", staff(api.GetSupplement))
	adminOnly.POST("/api/store", api.CreateSupplement)
	adminOnly.PUT("/api/store/:id", api.UpdateSupplement)
	adminOnly.DELETE("/api/store/:id", api.DeleteSupplement)

	// diets
	adminOnly.GET("/api/diets", api.ListDiets)
	router.GET("/api/diets/:id", staff(api.GetDiet))
	adminOnly.POST("/api/diets", api.CreateDiet)
	adminOnly.PUT("/api/diets/:id", api.UpdateDiet)
	adminOnly.DELETE("/api/diets/:id", api.DeleteDiet)

	// reports
	adminOnly.GET("/api/reports/bills", api.ExportBillsReport)

	// gops agent
	if err := agent.Listen(agent.Options{Addr: ":6060", ShutdownCleanup: true}); err != nil {
		log.Fatal(err)
	}

	// Web Server
	log.Info("Web Server Start on Port " + cfg.Port)
	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.CORS(router),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal("ListenAndServer", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("Shutdown Web Server...")
	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.WithError(err).Fatal("Web Server Showdown Failed")
	}
	log.Info("Web Server Was Been Shutdown")
}

func startJobs() {
	c := cron.New()
	c.AddJob("@monthly", jobs.NewFeeReminder())
	c.Start()
}
