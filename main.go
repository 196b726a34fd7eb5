package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"campus-events-backend/api"
	"campus-events-backend/db"
	hAnnounce "campus-events-backend/handlers/announcements"
	hAuth "campus-events-backend/handlers/auth"
	hEvents "campus-events-backend/handlers/events"
	"campus-events-backend/handlers/health"
	hRecruit "campus-events-backend/handlers/recruitments"
	hRequests "campus-events-backend/handlers/requests"
	hUsers "campus-events-backend/handlers/users"
	mw "campus-events-backend/middleware"
	"campus-events-backend/models"
	"campus-events-backend/store"
)

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	pool := db.MustPool()
	defer pool.Close()
	st := store.NewPostgres(pool)

	app := fiber.New(fiber.Config{ErrorHandler: api.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Get("/healthz", health.Health())

	// Authentication and role guards
	authn := mw.Authenticate(st)
	requireAdmin := mw.RequireRole(models.UserRoleAdmin)
	requireStaff := mw.RequireRole(models.UserRoleFaculty, models.UserRoleAdmin)
	requireStudent := mw.RequireRole(models.UserRoleStudent)

	root := app.Group("/api")

	hAuth.Register(root.Group("/auth"), st)
	hUsers.Register(root.Group("/users"), authn)
	hUsers.RegisterAdmin(root.Group("/admin/users"), st, authn, requireAdmin)
	hEvents.Register(root.Group("/events"), st, authn, requireStaff, requireAdmin, requireStudent)
	hAnnounce.Register(root.Group("/announcements"), st, authn, requireStaff, requireAdmin)
	hRequests.Register(root.Group("/event-requests"), st, authn, requireStudent, requireStaff)
	hRecruit.Register(root.Group("/recruitments"), st, authn, requireStudent, requireStaff, requireAdmin)

	log.Printf("listening on %s", addr)
	log.Fatal(app.Listen(addr))
}
