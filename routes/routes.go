package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"masterblog/app/controllers"
	"masterblog/app/middleware"
	"masterblog/app/services"
	"masterblog/app/storage"
	"masterblog/config"
)

// SetupRoutes wires the services, controllers and middleware into the
// application handler. CORS wraps the router from outside so preflight
// requests are answered even when no route matches them.
func SetupRoutes(cfg *config.Config, store storage.Store, log *logrus.Logger) (http.Handler, error) {
	postService := services.NewPostService(store)
	commentService := services.NewCommentService(postService)
	authService := services.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL)

	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	authController := controllers.NewAuthController(authService)

	apiLimit, err := middleware.RateLimit(cfg.RateLimit, cfg.RateBurst)
	if err != nil {
		return nil, err
	}
	authLimit, err := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst)
	if err != nil {
		return nil, err
	}
	requireAuth := middleware.AuthRequired(authService)

	router := mux.NewRouter()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(apiLimit)

	// Registration and login get a tighter limit on top of the global one.
	api.Handle("/register", authLimit(http.HandlerFunc(authController.Register))).Methods("POST")
	api.Handle("/login", authLimit(http.HandlerFunc(authController.Login))).Methods("POST")

	posts := api.PathPrefix("/posts").Subrouter()

	// Read endpoints are anonymous.
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/search", postController.Search).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")

	// Mutations require a bearer token.
	posts.Handle("", requireAuth(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.Handle("/{id:[0-9]+}", requireAuth(http.HandlerFunc(postController.Update))).Methods("PUT")
	posts.Handle("/{id:[0-9]+}", requireAuth(http.HandlerFunc(postController.Delete))).Methods("DELETE")
	posts.Handle("/{postId:[0-9]+}/comments", requireAuth(http.HandlerFunc(commentController.Create))).Methods("POST")
	posts.Handle("/{postId:[0-9]+}/comments/{commentId:[0-9]+}",
		requireAuth(http.HandlerFunc(commentController.Delete))).Methods("DELETE")

	// The static frontend page.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	return middleware.CORS()(router), nil
}
