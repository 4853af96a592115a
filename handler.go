package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/ledger"
	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/store"
	"lg/smartbite-go-api/internal/vision"
)

// singleUserID is the user every request acts as when no database is
// configured.
const singleUserID = 1

// Handler holds shared dependencies (db pool, kv store, estimator) for all
// route handlers.
type Handler struct {
	db        *pgxpool.Pool // nil in single-user mode
	kv        store.KV
	estimator vision.Estimator
	locks     userLocks
}

// newHandler wires the storage backend and estimator selected by cfg. The
// returned func releases whatever was opened.
func newHandler(ctx context.Context, cfg config) (*Handler, func(), error) {
	h := &Handler{
		estimator: vision.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
	}
	cleanup := func() {}

	if cfg.DBURL != "" {
		pool, err := store.OpenPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		h.db = pool
		cleanup = pool.Close
	}

	switch cfg.Store {
	case storePostgres:
		h.kv = store.NewPostgres(h.db)
	case storeSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		h.kv = s
		prev := cleanup
		cleanup = func() { s.Close(); prev() }
	default:
		h.kv = store.NewMemory()
	}
	return h, cleanup, nil
}

/* ─── Per-user sessions ───────────────────────────────────────────────── */

// userLocks serialises requests per user so each session mutation is
// applied against the state it was loaded from.
type userLocks struct {
	m sync.Map // int -> *sync.Mutex
}

func (l *userLocks) lock(userID int) func() {
	v, _ := l.m.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// withSession loads the caller's session under their lock and hands it to fn.
func (h *Handler) withSession(c *gin.Context, fn func(s *session.Session)) {
	userID := c.GetInt("user_id")
	unlock := h.locks.lock(userID)
	defer unlock()

	kv := store.WithPrefix(h.kv, fmt.Sprintf("user/%d/", userID))
	s, err := session.Load(c.Request.Context(), kv)
	if err != nil {
		log.Printf("[session] load user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to load session")
		return
	}
	fn(s)
}

// sessionError maps a session/core error onto an HTTP response. Anything
// unrecognised is logged and reported as a 500 with fallback.
func sessionError(c *gin.Context, err error, fallback string) {
	var profileErr *energy.ValidationError
	var mealErr *ledger.ValidationError
	switch {
	case errors.Is(err, vision.ErrEstimationUnavailable):
		log.Printf("[estimate] %v", err)
		apiError(c, http.StatusBadGateway, "calorie estimation unavailable")
	case errors.As(err, &profileErr), errors.As(err, &mealErr):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoProfile):
		apiError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[session] %s: %v", fallback, err)
		apiError(c, http.StatusInternalServerError, fallback)
	}
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router. Without a database
// there is no login and every request runs as singleUserID.
func (h *Handler) registerRoutes(router *gin.Engine) {
	auth := singleUser()
	if h.db != nil {
		// Public routes
		router.POST("/api/login", h.login)
		auth = h.authMiddleware()
	}

	// Authenticated routes
	api := router.Group("/api", auth)
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.PATCH("/profile/goal", h.patchGoal)
	api.GET("/meals", h.getMeals)
	api.POST("/meals", h.createMeal)
	api.POST("/meals/estimate", h.estimateMeal)
	api.DELETE("/meals/:id", h.deleteMeal)
	api.GET("/summary", h.getSummary)
	api.GET("/images/:ref", h.getImage)
}
