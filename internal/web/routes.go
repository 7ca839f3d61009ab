// internal/web/routes.go
package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"garmin-dashboard/internal/database"
	"garmin-dashboard/internal/garmin"
	"garmin-dashboard/internal/sync"
)

// Result limits mirror the original service: the login flow returns the
// freshest slice, the read-only endpoint a slightly deeper one.
const (
	loginFetchLimit = 10
	getDataLimit    = 20
)

type Handler struct {
	db     *database.SQLiteDB
	syncer *sync.Service
}

func NewHandler(db *database.SQLiteDB, syncer *sync.Service) *Handler {
	return &Handler{
		db:     db,
		syncer: syncer,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.POST("/login-and-fetch", h.LoginAndFetch)
	router.GET("/get-data", h.GetData)
	router.GET("/activities", h.Activities)
	router.GET("/health", h.Health)
}

// Index renders the dashboard page with the current store contents.
func (h *Handler) Index(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		log.Printf("index: stats query failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	activities, err := h.db.RecentActivities(getDataLimit)
	if err != nil {
		log.Printf("index: activities query failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Stats":      stats,
		"Activities": activities,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginAndFetch authenticates against Garmin with the posted credentials,
// runs one sync pass and returns the freshest activities. Credentials live
// only for the duration of the request.
func (h *Handler) LoginAndFetch(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. JSON data required."})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	if err := h.syncer.LoginAndSync(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, garmin.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Garmin username or password."})
			return
		}
		log.Printf("login-and-fetch: sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync data with Garmin. Check server logs for details."})
		return
	}

	activities, err := h.db.RecentActivities(loginFetchLimit)
	if err != nil {
		log.Printf("login-and-fetch: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred after sync attempt. Check server logs."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"activities": toPayload(activities),
	})
}

// GetData returns whatever the store currently holds, without touching Garmin.
func (h *Handler) GetData(c *gin.Context) {
	activities, err := h.db.RecentActivities(getDataLimit)
	if err != nil {
		log.Printf("get-data: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred reading data. Check server logs."})
		return
	}

	resp := gin.H{"activities": toPayload(activities)}
	if len(activities) == 0 {
		resp["message"] = "No data found. Please login and sync first."
	}
	c.JSON(http.StatusOK, resp)
}

// Activities is the paginated JSON listing with the full record shape.
func (h *Handler) Activities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	activities, err := h.db.ListActivities(limit, offset)
	if err != nil {
		log.Printf("activities: query failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []database.Activity{}
	}

	c.JSON(http.StatusOK, activities)
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
