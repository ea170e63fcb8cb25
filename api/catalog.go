// Package api exposes the catalog facade over HTTP. Handlers extract
// Basic-auth credentials, path filters and request bodies, hand them to
// the facade and map typed failures onto status codes.
package api

import (
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/service/catalog"
)

// CatalogHandler serves the same operations through two facades: one over
// parameterized repositories and one over the deliberately concatenated
// variants, kept side by side to demonstrate the contrast.
type CatalogHandler struct {
	safe   catalog.UseCase
	unsafe catalog.UseCase
}

func NewCatalogHandler(safe, unsafe catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{safe: safe, unsafe: unsafe}
}

func (h *CatalogHandler) Register(router *gin.Engine) {
	cfg := router.Group("/config")
	cfg.POST("/users/safe", h.insertUser(h.safe))
	cfg.POST("/users/unsafe", h.insertUser(h.unsafe))
	cfg.GET("/users", h.listUsers)
	cfg.POST("/pairs/safe", h.insertPair)
	cfg.GET("/pairs", h.listPairs)
	cfg.GET("/pairs/safe/:filter", h.getPair)
	cfg.GET("/pairs/unsafe/*filter", h.findPairs)

	router.GET("/flights", h.getFlights)
	router.POST("/flights/generate", h.generateFlights)
}

var safeFilterPattern = regexp.MustCompile(`^[A-Z]{3}-[A-Z]{3}$`)

func (h *CatalogHandler) insertUser(service catalog.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, body, ok := requestInput(c)
		if !ok {
			return
		}
		payload, err := service.InsertUser(c.Request.Context(), creds, body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusCreated, "application/json", []byte(payload))
	}
}

func (h *CatalogHandler) listUsers(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	payload, err := h.safe.ListUsers(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

func (h *CatalogHandler) insertPair(c *gin.Context) {
	creds, body, ok := requestInput(c)
	if !ok {
		return
	}
	payload, err := h.safe.InsertPair(c.Request.Context(), creds, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", []byte(payload))
}

func (h *CatalogHandler) listPairs(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	payload, err := h.safe.ListPairs(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

func (h *CatalogHandler) getPair(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	filter := c.Param("filter")
	if !safeFilterPattern.MatchString(filter) {
		writeError(c, domain.BadRequest("filter must look like SOF-LON"))
		return
	}
	origin, destination, _ := strings.Cut(filter, "-")

	payload, err := h.safe.GetPair(c.Request.Context(), creds, origin, destination)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

// findPairs deliberately skips filter validation; whatever follows the
// first dash goes into the concatenated lookup as-is.
func (h *CatalogHandler) findPairs(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	filter := strings.TrimPrefix(c.Param("filter"), "/")
	origin, destination, found := strings.Cut(filter, "-")
	if !found {
		writeError(c, domain.BadRequest("filter must contain a dash"))
		return
	}

	payload, err := h.unsafe.FindPairs(c.Request.Context(), creds, origin, destination)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

func (h *CatalogHandler) getFlights(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	payload, err := h.safe.GetFlights(c.Request.Context(), creds, c.Query("origin"), c.Query("destination"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(payload))
}

func (h *CatalogHandler) generateFlights(c *gin.Context) {
	creds, ok := basicCredentials(c)
	if !ok {
		return
	}
	generated, err := h.safe.GenerateFlights(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}

// requestInput collects credentials and the JSON body for write requests.
func requestInput(c *gin.Context) (catalog.Credentials, string, bool) {
	creds, ok := basicCredentials(c)
	if !ok {
		return catalog.Credentials{}, "", false
	}
	if ct := c.ContentType(); ct != "application/json" {
		writeError(c, domain.BadRequest("Content-Type must be application/json"))
		return catalog.Credentials{}, "", false
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, domain.BadRequest("failed to read request body"))
		return catalog.Credentials{}, "", false
	}
	return creds, string(body), true
}

func basicCredentials(c *gin.Context) (catalog.Credentials, bool) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		writeError(c, domain.BadRequest("missing or malformed Authorization header"))
		return catalog.Credentials{}, false
	}
	return catalog.Credentials{Username: username, Password: password}, true
}

func writeError(c *gin.Context, err error) {
	c.JSON(domain.StatusOf(err), gin.H{"error": err.Error()})
}
