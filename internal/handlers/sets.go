package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/requestdata"
	"github.com/tenxdevs/hymns-backend/internal/services"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type SetHandler struct {
	log        *logger.Logger
	setService services.SetService
}

func NewSetHandler(log *logger.Logger, setService services.SetService) *SetHandler {
	return &SetHandler{
		log:        log.With("handler", "SetHandler"),
		setService: setService,
	}
}

type createSetRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	// Accepted and size-checked for wire compatibility with the generic
	// create shape; new sets always start with empty slot fields.
	Content string `json:"content" binding:"omitempty,max=2000"`
}

type updateSetRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Entrance    string `json:"entrance" binding:"omitempty,max=200"`
	Offertory   string `json:"offertory" binding:"omitempty,max=200"`
	Communion   string `json:"communion" binding:"omitempty,max=200"`
	Adoration   string `json:"adoration" binding:"omitempty,max=200"`
	Recessional string `json:"recessional" binding:"omitempty,max=200"`
}

type listSetsQuery struct {
	Search string `form:"search" binding:"omitempty,max=200"`
	Page   int    `form:"page,default=1" binding:"omitempty,gt=0"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,gt=0,lte=50"`
	Sort   string `form:"sort,default=updated_at" binding:"omitempty,oneof=name created_at updated_at"`
	Order  string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

func (h *SetHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var query listSetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		RespondBindingError(c, err, "Invalid query parameters")
		return
	}

	items, err := h.setService.List(c.Request.Context(), rd.UserID, types.ListSetsQuery{
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
		Sort:   query.Sort,
		Order:  query.Order,
	})
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to fetch sets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *SetHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err, "Invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondFieldErrors(c, map[string]string{"name": "Name is required"})
		return
	}

	dto, err := h.setService.Create(c.Request.Context(), rd.UserID, types.CreateSetCommand{Name: name})
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to create set")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": dto})
}

func (h *SetHandler) GetByID(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	setID, ok := parseSetID(c)
	if !ok {
		return
	}

	dto, err := h.setService.GetByID(c.Request.Context(), rd.UserID, setID)
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to fetch set")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto})
}

func (h *SetHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	setID, ok := parseSetID(c)
	if !ok {
		return
	}

	var req updateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err, "Invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondFieldErrors(c, map[string]string{"name": "Name is required"})
		return
	}

	dto, err := h.setService.Update(c.Request.Context(), rd.UserID, setID, types.UpdateSetCommand{
		Name:        name,
		Entrance:    strings.TrimSpace(req.Entrance),
		Offertory:   strings.TrimSpace(req.Offertory),
		Communion:   strings.TrimSpace(req.Communion),
		Adoration:   strings.TrimSpace(req.Adoration),
		Recessional: strings.TrimSpace(req.Recessional),
	})
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to update set")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto})
}

func (h *SetHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	setID, ok := parseSetID(c)
	if !ok {
		return
	}

	if err := h.setService.Remove(c.Request.Context(), rd.UserID, setID); err != nil {
		RespondServiceError(c, h.log, err, "Failed to delete set")
		return
	}
	c.Status(http.StatusNoContent)
}

// parseSetID reads the :id path param. A malformed id can never match a row,
// so it reports the same not-found as a missing one.
func parseSetID(c *gin.Context) (uuid.UUID, bool) {
	setID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondError(c, http.StatusNotFound, "Set not found")
		return uuid.Nil, false
	}
	return setID, true
}
