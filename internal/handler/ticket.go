package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-demo/ticket-service/internal/errs"
	"github.com/helpdesk-demo/ticket-service/internal/middleware"
	"github.com/helpdesk-demo/ticket-service/internal/model"
	"github.com/helpdesk-demo/ticket-service/internal/service"
	"github.com/helpdesk-demo/ticket-service/internal/session"
)

type TicketHandler struct {
	svc      *service.TicketService
	sessions *session.Manager
}

func NewTicketHandler(svc *service.TicketService, sessions *session.Manager) *TicketHandler {
	return &TicketHandler{svc: svc, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Login authenticates the credentials, issues a session token and returns
// the caller's visible ticket set in one round trip, as the mobile client
// expects.
func (h *TicketHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	user, tickets, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.sessions.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    userPayload{ID: user.ID, Username: user.Username},
		"token":   token,
		"tickets": tickets,
	})
}

// ListVisible returns every ticket the caller may see.
func (h *TicketHandler) ListVisible(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, h.svc.VisibleTo(c.Request.Context(), user))
}

// ListByOwner returns the tickets filed by the user id in the path. An empty
// result answers 404, matching the contract the original client was written
// against.
func (h *TicketHandler) ListByOwner(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	ownerID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	tickets, err := h.svc.ListForOwner(c.Request.Context(), user, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(tickets) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no tickets found"})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

type createTicketRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Description string            `json:"description"`
	Attachment  *model.Attachment `json:"attachment"`
}

// Create files a new ticket for the caller and returns the full resulting
// collection visible to them.
func (h *TicketHandler) Create(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	_, err := h.svc.SubmitCreate(c.Request.Context(), user, service.CreateRequest{
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Attachment:  req.Attachment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.svc.VisibleTo(c.Request.Context(), user))
}

type updateTicketRequest struct {
	ID           int64               `json:"id" binding:"required"`
	Status       *model.TicketStatus `json:"status,omitempty"`
	ServiceReply *string             `json:"serviceReply,omitempty"`
}

// Update applies a service-team reply. The request DTO only carries the two
// mutable fields, so immutable fields a client resends never reach the store.
func (h *TicketHandler) Update(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	_, err := h.svc.SubmitUpdate(c.Request.Context(), user, req.ID, req.Status, req.ServiceReply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.VisibleTo(c.Request.Context(), user))
}

func respondError(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
}
