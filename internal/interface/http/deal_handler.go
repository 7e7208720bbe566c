package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
	"github.com/dealexpress/dealexpress-api/pkg/response"
)

type DealHandler struct {
	Deals    *application.DealService
	Comments *application.CommentService
	Votes    *application.VoteService
	Logger   *logrus.Logger
}

func NewDealHandler(deals *application.DealService, comments *application.CommentService, votes *application.VoteService, logger *logrus.Logger) *DealHandler {
	return &DealHandler{Deals: deals, Comments: comments, Votes: votes, Logger: logger}
}

type createDealRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Price         *float64 `json:"price" binding:"required"`
	OriginalPrice *float64 `json:"originalPrice"`
}

// updateDealRequest lists the editable fields. Anything else in the body,
// status and temperature included, is dropped by the decoder.
type updateDealRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	URL           *string  `json:"url"`
	Category      *string  `json:"category"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type voteRequest struct {
	Type entity.VoteType `json:"type"`
}

type dealDetailResponse struct {
	Deal     *entity.Deal     `json:"deal"`
	Comments []entity.Comment `json:"comments"`
	Votes    entity.VoteTally `json:"votes"`
}

func meta[T any](p application.PageResult[T]) pageMeta {
	return pageMeta{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

// Create POST /api/deals (auth required)
func (h *DealHandler) Create(c *gin.Context) {
	var req createDealRequest
	if err := bindJSON(c, &req, "Missing required fields"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	d, err := h.Deals.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateDealInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, d, "Deal created and pending moderation", nil)
}

// List GET /api/deals?page=&limit=
func (h *DealHandler) List(c *gin.Context) {
	p, err := h.Deals.List(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deals": p.Items}, "Deals", meta(p))
}

// Search GET /api/deals/search?q=&page=&limit=
func (h *DealHandler) Search(c *gin.Context) {
	p, err := h.Deals.Search(c.Request.Context(), c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"query": strings.TrimSpace(c.Query("q")), "deals": p.Items}, "Search results", meta(p))
}

// Get GET /api/deals/:id
func (h *DealHandler) Get(c *gin.Context) {
	d, err := h.Deals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, dealDetailResponse{Deal: d.Deal, Comments: d.Comments, Votes: d.Votes}, "Deal", nil)
}

// Update PUT /api/deals/:id (auth required)
func (h *DealHandler) Update(c *gin.Context) {
	var req updateDealRequest
	if err := bindJSON(c, &req, "Invalid payload"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	d, err := h.Deals.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), application.DealUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		URL:           req.URL,
		Category:      req.Category,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, d, "Deal updated", nil)
}

// Delete DELETE /api/deals/:id (auth required)
func (h *DealHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Deals.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "Deal deleted successfully", nil)
}

// ListComments GET /api/deals/:id/comments
func (h *DealHandler) ListComments(c *gin.Context) {
	dealID := c.Param("id")
	comments, err := h.Comments.ListForDeal(c.Request.Context(), dealID)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"dealId":   dealID,
		"total":    len(comments),
		"comments": comments,
	}, "Comments", nil)
}

// AddComment POST /api/deals/:id/comments (auth required)
func (h *DealHandler) AddComment(c *gin.Context) {
	var req contentRequest
	if err := bindJSON(c, &req, "Content is required"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	cm, err := h.Comments.Add(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), req.Content)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "Comment added", nil)
}

// Vote POST /api/deals/:id/vote (auth required). 201 for a new vote, 200 for a switch.
func (h *DealHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := bindJSON(c, &req, "Vote type must be 'hot' or 'cold'"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	res, err := h.Votes.Cast(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), req.Type)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	if res.Created {
		response.Success(c, http.StatusCreated, res.Vote, "Vote recorded", nil)
		return
	}
	response.Success(c, http.StatusOK, res.Vote, "Vote updated", nil)
}

// Unvote DELETE /api/deals/:id/vote (auth required)
func (h *DealHandler) Unvote(c *gin.Context) {
	dealID := c.Param("id")
	if err := h.Votes.Remove(c.Request.Context(), dealID, middleware.CurrentUser(c)); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dealId": dealID}, "Vote removed", nil)
}
