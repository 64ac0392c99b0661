package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type ChallengeHandler struct {
	svc service.ChallengeService
}

func NewChallengeHandler(s service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: s}
}

// challengeView decorates a challenge with its window-derived status.
type challengeView struct {
	model.Challenge
	Status string `json:"status"`
}

func buildChallengeView(c model.Challenge, now time.Time) challengeView {
	return challengeView{Challenge: c, Status: c.StatusAt(now)}
}

func buildChallengeViews(cs []model.Challenge, now time.Time) []challengeView {
	views := make([]challengeView, 0, len(cs))
	for _, c := range cs {
		views = append(views, buildChallengeView(c, now))
	}
	return views
}

func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	challenges, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: buildChallengeViews(challenges, time.Now())})
}

func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	challenge, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: buildChallengeView(*challenge, time.Now())})
}

type CreateChallengeReq struct {
	GameID   int64     `form:"game_id" json:"game_id" binding:"required"`
	Title    string    `form:"title" json:"title" binding:"required,max=200"`
	Rules    string    `form:"rules" json:"rules"`
	StartsAt time.Time `form:"starts_at" json:"starts_at" binding:"required"`
	EndsAt   time.Time `form:"ends_at" json:"ends_at" binding:"required,gtfield=StartsAt"`
}

func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	req := CreateChallengeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	challenge := model.Challenge{
		GameID:   req.GameID,
		Title:    req.Title,
		Rules:    req.Rules,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := h.svc.Create(c.Request.Context(), &challenge); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: buildChallengeView(challenge, time.Now())})
}

type UpdateChallengeReq struct {
	Title    string    `form:"title" json:"title" binding:"omitempty,max=200"`
	Rules    string    `form:"rules" json:"rules"`
	StartsAt time.Time `form:"starts_at" json:"starts_at"`
	EndsAt   time.Time `form:"ends_at" json:"ends_at"`
}

func (h *ChallengeHandler) UpdateChallenge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateChallengeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Update(c.Request.Context(), &model.Challenge{
		ID:       id,
		Title:    req.Title,
		Rules:    req.Rules,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *ChallengeHandler) DeleteChallenge(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type SubmitScoreReq struct {
	PlayerName string `form:"player_name" json:"player_name" binding:"required,max=60"`
	Score      int64  `form:"score" json:"score" binding:"required,min=0"`
}

func (h *ChallengeHandler) SubmitScore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := SubmitScoreReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	score, err := h.svc.SubmitScore(c.Request.Context(), service.SubmitScoreInput{
		ChallengeID: id,
		PlayerName:  req.PlayerName,
		Score:       req.Score,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: score})
}

func (h *ChallengeHandler) Leaderboard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	scores, err := h.svc.Leaderboard(c.Request.Context(), id, limit)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: scores})
}
