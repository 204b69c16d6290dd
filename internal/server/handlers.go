package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"levelup/internal/auth"
	"levelup/internal/engine"
	"levelup/internal/storage"
)

func (s *Server) userID(c *gin.Context) (string, bool) {
	id, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

// renderError maps engine errors onto HTTP statuses; storage failures pass
// through as 500 with the wrapped message.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case engine.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNoTemplates):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.log.Error("operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type questJSON struct {
	ID          string  `json:"id"`
	TemplateID  string  `json:"template_id"`
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Stat        string  `json:"stat"`
	XPReward    int     `json:"xp_reward"`
	Mandatory   bool    `json:"mandatory"`
	Completed   bool    `json:"completed"`
	Reflection  *string `json:"reflection,omitempty"`
}

func toQuestJSON(quests []storage.Quest) []questJSON {
	out := make([]questJSON, 0, len(quests))
	for _, q := range quests {
		out = append(out, questJSON{
			ID:          q.ID,
			TemplateID:  q.TemplateID,
			Date:        q.QuestDate,
			Title:       q.Title,
			Description: q.Description,
			Stat:        q.Stat,
			XPReward:    q.XPReward,
			Mandatory:   q.Mandatory,
			Completed:   q.Completed,
			Reflection:  q.Reflection,
		})
	}
	return out
}

func (s *Server) handleGenerateQuests(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	res, err := s.svc.GenerateDailyQuests(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      res.Date,
		"generated": res.Generated,
		"quests":    toQuestJSON(res.Quests),
	})
}

func (s *Server) handleTodayQuests(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	quests, err := s.svc.TodayQuests(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": toQuestJSON(quests)})
}

type completeRequest struct {
	Reflection string `json:"reflection"`
}

func (s *Server) handleCompleteQuest(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	var req completeRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	res, err := s.svc.CompleteQuest(c.Request.Context(), userID, c.Param("id"), req.Reflection)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quest_id":           res.QuestID,
		"stat":               string(res.Stat),
		"base_xp":            res.BaseXP,
		"effective_xp":       res.EffectiveXP,
		"multiplier_applied": res.MultiplierApplied,
		"penalty_applied":    res.PenaltyApplied,
		"already_completed":  res.AlreadyCompleted,
		"stat_level":         res.StatLevelAfter,
		"player_level":       res.PlayerLevelAfter,
		"level_up":           res.LevelUp,
		"completion_pct":     res.CompletionPct,
		"streak_maintained":  res.StreakMaintained,
		"streak_advanced":    res.StreakAdvanced,
		"current_streak":     res.CurrentStreak,
	})
}

func (s *Server) handleStreakInfo(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	info, err := s.svc.StreakInfo(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	history := make([]gin.H, 0, len(info.WeeklyHistory))
	for _, e := range info.WeeklyHistory {
		history = append(history, gin.H{
			"date":              e.Date,
			"quests_completed":  e.QuestsCompleted,
			"quests_total":      e.QuestsTotal,
			"completion_pct":    e.CompletionPct,
			"streak_maintained": e.StreakMaintained,
			"xp_multiplier":     e.XPMultiplier,
			"bonus_xp_earned":   e.BonusXPEarned,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"current_streak":    info.CurrentStreak,
		"longest_streak":    info.LongestStreak,
		"multiplier":        info.Multiplier,
		"penalty_points":    info.PenaltyPoints,
		"penalty_reduction": info.PenaltyReduction,
		"streak_freezes":    info.StreakFreezes,
		"weekly_history":    history,
		"at_risk":           info.AtRisk,
		"today_completed":   info.TodayCompleted,
	})
}

func (s *Server) handleCheckin(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	res, err := s.svc.EvaluateMissedDay(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":            res.Date,
		"penalty_applied": res.PenaltyApplied,
		"freeze_used":     res.FreezeUsed,
		"penalty_points":  res.PenaltyPoints,
		"streak_lost":     res.StreakLost,
	})
}

func (s *Server) handleRedeem(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	res, err := s.svc.RedeemPenalty(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"redeemed":       res.Redeemed,
		"penalty_points": res.PenaltyPoints,
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	p, err := s.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":         p.UserID,
		"total_xp":        p.TotalXP,
		"player_level":    p.PlayerLevel,
		"current_streak":  p.CurrentStreak,
		"longest_streak":  p.LongestStreak,
		"penalty_points":  p.PenaltyPoints,
		"streak_freezes":  p.StreakFreezes,
		"last_quest_date": p.LastQuestDate,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	st, err := s.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	levels := engine.StatLevels(st)
	out := make([]gin.H, 0, len(engine.StatOrder))
	for _, stat := range engine.StatOrder {
		out = append(out, gin.H{
			"stat":  string(stat),
			"xp":    engine.StatXP(st, stat),
			"level": levels[stat],
		})
	}
	c.JSON(http.StatusOK, gin.H{"stats": out})
}

func (s *Server) handleAchievements(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	achievements, err := s.svc.Achievements(c.Request.Context(), userID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	out := make([]gin.H, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, gin.H{
			"id":          a.ID,
			"name":        a.Name,
			"description": a.Description,
			"icon":        a.Icon,
			"earned":      a.Earned,
		})
	}
	c.JSON(http.StatusOK, gin.H{"achievements": out})
}
