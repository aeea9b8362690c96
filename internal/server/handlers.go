package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arialabs/aria/internal/chat"
	"github.com/arialabs/aria/internal/retrieval"
)

type chatRequest struct {
	Message          string   `json:"message"`
	EmotionWeight    *float64 `json:"emotion_weight"`
	UseRecentContext *bool    `json:"use_recent_context"`
}

// Root reports service health and the character card.
func (s *Server) Root(c *gin.Context) {
	persona := s.chat.Persona()
	c.JSON(http.StatusOK, gin.H{
		"status":                 "online",
		"character":              persona.Name,
		"traits":                 persona.CoreTraits,
		"emotional_intelligence": fmt.Sprintf("%.0f%%", persona.EmotionalIntelligence*100),
	})
}

// Chat handles one conversational turn.
func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message field is required"})
		return
	}

	result, err := s.chat.ProcessTurn(c.Request.Context(), chat.TurnRequest{
		Message:          req.Message,
		EmotionWeight:    req.EmotionWeight,
		UseRecentContext: req.UseRecentContext,
	})
	if err != nil {
		var invalid *retrieval.InvalidCandidateError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":             result.Reply,
		"user_emotion":      result.UserEmotion,
		"retrieved_context": result.RetrievedContext,
		"emotional_summary": result.EmotionalSummary,
		"conversation_stats": gin.H{
			"turn_count":        result.Stats.TurnCount,
			"dominant_emotion":  result.Stats.DominantEmotion,
			"emotional_journey": result.Stats.EmotionalJourney,
		},
		"character": result.Character,
	})
}

// ConversationState exposes the current state summary.
func (s *Server) ConversationState(c *gin.Context) {
	summary := s.chat.Tracker().Summary()
	c.JSON(http.StatusOK, gin.H{
		"turn_count":        summary.TurnCount,
		"dominant_emotion":  summary.DominantEmotion,
		"emotional_journey": summary.EmotionalJourney,
		"recent_context":    s.chat.Tracker().RecentTurns(5),
	})
}

// ResetConversation clears the conversation state.
func (s *Server) ResetConversation(c *gin.Context) {
	s.chat.Tracker().Reset()
	c.JSON(http.StatusOK, gin.H{
		"status":  "conversation reset",
		"message": "Starting fresh with a clean emotional slate",
	})
}

// Character returns the full persona definition.
func (s *Server) Character(c *gin.Context) {
	c.JSON(http.StatusOK, s.chat.Persona())
}
