// Package server exposes the HTTP boundary of the service.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/arialabs/aria/internal/chat"
)

// Server routes HTTP requests to the chat service.
type Server struct {
	chat *chat.Service
}

// New returns a Server over the given chat service.
func New(svc *chat.Service) *Server {
	return &Server{chat: svc}
}

// SetupRouter registers all routes.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Root)
	r.POST("/chat", s.Chat)
	r.GET("/conversation/state", s.ConversationState)
	r.POST("/conversation/reset", s.ResetConversation)
	r.GET("/character", s.Character)

	return r
}
