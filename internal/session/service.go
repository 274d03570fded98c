package session

import "github.com/google/uuid"

type Session struct {
	UserID    string `json:"user_id"`
	AudioPath string `json:"audio_path"`
}

// Service issues sessions. Nothing is stored: every Start is independent.
type Service struct {
	demoPath string
}

func NewService(demoPath string) *Service {
	return &Service{demoPath: demoPath}
}

func (s *Service) Start() Session {
	return Session{
		UserID:    uuid.NewString(),
		AudioPath: s.demoPath,
	}
}

// Stop returns the audio the client should play when a conversation ends.
func (s *Service) Stop() string {
	return s.demoPath
}
