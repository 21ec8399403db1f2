package handler

import (
	"github.com/yourusername/rally-api/internal/handler/dto"
	"github.com/yourusername/rally-api/internal/service"
)

// EventBroadcaster рассылает события подключенным клиентам ленты
type EventBroadcaster interface {
	BroadcastEvent(eventType string, data interface{}) error
}

// RaceFeed публикует завершенные заезды в ленту в том же виде, что и ответ POST /api/races
type RaceFeed struct {
	broadcaster EventBroadcaster
}

// NewRaceFeed создает публикатор ленты заездов поверх хаба
func NewRaceFeed(broadcaster EventBroadcaster) *RaceFeed {
	return &RaceFeed{broadcaster: broadcaster}
}

// PublishRaceFinished реализует service.RaceEventPublisher
func (f *RaceFeed) PublishRaceFinished(run *service.RaceRun) error {
	return f.broadcaster.BroadcastEvent(service.EventRaceFinished, dto.NewRaceRunResponse(run))
}
