package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
)

const broadcastBufferSize = 64

// ErrBroadcastQueueFull возвращается, когда очередь рассылки переполнена
var ErrBroadcastQueueFull = errors.New("broadcast queue is full")

// Hub рассылает события всем подключенным клиентам ленты заездов.
// Состояние клиентов принадлежит горутине Run.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clientCount atomic.Int32
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	log.Println("[WebSocketHub] Запущен")
	defer func() {
		close(h.done)
		log.Println("[WebSocketHub] Остановлен")
	}()

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.clientCount.Add(1)
			close(client.registered)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный клиент отключается, чтобы не задерживать остальных
					log.Printf("[WebSocketHub] Буфер клиента %s переполнен, отключаем", client.ConnectionID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.clientCount.Add(-1)
}

// BroadcastEvent ставит событие в очередь рассылки всем клиентам. Не блокирует.
func (h *Hub) BroadcastEvent(eventType string, data interface{}) error {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}

	select {
	case h.broadcast <- payload:
		return nil
	default:
		return fmt.Errorf("%w: event %s dropped", ErrBroadcastQueueFull, eventType)
	}
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}
