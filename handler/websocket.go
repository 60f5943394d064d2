package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"sortear_api/database"
	"sortear_api/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

// PublishDrawResults publica os ganhadores no canal da promoção.
// Quem estiver assistindo o feed ao vivo recebe o resultado na hora.
func PublishDrawResults(promotionId uint, winners []model.WinnerWithParticipant) {
	payload, err := json.Marshal(winners)
	if err != nil {
		return
	}
	redisClient.Publish(
		context.Background(),
		fmt.Sprintf("promotion:%d", promotionId),
		payload,
	)
}

// fetchLatestWinners carrega os ganhadores já sorteados da promoção,
// enviados ao cliente assim que a conexão abre.
func fetchLatestWinners(promotionId uint) []model.Winner {
	var winners []model.Winner
	database.DB.Preload("Participant").
		Joins("JOIN draws ON draws.id = winners.draw_id").
		Where("draws.promotion_id = ?", promotionId).
		Order("winners.id ASC").
		Find(&winners)
	return winners
}

// DrawFeedConnection mantém a conexão WS do feed de sorteios
func DrawFeedConnection(c *websocket.Conn) {
	promotionIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(promotionIdStr, 10, 64)
	promotionId := uint(id64)

	// Desconectou, sai da sala
	defer func() {
		mu.Lock()
		if clients[promotionId] != nil {
			delete(clients[promotionId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[promotionId] == nil {
		clients[promotionId] = make(map[*websocket.Conn]bool)
	}
	clients[promotionId][c] = true
	mu.Unlock()

	// Estado inicial: ganhadores já sorteados
	c.WriteJSON(fetchLatestWinners(promotionId))

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("promotion:%d", promotionId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[promotionId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[promotionId], conn)
			}
		}
		mu.Unlock()
	}
}
