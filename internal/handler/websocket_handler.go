package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"healprint/internal/chat"
	"healprint/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxFrame   = 8 << 10
)

// ChatSocket /ws/chat 실시간 채팅
type ChatSocket struct {
	chat     *chat.Service
	upgrader websocket.Upgrader
}

// NewChatSocket origins 가 비어 있으면 모든 Origin 허용
func NewChatSocket(svc *chat.Service, origins []string) *ChatSocket {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return &ChatSocket{
		chat: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

func (h *ChatSocket) Mount(r gin.IRouter) {
	r.GET("/ws/chat", h.HandleChat)
}

// HandleChat godoc
// @Summary      채팅 WebSocket 연결
// @Description  텍스트 프레임 하나가 사용자 메시지 하나입니다. 응답은 chat.ChatResponse JSON 프레임, 오류는 {"error": ...} 프레임으로 전송됩니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Tags         WebSocket (Chat)
// @Param        user_id         query     string  true   "사용자 ID"
// @Param        conversation_id query     string  false  "이어갈 대화 ID"
// @Success      101      {string}  string  "101 Switching Protocols"
// @Failure      400      {object}  handler.ErrorResponse "user_id 누락"
// @Router       /ws/chat [get]
func (h *ChatSocket) HandleChat(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	log := observability.LoggerFromContext(c.Request.Context()).With("user_id", userID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("HandleChat(): failed to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()
	log.Info("WebSocket connection established")

	// 요청 context 는 핸들러 종료와 함께 끝나므로 별도 context 사용
	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	inbound := make(chan string, 16)
	outbound := make(chan any, 16)

	var wg sync.WaitGroup
	wg.Add(3)

	// Client -> Server, 읽기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		socketReadPump(ctx, conn, inbound)
	}()

	// Server -> Client, 쓰기 전담
	go func() {
		defer wg.Done()
		defer cancel()
		socketWritePump(ctx, conn, outbound)
		// 블로킹된 ReadMessage 해제
		conn.Close()
	}()

	// 메시지 처리
	go func() {
		defer wg.Done()
		defer close(outbound)
		conversationID := strings.TrimSpace(c.Query("conversation_id"))
		send := func(v any) {
			select {
			case outbound <- v:
			case <-ctx.Done():
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case text, ok := <-inbound:
				if !ok {
					return
				}
				resp, err := h.chat.Chat(ctx, chat.ChatRequest{Message: text, UserID: userID, ConversationID: conversationID})
				if err != nil {
					_, msg := chatErrorStatus(err)
					send(ErrorResponse{Error: msg})
					continue
				}
				conversationID = resp.ConversationID
				send(resp)
			}
		}
	}()

	wg.Wait()
	log.Info("WebSocket session ended")
}

func socketReadPump(ctx context.Context, conn *websocket.Conn, inbound chan<- string) {
	defer close(inbound)
	conn.SetReadLimit(maxFrame)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		select {
		case inbound <- string(message):
		case <-ctx.Done():
			return
		}
	}
}

func socketWritePump(ctx context.Context, conn *websocket.Conn, outbound <-chan any) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg, ok := <-outbound:
			if !ok {
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
