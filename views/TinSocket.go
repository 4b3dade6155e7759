package views

import (
	"log"
	"net/http"

	"github.com/GrainArc/TinSurvey/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 网格变更通知推送

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 生产环境需要严格检查
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// MeshNotify 订阅会话的网格变更通知
// 升级到WebSocket后，每次成功变更推送一条meshchanged，客户端自行重新拉取
func (tc *TinController) MeshNotify(c *gin.Context) {
	session, ok := tc.Service.GetSession(c.Query("session"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to websocket: %v", err)
		return
	}

	session.Subscribe(conn)

	init := services.NotifyMessage{Type: "init", Session: session.ID}
	if err := conn.WriteJSON(init); err != nil {
		log.Printf("Failed to send init message: %v", err)
		session.Unsubscribe(conn)
		return
	}

	// 读循环只用来感知客户端断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				session.Unsubscribe(conn)
				return
			}
		}
	}()
}
