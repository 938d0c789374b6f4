package websocket

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/config"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/repository"
	dbPkg "github.com/jerealeksanteri/rounds-api-sub000/pkg/db"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/redis"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler upgrades /ws connections. The token is taken from the query
// string or the websocket subprotocol header since browsers cannot set
// Authorization on the upgrade request.
func WsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
	}
	if token == "" {
		response.Unauthorized(c, "missing token")
		return
	}

	jwtCfg := c.MustGet("jwt_config").(config.JWTConfig)
	jwtSvc := jwt.NewJWTService(jwtCfg)
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "token invalid or expired")
		return
	}
	userID, _ := strconv.ParseUint(claims.Subject, 10, 32)
	if userID == 0 {
		response.Unauthorized(c, "token invalid")
		return
	}

	// Echo the subprotocol so clients that passed the token that way do not
	// drop the connection.
	respHeader := http.Header{}
	if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
		respHeader.Set("Sec-WebSocket-Protocol", protocol)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		return
	}

	client := &Client{
		UserID: uint(userID),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	GetManager().AddClient(uint(userID), client)

	username := ""
	if claims.Data != nil {
		if u, ok := claims.Data["username"].(string); ok {
			username = u
		}
	}

	if db := dbPkg.GetDB(); db != nil {
		userRepo := repository.NewUserRepository(db)
		_ = userRepo.UpdateStatus(uint(userID), "online")
	}
	if redis.Ready() {
		_ = redis.SetUserPresence(uint(userID), username, "online")
	}

	defer func() {
		GetManager().RemoveClient(uint(userID))

		if db := dbPkg.GetDB(); db != nil {
			userRepo := repository.NewUserRepository(db)
			_ = userRepo.UpdateStatus(uint(userID), "offline")
		}
		if redis.Ready() {
			_ = redis.SetUserPresence(uint(userID), username, "offline")
		}
	}()

	wsCfg := c.MustGet("ws_config").(config.WebSocketConfig)

	// Write pump: forwards pushes and sends pings on a ticker.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(wsCfg.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = conn.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					close(done)
					return
				}
			}
		}
	}()

	// Read pump: only heartbeats come from the client. The read deadline
	// disconnects a silent peer.
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	conn.SetPongHandler(func(appData string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
	})
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsCfg.ReadTimeout))
		var msg map[string]interface{}
		if err := json.Unmarshal(payload, &msg); err == nil {
			if t, ok := msg["type"].(string); ok && t == "heartbeat" {
				if redis.Ready() {
					_ = redis.RefreshUserPresence(uint(userID))
				}
				if db := dbPkg.GetDB(); db != nil {
					userRepo := repository.NewUserRepository(db)
					_ = userRepo.UpdateStatus(uint(userID), "online")
				}
			}
		}
	}
	select {
	case <-done:
	default:
		close(done)
	}
}
