package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"arenaserver/domain"
)

type Handler struct {
	registry *Registry
	verifier TokenVerifier // nil in guest-only deployments
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry, verifier TokenVerifier, allowedOrigins []string) *Handler {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}
	return &Handler{
		registry: registry,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originSet[r.Header.Get("Origin")]
			},
		},
	}
}

// ArenaHandler upgrades the connection and runs its read loop until the
// client disconnects.
func (h *Handler) ArenaHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	user := h.authenticate(ctx)
	h.Serve(NewWebsocketConnection(conn), user)
}

// RoomsHandler lists active rooms for the lobby UI.
func (h *Handler) RoomsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.registry.List())
}

// authenticate resolves the optional credential attached to the
// connection. Any failure degrades to a guest; it never rejects.
func (h *Handler) authenticate(ctx *gin.Context) *domain.User {
	if h.verifier == nil {
		return nil
	}
	token := ctx.Query("token")
	if token == "" {
		token, _ = ctx.Cookie("token")
	}
	if token == "" {
		return nil
	}
	user, err := h.verifier.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("credential rejected, continuing as guest")
		return nil
	}
	return &user
}

// Serve is the per-connection event loop: it translates inbound packets
// into room operations and tears the player down on disconnect.
func (h *Handler) Serve(conn Conn, user *domain.User) {
	connID := uuid.NewString()
	cl := newClient(connID, conn)
	go cl.writePump()

	// Turn is the only client-flood surface; joins and leaves are
	// self-limiting.
	turnLimiter := rate.NewLimiter(rate.Limit(50), 10)

	var room *Room
	defer func() {
		if room != nil {
			room.Leave(connID)
		}
		cl.Close()
	}()

	for {
		data, err := conn.Read()
		if err != nil {
			return
		}

		var pkt ClientPacket
		if err := json.Unmarshal(data, &pkt); err != nil {
			continue
		}

		switch pkt.Type {
		case PacketJoin:
			if room != nil {
				room.Leave(connID)
				room = nil
			}
			room = h.joinRoom(cl, user, pkt)
		case PacketTurn:
			if room == nil || !turnLimiter.Allow() {
				continue
			}
			room.Turn(connID, pkt.Direction)
		case PacketLeave:
			if room != nil {
				room.Leave(connID)
				room = nil
			}
		}
	}
}

// joinRoom resolves identity and display name, then admits the player.
// A join that races a room's release is retried against the fresh room.
func (h *Handler) joinRoom(cl *client, user *domain.User, pkt ClientPacket) *Room {
	userID := "guest:" + cl.ID()
	tokenName := ""
	if user != nil {
		userID = user.ID
		tokenName = user.Username
	}

	username := SanitizeUsername(pkt.Username)
	if username == "" {
		username = SanitizeUsername(tokenName)
	}
	if username == "" {
		username = "Guest-" + cl.ID()[:5]
	}

	for {
		room := h.registry.GetOrCreate(pkt.RoomID)
		err := room.Join(newPlayer(cl, userID, username))
		switch {
		case err == nil:
			return room
		case errors.Is(err, ErrRoomClosed):
			continue
		case errors.Is(err, ErrRoomFull):
			cl.Send(encodeError(ErrRoomFullMessage))
			return nil
		default:
			cl.Send(encodeError(err.Error()))
			return nil
		}
	}
}
