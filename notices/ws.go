package notices

import (
	"encoding/json"
	"log"
	"net/http"

	"darklands/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload is the only thing clients send us on this socket.
type inboundPayload struct {
	Action string `json:"action"` // "dismiss"
}

// WebSocketHandler upgrades the connection and streams the device's
// toast frames. Authentication ran in middleware; the device id is in
// the request context.
func WebSocketHandler(hub *Hub, center *Center) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		deviceID := utils.DeviceIDFromContext(r.Context())
		if deviceID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			DeviceID: deviceID,
			Send:     make(chan []byte, 16),
		}

		hub.Register(client)
		go writePump(client, conn)
		go readPump(client, conn, hub, center)
	}
}

func writePump(c *Client, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, conn *websocket.Conn, hub *Hub, center *Center) {
	defer func() {
		hub.Unregister(c)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Action == "dismiss" {
			center.Dismiss(c.DeviceID)
		}
	}
}
