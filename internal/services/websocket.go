package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID   uint // vendor id
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Vendor %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Vendor %d disconnected", client.ID)
		}
	}
}

// BroadcastToVendor sends a message to a specific vendor
func (h *Hub) BroadcastToVendor(vendorID uint, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.ID == vendorID {
			select {
			case client.Send <- message:
			default:
				log.Printf("Warning: Could not send to vendor %d (channel full)", client.ID)
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BookingRequested notifies a provider of a new booking request
type BookingRequested struct {
	BookingID         string  `json:"bookingId"`
	ProductID         string  `json:"productId"`
	RequesterName     string  `json:"requesterName"`
	FinalAmount       float64 `json:"finalAmount"`
	ApprovalExpiresAt string  `json:"approvalExpiresAt"`
}

// BookingDecision notifies a requester of the provider's decision
type BookingDecision struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// PaymentReceived notifies a provider that a payment cleared
type PaymentReceived struct {
	BookingID string  `json:"bookingId"`
	Purpose   string  `json:"purpose"`
	Amount    float64 `json:"amount"`
}

// BookingCompleted notifies both parties that a booking settled
type BookingCompleted struct {
	BookingID string  `json:"bookingId"`
	TotalPaid float64 `json:"totalPaid"`
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, vendorID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:   vendorID,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the websocket connection so pings and closes are handled
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendBookingRequested sends a booking request notification to the provider
func (h *Hub) SendBookingRequested(providerID uint, requested BookingRequested) {
	h.sendEvent(providerID, "booking_requested", requested)
}

// SendBookingDecision sends a decision notification to the requester
func (h *Hub) SendBookingDecision(requesterID uint, decision BookingDecision) {
	h.sendEvent(requesterID, "booking_decision", decision)
}

// SendPaymentReceived sends a payment notification to the provider
func (h *Hub) SendPaymentReceived(providerID uint, received PaymentReceived) {
	h.sendEvent(providerID, "payment_received", received)
}

// SendBookingCompleted sends a completion notification to a vendor
func (h *Hub) SendBookingCompleted(vendorID uint, completed BookingCompleted) {
	h.sendEvent(vendorID, "booking_completed", completed)
}

func (h *Hub) sendEvent(vendorID uint, eventType string, data interface{}) {
	message := WebSocketMessage{
		Type: eventType,
		Data: data,
	}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	h.BroadcastToVendor(vendorID, payload)
}
