package hub

import (
	"log"
	"sync"
	"time"

	"minedicas/pkg/envelope"

	"github.com/gofiber/contrib/websocket"
)

const (
	service = "minedicas"

	// writeWait limita quanto tempo uma escrita pode bloquear num cliente lento.
	writeWait = 5 * time.Second
	// outboxSize é quantas mensagens esperam por cliente antes de começarem a ser descartadas.
	outboxSize = 32
)

// Conn é o lado do websocket que o hub usa. *websocket.Conn satisfaz.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// clientConn entrega as mensagens por uma fila própria, assim um cliente que
// parou de ler não segura quem publica.
type clientConn struct {
	conn   Conn
	outbox chan []byte
	done   chan struct{}
}

func newClientConn(c Conn) *clientConn {
	return &clientConn{
		conn:   c,
		outbox: make(chan []byte, outboxSize),
		done:   make(chan struct{}),
	}
}

func (cc *clientConn) send(data []byte) {
	select {
	case cc.outbox <- data:
	case <-cc.done:
	default:
		log.Printf("[HUB] outbox cheia, mensagem descartada")
	}
}

// writeLoop escreve até done fechar e então despacha o que ainda estiver na fila.
func (cc *clientConn) writeLoop(exited chan<- struct{}) {
	defer close(exited)
	for {
		select {
		case data := <-cc.outbox:
			if !cc.write(data) {
				return
			}
		case <-cc.done:
			for {
				select {
				case data := <-cc.outbox:
					if !cc.write(data) {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (cc *clientConn) write(data []byte) bool {
	cc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[HUB] send error: %v", err)
		cc.conn.Close()
		return false
	}
	return true
}

// Hub mantém os clientes conectados e repassa a eles os eventos do domínio.
type Hub struct {
	mu      sync.RWMutex
	clients map[Conn]*clientConn
}

func New() *Hub {
	return &Hub{clients: make(map[Conn]*clientConn)}
}

// HandleClientConn bloqueia até o cliente desconectar.
func (h *Hub) HandleClientConn(c Conn) {
	cc := newClientConn(c)
	writerExited := make(chan struct{})
	go cc.writeLoop(writerExited)

	h.mu.Lock()
	h.clients[c] = cc
	h.mu.Unlock()
	log.Printf("[HUB] Client connected total=%d", h.ClientCount())

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(cc.done)
		<-writerExited
		c.Close()
		log.Printf("[HUB] Client disconnected total=%d", h.ClientCount())
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		ev, err := envelope.Unmarshal(raw)
		if err != nil {
			h.reply(cc, envelope.NewError("message", service, "BAD_REQUEST", "JSON inválido"))
			continue
		}

		switch ev.Action {
		case "ping":
			h.reply(cc, envelope.New("pong", service))
		default:
			h.reply(cc, envelope.NewError(ev.Action, service, "NOT_FOUND", "ação não encontrada: "+ev.Action))
		}
	}
}

func (h *Hub) reply(cc *clientConn, ev envelope.Event) {
	data, err := ev.Marshal()
	if err != nil {
		return
	}
	cc.send(data)
}

// Publish enfileira o evento para todos os clientes conectados sem esperar a escrita.
func (h *Hub) Publish(action string, data interface{}) {
	ev, err := envelope.NewEvent(action, service, data)
	if err != nil {
		log.Printf("[HUB] marshal %s: %v", action, err)
		return
	}
	raw, err := ev.Marshal()
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cc := range h.clients {
		cc.send(raw)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
