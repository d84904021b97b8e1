package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSConnManager хранит открытые WebSocket соединения по пользователям.
// У одного пользователя может быть несколько соединений (вкладки, устройства).
type WSConnManager struct {
	mu    sync.RWMutex
	users map[int64][]*websocket.Conn
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		users: make(map[int64][]*websocket.Conn),
	}
}

func (m *WSConnManager) Add(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = append(m.users[userID], conn)
}

func (m *WSConnManager) Remove(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.users[userID]
	for i, c := range conns {
		if c == conn {
			m.users[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.users[userID]) == 0 {
		delete(m.users, userID)
	}
}

func (m *WSConnManager) Send(userID int64, message []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, conn := range m.users[userID] {
		_ = conn.WriteMessage(websocket.TextMessage, message)
	}
}

// SendJSON сериализует и отправляет сообщение всем соединениям пользователя
func (m *WSConnManager) SendJSON(userID int64, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	m.Send(userID, data)
	return nil
}

var GlobalWSConnManager = NewWSConnManager()
