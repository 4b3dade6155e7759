// services/mesh_service.go
package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MeshSession 一个在线编辑会话：一张网格、一个拾取器、若干通知订阅连接
type MeshSession struct {
	ID     string
	Mesh   *Tin.TinMesh
	Picker *Tin.Picker

	mu          sync.Mutex
	subscribers map[*websocket.Conn]bool
}

// NotifyMessage 网格变更通知，不携带网格内容，客户端收到后重新拉取
type NotifyMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

// Subscribe 注册一个通知订阅连接
func (s *MeshSession) Subscribe(conn *websocket.Conn) {
	s.mu.Lock()
	s.subscribers[conn] = true
	s.mu.Unlock()
}

// Unsubscribe 注销并关闭连接
func (s *MeshSession) Unsubscribe(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.subscribers, conn)
	s.mu.Unlock()
	conn.Close()
}

// 网格变更后推送给所有订阅者，写失败的连接直接剔除
func (s *MeshSession) broadcast() {
	msg := NotifyMessage{Type: "meshchanged", Session: s.ID}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.subscribers {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("notify session %s failed: %v", s.ID, err)
			delete(s.subscribers, conn)
			conn.Close()
		}
	}
}

// SubscriberCount 当前订阅连接数
func (s *MeshSession) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// MeshService 会话注册表，按uuid管理在线编辑会话
// 网格只存在内存里，不落库
type MeshService struct {
	mu       sync.RWMutex
	sessions map[string]*MeshSession
}

func NewMeshService() *MeshService {
	return &MeshService{
		sessions: make(map[string]*MeshSession),
	}
}

// CreateSession 创建新会话并装入初始点集
func (s *MeshService) CreateSession(points []Tin.Point3D) (*MeshSession, error) {
	mesh := Tin.NewTinMesh()

	session := &MeshSession{
		ID:          uuid.New().String(),
		Mesh:        mesh,
		Picker:      Tin.NewPicker(mesh),
		subscribers: make(map[*websocket.Conn]bool),
	}
	mesh.OnChange(session.broadcast)

	if err := mesh.SetPoints(points); err != nil {
		return nil, fmt.Errorf("failed to triangulate initial points: %v", err)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// GetSession 按ID取会话
func (s *MeshService) GetSession(id string) (*MeshSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// DeleteSession 删除会话并断开全部订阅连接
func (s *MeshService) DeleteSession(id string) bool {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	session.mu.Lock()
	for conn := range session.subscribers {
		conn.Close()
	}
	session.subscribers = make(map[*websocket.Conn]bool)
	session.mu.Unlock()
	return true
}

// SessionCount 当前会话数
func (s *MeshService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
