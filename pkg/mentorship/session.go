package mentorship

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// TokenStore 保存令牌与角色，由调用方注入客户端
type TokenStore interface {
	GetToken() (string, bool)
	IsAuthenticated() bool
	GetRole() (Role, bool)
	Save(token string, role Role) error
	Clear() error
}

// MemoryStore 内存存储
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	role  Role
}

// NewMemoryStore token 为空表示未登录
func NewMemoryStore(token string, role Role) *MemoryStore {
	return &MemoryStore{token: token, role: role}
}

func (s *MemoryStore) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) IsAuthenticated() bool {
	_, ok := s.GetToken()
	return ok
}

func (s *MemoryStore) GetRole() (Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role, s.role.Valid()
}

func (s *MemoryStore) Save(token string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.role = token, role
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("", "")
}

// sessionFile 会话文件内容
type sessionFile struct {
	Token   string    `yaml:"token"`
	Role    Role      `yaml:"role"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore 以YAML文件持久化会话（文件权限0600）
type FileStore struct {
	mu   sync.RWMutex
	path string
	data sessionFile
}

// DefaultSessionPath ~/.mentorship/session.yaml
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mentorship", "session.yaml"), nil
}

// NewFileStore 打开会话文件，文件不存在时视为未登录
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	return s, nil
}

// Path 会话文件路径
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token, s.data.Token != ""
}

func (s *FileStore) IsAuthenticated() bool {
	_, ok := s.GetToken()
	return ok
}

func (s *FileStore) GetRole() (Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Role, s.data.Role.Valid()
}

// Save 先写临时文件再重命名
func (s *FileStore) Save(token string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := sessionFile{Token: token, Role: role, SavedAt: time.Now().UTC()}
	raw, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	s.data = data
	return nil
}

// Clear 删除会话文件
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	s.data = sessionFile{}
	return nil
}
