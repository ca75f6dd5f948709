package mentorship

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type account struct {
	id   uint
	role Role
}

// fakeBackend 内存实现的后端，遵循 approve/reject 的权限与状态规则
type fakeBackend struct {
	mu       sync.Mutex
	accounts map[string]account
	requests []Request
	nextID   uint
	calls    []string
	failWith map[string]int // 路径 -> 强制返回的状态码
	clock    time.Time
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		accounts: map[string]account{
			"student-token": {id: 1, role: RoleUser},
			"mentor-token":  {id: 42, role: RoleMentor},
			"other-token":   {id: 43, role: RoleMentor},
		},
		nextID:   1,
		failWith: map[string]int{},
		clock:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) URL() string { return b.server.URL }

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *fakeBackend) fail(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith[path] = status
}

func (b *fakeBackend) status(id uint) Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.requests {
		if r.ID == id {
			return r.Status
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)

	if status, ok := b.failWith[r.URL.Path]; ok {
		writeDetail(w, status, "forced failure")
		return
	}

	acc, ok := b.accounts[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	b.clock = b.clock.Add(time.Minute)

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/requests/send":
		var body sendBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, existing := range b.requests {
			if existing.SenderID == acc.id && existing.SenderType == acc.role &&
				existing.ReceiverID == body.ReceiverID && existing.Status != StatusRejected {
				writeDetail(w, http.StatusConflict, "there is already an active request to this receiver")
				return
			}
		}
		req := Request{
			ID: b.nextID, SenderID: acc.id, SenderType: acc.role,
			ReceiverID: body.ReceiverID, ReceiverType: body.ReceiverType,
			Message: body.Message, Status: StatusPending,
			CreatedAt: b.clock, UpdatedAt: b.clock,
		}
		b.nextID++
		b.requests = append(b.requests, req)
		writeJSON(w, http.StatusCreated, req)
	case r.Method == http.MethodGet && r.URL.Path == "/requests/sent":
		writeJSON(w, http.StatusOK, b.filter(func(x Request) bool { return x.SenderID == acc.id && x.SenderType == acc.role }))
	case r.Method == http.MethodGet && r.URL.Path == "/requests/got":
		writeJSON(w, http.StatusOK, b.filter(func(x Request) bool { return x.ReceiverID == acc.id && x.ReceiverType == acc.role }))
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/requests/approve/"):
		b.transition(w, r.URL.Path, acc, StatusAccepted, false)
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/requests/reject/"):
		b.transition(w, r.URL.Path, acc, StatusRejected, true)
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (b *fakeBackend) filter(keep func(Request) bool) []Request {
	out := []Request{}
	for _, r := range b.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (b *fakeBackend) transition(w http.ResponseWriter, path string, acc account, to Status, senderAllowed bool) {
	id, _ := strconv.Atoi(path[strings.LastIndex(path, "/")+1:])
	for i := range b.requests {
		r := &b.requests[i]
		if r.ID != uint(id) {
			continue
		}
		isReceiver := r.ReceiverID == acc.id && r.ReceiverType == acc.role
		isSender := r.SenderID == acc.id && r.SenderType == acc.role
		if (isReceiver || (senderAllowed && isSender)) && r.Status == StatusPending {
			r.Status = to
			r.UpdatedAt = b.clock
			writeJSON(w, http.StatusOK, r)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "request not found or already processed")
}

// seed 直接写入一条申请
func (b *fakeBackend) seed(r Request) Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	r.ID = b.nextID
	b.nextID++
	if r.Status == "" {
		r.Status = StatusPending
	}
	b.requests = append(b.requests, r)
	return r
}
