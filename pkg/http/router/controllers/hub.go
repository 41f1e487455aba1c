package controllers

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// User. one websocket client of the autocomplete endpoint.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) GetID() uint {
	return u.id
}

// readRequest. nil request without error means a control frame was handled.
func (u *User) readRequest() (*autocompleteRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &autocompleteRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Autocomplete. read one prefix request and answer with the matching location names,
// truncated to the requested limit when it is positive.
func (u *User) Autocomplete() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": err.Error(),
		}}
		return u.write(errResp)
	}

	names := u.hub.routingService.LocationsByPrefix(req.Prefix)
	if req.Limit > 0 && len(names) > req.Limit {
		names = names[:req.Limit]
	}

	resp := envelope{"data": autocompleteResponse{Prefix: req.Prefix, Names: names}}
	return u.write(resp)
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub. registry of connected autocomplete users.
type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService
}

func NewHub(routingService RoutingService) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	// us is sorted by id since ids are handed out in increasing order.
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		user.conn.Close()
		h.Remove(user)
	}
}

func (h *Hub) NumberOfUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}
