package domain

import "time"

// Типы событий, которые ходят по WS
const (
	TypeChat           = "chat"
	TypeSystem         = "system"
	TypeUsers          = "users"
	TypeWho            = "who"
	TypePrivateRequest = "private_request"
	TypePrivateInvite  = "private_invite"
	TypePrivateAccept  = "private_accept"
	TypePrivateDeny    = "private_deny"
)

// Inbound is a client frame. Frames that do not parse as JSON are treated
// as plain chat text, not as errors.
type Inbound struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	To    string `json:"to,omitempty"`
	Token string `json:"token,omitempty"`
}

// Outbound is a server frame. The wire format is flat; fields unused by a
// given type are omitted.
type Outbound struct {
	Type    string   `json:"type"`
	From    string   `json:"from,omitempty"`
	Text    string   `json:"text,omitempty"`
	Message string   `json:"message,omitempty"`
	Room    string   `json:"room,omitempty"`
	Users   []string `json:"users,omitempty"`
	Token   string   `json:"token,omitempty"`
	TS      string   `json:"ts,omitempty"`
}

// Timestamp is the wall-clock tag attached to chat, system and signal frames.
func Timestamp() string {
	return time.Now().Format("15:04:05")
}

func ChatFrom(from, text string) Outbound {
	return Outbound{Type: TypeChat, From: from, Text: text, TS: Timestamp()}
}

func SystemNotice(message string) Outbound {
	return Outbound{Type: TypeSystem, Message: message, TS: Timestamp()}
}

func UserList(room string, users []string) Outbound {
	return Outbound{Type: TypeUsers, Room: room, Users: users}
}

// Signal builds one of the private_* relay frames.
func Signal(kind, from, token string) Outbound {
	return Outbound{Type: kind, From: from, Token: token, TS: Timestamp()}
}
