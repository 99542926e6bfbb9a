// Package protocol defines the JSON frames exchanged over the websocket.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Inbound frame types.
const (
	TypeJoin          = "join"
	TypeInfoRequest   = "infoRequest"
	TypePurchase      = "purchase"
	TypeChatOrCommand = "chatOrCommand"
	TypeShopRequest   = "shopRequest"
)

// Outbound frame types.
const (
	TypeRequestIdentity  = "request-identity"
	TypeFullRoster       = "full-roster"
	TypeJoinNotice       = "join-notice"
	TypeLeaveNotice      = "leave-notice"
	TypeChatResult       = "chat-result"
	TypeUserInfoSnapshot = "user-info-snapshot"
	TypeShopCatalog      = "shop-catalog"
)

// Request is any inbound frame. Only the fields relevant to Type are set.
type Request struct {
	Type           string `json:"type"`
	Identity       string `json:"identity,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	Room           string `json:"room,omitempty"`
	TargetIdentity string `json:"targetIdentity,omitempty"`
	ItemName       string `json:"itemName,omitempty"`
	Price          int64  `json:"price,omitempty"`
	Text           string `json:"text,omitempty"`
}

// Decode parses one inbound frame.
func Decode(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decoding frame: %w", err)
	}
	req.Type = strings.TrimSpace(req.Type)
	if req.Type == "" {
		return Request{}, fmt.Errorf("frame has no type")
	}
	return req, nil
}

// Frame is an outbound message.
type Frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Encode serializes a frame for the wire.
func Encode(f Frame) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding %s frame: %w", f.Type, err)
	}
	return data, nil
}

type Roster struct {
	Room    string   `json:"room"`
	Members []string `json:"members"`
}

type Notice struct {
	Room        string `json:"room"`
	Identity    string `json:"identity,omitempty"`
	DisplayName string `json:"displayName"`
	Text        string `json:"text"`
}

type ChatResult struct {
	Text string `json:"text"`
}

type UserInfo struct {
	Identity     string           `json:"identity"`
	Inventory    map[string]int64 `json:"inventory"`
	Gold         int64            `json:"gold"`
	FishingSkill int              `json:"fishingSkill"`
	Enhancement  int              `json:"enhancement"`
	Rod          string           `json:"rod,omitempty"`
	Accessory    string           `json:"accessory,omitempty"`
	Aquarium     string           `json:"aquarium,omitempty"`
	ExploreReady *time.Time       `json:"exploreReady,omitempty"`
}

type ShopItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Tier     int    `json:"tier"`
	Requires string `json:"requires,omitempty"`
}

type ShopCatalog struct {
	Rods        []ShopItem `json:"rods"`
	Accessories []ShopItem `json:"accessories"`
}

func RequestIdentity() Frame {
	return Frame{Type: TypeRequestIdentity}
}

func FullRoster(room string, members []string) Frame {
	if members == nil {
		members = []string{}
	}
	return Frame{Type: TypeFullRoster, Payload: Roster{Room: room, Members: members}}
}

func JoinNotice(n Notice) Frame {
	return Frame{Type: TypeJoinNotice, Payload: n}
}

func LeaveNotice(n Notice) Frame {
	return Frame{Type: TypeLeaveNotice, Payload: n}
}

func Chat(text string) Frame {
	return Frame{Type: TypeChatResult, Payload: ChatResult{Text: text}}
}

func Info(info UserInfo) Frame {
	if info.Inventory == nil {
		info.Inventory = map[string]int64{}
	}
	return Frame{Type: TypeUserInfoSnapshot, Payload: info}
}

func Shop(shop ShopCatalog) Frame {
	return Frame{Type: TypeShopCatalog, Payload: shop}
}
