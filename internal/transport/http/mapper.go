package http

import (
	"encoding/json"

	"github.com/josuesanchez96/umessenger/internal/core"
	"github.com/josuesanchez96/umessenger/internal/proto"
)

func inboundToCommand(client *core.Client, inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Sender == "" || msg.Recipient == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "sender and recipient are required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandSendMessage,
			Client: client,
			Message: core.Message{
				// ID is assigned by the hub before persisting.
				Sender:    msg.Sender,
				Recipient: msg.Recipient,
				Content:   msg.Content,
				Timestamp: msg.Timestamp,
				Type:      core.MessageType(msg.Type),
			},
		}, nil, nil
	case proto.InboundTypeGetMessages:
		var q proto.GetMessagesData
		if err := json.Unmarshal(inbound.Data, &q); err != nil {
			return nil, nil, err
		}
		if q.User1 == "" || q.User2 == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "user1 and user2 are required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandGetMessages,
			Client: client,
			UserA:  q.User1,
			UserB:  q.User2,
		}, nil, nil
	case proto.InboundTypeListConversations:
		var q proto.ListConversationsData
		if err := json.Unmarshal(inbound.Data, &q); err != nil {
			return nil, nil, err
		}
		// Conversation lists are only served for the requester's own
		// identity; a mismatched username is rejected rather than honored.
		if q.Username != "" && q.Username != client.Username {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username does not match session"}, nil
		}
		return &core.Command{
			Kind:   core.CommandListConversations,
			Client: client,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserStatus:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserStatus,
			Data: proto.UserStatus{
				Username: event.User,
				Status:   event.Status,
			},
		}
	case core.EventRoster:
		users := make([]proto.UserStatus, 0, len(event.Roster))
		for _, u := range event.Roster {
			users = append(users, proto.UserStatus{Username: u, Status: core.StatusOnline})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUsers,
			Data:  users,
		}
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  chatMessageFromCore(event.Message),
		}
	case core.EventHistory:
		messages := make([]proto.ChatMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, chatMessageFromCore(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessages,
			Data: proto.MessageHistory{
				ChatKey:  event.ChatKey,
				Messages: messages,
			},
		}
	case core.EventConversations:
		partners := event.Partners
		if partners == nil {
			partners = []string{}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventConversations,
			Data:  partners,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func chatMessageFromCore(msg core.Message) proto.ChatMessage {
	return proto.ChatMessage{
		ID:        msg.ID,
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Type:      string(msg.Type),
	}
}
