package model

// Channel is the transport a message arrived on.
type Channel string

const (
	ChannelHTTP      Channel = "http"
	ChannelTelegram  Channel = "telegram"
	ChannelWebSocket Channel = "websocket"
)
