package telegram

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// Enabled reports whether a bot token is configured. A disabled client drops every message.
	Enabled() bool

	// SendMessageToUser sends a MarkdownV2 message to the configured admin user.
	SendMessageToUser(message string)

	// SendDocumentToUser sends a file to the configured admin user.
	SendDocumentToUser(name string, body []byte, caption string)
}
