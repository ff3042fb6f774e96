package Telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// Telegram caps message text at 4096 characters; long reports are split.
const maxMessageLength = 4000

// Client holds the bot token and base URL
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

// sendMessageRequest represents a sendMessage payload
type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// sendMediaRequest covers sendPhoto/sendVideo/sendVoice/sendAudio/sendDocument,
// reusing an already-uploaded file_id.
type sendMediaRequest struct {
	ChatID    int64  `json:"chat_id"`
	Photo     string `json:"photo,omitempty"`
	Video     string `json:"video,omitempty"`
	Voice     string `json:"voice,omitempty"`
	Audio     string `json:"audio,omitempty"`
	Document  string `json:"document,omitempty"`
	Caption   string `json:"caption,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// apiResponse represents the Bot API response envelope
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: "https://api.telegram.org",
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) call(method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
	resp, err := c.HTTP.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("telegram %s: decoding response: %w", method, err)
	}
	if !result.OK {
		return fmt.Errorf("telegram %s: %s (code %d)", method, result.Description, result.ErrorCode)
	}
	return nil
}

// SendMessage sends an HTML-formatted text message, splitting it when it
// exceeds the Bot API length limit.
func (c *Client) SendMessage(chatID int64, text string) error {
	for len(text) > 0 {
		chunk := text
		if len(chunk) > maxMessageLength {
			// Back off to a rune boundary so a multi-byte character is
			// never cut in half across chunks.
			cut := maxMessageLength
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxMessageLength
			}
			chunk = chunk[:cut]
		}
		text = text[len(chunk):]

		err := c.call("sendMessage", sendMessageRequest{
			ChatID:    chatID,
			Text:      chunk,
			ParseMode: "HTML",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) SendPhoto(chatID int64, fileID, caption string) error {
	return c.call("sendPhoto", sendMediaRequest{ChatID: chatID, Photo: fileID, Caption: caption, ParseMode: "HTML"})
}

func (c *Client) SendVideo(chatID int64, fileID, caption string) error {
	return c.call("sendVideo", sendMediaRequest{ChatID: chatID, Video: fileID, Caption: caption, ParseMode: "HTML"})
}

func (c *Client) SendVoice(chatID int64, fileID, caption string) error {
	return c.call("sendVoice", sendMediaRequest{ChatID: chatID, Voice: fileID, Caption: caption, ParseMode: "HTML"})
}

func (c *Client) SendAudio(chatID int64, fileID, caption string) error {
	return c.call("sendAudio", sendMediaRequest{ChatID: chatID, Audio: fileID, Caption: caption, ParseMode: "HTML"})
}

func (c *Client) SendDocument(chatID int64, fileID, caption string) error {
	return c.call("sendDocument", sendMediaRequest{ChatID: chatID, Document: fileID, Caption: caption, ParseMode: "HTML"})
}
